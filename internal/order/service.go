package order

import (
	"context"
	"fmt"
	"log"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/product"
	"github.com/denred/online-store-backend/internal/user"
)

// UsersService is the slice of the users service the order flow needs to
// manage guest accounts.
type UsersService interface {
	Create(ctx context.Context, params user.CreateParams) (*user.User, error)
	Update(ctx context.Context, id string, params user.UpdateParams) (*user.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductFinder resolves live product prices for order totals.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
}

// Publisher emits order lifecycle events. Publishing is best effort: a broker
// failure never fails the checkout.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order, email, customerName string) error
	PublishOrderCompleted(ctx context.Context, orderID, userID string) error
}

type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type ItemRequest struct {
	ProductID  string             `json:"productId"`
	Quantities product.Quantities `json:"quantities"`
}

type CreateDTO struct {
	User     GuestInfo         `json:"user"`
	Delivery user.AddressInput `json:"orderDelivery"`
	Items    []ItemRequest     `json:"orderItems"`
}

type UpdateDTO struct {
	User     *GuestInfo         `json:"user,omitempty"`
	Delivery *user.AddressInput `json:"orderDelivery,omitempty"`
	Items    []ItemRequest      `json:"orderItems,omitempty"`
}

type Service struct {
	repo      Repository
	users     UsersService
	products  ProductFinder
	publisher Publisher
	logger    *log.Logger
}

func NewService(repo Repository, users UsersService, products ProductFinder, publisher Publisher, logger *log.Logger) *Service {
	return &Service{repo: repo, users: users, products: products, publisher: publisher, logger: logger}
}

// Create prices the order from the live catalog, creates an anonymous user
// holding the delivery contact info, and persists the order. When order
// persistence fails, the just-created guest user is deleted so a failed
// checkout never leaves an orphaned account.
func (s *Service) Create(ctx context.Context, dto CreateDTO) (*Order, error) {
	items, totalPrice, err := s.priceItems(ctx, dto.Items)
	if err != nil {
		return nil, err
	}

	createdUser, err := s.users.Create(ctx, user.CreateParams{
		Email:     dto.User.Email,
		Phone:     dto.User.Phone,
		FirstName: dto.User.FirstName,
		LastName:  dto.User.LastName,
		Status:    user.StatusAnonymous,
		Role:      user.RoleUser,
		Addresses: []user.AddressInput{dto.Delivery},
	})
	if err != nil {
		return nil, err
	}

	o, err := s.repo.CreateOrder(ctx, CreatePayload{
		UserID:     createdUser.ID,
		TotalPrice: totalPrice,
		Items:      items,
	})
	if err != nil {
		if createdUser.Status == user.StatusAnonymous {
			if _, delErr := s.users.Delete(ctx, createdUser.ID); delErr != nil {
				s.logger.Printf("delete guest user %s after failed order: %v", createdUser.ID, delErr)
			}
		}
		return nil, err
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishOrderCreated(ctx, o, dto.User.Email, dto.User.FirstName); pubErr != nil {
			s.logger.Printf("publish order created %s: %v", o.ID, pubErr)
		}
	}

	return o, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies optional contact/delivery changes to the owning user and
// delegates the item delta work to the repository. The total is recomputed
// only when new items are supplied.
func (s *Service) Update(ctx context.Context, id string, dto UpdateDTO) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.User != nil || dto.Delivery != nil {
		params := user.UpdateParams{}
		if dto.User != nil {
			params.Email = optional(dto.User.Email)
			params.Phone = optional(dto.User.Phone)
			params.FirstName = optional(dto.User.FirstName)
			params.LastName = optional(dto.User.LastName)
		}
		if dto.Delivery != nil {
			params.Addresses = []user.AddressInput{*dto.Delivery}
		}
		if _, err := s.users.Update(ctx, o.UserID, params); err != nil {
			return nil, err
		}
	}

	totalPrice := o.TotalPrice
	var items []ItemInput
	if len(dto.Items) > 0 {
		items, totalPrice, err = s.priceItems(ctx, dto.Items)
		if err != nil {
			return nil, err
		}
	} else {
		for _, it := range o.Items {
			items = append(items, ItemInput{ProductID: it.ProductID, Quantities: it.Quantities, Price: it.Price})
		}
	}

	return s.repo.UpdateOrder(ctx, UpdatePayload{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalPrice: totalPrice,
		Items:      items,
	})
}

// Delete removes the order and, when both the lookup and the deletion
// succeeded, cleans up the owning guest user.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return false, err
	}

	deleted, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return false, err
	}

	if o != nil && deleted {
		if _, delErr := s.users.Delete(ctx, o.UserID); delErr != nil {
			s.logger.Printf("delete user %s of removed order %s: %v", o.UserID, id, delErr)
		}
	}

	return deleted, nil
}

// priceItems validates the requested lines and resolves each price from the
// catalog; client-supplied prices are never trusted.
func (s *Service) priceItems(ctx context.Context, reqs []ItemRequest) ([]ItemInput, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, apperr.Validation("order must contain at least one item")
	}

	var (
		items      []ItemInput
		totalPrice float64
	)
	for _, req := range reqs {
		if req.ProductID == "" {
			return nil, 0, apperr.Validation("productId is required")
		}
		if req.Quantities.Total() < 1 {
			return nil, 0, apperr.Validation(fmt.Sprintf("order quantity for product %s must be at least 1", req.ProductID))
		}
		for size, n := range req.Quantities {
			if !product.IsValidSize(size) {
				return nil, 0, apperr.Validation(fmt.Sprintf("unknown size %q", size))
			}
			if n < 0 {
				return nil, 0, apperr.Validation(fmt.Sprintf("negative quantity for size %s", size))
			}
		}

		p, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, 0, err
		}

		totalPrice += p.Price * float64(req.Quantities.Total())
		items = append(items, ItemInput{ProductID: req.ProductID, Quantities: req.Quantities, Price: p.Price})
	}

	return items, totalPrice, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
