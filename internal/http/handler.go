package httpapi

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/denred/online-store-backend/internal/auth"
	"github.com/denred/online-store-backend/internal/file"
	"github.com/denred/online-store-backend/internal/order"
	"github.com/denred/online-store-backend/internal/payment"
	"github.com/denred/online-store-backend/internal/product"
	"github.com/denred/online-store-backend/internal/subscriber"
	"github.com/denred/online-store-backend/internal/user"
)

type OrderService interface {
	Create(ctx context.Context, dto order.CreateDTO) (*order.Order, error)
	FindByID(ctx context.Context, id string) (*order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)
	Update(ctx context.Context, id string, dto order.UpdateDTO) (*order.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProductService interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindAll(ctx context.Context, page product.Page) ([]product.Product, error)
	Search(ctx context.Context, filter product.Filter, page product.Page, sort product.Sort) ([]product.Product, error)
	Create(ctx context.Context, params product.CreateParams) (*product.Product, error)
	Update(ctx context.Context, id string, params product.UpdateParams) (*product.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserService interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

type AuthService interface {
	SignUp(ctx context.Context, params auth.SignUpParams) (*auth.TokenResponse, error)
	SignIn(ctx context.Context, params auth.SignInParams) (*auth.TokenResponse, error)
}

type FileService interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (*file.File, error)
	URL(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PaymentService interface {
	Create(ctx context.Context, params payment.CreateParams) (*payment.Payment, error)
}

type SubscriberService interface {
	Subscribe(ctx context.Context, params subscriber.SubscribeParams) (*subscriber.Subscription, error)
	Unsubscribe(ctx context.Context, email string) error
	Status(ctx context.Context, email string) (subscriber.SubscriptionStatus, error)
	Preferences(ctx context.Context, email string) (*subscriber.Preferences, error)
	SetPreferences(ctx context.Context, email string, prefs subscriber.Preferences) error
}

type Handler struct {
	orders      OrderService
	products    ProductService
	users       UserService
	auth        AuthService
	files       FileService
	payments    PaymentService
	subscribers SubscriberService
	logger      *log.Logger
}

func NewHandler(
	orders OrderService,
	products ProductService,
	users UserService,
	authSvc AuthService,
	files FileService,
	payments PaymentService,
	subscribers SubscriberService,
	logger *log.Logger,
) *Handler {
	return &Handler{
		orders:      orders,
		products:    products,
		users:       users,
		auth:        authSvc,
		files:       files,
		payments:    payments,
		subscribers: subscribers,
		logger:      logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
