package product

import (
	"context"
	"fmt"

	"github.com/denred/online-store-backend/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page Page) ([]Product, error) {
	return s.repo.FindAll(ctx, page)
}

func (s *Service) Search(ctx context.Context, filter Filter, page Page, sort Sort) ([]Product, error) {
	for _, size := range filter.Sizes {
		if !IsValidSize(size) {
			return nil, apperr.Validation(fmt.Sprintf("unknown size %q", size))
		}
	}
	return s.repo.Search(ctx, filter, page, sort)
}

// Create assigns the next vendor code and persists the product. The derived
// scalar quantity is computed from the per-size map.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if err := validateQuantities(params.Quantities); err != nil {
		return nil, err
	}

	maxCode, err := s.repo.MaxVendorCode(ctx)
	if err != nil {
		return nil, err
	}

	p := &Product{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Subcategory: params.Subcategory,
		Colour:      params.Colour,
		Price:       params.Price,
		VendorCode:  maxCode + 1,
		Quantities:  params.Quantities,
		Files:       params.Files,
	}
	if p.Quantities == nil {
		p.Quantities = Quantities{}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	if params.Quantities != nil {
		if err := validateQuantities(params.Quantities); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, apperr.NotFound(fmt.Sprintf("product %s does not exist", id))
	}
	return true, nil
}

func validateQuantities(q Quantities) error {
	for size, n := range q {
		if !IsValidSize(size) {
			return apperr.Validation(fmt.Sprintf("unknown size %q", size))
		}
		if n < 0 {
			return apperr.Validation(fmt.Sprintf("negative quantity for size %s", size))
		}
	}
	return nil
}
