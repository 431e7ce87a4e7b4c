package product

import (
	"context"
	"testing"

	"github.com/denred/online-store-backend/internal/apperr"
)

type fakeRepository struct {
	products map[string]*Product
	maxCode  int
	created  []*Product
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: map[string]*Product{}}
}

func (f *fakeRepository) Count(ctx context.Context) (int, error) { return len(f.products), nil }

func (f *fakeRepository) FindAll(ctx context.Context, page Page) ([]Product, error) {
	var out []Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product " + id + " does not exist")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepository) Search(ctx context.Context, filter Filter, page Page, sort Sort) ([]Product, error) {
	return f.FindAll(ctx, page)
}

func (f *fakeRepository) Create(ctx context.Context, p *Product) error {
	p.ID = "generated"
	f.products[p.ID] = p
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.products[id]
	delete(f.products, id)
	return ok, nil
}

func (f *fakeRepository) MaxVendorCode(ctx context.Context) (int, error) { return f.maxCode, nil }

func TestServiceCreate(t *testing.T) {
	tests := map[string]struct {
		params   CreateParams
		maxCode  int
		wantErr  apperr.Kind
		wantCode int
	}{
		"assigns next vendor code": {
			params:   CreateParams{Title: "Shirt", Quantities: Quantities{SizeM: 2}},
			maxCode:  7,
			wantCode: 8,
		},
		"first product gets code 1": {
			params:   CreateParams{Title: "Coat"},
			wantCode: 1,
		},
		"missing title rejected": {
			params:  CreateParams{},
			wantErr: apperr.KindValidation,
		},
		"negative quantity rejected": {
			params:  CreateParams{Title: "Shirt", Quantities: Quantities{SizeS: -1}},
			wantErr: apperr.KindValidation,
		},
		"unknown size rejected": {
			params:  CreateParams{Title: "Shirt", Quantities: Quantities{"XXXL": 1}},
			wantErr: apperr.KindValidation,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.maxCode = tt.maxCode
			svc := NewService(repo)

			p, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != "" {
				if err == nil || apperr.KindOf(err) != tt.wantErr {
					t.Fatalf("expected %s error, got %v", tt.wantErr, err)
				}
				if len(repo.created) != 0 {
					t.Fatalf("product persisted despite validation failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.VendorCode != tt.wantCode {
				t.Fatalf("vendor code = %d, want %d", p.VendorCode, tt.wantCode)
			}
		})
	}
}

func TestServiceDelete_Missing(t *testing.T) {
	svc := NewService(newFakeRepository())
	_, err := svc.Delete(context.Background(), "missing")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuantitiesTotal(t *testing.T) {
	q := Quantities{SizeXS: 1, SizeM: 4, SizeXXL: 2}
	if got := q.Total(); got != 7 {
		t.Fatalf("Total = %d, want 7", got)
	}
	if got := (Quantities{}).Total(); got != 0 {
		t.Fatalf("empty Total = %d, want 0", got)
	}
}
