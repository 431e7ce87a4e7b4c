package order

import (
	"reflect"
	"testing"

	"github.com/denred/online-store-backend/internal/product"
)

func TestIsProductAvailable(t *testing.T) {
	tests := map[string]struct {
		productQ  product.Quantities
		orderQ    product.Quantities
		existingQ product.Quantities
		want      bool
	}{
		"enough stock": {
			productQ: product.Quantities{product.SizeM: 5},
			orderQ:   product.Quantities{product.SizeM: 3},
			want:     true,
		},
		"exactly enough": {
			productQ: product.Quantities{product.SizeM: 3},
			orderQ:   product.Quantities{product.SizeM: 3},
			want:     true,
		},
		"not enough": {
			productQ: product.Quantities{product.SizeM: 2},
			orderQ:   product.Quantities{product.SizeM: 3},
			want:     false,
		},
		"existing reservation covers the increase": {
			productQ:  product.Quantities{product.SizeM: 1},
			orderQ:    product.Quantities{product.SizeM: 3},
			existingQ: product.Quantities{product.SizeM: 2},
			want:      true,
		},
		"existing reservation not enough": {
			productQ:  product.Quantities{product.SizeM: 1},
			orderQ:    product.Quantities{product.SizeM: 4},
			existingQ: product.Quantities{product.SizeM: 2},
			want:      false,
		},
		"size absent from stock": {
			productQ: product.Quantities{product.SizeM: 5},
			orderQ:   product.Quantities{product.SizeL: 1},
			want:     false,
		},
		"one short size fails the whole check": {
			productQ: product.Quantities{product.SizeS: 5, product.SizeM: 0},
			orderQ:   product.Quantities{product.SizeS: 1, product.SizeM: 1},
			want:     false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := IsProductAvailable(tt.productQ, tt.orderQ, tt.existingQ); got != tt.want {
				t.Fatalf("IsProductAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActualQuantities(t *testing.T) {
	tests := map[string]struct {
		productQ  product.Quantities
		orderQ    product.Quantities
		existingQ product.Quantities
		want      product.Quantities
	}{
		"plain decrement": {
			productQ: product.Quantities{product.SizeM: 10},
			orderQ:   product.Quantities{product.SizeM: 3},
			want:     product.Quantities{product.SizeM: 7},
		},
		"net delta against existing reservation": {
			productQ:  product.Quantities{product.SizeM: 7},
			orderQ:    product.Quantities{product.SizeM: 5},
			existingQ: product.Quantities{product.SizeM: 2},
			want:      product.Quantities{product.SizeM: 4},
		},
		"decreasing reservation returns stock": {
			productQ:  product.Quantities{product.SizeM: 7},
			orderQ:    product.Quantities{product.SizeM: 1},
			existingQ: product.Quantities{product.SizeM: 3},
			want:      product.Quantities{product.SizeM: 9},
		},
		"untouched sizes stay": {
			productQ: product.Quantities{product.SizeS: 4, product.SizeM: 10},
			orderQ:   product.Quantities{product.SizeM: 2},
			want:     product.Quantities{product.SizeS: 4, product.SizeM: 8},
		},
		"negative order quantities release stock": {
			productQ: product.Quantities{product.SizeM: 7},
			orderQ:   NegativeValues(product.Quantities{product.SizeM: 3}),
			want:     product.Quantities{product.SizeM: 10},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ActualQuantities(tt.productQ, tt.orderQ, tt.existingQ)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ActualQuantities = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActualQuantities_DoesNotMutateInput(t *testing.T) {
	productQ := product.Quantities{product.SizeM: 10}
	_ = ActualQuantities(productQ, product.Quantities{product.SizeM: 4}, nil)
	if productQ[product.SizeM] != 10 {
		t.Fatalf("input map mutated: %v", productQ)
	}
}

func TestNegativeValues(t *testing.T) {
	got := NegativeValues(product.Quantities{product.SizeS: 2, product.SizeXL: 0})
	want := product.Quantities{product.SizeS: -2, product.SizeXL: 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NegativeValues = %v, want %v", got, want)
	}
}
