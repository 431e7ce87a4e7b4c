package order

import "github.com/denred/online-store-backend/internal/product"

// IsProductAvailable reports whether stock plus whatever this order already
// has reserved covers the requested per-size quantities.
func IsProductAvailable(productQ, orderQ, existingQ product.Quantities) bool {
	for size, requested := range orderQ {
		if requested > productQ[size]+existingQ[size] {
			return false
		}
	}
	return true
}

// ActualQuantities returns the product stock after applying the net delta
// between the requested and previously reserved quantities.
func ActualQuantities(productQ, orderQ, existingQ product.Quantities) product.Quantities {
	updated := productQ.Clone()
	for size, requested := range orderQ {
		updated[size] -= requested - existingQ[size]
	}
	return updated
}

// NegativeValues negates every count so a release can reuse the decrement
// path in ActualQuantities.
func NegativeValues(q product.Quantities) product.Quantities {
	neg := make(product.Quantities, len(q))
	for size, n := range q {
		neg[size] = -n
	}
	return neg
}

func existingQuantitiesFor(productID string, items []Item) product.Quantities {
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantities
		}
	}
	return nil
}
