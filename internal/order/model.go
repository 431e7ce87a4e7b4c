package order

import (
	"time"

	"github.com/denred/online-store-backend/internal/product"
)

type Item struct {
	ID         string             `json:"id"`
	OrderID    string             `json:"orderId"`
	ProductID  string             `json:"productId"`
	Quantities product.Quantities `json:"quantities"`
	Quantity   int                `json:"quantity"`
	Price      float64            `json:"price"`
}

type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PaymentID  *string   `json:"paymentId,omitempty"`
	TotalPrice float64   `json:"totalPrice"`
	Items      []Item    `json:"orderItems"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ItemInput is a repository-level order line with the price already resolved
// from the product catalog.
type ItemInput struct {
	ProductID  string
	Quantities product.Quantities
	Price      float64
}

type CreatePayload struct {
	UserID     string
	TotalPrice float64
	Items      []ItemInput
}

type UpdatePayload struct {
	OrderID    string
	UserID     string
	TotalPrice float64
	Items      []ItemInput
}
