package payment

import "time"

type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusDeclined Status = "DECLINED"
)

type Payment struct {
	ID         string    `json:"id"`
	OrderID    *string   `json:"orderId,omitempty"`
	UserID     *string   `json:"userId,omitempty"`
	CardHolder string    `json:"cardHolder"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateParams struct {
	OrderID    string `json:"orderId"`
	UserID     string `json:"userId"`
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
}
