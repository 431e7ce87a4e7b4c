package events

import "time"

const (
	OrderCreatedQueue   = "order.created"
	OrderCompletedQueue = "order.completed"
)

type OrderCreated struct {
	EventType    string    `json:"eventType"`
	OrderID      string    `json:"orderId"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	CustomerName string    `json:"customerName"`
	TotalPrice   float64   `json:"totalPrice"`
	Timestamp    time.Time `json:"timestamp"`
}

type OrderCompleted struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
