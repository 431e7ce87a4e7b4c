package payment

import (
	"context"
	"log"
	"strings"

	"github.com/denred/online-store-backend/internal/apperr"
)

// Publisher emits the order-completed event once a payment went through.
type Publisher interface {
	PublishOrderCompleted(ctx context.Context, orderID, userID string) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *log.Logger
}

func NewService(repo Repository, publisher Publisher, logger *log.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// Create records a successful card payment and links it to the order when an
// order id is supplied. There is no real payment gateway here; every
// well-formed card is accepted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Payment, error) {
	cardNumber := strings.ReplaceAll(params.CardNumber, " ", "")
	if len(cardNumber) < 12 {
		return nil, apperr.Validation("card number is invalid")
	}
	if strings.TrimSpace(params.CardHolder) == "" {
		return nil, apperr.Validation("card holder is required")
	}

	p := &Payment{
		OrderID:    optional(params.OrderID),
		UserID:     optional(params.UserID),
		CardHolder: params.CardHolder,
		Status:     StatusSuccess,
	}
	if err := s.repo.Save(ctx, p, cardNumber); err != nil {
		return nil, err
	}

	if s.publisher != nil && p.OrderID != nil {
		if err := s.publisher.PublishOrderCompleted(ctx, *p.OrderID, params.UserID); err != nil {
			s.logger.Printf("publish order completed %s: %v", *p.OrderID, err)
		}
	}
	return p, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
