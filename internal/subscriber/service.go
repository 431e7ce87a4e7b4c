package subscriber

import (
	"context"
	"errors"
	"strings"

	"github.com/denred/online-store-backend/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Subscribe(ctx context.Context, params SubscribeParams) (*Subscription, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}
	params.Email = email

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("email is already subscribed")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, email)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("email is not subscribed")
	}
	return nil
}

func (s *Service) Status(ctx context.Context, email string) (SubscriptionStatus, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusUnsubscribed, nil
		}
		return "", err
	}
	return StatusSubscribed, nil
}

func (s *Service) Preferences(ctx context.Context, email string) (*Preferences, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	prefs, err := s.repo.GetPreferences(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("email is not subscribed")
	}
	return prefs, err
}

func (s *Service) SetPreferences(ctx context.Context, email string, prefs Preferences) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.repo.SetPreferences(ctx, email, prefs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("email is not subscribed")
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", apperr.Validation("a valid email is required")
	}
	return email, nil
}
