package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/denred/online-store-backend/internal/apperr"
)

// PasswordHasher produces a salted hash for a plaintext password.
type PasswordHasher interface {
	Generate(password string) (hash, salt string, err error)
}

type RegisterParams struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Password  string
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("user %s does not exist", id))
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error) {
	u, err := s.repo.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Create persists a user record without credentials, typically an anonymous
// guest holding delivery contact info. A registered user with the same email
// or phone blocks the creation.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	existing, err := s.FindByEmailOrPhone(ctx, params.Email, params.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != StatusNotRegistered {
		return nil, apperr.Forbidden("user with such email or phone already exists")
	}

	return s.repo.Create(ctx, params)
}

// Register creates an ACTIVE user with hashed credentials.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	hash, salt, err := s.hasher.Generate(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, CreateParams{
		Email:     params.Email,
		Phone:     params.Phone,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Hash:      hash,
		Salt:      salt,
		Status:    StatusActive,
		Role:      RoleUser,
	})
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var email, phone string
	if params.Email != nil {
		email = *params.Email
	}
	if params.Phone != nil {
		phone = *params.Phone
	}
	if email != "" || phone != "" {
		other, err := s.FindByEmailOrPhone(ctx, email, phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.Forbidden("user with such email or phone already exists")
		}
	}

	u, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("user %s does not exist", id))
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
