package auth

import (
	"context"
	"strings"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/user"
)

// Users is the slice of the users service the auth flow needs.
type Users interface {
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*user.User, error)
	Register(ctx context.Context, params user.RegisterParams) (*user.User, error)
}

type SignUpParams struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignInParams struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type Service struct {
	users     Users
	encryptor *Encryptor
	tokens    *TokenManager
}

func NewService(users Users, encryptor *Encryptor, tokens *TokenManager) *Service {
	return &Service{users: users, encryptor: encryptor, tokens: tokens}
}

func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*TokenResponse, error) {
	params.Email = strings.TrimSpace(params.Email)
	if params.Email == "" && params.Phone == "" {
		return nil, apperr.Validation("email or phone is required")
	}
	if len(params.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	existing, err := s.users.FindByEmailOrPhone(ctx, params.Email, params.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == user.StatusActive {
		return nil, apperr.Conflict("user with such email or phone already exists")
	}

	u, err := s.users.Register(ctx, user.RegisterParams{
		Email:     params.Email,
		Phone:     params.Phone,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Password:  params.Password,
	})
	if err != nil {
		return nil, err
	}

	return s.tokenFor(u)
}

func (s *Service) SignIn(ctx context.Context, params SignInParams) (*TokenResponse, error) {
	u, err := s.users.FindByEmailOrPhone(ctx, strings.TrimSpace(params.Email), params.Phone)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Hash == "" || !s.encryptor.Compare(params.Password, u.Salt, u.Hash) {
		return nil, apperr.Unauthorized("invalid email, phone or password")
	}

	return s.tokenFor(u)
}

func (s *Service) tokenFor(u *user.User) (*TokenResponse, error) {
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, User: u}, nil
}
