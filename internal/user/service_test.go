package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/denred/online-store-backend/internal/apperr"
)

type fakeRepository struct {
	users map[string]*User

	deleted []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}}
}

func (f *fakeRepository) add(u *User) *User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error) {
	for _, u := range f.users {
		if (email != "" && u.Email == email) || (phone != "" && u.Phone == phone) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	u := &User{
		ID:        uuid.NewString(),
		Email:     params.Email,
		Phone:     params.Phone,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Hash:      params.Hash,
		Salt:      params.Salt,
		Status:    params.Status,
		Role:      params.Role,
	}
	for _, a := range params.Addresses {
		u.Addresses = append(u.Addresses, Address{ID: uuid.NewString(), UserID: u.ID, Address: a.Address, City: a.City})
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.FirstName != nil {
		u.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		u.LastName = *params.LastName
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return ok, nil
}

type staticHasher struct{}

func (staticHasher) Generate(password string) (string, string, error) {
	return "hash(" + password + ")", "salt", nil
}

func TestServiceCreate_GuestUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, staticHasher{})

	u, err := svc.Create(context.Background(), CreateParams{
		Email:     "guest@example.com",
		FirstName: "Guest",
		Status:    StatusAnonymous,
		Role:      RoleUser,
		Addresses: []AddressInput{{Address: "132, My Street", City: "Kyiv"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Status != StatusAnonymous {
		t.Fatalf("status = %s, want ANONYMOUS", u.Status)
	}
	if len(u.Addresses) != 1 {
		t.Fatalf("expected one address, got %d", len(u.Addresses))
	}
}

func TestServiceCreate_ExistingRegisteredUserBlocks(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&User{Email: "taken@example.com", Status: StatusActive})
	svc := NewService(repo, staticHasher{})

	_, err := svc.Create(context.Background(), CreateParams{Email: "taken@example.com", Status: StatusAnonymous})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestServiceCreate_NotRegisteredUserDoesNotBlock(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&User{Email: "lead@example.com", Status: StatusNotRegistered})
	svc := NewService(repo, staticHasher{})

	if _, err := svc.Create(context.Background(), CreateParams{Email: "lead@example.com", Status: StatusAnonymous}); err != nil {
		t.Fatalf("create should pass over NOT_REGISTERED records: %v", err)
	}
}

func TestServiceRegister_HashesPassword(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, staticHasher{})

	u, err := svc.Register(context.Background(), RegisterParams{Email: "new@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Hash != "hash(secret)" || u.Salt != "salt" {
		t.Fatalf("credentials not hashed: %+v", u)
	}
	if u.Status != StatusActive {
		t.Fatalf("status = %s, want ACTIVE", u.Status)
	}
}

func TestServiceUpdate_ConflictingEmail(t *testing.T) {
	repo := newFakeRepository()
	a := repo.add(&User{Email: "a@example.com", Status: StatusActive})
	repo.add(&User{Email: "b@example.com", Status: StatusActive})
	svc := NewService(repo, staticHasher{})

	email := "b@example.com"
	_, err := svc.Update(context.Background(), a.ID, UpdateParams{Email: &email})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestServiceUpdate_Missing(t *testing.T) {
	svc := NewService(newFakeRepository(), staticHasher{})
	name := "John"
	_, err := svc.Update(context.Background(), "missing", UpdateParams{FirstName: &name})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
