package subscriber

import (
	"context"
	"testing"

	"github.com/denred/online-store-backend/internal/apperr"
)

type fakeRepo struct {
	subs  map[string]*Subscription
	prefs map[string]*Preferences
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: map[string]*Subscription{}, prefs: map[string]*Preferences{}}
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*Subscription, error) {
	s, ok := f.subs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) Create(ctx context.Context, params SubscribeParams) (*Subscription, error) {
	s := &Subscription{ID: "sub-1", Email: params.Email, FirstName: params.FirstName, LastName: params.LastName}
	f.subs[params.Email] = s
	f.prefs[params.Email] = &Preferences{ReceiveNewsletter: true, ProductUpdates: true}
	return s, nil
}

func (f *fakeRepo) Delete(ctx context.Context, email string) (bool, error) {
	if _, ok := f.subs[email]; !ok {
		return false, nil
	}
	delete(f.subs, email)
	delete(f.prefs, email)
	return true, nil
}

func (f *fakeRepo) GetPreferences(ctx context.Context, email string) (*Preferences, error) {
	p, ok := f.prefs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) SetPreferences(ctx context.Context, email string, prefs Preferences) error {
	if _, ok := f.prefs[email]; !ok {
		return ErrNotFound
	}
	f.prefs[email] = &prefs
	return nil
}

func TestSubscribe(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	s, err := svc.Subscribe(context.Background(), SubscribeParams{Email: " Anna@Example.com ", FirstName: "Anna"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if s.Email != "anna@example.com" {
		t.Fatalf("email not normalized: %q", s.Email)
	}

	_, err = svc.Subscribe(context.Background(), SubscribeParams{Email: "anna@example.com"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := svc.Subscribe(context.Background(), SubscribeParams{Email: email}); !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("email %q: expected validation error, got %v", email, err)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	if _, err := svc.Subscribe(context.Background(), SubscribeParams{Email: "anna@example.com"}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "anna@example.com"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "anna@example.com"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second unsubscribe, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	status, err := svc.Status(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != StatusUnsubscribed {
		t.Fatalf("expected UNSUBSCRIBE, got %s", status)
	}

	if _, err := svc.Subscribe(context.Background(), SubscribeParams{Email: "anna@example.com"}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	status, err = svc.Status(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != StatusSubscribed {
		t.Fatalf("expected SUBSCRIBE, got %s", status)
	}
}

func TestSetPreferences(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.SetPreferences(context.Background(), "anna@example.com", Preferences{})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown email, got %v", err)
	}

	if _, err := svc.Subscribe(context.Background(), SubscribeParams{Email: "anna@example.com"}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.SetPreferences(context.Background(), "anna@example.com", Preferences{ReceiveNewsletter: false, ProductUpdates: true}); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}

	prefs, err := svc.Preferences(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs.ReceiveNewsletter || !prefs.ProductUpdates {
		t.Fatalf("preferences not stored: %+v", prefs)
	}
}
