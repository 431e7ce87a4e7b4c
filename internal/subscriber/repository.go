package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no subscription exists for the email.
var ErrNotFound = errors.New("subscription not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Subscription, error)
	Create(ctx context.Context, params SubscribeParams) (*Subscription, error)
	Delete(ctx context.Context, email string) (bool, error)
	GetPreferences(ctx context.Context, email string) (*Preferences, error)
	SetPreferences(ctx context.Context, email string, prefs Preferences) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Subscription, error) {
	var s Subscription
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, created_at
		FROM subscriptions WHERE email=$1
	`, email).Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select subscription: %w", err)
	}
	return &s, nil
}

// Create inserts the subscription together with default preferences.
func (r *PostgresRepository) Create(ctx context.Context, params SubscribeParams) (*Subscription, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := &Subscription{
		ID:        uuid.NewString(),
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO subscriptions (id, email, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.Email, s.FirstName, s.LastName, s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO preferences (id, subscription_id, receive_newsletter, product_updates)
		VALUES ($1, $2, TRUE, TRUE)
	`, uuid.NewString(), s.ID)
	if err != nil {
		return nil, fmt.Errorf("insert preferences: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE email=$1`, email)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) GetPreferences(ctx context.Context, email string) (*Preferences, error) {
	var p Preferences
	err := r.pool.QueryRow(ctx, `
		SELECT p.receive_newsletter, p.product_updates
		FROM preferences p JOIN subscriptions s ON s.id = p.subscription_id
		WHERE s.email=$1
	`, email).Scan(&p.ReceiveNewsletter, &p.ProductUpdates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select preferences: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) SetPreferences(ctx context.Context, email string, prefs Preferences) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE preferences SET receive_newsletter=$2, product_updates=$3
		WHERE subscription_id = (SELECT id FROM subscriptions WHERE email=$1)
	`, email, prefs.ReceiveNewsletter, prefs.ProductUpdates)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
