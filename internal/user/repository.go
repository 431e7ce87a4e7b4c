package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned for lookups of users that do not exist. The service
// translates it into the client-facing error.
var ErrNotFound = errors.New("user not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error)
	Create(ctx context.Context, params CreateParams) (*User, error)
	Update(ctx context.Context, id string, params UpdateParams) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `id, email, phone, first_name, last_name, hash, salt, status, role, created_at, updated_at`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, address, more_info, zip_code, city, state, country
		FROM addresses WHERE user_id=$1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Address, &a.MoreInfo, &a.ZipCode, &a.City, &a.State, &a.Country); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		u.Addresses = append(u.Addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return u, nil
}

// FindByEmailOrPhone returns the first user matching a non-empty email or
// phone, or ErrNotFound.
func (r *PostgresRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error) {
	if email == "" && phone == "" {
		return nil, ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE (email=$1 AND $1 <> '') OR (phone=$2 AND $2 <> '')
		LIMIT 1
	`, email, phone)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email or phone: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

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

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, phone, first_name, last_name, hash, salt, status, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.Email, u.Phone, u.FirstName, u.LastName, u.Hash, u.Salt, u.Status, u.Role)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	for _, in := range params.Addresses {
		a := Address{
			ID:       uuid.NewString(),
			UserID:   u.ID,
			Address:  in.Address,
			MoreInfo: in.MoreInfo,
			ZipCode:  in.ZipCode,
			City:     in.City,
			State:    in.State,
			Country:  in.Country,
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO addresses (id, user_id, address, more_info, zip_code, city, state, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.UserID, a.Address, a.MoreInfo, a.ZipCode, a.City, a.State, a.Country)
		if err != nil {
			return nil, fmt.Errorf("insert address: %w", err)
		}
		u.Addresses = append(u.Addresses, a)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if params.Email != nil {
		set("email", *params.Email)
	}
	if params.Phone != nil {
		set("phone", *params.Phone)
	}
	if params.FirstName != nil {
		set("first_name", *params.FirstName)
	}
	if params.LastName != nil {
		set("last_name", *params.LastName)
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at=now()")
		args = append(args, id)
		q := `UPDATE users SET ` + strings.Join(sets, ", ") + fmt.Sprintf(` WHERE id=$%d`, len(args))

		tag, err := tx.Exec(ctx, q, args...)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrNotFound
		}
	}

	if params.Addresses != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE user_id=$1`, id); err != nil {
			return nil, fmt.Errorf("delete addresses: %w", err)
		}
		for _, in := range params.Addresses {
			_, err = tx.Exec(ctx, `
				INSERT INTO addresses (id, user_id, address, more_info, zip_code, city, state, country)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, uuid.NewString(), id, in.Address, in.MoreInfo, in.ZipCode, in.City, in.State, in.Country)
			if err != nil {
				return nil, fmt.Errorf("insert address: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE user_id=$1`, id); err != nil {
		return false, fmt.Errorf("delete addresses: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.FirstName, &u.LastName,
		&u.Hash, &u.Salt, &u.Status, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
