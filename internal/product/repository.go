package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/denred/online-store-backend/internal/apperr"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Count(ctx context.Context) (int, error)
	FindAll(ctx context.Context, page Page) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, filter Filter, page Page, sort Sort) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	MaxVendorCode(ctx context.Context) (int, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, title, description, category, subcategory, colour,
       price, vendor_code, quantities, quantity, files, created_at, updated_at`

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, page Page) ([]Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	args := []any{}
	if !page.IsZero() {
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Size, offset(page))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("product %s does not exist", id))
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Search(ctx context.Context, filter Filter, page Page, sort Sort) ([]Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Colours) > 0 {
		where = append(where, `colour = ANY(`+arg(filter.Colours)+`)`)
	}
	for _, size := range filter.Sizes {
		// Any stock in one of the requested sizes.
		where = append(where, `coalesce((quantities->>`+arg(string(size))+`)::int, 0) > 0`)
	}
	if pr := filter.PriceRange; pr != nil {
		where = append(where, `price >= `+arg(pr.Min), `price <= `+arg(pr.Max))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}

	switch sort {
	case SortPriceAsc:
		q += ` ORDER BY price ASC`
	case SortPriceDesc:
		q += ` ORDER BY price DESC`
	default:
		q += ` ORDER BY created_at DESC`
	}

	if !page.IsZero() {
		q += ` LIMIT ` + arg(page.Size) + ` OFFSET ` + arg(offset(page))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Quantity = p.Quantities.Total()

	raw, err := json.Marshal(p.Quantities)
	if err != nil {
		return fmt.Errorf("marshal quantities: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO products (id, title, description, category, subcategory, colour,
		                      price, vendor_code, quantities, quantity, files)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Title, p.Description, p.Category, p.Subcategory, p.Colour,
		p.Price, p.VendorCode, raw, p.Quantity, p.Files)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.Category != nil {
		set("category", *params.Category)
	}
	if params.Subcategory != nil {
		set("subcategory", *params.Subcategory)
	}
	if params.Colour != nil {
		set("colour", *params.Colour)
	}
	if params.Price != nil {
		set("price", *params.Price)
	}
	if params.Quantities != nil {
		raw, err := json.Marshal(params.Quantities)
		if err != nil {
			return nil, fmt.Errorf("marshal quantities: %w", err)
		}
		set("quantities", raw)
		set("quantity", params.Quantities.Total())
	}
	if params.Files != nil {
		set("files", params.Files)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at=now()")
	args = append(args, id)
	q := `UPDATE products SET ` + strings.Join(sets, ", ") + fmt.Sprintf(` WHERE id=$%d`, len(args))

	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("product %s does not exist", id))
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) MaxVendorCode(ctx context.Context) (int, error) {
	var code int
	err := r.pool.QueryRow(ctx, `SELECT coalesce(max(vendor_code), 0) FROM products`).Scan(&code)
	if err != nil {
		return 0, fmt.Errorf("select max vendor code: %w", err)
	}
	return code, nil
}

func offset(page Page) int {
	p := page.Page - 1
	if p < 0 {
		p = 0
	}
	return p * page.Size
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p   Product
		raw []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Subcategory, &p.Colour,
		&p.Price, &p.VendorCode, &raw, &p.Quantity, &p.Files, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Quantities); err != nil {
		return nil, fmt.Errorf("unmarshal quantities: %w", err)
	}
	return &p, nil
}
