package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/denred/online-store-backend/internal/apperr"
	"github.com/denred/online-store-backend/internal/product"
)

const notFoundMessage = "Order with such id does not exist!"

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository interface {
	CreateOrder(ctx context.Context, payload CreatePayload) (*Order, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateOrder(ctx context.Context, payload UpdatePayload) (*Order, error)
	DeleteOrder(ctx context.Context, orderID string) (bool, error)
}

// PostgresRepository keeps product stock consistent with live order items.
// Every mutation locks the touched product rows and runs in one transaction,
// so concurrent checkouts against the same product serialize on the row lock
// instead of racing the availability check.
type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, payload CreatePayload) (*Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	o := &Order{
		ID:         uuid.NewString(),
		UserID:     payload.UserID,
		TotalPrice: payload.TotalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.UserID, o.TotalPrice, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, in := range payload.Items {
		if err := adjustProductQuantity(ctx, tx, in, nil, false); err != nil {
			return nil, err
		}

		item, err := insertItem(ctx, tx, o.ID, in)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, payment_id, total_price, created_at, updated_at
		FROM orders WHERE id=$1
	`, orderID).Scan(&o.ID, &o.UserID, &o.PaymentID, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	o.Items, err = queryItems(ctx, r.pool, orderID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, payment_id, total_price, created_at, updated_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.PaymentID, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		orders[i].Items, err = queryItems(ctx, r.pool, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrder replaces the order's items and applies the signed per-size
// delta between old and new reservations to product stock.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, payload UpdatePayload) (*Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &Order{ID: payload.OrderID, UserID: payload.UserID, TotalPrice: payload.TotalPrice}
	err = tx.QueryRow(ctx, `
		SELECT payment_id, created_at FROM orders WHERE id=$1 FOR UPDATE
	`, payload.OrderID).Scan(&o.PaymentID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	existingItems, err := queryItems(ctx, tx, payload.OrderID)
	if err != nil {
		return nil, err
	}

	o.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(ctx, `
		UPDATE orders SET total_price=$2, updated_at=$3 WHERE id=$1
	`, o.ID, o.TotalPrice, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return nil, fmt.Errorf("delete order items: %w", err)
	}

	for _, in := range payload.Items {
		existing := existingQuantitiesFor(in.ProductID, existingItems)
		if err := adjustProductQuantity(ctx, tx, in, existing, false); err != nil {
			return nil, err
		}

		item, err := insertItem(ctx, tx, o.ID, in)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}

// DeleteOrder releases every reserved quantity back into product stock, then
// removes the items and the order.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, orderID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists string
	err = tx.QueryRow(ctx, `SELECT id FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperr.NotFound(notFoundMessage)
		}
		return false, fmt.Errorf("select order: %w", err)
	}

	items, err := queryItems(ctx, tx, orderID)
	if err != nil {
		return false, err
	}

	for _, it := range items {
		in := ItemInput{ProductID: it.ProductID, Quantities: it.Quantities}
		if err := adjustProductQuantity(ctx, tx, in, nil, true); err != nil {
			return false, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, orderID); err != nil {
		return false, fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, orderID); err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// adjustProductQuantity locks the product row, checks availability against
// the item's existing reservation, and writes the adjusted per-size stock
// plus the derived scalar. With release set, the check is skipped and the
// quantities are added back.
func adjustProductQuantity(ctx context.Context, tx pgx.Tx, item ItemInput, existing product.Quantities, release bool) error {
	var raw []byte
	err := tx.QueryRow(ctx, `SELECT quantities FROM products WHERE id=$1 FOR UPDATE`, item.ProductID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(fmt.Sprintf("product %s does not exist", item.ProductID))
		}
		return fmt.Errorf("lock product: %w", err)
	}

	var productQ product.Quantities
	if err := json.Unmarshal(raw, &productQ); err != nil {
		return fmt.Errorf("unmarshal product quantities: %w", err)
	}
	if productQ == nil {
		productQ = product.Quantities{}
	}

	orderQ := item.Quantities
	if release {
		orderQ = NegativeValues(orderQ)
		existing = nil
	} else if !IsProductAvailable(productQ, orderQ, existing) {
		return apperr.Forbidden(fmt.Sprintf("insufficient quantity for product %s", item.ProductID))
	}

	updated := ActualQuantities(productQ, orderQ, existing)
	rawUpdated, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshal product quantities: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE products SET quantities=$2, quantity=$3, updated_at=now() WHERE id=$1
	`, item.ProductID, rawUpdated, updated.Total())
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, tx pgx.Tx, orderID string, in ItemInput) (Item, error) {
	item := Item{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		ProductID:  in.ProductID,
		Quantities: in.Quantities,
		Quantity:   in.Quantities.Total(),
		Price:      in.Price,
	}

	raw, err := json.Marshal(item.Quantities)
	if err != nil {
		return Item{}, fmt.Errorf("marshal item quantities: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantities, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.OrderID, item.ProductID, raw, item.Quantity, item.Price)
	if err != nil {
		return Item{}, fmt.Errorf("insert order item: %w", err)
	}
	return item, nil
}

func queryItems(ctx context.Context, q querier, orderID string) ([]Item, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, quantities, quantity, price
		FROM order_items WHERE order_id=$1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it  Item
			raw []byte
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &raw, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if err := json.Unmarshal(raw, &it.Quantities); err != nil {
			return nil, fmt.Errorf("unmarshal item quantities: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
