package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// nextOrderNumber bumps the single-row sequence inside the caller's
// transaction. LAST_INSERT_ID(expr) makes the increment atomic and
// connection-local, so concurrent checkouts can never read the same value.
func nextOrderNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE order_seq SET next_val = LAST_INSERT_ID(next_val + 1) WHERE id = 1`)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAllocation, err)
	}
	rows, err := res.RowsAffected()
	if err != nil || rows == 0 {
		return "", fmt.Errorf("%w: sequence row missing", domain.ErrAllocation)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAllocation, err)
	}
	return domain.FormatOrderNumber(seq), nil
}

// Create allocates the order number and persists the order with its items in
// one transaction. A failure at any step leaves nothing behind.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	number, err := nextOrderNumber(ctx, tx)
	if err != nil {
		return err
	}
	o.Number = number

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (id,order_number,customer_id,delivery_address_id,payment_method,shipping_cents,total_cents,status,created_at)
VALUES (?,?,?,?,?,?,?,?,?)
`, o.ID, o.Number, o.CustomerID, o.DeliveryAddressID, o.PaymentMethod, o.ShippingCents, o.TotalCents, o.Status, o.CreatedAt)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (order_id,product_id,quantity,unit_price_cents)
VALUES (?,?,?,?)
`, o.ID, it.ProductID, it.Quantity, it.UnitPriceCents)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,order_number,customer_id,delivery_address_id,payment_method,shipping_cents,total_cents,status,created_at
FROM orders WHERE order_number=?`, number)

	var o domain.Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.DeliveryAddressID,
		&o.PaymentMethod, &o.ShippingCents, &o.TotalCents, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT product_id,quantity,unit_price_cents
FROM order_items WHERE order_id=? ORDER BY id`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

const orderSummaryCols = `
SELECT id,order_number,customer_id,delivery_address_id,payment_method,shipping_cents,total_cents,status,created_at
FROM orders`

func (r *MySQLOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		orderSummaryCols+` WHERE customer_id=? ORDER BY created_at DESC, order_number DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *MySQLOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		orderSummaryCols+` ORDER BY created_at DESC, order_number DESC`)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &o.DeliveryAddressID,
			&o.PaymentMethod, &o.ShippingCents, &o.TotalCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatusIf overwrites the status only when it still matches from.
// rows == 0 means the order is gone or was moved concurrently; the caller
// distinguishes the two.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, number string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ? WHERE order_number = ? AND status = ?`,
		to, number, from)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
