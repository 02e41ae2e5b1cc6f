package order

import (
	"context"
	"encoding/json"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id::text, user_id::text, items, subtotal, discount, offer_discount, shipping, total, promo_code, delivery_address, status, payment_status, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	addr, err := json.Marshal(o.DeliveryAddress)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	const q = `
INSERT INTO orders (user_id, items, subtotal, discount, offer_discount, shipping, total, promo_code, delivery_address, status, payment_status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + orderColumns
	return scanOrder(r.pool.QueryRow(ctx, q, o.UserID, items, o.Subtotal, o.Discount, o.OfferDiscount,
		o.Shipping, o.Total, o.PromoCode, addr, string(o.Status), string(o.PaymentStatus)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`, string(status))
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, payment domain.PaymentStatus) (*domain.Order, error) {
	const q = `
UPDATE orders SET status = $1, payment_status = $2
WHERE id = $3
RETURNING ` + orderColumns
	return scanOrder(r.pool.QueryRow(ctx, q, string(status), string(payment), id))
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o             domain.Order
		items, addr   []byte
		status, payst string
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &o.Subtotal, &o.Discount, &o.OfferDiscount, &o.Shipping,
		&o.Total, &o.PromoCode, &addr, &status, &payst, &o.CreatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %s items: %w", o.ID, err)
	}
	if err := json.Unmarshal(addr, &o.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("decode order %s address: %w", o.ID, err)
	}
	o.Status = domain.OrderStatus(status)
	o.PaymentStatus = domain.PaymentStatus(payst)
	return &o, nil
}
