package coupon

import (
	"context"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const couponColumns = `id::text, code, type, discount, label, min_order, active, expires_at, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (code, type, discount, label, min_order, active, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, q, c.Code, string(c.Type), c.Discount, c.Label, c.MinOrder, c.Active, c.ExpiresAt))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
UPDATE coupons SET code = $1, type = $2, discount = $3, label = $4, min_order = $5, active = $6, expires_at = $7
WHERE id = $8
RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, q, c.Code, string(c.Type), c.Discount, c.Label, c.MinOrder, c.Active, c.ExpiresAt, c.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var (
		c   domain.Coupon
		typ string
	)
	err := row.Scan(&c.ID, &c.Code, &typ, &c.Discount, &c.Label, &c.MinOrder, &c.Active, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	c.Type = domain.PromoType(typ)
	return &c, nil
}
