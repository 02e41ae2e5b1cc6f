package otp

import (
	"context"

	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Put(ctx context.Context, c Code) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO otp_codes (phone, code_hash, attempts, expires_at)
VALUES ($1, $2, 0, $3)
ON CONFLICT (phone) DO UPDATE SET code_hash = EXCLUDED.code_hash, attempts = 0, expires_at = EXCLUDED.expires_at, created_at = now()
`, c.Phone, c.CodeHash, c.ExpiresAt)
	return err
}

func (r *postgresRepo) Get(ctx context.Context, phone string) (*Code, error) {
	var c Code
	err := r.pool.QueryRow(ctx, `SELECT phone, code_hash, attempts, expires_at FROM otp_codes WHERE phone = $1`, phone).
		Scan(&c.Phone, &c.CodeHash, &c.Attempts, &c.ExpiresAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return &c, nil
}

func (r *postgresRepo) IncrementAttempts(ctx context.Context, phone string) error {
	_, err := r.pool.Exec(ctx, `UPDATE otp_codes SET attempts = attempts + 1 WHERE phone = $1`, phone)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, phone string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM otp_codes WHERE phone = $1`, phone)
	return err
}
