package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT items FROM carts WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	items := []domain.CartLine{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	return items, nil
}

func (r *postgresRepo) Put(ctx context.Context, userID string, items []domain.CartLine) error {
	if items == nil {
		items = []domain.CartLine{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", userID, err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO carts (user_id, items, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
`, userID, raw)
	return err
}
