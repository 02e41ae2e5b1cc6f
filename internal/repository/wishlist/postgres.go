package wishlist

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, userID string) ([]string, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT product_ids FROM wishlists WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeIDs(raw)
}

func (r *postgresRepo) Add(ctx context.Context, userID, productID string) ([]string, error) {
	elem, err := json.Marshal([]string{productID})
	if err != nil {
		return nil, err
	}
	var raw []byte
	err = r.pool.QueryRow(ctx, `
INSERT INTO wishlists (user_id, product_ids)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET product_ids = CASE
    WHEN wishlists.product_ids @> EXCLUDED.product_ids THEN wishlists.product_ids
    ELSE wishlists.product_ids || EXCLUDED.product_ids
END
RETURNING product_ids
`, userID, elem).Scan(&raw)
	if err != nil {
		return nil, err
	}
	return decodeIDs(raw)
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
UPDATE wishlists SET product_ids = product_ids - $2::text
WHERE user_id = $1
RETURNING product_ids
`, userID, productID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeIDs(raw)
}

func decodeIDs(raw []byte) ([]string, error) {
	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
