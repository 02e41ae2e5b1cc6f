package settings

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

func (r *postgresRepo) GetBanner(ctx context.Context) (*domain.Banner, error) {
	var b domain.Banner
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT value, updated_at FROM settings WHERE key = $1`, BannerKey).Scan(&raw, &b.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	if err := json.Unmarshal(raw, &b.Slides); err != nil {
		return nil, fmt.Errorf("decode banner: %w", err)
	}
	return &b, nil
}

func (r *postgresRepo) PutBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error) {
	slides := b.Slides
	if slides == nil {
		slides = []domain.BannerSlide{}
	}
	raw, err := json.Marshal(slides)
	if err != nil {
		return nil, fmt.Errorf("encode banner: %w", err)
	}
	out := domain.Banner{Slides: slides}
	err = r.pool.QueryRow(ctx, `
INSERT INTO settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
RETURNING updated_at
`, BannerKey, raw).Scan(&out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
