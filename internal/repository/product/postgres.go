package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const productColumns = `id::text, title, description, category, brand, material, tags, sizes, images, price, stock, offer, popularity, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
		} else {
			r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	args, err := productArgs(p)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (title, description, category, brand, material, tags, sizes, images, price, stock, offer, popularity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		r.logger.Error("product repo: create", zap.String("title", p.Title), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: created", zap.String("id", out.ID), zap.String("title", out.Title))
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	args, err := productArgs(p)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE products SET
    title = $1, description = $2, category = $3, brand = $4, material = $5,
    tags = $6, sizes = $7, images = $8, price = $9, stock = $10, offer = $11, popularity = $12
WHERE id = $13
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, append(args, p.ID)...))
	if err != nil {
		r.logger.Error("product repo: update", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	args, err := productArgs(p)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (title, description, category, brand, material, tags, sizes, images, price, stock, offer, popularity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (title, brand) DO UPDATE SET
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    material = EXCLUDED.material,
    tags = EXCLUDED.tags,
    sizes = EXCLUDED.sizes,
    images = EXCLUDED.images,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock,
    offer = EXCLUDED.offer
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("title", p.Title), zap.String("brand", p.Brand), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: upserted", zap.String("id", out.ID), zap.String("title", out.Title))
	return out, nil
}

func (r *postgresRepo) IncrementPopularity(ctx context.Context, id string, by int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET popularity = popularity + $1 WHERE id = $2`, by, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productArgs(p domain.Product) ([]any, error) {
	tags, err := marshalList(p.Tags)
	if err != nil {
		return nil, err
	}
	sizes, err := marshalList(p.Sizes)
	if err != nil {
		return nil, err
	}
	images, err := marshalList(p.Images)
	if err != nil {
		return nil, err
	}
	var offer []byte
	if p.Offer != nil {
		if offer, err = json.Marshal(p.Offer); err != nil {
			return nil, fmt.Errorf("encode offer: %w", err)
		}
	}
	return []any{p.Title, p.Description, p.Category, p.Brand, p.Material, tags, sizes, images, p.Price, p.Stock, offer, p.Popularity}, nil
}

func marshalList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p                         domain.Product
		tags, sizes, images, offr []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Brand, &p.Material,
		&tags, &sizes, &images, &p.Price, &p.Stock, &offr, &p.Popularity, &p.CreatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	for _, f := range []struct {
		raw []byte
		dst *[]string
	}{{tags, &p.Tags}, {sizes, &p.Sizes}, {images, &p.Images}} {
		if len(f.raw) > 0 {
			if err := json.Unmarshal(f.raw, f.dst); err != nil {
				return nil, fmt.Errorf("decode product %s: %w", p.ID, err)
			}
		}
	}
	if len(offr) > 0 {
		var o domain.Offer
		if err := json.Unmarshal(offr, &o); err != nil {
			return nil, fmt.Errorf("decode offer %s: %w", p.ID, err)
		}
		p.Offer = &o
	}
	return &p, nil
}
