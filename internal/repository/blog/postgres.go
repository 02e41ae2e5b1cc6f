package blog

import (
	"context"
	"encoding/json"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id::text, slug, title, excerpt, content, feature_image, tags, published, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE (NOT $1 OR published) ORDER BY created_at DESC`, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = $1`, slug))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

func (r *postgresRepo) Create(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO blog_posts (slug, title, excerpt, content, feature_image, tags, published)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + postColumns
	return scanPost(r.pool.QueryRow(ctx, q, p.Slug, p.Title, p.Excerpt, p.Content, p.FeatureImage, tags, p.Published))
}

func (r *postgresRepo) Update(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE blog_posts SET slug = $1, title = $2, excerpt = $3, content = $4, feature_image = $5, tags = $6, published = $7
WHERE id = $8
RETURNING ` + postColumns
	return scanPost(r.pool.QueryRow(ctx, q, p.Slug, p.Title, p.Excerpt, p.Content, p.FeatureImage, tags, p.Published, p.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

func scanPost(row pgx.Row) (*domain.BlogPost, error) {
	var (
		p    domain.BlogPost
		tags []byte
	)
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.FeatureImage, &tags, &p.Published, &p.CreatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode post %s tags: %w", p.ID, err)
	}
	return &p, nil
}
