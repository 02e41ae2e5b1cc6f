package user

import (
	"context"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id::text, phone, name, email, photo_url, is_admin, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetOrCreateByPhone(ctx context.Context, phone string, isAdmin bool) (*domain.User, error) {
	// the no-op update makes RETURNING yield the existing row on conflict
	const q = `
INSERT INTO users (phone, is_admin)
VALUES ($1, $2)
ON CONFLICT (phone) DO UPDATE SET phone = users.phone
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, phone, isAdmin))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
UPDATE users SET name = $1, email = $2
WHERE id = $3
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, u.Name, u.Email, u.ID))
}

func (r *postgresRepo) SetPhotoURL(ctx context.Context, id, url string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET photo_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Email, &u.PhotoURL, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, pgerr.Map(err)
	}
	return &u, nil
}
