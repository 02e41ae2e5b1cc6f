package contact

import (
	"context"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id::text, name, email, phone, subject, message, status, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	const q = `
INSERT INTO contacts (name, email, phone, subject, message, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + contactColumns
	return scanContact(r.pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Subject, c.Message, string(c.Status)))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE contacts SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return pgerr.Map(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		c      domain.Contact
		status string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &status, &c.CreatedAt); err != nil {
		return nil, pgerr.Map(err)
	}
	c.Status = domain.ContactStatus(status)
	return &c, nil
}
