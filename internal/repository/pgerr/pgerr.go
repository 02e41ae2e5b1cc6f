// Package pgerr maps Postgres driver errors onto the domain sentinels.
package pgerr

import (
	"errors"

	"fashion-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"
	// invalidTextRepresentation is raised when a malformed id is compared
	// against a uuid column. Such an id names no row.
	invalidTextRepresentation = "22P02"
)

// Map translates err: no rows and malformed ids become domain.ErrNotFound,
// unique violations become domain.ErrAlreadyExists. Other errors pass
// through unchanged.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return domain.ErrAlreadyExists
		case invalidTextRepresentation:
			return domain.ErrNotFound
		}
	}
	return err
}
