package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned by UserRepo.Create when the email uniqueness
// constraint is violated. Callers check this sentinel; the engine error code
// never leaves this package.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNotFound is returned when a statement matched no rows.
var ErrNotFound = errors.New("no rows affected")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
