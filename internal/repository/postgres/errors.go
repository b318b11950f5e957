package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"queenzz/internal/domain"
)

// SQLSTATE codes the repositories react to
const (
	codeUndefinedTable       = "42P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// ErrSchemaMissing means the tables were never created
var ErrSchemaMissing = errors.New("database schema missing, run the seed command with -schema-only")

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapError prefixes err with op and maps the driver errors that callers can
// act on. pgx.ErrNoRows must be handled before calling it.
func wrapError(op string, err error) error {
	switch pgCode(err) {
	case codeUndefinedTable:
		return fmt.Errorf("%s: %w", op, ErrSchemaMissing)
	case codeSerializationFailure, codeDeadlockDetected:
		return &domain.ConflictError{
			Message:      fmt.Sprintf("%s: concurrent write, retry the request", op),
			ResourceType: "library",
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
