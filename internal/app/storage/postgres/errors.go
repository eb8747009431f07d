package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
	"savingsdesk/internal/app/apperr"
)

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// pgCode returns postgres error code of err or empty string
func pgCode(err error) string {
	var pgErr *pg.Error
	if errors.As(err, &pgErr) {
		return string(pgErr.Code)
	}
	return ""
}

// isUniqueViolation reports a duplicate key on the named constraint
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pg.Error
	return errors.As(err, &pgErr) &&
		string(pgErr.Code) == pgerrcode.UniqueViolation &&
		pgErr.Constraint == constraint
}

// IsRetryable reports errors after which the whole transaction may be replayed
func IsRetryable(err error) bool {
	switch pgCode(err) {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}

// classify maps driver errors onto apperr sentinels, keeping the original in the chain
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgCode(err) == pgerrcode.QueryCanceled {
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrUnavailable, err)
	}

	switch code := pgCode(err); {
	case code == pgerrcode.UniqueViolation:
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrConflict, err)
	case pgerrcode.IsIntegrityConstraintViolation(code), pgerrcode.IsDataException(code):
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrInvalidInput, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
