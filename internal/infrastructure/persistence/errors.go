package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL error codes that mean "run the transaction again".
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// translateNotFound maps gorm.ErrRecordNotFound to shared.ErrNotFound with a message
func translateNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound.WithMessage("%s", message)
	}
	return err
}

// isDuplicateKey reports a unique constraint violation from any driver
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsRetryable reports whether a failed transaction may succeed when re-run:
// optimistic version conflicts, serialization failures and deadlocks.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
