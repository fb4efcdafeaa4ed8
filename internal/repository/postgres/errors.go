// internal/repository/postgres/errors.go
package postgres

import (
	"errors"

	"github.com/lib/pq"

	"bannerearn-wallet/internal/util"
)

// PostgreSQL error codes translated into application errors.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// translateError maps driver errors onto the util error taxonomy, wrapping the original.
// Anything without a more specific mapping is reported as a persistence failure.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return errors.Join(util.ErrDuplicateEntry, err)
		case codeSerializationFailure, codeDeadlockDetected:
			return errors.Join(util.ErrConcurrentUpdate, err)
		}
	}
	return errors.Join(util.ErrPersistence, err)
}
