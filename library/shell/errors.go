package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

// ErrIdempotentOperation is a sentinel error to indicate an idempotent operation.
var ErrIdempotentOperation = errors.New("idempotent operation - no state change needed")

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError checks if an error is due to optimistic concurrency control failure.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}
