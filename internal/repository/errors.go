package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence marks a failure of a configured durable backend.
	// Callers decide whether to retry; repositories never do.
	ErrPersistence = errors.New("persistence backend failure")
	ErrNotFound    = errors.New("record not found")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
