package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for an unknown payload id.
var ErrNotFound = errors.New("payload not found")

// PayloadRepository defines the interface for the id-keyed payload
// blob store. Entries are immutable once created; there is no update
// or delete in the serving path.
type PayloadRepository interface {
	// Put stores a raw payload document and returns its generated id
	Put(ctx context.Context, body []byte) (string, error)

	// Get retrieves a stored payload by id, ErrNotFound if unknown
	Get(ctx context.Context, id string) ([]byte, error)

	// Prune removes entries created before the given time and returns
	// how many were removed. Operational cleanup only.
	Prune(ctx context.Context, before time.Time) (int, error)

	// Close releases the underlying storage
	Close() error
}
