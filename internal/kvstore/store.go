// Package kvstore holds short-lived, process-external key/value state such
// as pending OAuth flows and unconsumed credentials.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or has expired.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is an expiring key/value store shared across processes.
// Values are opaque serialized records.
type Store interface {
	// Set writes value under key. A positive ttl expires the key after ttl;
	// zero or negative stores it without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// GetDel reads and removes key as one atomic operation, so at most one
	// caller observes a given value.
	GetDel(ctx context.Context, key string) ([]byte, error)
}
