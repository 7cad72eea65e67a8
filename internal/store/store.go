// Package store resolves scan identifiers to stored scan results.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no scan result is stored under an identifier.
var ErrNotFound = errors.New("scan result not found")

// Store holds JSON-encoded scan results keyed by scan identifier.
type Store interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, data []byte) error
}
