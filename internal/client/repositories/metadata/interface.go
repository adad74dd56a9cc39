// Package metadata is the console's persisted key-value blob store. The
// session lives here under common.AuthBlobKey.
package metadata

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when a blank key is passed to Set.
var ErrEmptyKey = errors.New("metadata key must not be empty")

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
