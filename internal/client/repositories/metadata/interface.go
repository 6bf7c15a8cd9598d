// Package metadata is the local key-value table the client keeps its
// session in.
package metadata

import (
	"context"
)

// Repository is a string key-value store. Get returns ("", false, nil) for
// a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Repository = (*SQLiteRepository)(nil)
