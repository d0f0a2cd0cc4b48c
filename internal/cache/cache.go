// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Store is the cache abstraction injected into the entitlement resolver.
// Implementations must be safe for concurrent use. Entries are invalidated
// explicitly on any seat or subscription write affecting the cached user.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// NoOp is a Store that caches nothing. Used in tests and when caching is
// disabled so the resolver recomputes on every call.
type NoOp struct{}

func (NoOp) Get(ctx context.Context, key string, result any) (bool, error) {
	return false, nil
}

func (NoOp) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (NoOp) Invalidate(ctx context.Context, key string) error {
	return nil
}
