package types

import (
	"context"
	"time"
)

// Cache is the small cache surface the auth path needs. The production
// implementation is redis; tests use miniredis or a map.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, expire time.Duration) error
	Del(ctx context.Context, key string) error
}
