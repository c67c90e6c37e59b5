package cache

import (
	"context"
	"time"

	"github.com/closetcompare/backend/internal/domain"
)

// NopCache stores nothing. Every Get is a miss.
type NopCache struct{}

// Get always reports a miss
func (NopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return domain.ErrCacheMiss
}

// Set discards the value
func (NopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

// DeletePrefix is a no-op
func (NopCache) DeletePrefix(ctx context.Context, prefix string) error {
	return nil
}
