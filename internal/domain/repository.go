package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored as JSON; Get decodes into dest.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// CatalogClient defines the interface for fetching retailer product feeds
type CatalogClient interface {
	ListProducts(ctx context.Context, retailer string) ([]Listing, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	ListCandidates(ctx context.Context, excludeID string) ([]Product, error)
	Upsert(ctx context.Context, product *Product) error
	PriceHistory(ctx context.Context, id string) ([]PricePoint, error)
}
