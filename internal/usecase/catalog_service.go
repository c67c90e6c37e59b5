package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/closetcompare/backend/internal/domain"
)

const defaultSyncConcurrency = 4

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	Concurrency int
}

// CatalogService imports retailer feeds into the product store
type CatalogService struct {
	client      domain.CatalogClient
	products    domain.ProductRepository
	cache       domain.CacheRepository
	concurrency int
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	client domain.CatalogClient,
	products domain.ProductRepository,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
	logger zerolog.Logger,
) *CatalogService {
	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultSyncConcurrency
	}

	return &CatalogService{
		client:      client,
		products:    products,
		cache:       cache,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "catalog").Logger(),
	}
}

// Sync fetches every retailer feed concurrently and upserts the listings.
// The first failing retailer cancels the rest. Cached rankings are evicted
// afterwards, also when the sync fails.
func (s *CatalogService) Sync(ctx context.Context, retailers []string) (*domain.SyncReport, error) {
	if len(retailers) == 0 {
		return nil, fmt.Errorf("%w: no retailers to sync", domain.ErrInvalidRequest)
	}

	results := make([]domain.RetailerSync, len(retailers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, retailer := range retailers {
		g.Go(func() error {
			res, err := s.syncRetailer(gctx, retailer)
			if err != nil {
				return fmt.Errorf("sync %s: %w", retailer, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	if evictErr := s.cache.DeletePrefix(ctx, recommendationKeyPrefix); evictErr != nil {
		s.logger.Warn().Err(evictErr).Msg("failed to evict cached recommendations")
	}
	if err != nil {
		return nil, err
	}

	report := &domain.SyncReport{Retailers: results}
	for _, r := range results {
		report.Imported += r.Imported
		report.Skipped += r.Skipped
	}

	s.logger.Info().
		Int("retailers", len(retailers)).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("catalog sync finished")

	return report, nil
}

// Run syncs retailers now and then every interval until ctx is done.
// A failed round is logged and retried on the next tick.
func (s *CatalogService) Run(ctx context.Context, retailers []string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sync(ctx, retailers); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("scheduled catalog sync failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *CatalogService) syncRetailer(ctx context.Context, retailer string) (domain.RetailerSync, error) {
	res := domain.RetailerSync{Retailer: retailer}

	listings, err := s.client.ListProducts(ctx, retailer)
	if err != nil {
		return res, err
	}

	for _, listing := range listings {
		product, ok := listingToProduct(retailer, listing)
		if !ok {
			s.logger.Debug().Str("retailer", retailer).Str("sku", listing.SKU).
				Str("category", listing.Category).Msg("skipping listing")
			res.Skipped++
			continue
		}
		if err := s.products.Upsert(ctx, product); err != nil {
			return res, err
		}
		res.Imported++
	}

	return res, nil
}

// listingToProduct maps a feed listing onto a product. Listings without a SKU
// or outside the charted garment classes are rejected.
func listingToProduct(retailer string, listing domain.Listing) (*domain.Product, bool) {
	if listing.SKU == "" {
		return nil, false
	}
	class, err := domain.ParseGarmentClass(listing.Category)
	if err != nil {
		return nil, false
	}

	return &domain.Product{
		ID:           retailer + ":" + listing.SKU,
		Name:         strings.TrimSpace(listing.Title),
		Brand:        strings.TrimSpace(listing.Brand),
		GarmentClass: string(class),
		Gender:       strings.ToLower(strings.TrimSpace(listing.Gender)),
		Price:        listing.Price,
		Retailer:     retailer,
		URL:          listing.URL,
	}, true
}
