package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetcompare/backend/internal/domain"
	"github.com/closetcompare/backend/internal/infrastructure/sqlite"
)

func newTestCatalogService(client domain.CatalogClient, repo domain.ProductRepository, cache *MockCacheRepository) *CatalogService {
	return NewCatalogService(client, repo, cache, CatalogServiceConfig{Concurrency: 2}, zerolog.Nop())
}

func TestCatalogService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("imports listings and reports per retailer", func(t *testing.T) {
		client := NewMockCatalogClient()
		client.listings["north"] = []domain.Listing{
			{SKU: "1", Title: " Runner ", Brand: "Acme", Category: "Shoes", Gender: "MEN", Price: 80},
			{SKU: "2", Title: "Scarf", Brand: "Acme", Category: "accessories", Price: 15},
		}
		client.listings["south"] = []domain.Listing{
			{SKU: "9", Title: "Jeans", Brand: "Denimco", Category: "bottoms", Gender: "women", Price: 60},
			{Title: "no sku", Category: "tops"},
		}
		repo := NewMockProductRepository()
		svc := newTestCatalogService(client, repo, NewMockCacheRepository())

		report, err := svc.Sync(ctx, []string{"north", "south"})
		require.NoError(t, err)

		want := &domain.SyncReport{
			Retailers: []domain.RetailerSync{
				{Retailer: "north", Imported: 1, Skipped: 1},
				{Retailer: "south", Imported: 1, Skipped: 1},
			},
			Imported: 2,
			Skipped:  2,
		}
		if diff := cmp.Diff(want, report); diff != "" {
			t.Errorf("Sync() mismatch (-want +got):\n%s", diff)
		}

		p, err := repo.GetByID(ctx, "north:1")
		require.NoError(t, err)
		assert.Equal(t, "Runner", p.Name)
		assert.Equal(t, "shoes", p.GarmentClass)
		assert.Equal(t, "men", p.Gender)
		assert.Equal(t, "north", p.Retailer)
	})

	t.Run("no retailers", func(t *testing.T) {
		svc := newTestCatalogService(NewMockCatalogClient(), NewMockProductRepository(), NewMockCacheRepository())
		_, err := svc.Sync(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("feed failure aborts the sync", func(t *testing.T) {
		client := NewMockCatalogClient()
		client.errors["broken"] = domain.ErrCatalogAPIFailure
		svc := newTestCatalogService(client, NewMockProductRepository(), NewMockCacheRepository())

		_, err := svc.Sync(ctx, []string{"ok", "broken"})
		assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
		assert.Contains(t, err.Error(), "sync broken")
	})

	t.Run("store failure aborts the sync", func(t *testing.T) {
		client := NewMockCatalogClient()
		client.listings["north"] = []domain.Listing{{SKU: "1", Category: "tops"}}
		repo := NewMockProductRepository()
		repo.upsertErr = domain.ErrInvalidRequest
		svc := newTestCatalogService(client, repo, NewMockCacheRepository())

		_, err := svc.Sync(ctx, []string{"north"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestCatalogService_Sync_EvictsCachedRecommendations(t *testing.T) {
	ctx := context.Background()
	repo := NewMockProductRepository(
		domain.Product{ID: "north:1", Brand: "Acme", GarmentClass: "shoes", Gender: "men", Price: 80},
		domain.Product{ID: "north:2", Brand: "Acme", GarmentClass: "shoes", Gender: "men", Price: 90},
	)
	cache := NewMockCacheRepository()
	recommender := newTestRecommendationService(repo, cache)

	before, err := recommender.RecommendForProduct(ctx, "north:1", 0)
	require.NoError(t, err)
	require.Equal(t, 5, before[0].Score)

	// the candidate's price moves out of the band
	client := NewMockCatalogClient()
	client.listings["north"] = []domain.Listing{
		{SKU: "2", Title: "Trail", Brand: "Acme", Category: "shoes", Gender: "men", Price: 400},
	}
	_, err = newTestCatalogService(client, repo, cache).Sync(ctx, []string{"north"})
	require.NoError(t, err)
	assert.Equal(t, []string{recommendationKeyPrefix}, cache.deletedPrefixes)

	after, err := recommender.RecommendForProduct(ctx, "north:1", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, after[0].Score)
	assert.Equal(t, 400.0, after[0].Item.Price)
}

func TestCatalogService_Sync_EvictsOnFailure(t *testing.T) {
	client := NewMockCatalogClient()
	client.errors["broken"] = domain.ErrCatalogAPIFailure
	cache := NewMockCacheRepository()

	_, err := newTestCatalogService(client, NewMockProductRepository(), cache).
		Sync(context.Background(), []string{"broken"})
	require.Error(t, err)
	assert.Equal(t, []string{recommendationKeyPrefix}, cache.deletedPrefixes)
}

func TestCatalogService_Sync_SQLiteStore(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	const listingsPerRetailer = 200
	retailers := []string{"a", "b", "c", "d"}

	client := NewMockCatalogClient()
	for _, r := range retailers {
		for i := 0; i < listingsPerRetailer; i++ {
			client.listings[r] = append(client.listings[r], domain.Listing{
				SKU:      fmt.Sprint(i),
				Title:    "item",
				Brand:    "Acme",
				Category: "tops",
				Price:    float64(i),
			})
		}
	}

	svc := NewCatalogService(client, store, NewMockCacheRepository(), CatalogServiceConfig{}, zerolog.Nop())
	report, err := svc.Sync(context.Background(), retailers)
	require.NoError(t, err)
	assert.Equal(t, len(retailers)*listingsPerRetailer, report.Imported)

	products, err := store.ListCandidates(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, products, len(retailers)*listingsPerRetailer)
}

// countingClient cancels the run after the given number of fetches
type countingClient struct {
	calls  atomic.Int32
	stopAt int32
	cancel context.CancelFunc
}

func (c *countingClient) ListProducts(ctx context.Context, retailer string) ([]domain.Listing, error) {
	if c.calls.Add(1) >= c.stopAt {
		c.cancel()
	}
	return nil, nil
}

func TestCatalogService_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &countingClient{stopAt: 3, cancel: cancel}
	svc := NewCatalogService(client, NewMockProductRepository(), NewMockCacheRepository(), CatalogServiceConfig{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		svc.Run(ctx, []string{"north"}, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, client.calls.Load(), int32(3))
}

func TestNewCatalogService_DefaultConcurrency(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil, CatalogServiceConfig{Concurrency: -1}, zerolog.Nop())
	assert.Equal(t, defaultSyncConcurrency, svc.concurrency)
}
