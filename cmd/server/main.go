package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/closetcompare/backend/config"
	httpDelivery "github.com/closetcompare/backend/internal/delivery/http"
	"github.com/closetcompare/backend/internal/infrastructure/cache"
	"github.com/closetcompare/backend/internal/infrastructure/catalog"
	"github.com/closetcompare/backend/internal/infrastructure/sqlite"
	"github.com/closetcompare/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg.Logging)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("starting ClosetCompare backend v1.0.0")

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open product store")
	}
	defer store.Close()

	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()

	sizingService := usecase.NewSizingService(
		usecase.SizingServiceConfig{EnableDebugLogging: cfg.Sizing.EnableDebugLogging},
		logger,
	)
	recommendationService := usecase.NewRecommendationService(
		store,
		memoryCache,
		usecase.RecommendationConfig{
			PriceBand:          cfg.Recommendations.PriceBand,
			DefaultLimit:       cfg.Recommendations.DefaultLimit,
			MaxLimit:           cfg.Recommendations.MaxLimit,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Recommendations.EnableDebugLogging,
		},
		logger,
	)
	productService := usecase.NewProductService(store)

	logger.Info().
		Float64("price_band", cfg.Recommendations.PriceBand).
		Int("default_limit", cfg.Recommendations.DefaultLimit).
		Int("max_limit", cfg.Recommendations.MaxLimit).
		Msg("recommendations configured")

	syncCtx, stopSync := context.WithCancel(context.Background())
	syncDone := startCatalogSync(syncCtx, cfg, store, memoryCache, logger)

	handler := httpDelivery.NewHandler(sizingService, recommendationService, productService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	stopSync()
	<-syncDone
	logger.Info().Msg("bye")
}

// startCatalogSync runs the periodic catalog import when catalog.sync_interval
// is set. The returned channel closes once the loop has exited.
func startCatalogSync(
	ctx context.Context,
	cfg *config.Config,
	store *sqlite.ProductStore,
	memoryCache *cache.MemoryCache,
	logger zerolog.Logger,
) <-chan struct{} {
	done := make(chan struct{})

	if cfg.Catalog.SyncInterval <= 0 {
		close(done)
		return done
	}
	if err := cfg.Catalog.RequireAPIKey(); err != nil {
		logger.Warn().Err(err).Msg("background catalog sync disabled")
		close(done)
		return done
	}
	if len(cfg.Catalog.Retailers) == 0 {
		logger.Warn().Msg("background catalog sync disabled: no retailers configured")
		close(done)
		return done
	}

	client := catalog.NewClient(catalog.ClientConfig{
		APIKey:            cfg.Catalog.APIKey,
		BaseURL:           cfg.Catalog.BaseURL,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
	}, logger)
	svc := usecase.NewCatalogService(client, store, memoryCache,
		usecase.CatalogServiceConfig{Concurrency: cfg.Catalog.Concurrency}, logger)

	logger.Info().
		Strs("retailers", cfg.Catalog.Retailers).
		Dur("interval", cfg.Catalog.SyncInterval).
		Msg("background catalog sync enabled")

	go func() {
		defer close(done)
		svc.Run(ctx, cfg.Catalog.Retailers, cfg.Catalog.SyncInterval)
	}()
	return done
}
