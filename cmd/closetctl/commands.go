package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/closetcompare/backend/internal/domain"
	"github.com/closetcompare/backend/internal/infrastructure/cache"
	"github.com/closetcompare/backend/internal/infrastructure/catalog"
	"github.com/closetcompare/backend/internal/infrastructure/sqlite"
	"github.com/closetcompare/backend/internal/usecase"
)

func newChartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "chart <gender> <class>",
		Short:   "Print a size chart",
		Example: "  closetctl chart women shoes",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := usecase.NewSizingService(usecase.SizingServiceConfig{}, a.logger)
			chart, err := svc.Chart(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.print(chart)
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var request domain.ConvertRequest

	cmd := &cobra.Command{
		Use:     "convert <size>",
		Short:   "Convert a size between US, UK and EU",
		Example: "  closetctl convert 9 --from US --to EU --gender men --class shoes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.Size = args[0]
			svc := usecase.NewSizingService(usecase.SizingServiceConfig{}, a.logger)
			result, err := svc.Convert(cmd.Context(), &request)
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}

	cmd.Flags().StringVar(&request.From, "from", "US", "source size system")
	cmd.Flags().StringVar(&request.To, "to", "", "target size system; empty prints the whole row")
	cmd.Flags().StringVar(&request.Gender, "gender", "", "men or women")
	cmd.Flags().StringVar(&request.GarmentClass, "class", "", "shoes, tops, bottoms or dresses")
	_ = cmd.MarkFlagRequired("gender")
	_ = cmd.MarkFlagRequired("class")

	return cmd
}

func newLetterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "letter <numeric>",
		Short: "Map a numeric women's tops size to a letter size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := usecase.NewSizingService(usecase.SizingServiceConfig{}, a.logger)
			result, err := svc.Letter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}
}

func newSyncCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "sync [retailer...]",
		Short: "Import retailer feeds into the product store",
		Long:  "Fetches each retailer's product feed and upserts the listings. Without arguments the configured retailers are synced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			if err := a.cfg.Catalog.RequireAPIKey(); err != nil {
				return err
			}

			retailers := args
			if len(retailers) == 0 {
				retailers = a.cfg.Catalog.Retailers
			}

			store, err := sqlite.Open(a.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			client := catalog.NewClient(catalog.ClientConfig{
				APIKey:            a.cfg.Catalog.APIKey,
				BaseURL:           a.cfg.Catalog.BaseURL,
				Timeout:           a.cfg.Catalog.Timeout,
				RequestsPerSecond: a.cfg.Catalog.RequestsPerSecond,
				Burst:             a.cfg.Catalog.Burst,
			}, a.logger)
			svc := usecase.NewCatalogService(client, store, cache.NopCache{},
				usecase.CatalogServiceConfig{Concurrency: a.cfg.Catalog.Concurrency}, a.logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := svc.Sync(ctx, retailers)
			if err != nil {
				return err
			}
			return a.print(report)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall sync deadline")
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend <product-id>",
		Short: "Rank stored products by similarity to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}

			store, err := sqlite.Open(a.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			// one-shot process: nothing would ever read a cached ranking back
			svc := usecase.NewRecommendationService(store, cache.NopCache{}, usecase.RecommendationConfig{
				PriceBand:          a.cfg.Recommendations.PriceBand,
				DefaultLimit:       a.cfg.Recommendations.DefaultLimit,
				MaxLimit:           a.cfg.Recommendations.MaxLimit,
				CacheTTL:           a.cfg.Cache.TTL,
				EnableDebugLogging: a.cfg.Recommendations.EnableDebugLogging,
			}, a.logger)

			ranked, err := svc.RecommendForProduct(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return a.print(ranked)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results; 0 uses the configured default")
	return cmd
}
