package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/adapters/database"
	"github.com/knotworks/vendorhub/internal/adapters/search"
	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/typesense"
	"github.com/knotworks/vendorhub/internal/infrastructure/observability"
	"github.com/knotworks/vendorhub/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("vendorhub-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("Reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	searchAdapter := search.NewTypesenseAdapter(tsClient)
	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("Deleting vendors collection before reindex")
		if err := searchAdapter.Reset(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to reset collection")
		}
	}
	if err := searchAdapter.InitSchema(ctx); err != nil {
		return err
	}

	vendorRepo := database.NewVendorAdapter(pgClient)
	vendorService := services.NewVendorService(vendorRepo, searchAdapter)

	indexed, err := vendorService.Reindex(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("vendors", indexed).Msg("Vendors indexed")
	return nil
}
