package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/adapters/cache"
	"github.com/knotworks/vendorhub/internal/adapters/database"
	"github.com/knotworks/vendorhub/internal/adapters/events"
	"github.com/knotworks/vendorhub/internal/adapters/search"
	"github.com/knotworks/vendorhub/internal/api/handlers"
	"github.com/knotworks/vendorhub/internal/api/middleware"
	"github.com/knotworks/vendorhub/internal/api/routes"
	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/domain/providers"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/redis"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/typesense"
	"github.com/knotworks/vendorhub/internal/infrastructure/mail"
	"github.com/knotworks/vendorhub/internal/infrastructure/observability"
	"github.com/knotworks/vendorhub/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; the API works without caching or events.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized")
	}

	// Typesense is optional; without it vendor writes skip indexing.
	var searchRepo repositories.VendorSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Typesense client, continuing without search index")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Adapters
	baseVendorAdapter := database.NewVendorAdapter(pgClient)
	var vendorRepo repositories.VendorRepository
	if cacheProvider != nil {
		vendorRepo = database.NewCachedVendorAdapter(baseVendorAdapter, cacheProvider)
		log.Info().Msg("Vendor adapter wrapped with caching layer")
	} else {
		vendorRepo = baseVendorAdapter
		log.Warn().Msg("Vendor adapter running without cache")
	}

	referenceRepo := database.NewReferenceAdapter(pgClient)
	leadRepo := database.NewLeadAdapter(pgClient)
	profileRepo := database.NewProfileAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)
	invitationRepo := database.NewReviewInvitationAdapter(pgClient)

	var mailer providers.MailSender
	if cfg.Mail.Configured() {
		mailer = mail.NewGomailSender(&cfg.Mail)
		log.Info().Msg("Mail sender initialized")
	} else {
		log.Warn().Msg("SMTP not configured, review invitations will not be emailed")
	}

	// Services
	vendorService := services.NewVendorService(vendorRepo, searchRepo)
	discoveryService := services.NewDiscoveryService(vendorRepo, referenceRepo)
	leadService := services.NewLeadService(leadRepo, profileRepo, eventBus, metrics)
	analyticsService := services.NewAnalyticsService(leadRepo, vendorRepo)
	reviewService := services.NewReviewService(reviewRepo, invitationRepo, mailer, cfg.Mail.ReviewBaseURL)

	// Handlers
	vendorHandler := handlers.NewVendorHandler(vendorService, discoveryService)
	referenceHandler := handlers.NewReferenceHandler(discoveryService)
	leadHandler := handlers.NewLeadHandler(leadService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		vendorHandler,
		referenceHandler,
		leadHandler,
		analyticsHandler,
		reviewHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
