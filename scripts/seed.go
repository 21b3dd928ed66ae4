package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/adapters/database"
	"github.com/knotworks/vendorhub/internal/adapters/search"
	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/typesense"
	"github.com/knotworks/vendorhub/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	var searchRepo repositories.VendorSearchRepository
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, seeding without search index")
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				review_invitations,
				vendor_reviews,
				vendor_leads,
				business_profiles,
				profiles,
				cities,
				services
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	// 1. Reference lists
	cities := []string{"Lagos", "Abuja", "Port Harcourt", "Ibadan", "Enugu"}
	for _, name := range cities {
		if _, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO cities (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			log.Error().Err(err).Str("city", name).Msg("Failed to seed city")
		}
	}

	serviceNames := []string{"Photography", "Catering", "Event Planning", "Makeup", "Decor", "Music & DJ"}
	for _, name := range serviceNames {
		if _, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO services (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			log.Error().Err(err).Str("service", name).Msg("Failed to seed service")
		}
	}

	// 2. Vendors, created through the service so the search index stays in sync
	vendorRepo := database.NewVendorAdapter(pgClient)
	vendorService := services.NewVendorService(vendorRepo, searchRepo)

	nextYear := time.Now().AddDate(1, 0, 0)
	lastMonth := time.Now().AddDate(0, -1, 0)

	vendors := []*entities.Vendor{
		{ID: uuid.New().String(), BusinessName: "Rose Garden Photography", BusinessEmail: "hello@rosegarden.example", Phone: "+2348010000001", ServiceID: 1, CityID: 1, Address: "14 Admiralty Way, Lekki", BusinessDetails: "Documentary-style wedding photography", Rating: 4.8, ReviewCount: 52, IsPremiumMember: true, MembershipEndDate: &nextYear},
		{ID: uuid.New().String(), BusinessName: "Lagos Catering Co", BusinessEmail: "orders@lagoscatering.example", Phone: "+2348010000002", ServiceID: 2, CityID: 1, Address: "3 Awolowo Road, Ikoyi", BusinessDetails: "Full-service event catering, local and continental menus", Rating: 4.5, ReviewCount: 87, IsPremiumMember: true, MembershipEndDate: &nextYear},
		{ID: uuid.New().String(), BusinessName: "Abuja Event Planners", BusinessEmail: "team@abujaevents.example", Phone: "+2348010000003", ServiceID: 3, CityID: 2, Address: "Plot 22, Wuse II", BusinessDetails: "End-to-end wedding planning and coordination", Rating: 4.7, ReviewCount: 34, IsPremiumMember: true},
		{ID: uuid.New().String(), BusinessName: "Glow Makeup Studio", BusinessEmail: "book@glowstudio.example", Phone: "+2348010000004", ServiceID: 4, CityID: 1, Address: "8 Allen Avenue, Ikeja", BusinessDetails: "Bridal makeup and gele styling", Rating: 4.9, ReviewCount: 120, IsPremiumMember: true, MembershipEndDate: &nextYear},
		{ID: uuid.New().String(), BusinessName: "Harborlight Decor", BusinessEmail: "info@harborlight.example", Phone: "+2348010000005", ServiceID: 5, CityID: 3, Address: "12 Aba Road", BusinessDetails: "Stage and reception decor", Rating: 4.2, ReviewCount: 18, IsPremiumMember: true, MembershipEndDate: &lastMonth},
		{ID: uuid.New().String(), BusinessName: "Groove Masters DJ", BusinessEmail: "play@groovemasters.example", Phone: "+2348010000006", ServiceID: 6, CityID: 2, Address: "Garki Area 11", BusinessDetails: "Wedding DJ and live band coordination", Rating: 4.4, ReviewCount: 41, IsPremiumMember: false},
	}

	seeded := 0
	for _, v := range vendors {
		if err := vendorService.Create(ctx, v); err != nil {
			log.Error().Err(err).Str("vendor", v.BusinessName).Msg("Failed to seed vendor")
			continue
		}
		seeded++
	}

	log.Info().Int("vendors", seeded).Msg("Seeding complete")
}
