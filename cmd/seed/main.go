package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/omnistock/omnistock-backend/internal/auth"
	"github.com/omnistock/omnistock-backend/internal/authz"
	"github.com/omnistock/omnistock-backend/internal/catalog"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/internal/users"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/db/models"
	"github.com/omnistock/omnistock-backend/pkg/enums"
	"github.com/omnistock/omnistock-backend/pkg/logger"
	"github.com/omnistock/omnistock-backend/pkg/metrics"
)

// Seeds a demo vendor with an owner account, a second store, and a handful of
// catalog items. Intended for local development only.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if !cfg.App.IsDev() {
		logg.Error(ctx, "seed refuses to run outside dev", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	usersRepo := users.NewRepository(dbClient.DB())
	tenantsRepo := tenants.NewRepository(dbClient.DB())
	membershipsRepo := memberships.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	tenantsService, err := tenants.NewService(tenantsRepo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create tenants service", err)
		os.Exit(1)
	}
	membershipsService, err := memberships.NewService(membershipsRepo, usersRepo, tenantsService, dbClient, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create memberships service", err)
		os.Exit(1)
	}
	resolver, err := authz.NewResolver(membershipsRepo, tenantsService, cfg.FeatureFlags.EnforceStoreAccess)
	if err != nil {
		logg.Error(ctx, "failed to create authz resolver", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo, dbClient, resolver, metrics.NewInventoryMetrics(prometheus.NewRegistry()), cfg.Catalog)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       usersRepo,
		Tenants:        tenantsService,
		Memberships:    membershipsService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create register service", err)
		os.Exit(1)
	}

	const ownerEmail = "owner@demo.omnistock.dev"
	err = registerService.Register(ctx, auth.RegisterRequest{
		FirstName:  "Demo",
		LastName:   "Owner",
		Email:      ownerEmail,
		Password:   "demo-password-1",
		VendorName: "Demo Cards & Collectibles",
	})
	if err != nil {
		logg.Error(ctx, "seed register failed (already seeded?)", err)
		os.Exit(1)
	}

	owner, err := usersRepo.FindByEmail(ctx, ownerEmail)
	if err != nil {
		logg.Error(ctx, "seed owner lookup failed", err)
		os.Exit(1)
	}
	actor, err := resolver.ResolveActiveVendor(ctx, owner.ID)
	if err != nil || actor == nil {
		logg.Error(ctx, "seed owner has no active membership", err)
		os.Exit(1)
	}

	warehouse := enums.StoreTypeWarehouse
	second, err := tenantsService.CreateStore(ctx, tenants.CreateStoreInput{
		VendorID: actor.VendorID,
		Name:     "Back Warehouse",
		Type:     &warehouse,
		Currency: "USD",
	})
	if err != nil {
		logg.Error(ctx, "seed store create failed", err)
		os.Exit(1)
	}

	defaultStore, err := tenantsService.DefaultStore(ctx, actor.VendorID)
	if err != nil {
		logg.Error(ctx, "seed default store lookup failed", err)
		os.Exit(1)
	}

	boosterBox := &models.Product{
		ID:   uuid.New(),
		Name: "Base Set Booster Box",
		Type: enums.ProductTypeBoosterBox,
	}
	if err := dbClient.DB().WithContext(ctx).Create(boosterBox).Error; err != nil {
		logg.Error(ctx, "seed product create failed", err)
		os.Exit(1)
	}

	pokemon := enums.ItemCategoryPokemonCard
	language := "en"
	region := "NA"
	items := []catalog.CreateItemInput{
		{
			StoreID:     defaultStore.ID,
			Name:        "Charizard Holo 4/102",
			SKU:         "DEMO-CHAR-001",
			Category:    &pokemon,
			Quantity:    3,
			IntakePrice: decimal.NewFromInt(120),
			Price:       decimal.NewFromInt(250),
			CardDetails: &catalog.CardMetadataInput{Language: &language, MarketRegion: &region},
			Media: []catalog.MediaInput{
				{URL: "https://cdn.omnistock.dev/demo/charizard.jpg", IsPrimary: true},
			},
		},
		{
			StoreID:     second.ID,
			Name:        "Base Set Booster Box",
			SKU:         "DEMO-BOX-001",
			ProductID:   &boosterBox.ID,
			Quantity:    1,
			IntakePrice: decimal.NewFromInt(4200),
			Price:       decimal.NewFromInt(5600),
		},
	}
	for _, input := range items {
		if _, err := catalogService.CreateItem(ctx, actor, input); err != nil {
			logg.Error(ctx, "seed item create failed", err)
			os.Exit(1)
		}
	}

	logg.Info(logg.WithField(ctx, "owner_email", ownerEmail), "seed complete")
}
