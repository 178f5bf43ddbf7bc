package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/omnistock/omnistock-backend/api/routes"
	"github.com/omnistock/omnistock-backend/internal/auth"
	"github.com/omnistock/omnistock-backend/internal/authz"
	"github.com/omnistock/omnistock-backend/internal/catalog"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/internal/users"
	"github.com/omnistock/omnistock-backend/pkg/auth/session"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/logger"
	"github.com/omnistock/omnistock-backend/pkg/metrics"
	"github.com/omnistock/omnistock-backend/pkg/migrate"
	"github.com/omnistock/omnistock-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	tenantsRepo := tenants.NewRepository(dbClient.DB())
	membershipsRepo := memberships.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	tenantsService, err := tenants.NewService(tenantsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create tenants service", err)
		os.Exit(1)
	}

	membershipsService, err := memberships.NewService(membershipsRepo, usersRepo, tenantsService, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create memberships service", err)
		os.Exit(1)
	}

	resolver, err := authz.NewResolver(membershipsRepo, tenantsService, cfg.FeatureFlags.EnforceStoreAccess)
	if err != nil {
		logg.Error(context.Background(), "failed to create authz resolver", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

	catalogService, err := catalog.NewService(catalogRepo, dbClient, resolver, inventoryMetrics, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		Memberships:    membershipsService,
		Vendors:        tenantsService,
		Resolver:       resolver,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       usersRepo,
		Tenants:        tenantsService,
		Memberships:    membershipsService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			Resolver:        resolver,
			AuthService:     authService,
			RegisterService: registerService,
			TenantsService:  tenantsService,
			Memberships:     membershipsService,
			CatalogService:  catalogService,
			CatalogRepo:     catalogRepo,
			MetricsRegistry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
