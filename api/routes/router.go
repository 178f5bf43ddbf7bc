package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omnistock/omnistock-backend/api/controllers"
	"github.com/omnistock/omnistock-backend/api/middleware"
	"github.com/omnistock/omnistock-backend/internal/auth"
	"github.com/omnistock/omnistock-backend/internal/authz"
	"github.com/omnistock/omnistock-backend/internal/catalog"
	"github.com/omnistock/omnistock-backend/internal/memberships"
	"github.com/omnistock/omnistock-backend/internal/tenants"
	"github.com/omnistock/omnistock-backend/pkg/auth/session"
	"github.com/omnistock/omnistock-backend/pkg/config"
	"github.com/omnistock/omnistock-backend/pkg/db"
	"github.com/omnistock/omnistock-backend/pkg/logger"
	"github.com/omnistock/omnistock-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              *db.Client
	Redis           *redis.Client
	SessionManager  *session.Manager
	Resolver        *authz.Resolver
	AuthService     auth.Service
	RegisterService auth.RegisterService
	TenantsService  tenants.Service
	Memberships     memberships.Service
	CatalogService  catalog.Service
	CatalogRepo     *catalog.Repository
	MetricsRegistry *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.AuthRegister(d.RegisterService, d.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(d.AuthService, logg))
			r.Post("/change-password", controllers.AuthChangePassword(d.AuthService, logg))
			r.Post("/switch-vendor", controllers.AuthSwitchVendor(d.AuthService, logg))
			r.Post("/switch-store", controllers.AuthSwitchStore(d.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.VendorCreate(d.TenantsService, d.Memberships, logg))
			r.Get("/", controllers.VendorList(d.TenantsService, logg))
			r.Get("/me", controllers.VendorGet(d.TenantsService, d.Resolver, logg))
			r.Patch("/me", controllers.VendorUpdate(d.TenantsService, d.Resolver, logg))
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.MemberList(d.Memberships, d.Resolver, logg))
			r.Get("/mine", controllers.MemberListMine(d.Memberships, logg))
			r.Post("/{membershipId}/accept", controllers.MemberAccept(d.Memberships, logg))
			r.Post("/{membershipId}/decline", controllers.MemberDecline(d.Memberships, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdminRole(logg))
				r.Post("/invite", controllers.MemberInvite(d.Memberships, d.Resolver, logg))
				r.Post("/{membershipId}/deactivate", controllers.MemberDeactivate(d.Memberships, d.Resolver, logg))
				r.Patch("/{membershipId}/role", controllers.MemberUpdateRole(d.Memberships, d.Resolver, logg))
				r.Get("/{membershipId}/store-access", controllers.MemberListStoreAccess(d.Memberships, d.Resolver, logg))
				r.Post("/{membershipId}/store-access", controllers.MemberAssignStoreAccess(d.Memberships, d.Resolver, logg))
				r.Delete("/{membershipId}/store-access/{storeId}", controllers.MemberRemoveStoreAccess(d.Memberships, d.Resolver, logg))
			})
		})

		r.Route("/stores", func(r chi.Router) {
			r.Post("/", controllers.StoreCreate(d.TenantsService, d.Resolver, logg))
			r.Get("/", controllers.StoreList(d.TenantsService, d.Resolver, logg))
			r.Get("/{storeId}", controllers.StoreGet(d.TenantsService, d.Resolver, logg))
			r.Patch("/{storeId}", controllers.StoreUpdate(d.TenantsService, d.Resolver, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemCreate(d.CatalogService, d.Resolver, logg))
			r.Get("/", controllers.ItemList(d.CatalogService, d.Resolver, logg))
			r.Get("/search", controllers.ItemSearch(d.CatalogService, d.Resolver, logg))
			r.Get("/{itemId}", controllers.ItemGet(d.CatalogService, d.Resolver, logg))
			r.Patch("/{itemId}", controllers.ItemUpdate(d.CatalogService, d.Resolver, logg))
			r.Delete("/{itemId}", controllers.ItemDelete(d.CatalogService, d.Resolver, logg))
			r.Post("/{itemId}/transfer", controllers.ItemTransfer(d.CatalogService, d.Resolver, logg))
			r.Get("/{itemId}/ledger", controllers.ItemLedger(d.CatalogService, d.CatalogRepo, d.Resolver, logg))
		})
	})

	return r
}
