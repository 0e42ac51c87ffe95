package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayoolabs/storefront-backend/api/controllers"
	"github.com/ayoolabs/storefront-backend/api/middleware"
	"github.com/ayoolabs/storefront-backend/internal/accounts"
	"github.com/ayoolabs/storefront-backend/internal/ai"
	"github.com/ayoolabs/storefront-backend/internal/auth"
	"github.com/ayoolabs/storefront-backend/internal/categories"
	"github.com/ayoolabs/storefront-backend/internal/dashboard"
	"github.com/ayoolabs/storefront-backend/internal/orders"
	"github.com/ayoolabs/storefront-backend/internal/products"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
	"github.com/ayoolabs/storefront-backend/pkg/metrics"
	"github.com/ayoolabs/storefront-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs wired in.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Database       *db.Client
	Redis          *redis.Client
	SessionChecker middleware.SessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Merchants  *accounts.Repository
	Accounts   accounts.Service
	Resolver   *stores.Resolver
	Auth       auth.Service
	Stores     stores.Service
	Categories categories.Service
	Products   products.Service
	Orders     orders.Service
	Dashboard  dashboard.Service
	AI         ai.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

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
		r.Get("/ready", controllers.HealthReady(cfg, d.Database, logg))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		if d.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
		} else {
			r.Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.Post("/register", controllers.AuthRegister(d.Auth, logg))
		}
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.Post("/password-reset", controllers.AuthPasswordReset(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.SessionChecker, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionChecker, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/v1/me", controllers.Me(d.Merchants, d.Resolver, logg))
		r.Patch("/v1/me", controllers.MeUpdate(d.Accounts, logg))

		r.Route("/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.StoreProfileGet(d.Stores, logg))
			r.Put("/", controllers.StoreProfileSave(d.Stores, logg))
		})

		r.Route("/v1/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(d.Categories, logg))
			r.Post("/", controllers.CategorySave(d.Categories, logg))
			r.Delete("/{categoryID}", controllers.CategoryDelete(d.Categories, logg))
		})

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Products, logg))
			r.Post("/", controllers.ProductSave(d.Products, logg))
			r.Delete("/{productID}", controllers.ProductDelete(d.Products, logg))
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(d.Orders, logg))
			r.Post("/", controllers.OrderCreate(d.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(d.Orders, logg))
			r.Put("/{orderID}/status", controllers.OrderStatusUpdate(d.Orders, logg))
			r.Delete("/{orderID}", controllers.OrderDelete(d.Orders, logg))
		})

		r.Get("/v1/dashboard", controllers.Dashboard(d.Dashboard, logg))

		r.Route("/v1/ai", func(r chi.Router) {
			r.Post("/category-suggestions", controllers.AISuggestCategories(d.AI, logg))
			r.Post("/product-description", controllers.AIGenerateDescription(d.AI, logg))
			r.Post("/store-insights", controllers.AIStoreInsights(d.AI, logg))
		})
	})

	return r
}
