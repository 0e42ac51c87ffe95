package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayoolabs/storefront-backend/api/routes"
	"github.com/ayoolabs/storefront-backend/internal/accounts"
	"github.com/ayoolabs/storefront-backend/internal/ai"
	"github.com/ayoolabs/storefront-backend/internal/auth"
	"github.com/ayoolabs/storefront-backend/internal/categories"
	"github.com/ayoolabs/storefront-backend/internal/dashboard"
	"github.com/ayoolabs/storefront-backend/internal/demo"
	"github.com/ayoolabs/storefront-backend/internal/orders"
	"github.com/ayoolabs/storefront-backend/internal/products"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	"github.com/ayoolabs/storefront-backend/pkg/auth/session"
	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
	"github.com/ayoolabs/storefront-backend/pkg/metrics"
	"github.com/ayoolabs/storefront-backend/pkg/migrate"
	"github.com/ayoolabs/storefront-backend/pkg/redis"
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

	dbCfg := cfg.DB
	if cfg.Demo.Enabled {
		dbCfg.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), dbCfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.Demo.Enabled {
		if err := demo.Seed(context.Background(), dbClient.DB(), cfg.Password, logg); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient  *redis.Client
		sessionStore session.Store
	)
	if cfg.Demo.Enabled {
		sessionStore = session.NewMemoryStore()
	} else {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		sessionStore = redisClient
	}

	sessionManager, err := session.NewManager(sessionStore, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	merchantRepo := accounts.NewRepository(dbClient.DB())
	accountService, err := accounts.NewService(merchantRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	storeRepo := stores.NewRepository(dbClient.DB())
	resolver, err := stores.NewResolver(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store resolver", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	categoryRepo := categories.NewRepository(dbClient.DB())
	categoryService, err := categories.NewService(categoryRepo, resolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(dbClient, products.NewRepository(dbClient.DB()), resolver, categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), resolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(storeService, categoryService, productService, orderService)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Merchants:      merchantRepo,
		Resolver:       resolver,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Database:       dbClient,
		Redis:          redisClient,
		SessionChecker: sessionManager,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Merchants:      merchantRepo,
		Accounts:       accountService,
		Resolver:       resolver,
		Auth:           authService,
		Stores:         storeService,
		Categories:     categoryService,
		Products:       productService,
		Orders:         orderService,
		Dashboard:      dashboardService,
		AI:             ai.NewService(cfg.OpenAI, logg),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
		"demo": cfg.Demo.Enabled,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
