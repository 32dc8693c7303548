package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smartshoplabs/smartshop-backend/api/controllers"
	"github.com/smartshoplabs/smartshop-backend/api/routes"
	authsvc "github.com/smartshoplabs/smartshop-backend/internal/auth"
	cartsvc "github.com/smartshoplabs/smartshop-backend/internal/cart"
	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	checkoutsvc "github.com/smartshoplabs/smartshop-backend/internal/checkout"
	feedsvc "github.com/smartshoplabs/smartshop-backend/internal/feed"
	messengersvc "github.com/smartshoplabs/smartshop-backend/internal/messenger"
	"github.com/smartshoplabs/smartshop-backend/pkg/config"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
	"github.com/smartshoplabs/smartshop-backend/pkg/metrics"
	"github.com/smartshoplabs/smartshop-backend/pkg/redis"
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

	store, err := buildStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cart store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	policy := cartsvc.DuplicateIncrement
	if cfg.Cart.RejectsDuplicates() {
		policy = cartsvc.DuplicateReject
	}

	manager, err := cartsvc.NewManager(cartsvc.Options{
		Store:          store,
		Key:            cfg.Cart.StorageKey,
		Policy:         policy,
		PersistTimeout: cfg.Cart.PersistTimeout,
		Logger:         logg,
		Metrics:        cartMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	rehydrateCtx, cancel := context.WithTimeout(context.Background(), cfg.Cart.RehydrateTimeout)
	if err := manager.Rehydrate(rehydrateCtx); err != nil {
		// The session continues on an empty cart; storage may recover.
		logg.Warn(logg.WithField(rehydrateCtx, "cart_key", cfg.Cart.StorageKey), "cart rehydration failed, starting empty")
	}
	cancel()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := manager.Close(closeCtx); err != nil {
			logg.Error(closeCtx, "error closing cart manager", err)
		}
	}()

	authService, err := authsvc.NewService(cfg.Auth, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	threshold, err := cfg.Filter.Threshold()
	if err != nil {
		logg.Error(context.Background(), "invalid filter threshold", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	router := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		Registry:  registry,
		Store:     store,
		Catalog:   cat,
		FilterCfg: catalog.FilterConfig{Threshold: threshold},
		Cart:      manager,
		Auth:      authService,
		Checkout:  checkoutsvc.NewService(manager, logg),
		Feed:      feedsvc.NewService(),
		Messenger: messengersvc.NewService(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"cart_driver": cfg.Cart.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

type cartStore interface {
	cartsvc.Store
	controllers.StorePinger
}

func buildStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cartStore, error) {
	switch cfg.Cart.Driver {
	case config.CartDriverSQLite:
		return cartsvc.NewGormStore(cfg.SQLite.Path)
	default:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		return cartsvc.NewRedisStore(client)
	}
}
