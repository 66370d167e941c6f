package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/migueldelacruz-dev/vapetrack-backend/api/routes"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/inventory"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/itemlock"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/loans"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/sales"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/warranty"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/config"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/metrics"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/redis"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/sheets"
)

type store interface {
	rowstore.Store
	rowstore.Pinger
}

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

	saleMetrics := metrics.NewSaleMetrics(prometheus.DefaultRegisterer)

	var rowStore store
	if cfg.FeatureFlags.UseMemoryStore {
		logg.Warn(context.Background(), "using in-memory row store; data will not survive restarts")
		rowStore = rowstore.NewMemory()
	} else {
		sheetsClient, err := sheets.NewClient(context.Background(), cfg.Sheets, logg, saleMetrics)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap sheets client", err)
			os.Exit(1)
		}
		rowStore = sheetsClient
	}

	if err := rowstore.EnsureAll(context.Background(), rowStore); err != nil {
		logg.Error(context.Background(), "failed to ensure tables", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency protection disabled")
	}

	locks := itemlock.NewMap()

	inventoryService, err := inventory.NewService(rowStore, logg, cfg.Stock.LowStockThreshold)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	saleEngine, err := sales.NewEngine(rowStore, locks, logg, saleMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create sale engine", err)
		os.Exit(1)
	}
	loanLedger, err := loans.NewLedger(rowStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create loan ledger", err)
		os.Exit(1)
	}
	warrantyEngine, err := warranty.NewEngine(rowStore, locks, logg, saleMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create warranty engine", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, rowStore, redisClient, inventoryService, saleEngine, loanLedger, warrantyEngine),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
