package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/standout/internal/analytics"
	"github.com/mmynk/standout/internal/auth"
	"github.com/mmynk/standout/internal/config"
	"github.com/mmynk/standout/internal/httpapi"
	"github.com/mmynk/standout/internal/metrics"
	"github.com/mmynk/standout/internal/notify"
	"github.com/mmynk/standout/internal/service"
	"github.com/mmynk/standout/internal/storage/sqlite"
	"github.com/mmynk/standout/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.SeedDemoData {
		if err := seed(context.Background(), store); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	hub := notify.NewHub()
	hub.OnCountChange(func(n int) {
		metrics.InventoryListeners.Set(float64(n))
	})

	aggregator := analytics.NewAggregator(store)
	app := &httpapi.App{
		Cfg:       cfg,
		Auth:      auth.NewPasswordAuthenticator(store),
		JWT:       auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration),
		Catalog:   service.NewCatalogService(store, hub),
		Checkout:  service.NewCheckoutService(store, hub, aggregator),
		Recommend: service.NewRecommendService(store),
		Analytics: aggregator,
		Hub:       hub,
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(app),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
