package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lbrouwer/surfcast/internal/api"
	"github.com/lbrouwer/surfcast/internal/catalog"
	"github.com/lbrouwer/surfcast/internal/config"
	"github.com/lbrouwer/surfcast/internal/flights"
	"github.com/lbrouwer/surfcast/internal/logging"
	"github.com/lbrouwer/surfcast/internal/orchestrator"
	"github.com/lbrouwer/surfcast/internal/provider"
	"github.com/lbrouwer/surfcast/internal/scheduler"
	"github.com/lbrouwer/surfcast/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	for _, spot := range catalog.Spots {
		if err := db.UpsertSpot(context.Background(), spot); err != nil {
			logger.Error("failed to seed catalog", "spot_id", spot.SpotID, "error", err)
			os.Exit(1)
		}
	}

	atmoClient := provider.NewAtmosphericClient(cfg.Provider.AtmosphericBaseURL, cfg.Provider.RequestTimeout, cfg.Provider.MaxRetries, cfg.Provider.RetryBaseInterval)
	marineClient := provider.NewMarineClient(cfg.Provider.MarineBaseURL, cfg.Provider.RequestTimeout, cfg.Provider.MaxRetries, cfg.Provider.RetryBaseInterval)

	orch := orchestrator.New(db, atmoClient, marineClient, cfg.Refresh.RawThreshold, cfg.Refresh.Fanout, logger)
	tracker := orchestrator.NewTracker()

	var flightAdapter flights.Adapter = flights.StubAdapter{}
	if cfg.Flights.APIKey == "" {
		logger.Warn("no flight search API key configured, trip analysis will omit flights")
	}

	if !cfg.Refresh.Disabled {
		sched := scheduler.New(orch, cfg.Refresh.Interval, logger)
		if err := sched.Start(); err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	} else {
		logger.Warn("background refresh disabled via DISABLE_BACKGROUND_REFRESH")
	}

	gin.SetMode(cfg.Server.GinMode)
	handler := api.NewHandler(db, orch, tracker, flightAdapter, logger, cfg.Refresh.BackgroundThreshold)
	router := api.NewRouter(handler, cfg.Server.CORS, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting surfcast API server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
