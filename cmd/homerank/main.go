package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/airquality"
	"github.com/Hearthside-Labs/Homerank/internal/api"
	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/config"
	"github.com/Hearthside-Labs/Homerank/internal/events"
	"github.com/Hearthside-Labs/Homerank/internal/rank"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	defaultMethod, err := ahp.ParseMethod(cfg.Engine.WeightMethod)
	if err != nil {
		logger.Error("invalid weight method in config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.NATS.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.NATS.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to NATS, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to NATS")
		}
	}

	// Ranking cache (optional)
	var rankingCache *cache.RankingCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.ResultTTL())
		if err != nil {
			logger.Warn("failed to connect to redis, running without result cache", "error", err)
		} else {
			rankingCache = rc
			defer rc.Close()
			logger.Info("connected to redis")
		}
	}

	// Air quality provider (optional)
	var provider airquality.Provider
	if cfg.AirQuality.URL != "" {
		provider = airquality.NewHTTPClient(cfg.AirQuality.URL)
	}

	runner := rank.NewRunner(db, provider, rankingCache, eventsClient, defaultMethod, cfg.Engine.PowerIterations, logger)

	// API server
	router := api.NewRouter(db, runner, rankingCache, eventsClient, cfg.Server.AdminToken, cfg.Server.RateLimitPerMin, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
