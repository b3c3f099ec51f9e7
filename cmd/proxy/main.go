package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inchstudio/forward-catalogs/internal/cache"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/introdb"
	"github.com/inchstudio/forward-catalogs/internal/metrics"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
	"github.com/inchstudio/forward-catalogs/internal/server"
	"github.com/inchstudio/forward-catalogs/internal/sources"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
	"github.com/inchstudio/forward-catalogs/internal/widgets"
)

// cacheLogger bridges the cache package's minimal logging interface to
// zerolog.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("tmdb_language", cfg.TMDB.Language).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Str("cache_provider", cfg.Cache.Provider).
		Msg("Application started with configuration")

	httpClient := client.New(cfg)

	metadataCache, err := cache.New(cfg.Cache.Provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           cfg.CacheTTL(),
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Logger:        cacheLogger{logger: logger},
		Group:         "metadata",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create cache")
	}
	defer func() {
		if err := metadataCache.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close cache")
		}
	}()

	tmdbClient := tmdb.NewClient(cfg, httpClient, metadataCache)
	registry := widgets.NewRegistry(
		cfg,
		sources.NewRegistry(cfg, httpClient, tmdbClient),
		pipeline.NewScheduler(pipeline.NewResolver(tmdbClient)),
		tmdbClient,
		introdb.NewClient(cfg, httpClient, metadataCache),
		httpClient,
	)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	httpServer := server.NewHTTPServer(cfg, registry)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		}
	}()

	logger.Info().Str("address", httpServer.Addr).Msg("Starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Failed to serve HTTP")
	}

	logger.Info().Msg("Server stopped gracefully")
}
