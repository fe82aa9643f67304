// Package main provides the phrase matching API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vozclara/fraseo/internal/audit"
	"github.com/vozclara/fraseo/internal/cache"
	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/config"
	"github.com/vozclara/fraseo/internal/embedding"
	"github.com/vozclara/fraseo/internal/match"
	"github.com/vozclara/fraseo/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "fraseo-api",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("model", cfg.Embedding.Model).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting fraseo API")

	cat, err := catalog.Load(cfg.Dataset.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load phrase catalog")
	}
	logger.Info().
		Strs("grupos", cat.Groups()).
		Int("frases", cat.TotalPhrases()).
		Msg("Phrase catalog loaded")

	var embedder embedding.Embedder
	if cfg.Embedding.Mock {
		logger.Warn().Msg("Using mock embedder; similarities are not meaningful")
		embedder = embedding.NewMockClient(cfg.Embedding.Dimension)
	} else {
		embedder, err = embedding.NewClient(embedding.Config{
			BaseURL:   cfg.Embedding.BaseURL,
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create embedding client")
		}
	}

	// The index build blocks startup: every catalog phrase is embedded
	// (or restored from the embedding cache) before the server accepts
	// traffic.
	index, err := match.BuildIndex(context.Background(), cat, embedder, match.IndexConfig{
		CachePath: cfg.Matcher.EmbeddingCachePath,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build phrase index")
	}

	engine, err := match.NewEngine(index, embedder, match.EngineConfig{
		SynonymExpansion: cfg.Matcher.SynonymExpansion,
		FuzzyThreshold:   cfg.Matcher.FuzzyThreshold,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create match engine")
	}

	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
			cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}
	defer cacheClient.Close()

	auditStore, err := audit.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open audit store")
	}
	defer auditStore.Close()

	router := NewRouter(logger, AppDeps{
		Catalog:    cat,
		Engine:     engine,
		Cache:      cacheClient,
		CacheTTL:   cfg.Cache.TTL,
		AuditStore: auditStore,
		Timeout:    cfg.Server.ReadTimeout,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
