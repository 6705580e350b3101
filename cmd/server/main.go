package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/travel-recommendation/internal/api"
	"github.com/neexbeast/travel-recommendation/internal/cache"
	"github.com/neexbeast/travel-recommendation/internal/config"
	"github.com/neexbeast/travel-recommendation/internal/destination"
	"github.com/neexbeast/travel-recommendation/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]api.Pinger{}
	var sources []destination.Source

	if cfg.CatalogFile != "" {
		sources = append(sources, destination.NewFileSource(cfg.CatalogFile))
	}
	if cfg.CatalogURL != "" {
		sources = append(sources, destination.NewHTTPSource(cfg.CatalogURL))
	}

	// Connect to PostgreSQL when configured.
	if cfg.DatabaseURL != "" {
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := storage.RunMigrations(ctx, pool, storage.Migrations()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		checks["db"] = pool
		if cfg.CatalogFromDB {
			sources = append(sources, storage.NewRepository(pool))
		}
	}

	// Connect to Redis when configured.
	var resultCache api.ResultCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		c := cache.NewCache(redisClient).WithTTL(cfg.CacheTTL)
		resultCache = c
		checks["redis"] = c
	}

	var source destination.Source = destination.NewMultiSource(sources...)
	if len(sources) == 1 {
		source = sources[0]
	}

	// Wire dependencies.
	store := destination.NewStore()
	loader := destination.NewLoader(source, store, log)

	// A failed initial load is reported but the server still starts with an empty catalog.
	if _, err := loader.Load(ctx); err != nil {
		log.Warn("starting with empty catalog", "err", err)
	}

	handlers := api.NewHandlers(store, loader, resultCache, log)
	router := api.NewRouter(handlers, api.RouterConfig{
		Token:              cfg.BearerToken,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Checks:             checks,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	})

	if cfg.WatchCatalog {
		watcher := destination.NewWatcher(cfg.CatalogFile, loader, log)
		g.Go(func() error {
			return watcher.Run(gCtx)
		})
	}

	// Graceful shutdown on SIGINT / SIGTERM or when another goroutine fails.
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server shut down cleanly")
	return nil
}
