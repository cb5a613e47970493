// Copyright (c) 2026 Residents Book. All rights reserved.

// Command web is the entry point for the Residents Book front end.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when REDIS_URL is set.
//  4. Build the Residents API client and the directory store.
//  5. Wire HTTP handlers.
//  6. Start the HTTP server and the initial directory load side by side.
//  7. Shut down gracefully on SIGINT/SIGTERM.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Abhay4510/residents-book/internal/api"
	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/notify"
	"github.com/Abhay4510/residents-book/internal/platform/config"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/metrics"
	"github.com/Abhay4510/residents-book/internal/platform/middleware"
	redisstore "github.com/Abhay4510/residents-book/internal/platform/redis"
	"github.com/Abhay4510/residents-book/internal/resident"
	"github.com/Abhay4510/residents-book/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("residents_api", cfg.ResidentsAPIURL),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	var toasts notify.Store = notify.NewMemoryStore(constants.ToastTTL)
	var rdb *goredis.Client

	if cfg.RedisURL != "" {
		startupCtx, cancel := context.WithTimeout(rootCtx, constants.StartupLoadTimeout)
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		cancel()
		must(log, err, "connect to redis")

		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		toasts = notify.NewRedisStore(rdb, constants.ToastTTL)
	}

	// ── 4. Upstream client & directory ────────────────────────────────────
	m := metrics.New()

	client, err := resident.NewClient(cfg.ResidentsAPIURL,
		resident.WithTimeout(cfg.ResidentsAPITimeout),
		resident.WithMetrics(m),
	)
	must(log, err, "build residents client")

	store := directory.NewStore(client,
		directory.WithFetchLimit(cfg.DirectoryFetchLimit),
		directory.WithLogger(log),
		directory.WithMetrics(m),
	)

	// ── 5. Handlers ───────────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckUpstream: func(ctx context.Context) error {
			_, err := client.List(ctx, 1, 1)
			return err
		},
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	webHandler, err := web.NewHandler(web.Dependencies{
		API:     client,
		Store:   store,
		Toasts:  toasts,
		Metrics: m,
	})
	must(log, err, "parse templates")

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	server := api.NewServer(cfg, log, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   m.Handler(),
		Web:       webHandler,
	})

	// ── 6. Run ────────────────────────────────────────────────────────────
	group, groupCtx := errgroup.WithContext(rootCtx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// The page shows a loading state until this completes. A failure is
	// recorded on the store and offered for retry, so it never stops the server.
	group.Go(func() error {
		loadCtx, cancel := context.WithTimeout(groupCtx, constants.StartupLoadTimeout)
		defer cancel()
		_ = store.Load(loadCtx)
		return nil
	})

	group.Go(func() error {
		limiter.RunCleanup(groupCtx)
		return nil
	})

	if memory, ok := toasts.(*notify.MemoryStore); ok {
		group.Go(func() error {
			memory.RunSweeper(groupCtx, constants.ToastTTL)
			return nil
		})
	}

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
		return server.Shutdown(context.Background(), constants.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
