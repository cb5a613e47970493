// Copyright (c) 2026 Residents Book. All rights reserved.

// Command mockapi serves an in-memory Residents REST API for local
// development of the web front end.
//
// Point the front end at it with RESIDENTS_API_URL=http://localhost:8800/api.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/Abhay4510/residents-book/internal/mockapi"
	"github.com/Abhay4510/residents-book/internal/platform/config"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/middleware"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With(slog.String("app", constants.AppName+"-mockapi"))
	slog.SetDefault(log)

	cfg, err := config.LoadMockAPI()
	if err != nil {
		log.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	stub := mockapi.New(
		mockapi.WithSeed(cfg.Seed),
		mockapi.WithLatency(cfg.Latency),
		mockapi.WithLogger(log),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(middleware.PanicRecovery())
	router.Use(middleware.CORS(cfg))
	router.Mount("/", stub.Routes())

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("mockapi_starting",
		slog.String("addr", server.Addr),
		slog.Int("seeded", stub.Len()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("mockapi_stopped")
}
