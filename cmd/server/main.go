package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"salarydash/internal/api"
	"salarydash/internal/config"
	"salarydash/internal/engine"
	"salarydash/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. The API is "live" right away but answers 503 until the dataset is in.
	h := api.NewHandler(nil, api.NewTelemetry(), logger)
	e := api.NewServer(cfg.Server, h, logger)

	// 2. Load the dataset in the background. A failure is final: no retry.
	go func() {
		loader := engine.NewLoader(&http.Client{Timeout: cfg.Dataset.FetchTimeout}, logger)
		store, err := loader.Load(ctx, cfg.Dataset.URL)
		if err != nil {
			logger.Error("dataset load failed", zap.Error(err))
			h.SetLoadError(err)
			return
		}
		h.SetData(store)
	}()

	// 3. Serve until interrupted.
	go func() {
		logger.Info("server ready (data loading in background)", zap.String("addr", cfg.Server.Addr))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
