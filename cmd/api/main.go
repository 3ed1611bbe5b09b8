package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uav-roster/internal/infrastructure/config"
	"uav-roster/internal/infrastructure/persistence"
	"uav-roster/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}

	appLogger := logger.NewDefault(cfg.Log.Level)
	slog.SetDefault(appLogger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	backend, err := persistence.Open(openCtx, cfg)
	cancel()
	if err != nil {
		appLogger.Warn("storage connection failed, falling back to in-memory store", slog.String("error", err.Error()))
		backend = persistence.Memory()
	}
	defer backend.Close()

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := newApp(loadCtx, cfg, backend, appLogger)
	cancel()
	if err != nil {
		appLogger.Error("init app failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("api server listening", slog.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server run failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down api server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
}
