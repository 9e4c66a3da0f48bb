package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "campusai/docs" // swagger docs

	"campusai/internal/app"
	"campusai/internal/config"
	"campusai/internal/logger"
)

// @title Campus Portal API
// @version 1.0
// @description Roll-number signup and login, plus an academic assistant backed by an OpenAI-compatible model.
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	log := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		JSON:       cfg.LogJSON,
		Output:     os.Stdout,
		TimeFormat: time.Kitchen,
	})

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("startup", "err", err)
	}
	log.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server stopped", "err", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}
}
