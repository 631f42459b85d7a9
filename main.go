package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mrops-br/catalog-filter/internal/app/scenario"
	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/config"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// stdout carries the report, so logs go to stderr
	telem := telemetry.NewNoOpTelemetry(&cfg.OTLP, os.Stderr)
	logger := telem.Logger

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telem.Shutdown(shutdownCtx)
	}()

	if err := scenario.Run(os.Stdout, domain.SeedCatalog()); err != nil {
		logger.Error("Scenario failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
