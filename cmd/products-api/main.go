package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/catalog-filter/internal/app/service"
	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/config"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/http"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	telem, err := telemetry.NewTelemetry(ctx, &cfg.OTLP, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API")

	repo := memory.NewProductRepository(tracer, logger)
	productService := service.NewProductService(repo, tracer, meter, logger)

	if cfg.Catalog.Seed {
		if err := productService.Seed(ctx, domain.SeedCatalog()); err != nil {
			logger.Error("Failed to seed catalog", slog.String("error", err.Error()))
			return
		}
	}

	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, logger, telem)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}
