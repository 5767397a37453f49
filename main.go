package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TanzimK12/pvm-kingdom/app"
	"github.com/TanzimK12/pvm-kingdom/config"
	"github.com/TanzimK12/pvm-kingdom/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := &app.App{}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:    "pvm-kingdom",
		Environment:    cfg.Observability.Environment,
		MetricsAddress: cfg.Observability.MetricsAddress,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.OTLPInsecure,
		SampleRate:     cfg.Observability.SampleRate,
	}, func() bool {
		return application.TaxonomyModule != nil && application.TaxonomyModule.Service.Ready()
	})
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}

	if err := application.Initialize(ctx, cfg, obs); err != nil {
		obs.Logger.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		obs.Logger.Error("Application stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Close(); err != nil {
		obs.Logger.Error("Shutdown error", "error", err)
	}
	if err := obs.Close(shutdownCtx); err != nil {
		obs.Logger.Error("Observability shutdown error", "error", err)
	}
	obs.Logger.Info("Shut down cleanly")
}
