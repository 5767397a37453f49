// Package detection wires the screenshot analysis module.
package detection

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/vision"
	"github.com/TanzimK12/pvm-kingdom/config"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module owns screenshot analysis and the API cost ledger.
type Module struct {
	Service detectionservice.Service
}

// NewDetectionModule constructs the module with the OpenAI-backed client.
func NewDetectionModule(
	cfg config.VisionConfig,
	costs detectiondb.CostRepository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *Module {
	client := vision.NewClient(cfg.APIKey, cfg.Model, cfg.RequestInterval, logger)
	pricing := detectionservice.Pricing{
		PerImage:    cfg.PricePerImage,
		InputPer1K:  cfg.PriceInputPer1K,
		OutputPer1K: cfg.PriceOutputPer1K,
	}
	return &Module{
		Service: detectionservice.NewDetectionService(client, costs, pricing, cfg.Model, logger, rec, tracer),
	}
}
