// Package progress wires the compiled-progress module.
package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	progressservice "github.com/TanzimK12/pvm-kingdom/app/modules/progress/application"
	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
	progressrouter "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/router"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module is the compiled tile progress feature.
type Module struct {
	Service progressservice.Service
	Router  *progressrouter.ProgressRouter
}

// NewProgressModule wires service and router.
func NewProgressModule(
	ctx context.Context,
	taxonomy taxonomyservice.Service,
	routing routingservice.Service,
	compiled progressdb.Repository,
	ledger submissiondb.Repository,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) (*Module, error) {
	svc := progressservice.NewProgressService(taxonomy, routing, compiled, ledger, logger, rec, tracer)

	r := progressrouter.NewProgressRouter(logger, router, bus, tracer, rec)
	if err := r.Configure(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to configure progress router: %w", err)
	}

	return &Module{Service: svc, Router: r}, nil
}
