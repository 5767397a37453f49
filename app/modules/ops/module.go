// Package ops wires the operator command module.
package ops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	opsservice "github.com/TanzimK12/pvm-kingdom/app/modules/ops/application"
	opsrouter "github.com/TanzimK12/pvm-kingdom/app/modules/ops/infrastructure/router"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module is the operator command surface.
type Module struct {
	Service opsservice.Service
	Router  *opsrouter.OpsRouter
}

// NewOpsModule wires service and router.
func NewOpsModule(
	ctx context.Context,
	taxonomy taxonomyservice.Service,
	submissions opsservice.PendingCounter,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) (*Module, error) {
	svc := opsservice.NewOpsService(taxonomy, submissions, logger, rec, tracer)

	r := opsrouter.NewOpsRouter(logger, router, bus, tracer, rec)
	if err := r.Configure(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to configure ops router: %w", err)
	}

	return &Module{Service: svc, Router: r}, nil
}
