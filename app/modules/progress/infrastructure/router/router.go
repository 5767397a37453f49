// Package progressrouter subscribes the progress service to gateway events.
package progressrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	progressservice "github.com/TanzimK12/pvm-kingdom/app/modules/progress/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
	pvmmiddleware "github.com/TanzimK12/pvm-kingdom/internal/middleware"
)

// ProgressRouter owns the watermill router for the progress module.
type ProgressRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	tracer  trace.Tracer
	metrics metrics.Recorder
}

// NewProgressRouter creates the router shell; Configure attaches handlers.
func NewProgressRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	tracer trace.Tracer,
	rec metrics.Recorder,
) *ProgressRouter {
	return &ProgressRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		tracer:  tracer,
		metrics: rec,
	}
}

// Configure adds middleware and registers the progress handler.
func (r *ProgressRouter) Configure(ctx context.Context, svc progressservice.Service) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		pvmmiddleware.CommonMetadata("progress"),
		middleware.Recoverer,
	)

	wrapped := handlerwrapper.WrapTransformingTyped(
		"progress.requested", r.logger, r.tracer, r.metrics, svc.HandleProgressRequested,
	)
	r.Router.AddHandler("progress.requested", events.ProgressRequestedV1, r.bus, "", r.bus, wrapped)

	return nil
}
