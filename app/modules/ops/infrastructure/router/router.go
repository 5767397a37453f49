// Package opsrouter subscribes the ops service to gateway events.
package opsrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	opsservice "github.com/TanzimK12/pvm-kingdom/app/modules/ops/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
	pvmmiddleware "github.com/TanzimK12/pvm-kingdom/internal/middleware"
)

// OpsRouter owns the watermill router for the ops module.
type OpsRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	tracer  trace.Tracer
	metrics metrics.Recorder
}

// NewOpsRouter creates the router shell; Configure attaches handlers.
func NewOpsRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	tracer trace.Tracer,
	rec metrics.Recorder,
) *OpsRouter {
	return &OpsRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		tracer:  tracer,
		metrics: rec,
	}
}

// Configure adds middleware and registers the ops handlers.
func (r *OpsRouter) Configure(ctx context.Context, svc opsservice.Service) error {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		pvmmiddleware.CommonMetadata("ops"),
		middleware.Recoverer,
	)

	registerHandler(r, events.OpsHealthRequestedV1, "ops.health", svc.HandleHealthRequested)
	registerHandler(r, events.OpsResyncRequestedV1, "ops.resync", svc.HandleResyncRequested)
	registerHandler(r, events.OpsTaxonomyRefreshV1, "ops.taxonomy_refresh", svc.HandleTaxonomyRefreshRequested)

	return nil
}

func registerHandler[T any](
	r *OpsRouter,
	topic, name string,
	h func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	wrapped := handlerwrapper.WrapTransformingTyped(name, r.logger, r.tracer, r.metrics, h)
	r.Router.AddHandler(name, topic, r.bus, "", r.bus, wrapped)
}
