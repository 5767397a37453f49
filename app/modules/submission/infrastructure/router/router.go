// Package submissionrouter subscribes the submission service to gateway
// events.
package submissionrouter

import (
	"context"
	"log/slog"

	wmmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	submissionservice "github.com/TanzimK12/pvm-kingdom/app/modules/submission/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
	pvmmiddleware "github.com/TanzimK12/pvm-kingdom/internal/middleware"
)

// SubmissionRouter owns the watermill router for the submission module.
type SubmissionRouter struct {
	logger   *slog.Logger
	Router   *message.Router
	bus      eventbus.EventBus
	tracer   trace.Tracer
	metrics  metrics.Recorder
	registry *prometheus.Registry
}

// NewSubmissionRouter creates the router shell; Configure attaches handlers.
func NewSubmissionRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	tracer trace.Tracer,
	rec metrics.Recorder,
	registry *prometheus.Registry,
) *SubmissionRouter {
	return &SubmissionRouter{
		logger:   logger,
		Router:   router,
		bus:      bus,
		tracer:   tracer,
		metrics:  rec,
		registry: registry,
	}
}

// Configure adds middleware and registers every submission event handler.
func (r *SubmissionRouter) Configure(ctx context.Context, svc submissionservice.Service) error {
	if r.registry != nil {
		builder := wmmetrics.NewPrometheusMetricsBuilder(r.registry, "", "")
		builder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		pvmmiddleware.CommonMetadata("submission"),
		middleware.Recoverer,
	)

	registerHandler(r, events.SubmissionSubmitRequestedV1, "submission.submit", svc.Create)
	registerHandler(r, events.SubmissionAutoSubmitRequestedV1, "submission.autosubmit", svc.CreateAuto)
	registerHandler(r, events.SubmissionImageOnlyRequestedV1, "submission.imageonly", svc.CreateImageOnly)
	registerHandler(r, events.SubmissionApprovalPostedV1, "submission.approval_posted", svc.HandleApprovalPosted)
	registerHandler(r, events.SubmissionApproveClickedV1, "submission.approve", svc.HandleApproveClicked)
	registerHandler(r, events.SubmissionDenyClickedV1, "submission.deny", svc.HandleDenyClicked)
	registerHandler(r, events.SubmissionItemSelectedV1, "submission.item_selected", svc.HandleItemSelected)
	registerHandler(r, events.SubmissionAmountEnteredV1, "submission.amount_entered", svc.HandleAmountEntered)
	registerHandler(r, events.SubmissionReactionAddedV1, "submission.reaction", svc.HandleReactionAdded)

	return nil
}

// registerHandler wires one typed handler. The publish topic is left empty:
// handlers bind each outbound message to its topic via metadata.
func registerHandler[T any](
	r *SubmissionRouter,
	topic, name string,
	h func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	wrapped := handlerwrapper.WrapTransformingTyped(name, r.logger, r.tracer, r.metrics, h)
	r.Router.AddHandler(name, topic, r.bus, "", r.bus, wrapped)
}
