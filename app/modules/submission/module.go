// Package submission wires the submission state machine module.
package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	submissionservice "github.com/TanzimK12/pvm-kingdom/app/modules/submission/application"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	submissionrouter "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/router"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module is the submission review pipeline.
type Module struct {
	Service submissionservice.Service
	Router  *submissionrouter.SubmissionRouter
}

// NewSubmissionModule wires service and router.
func NewSubmissionModule(
	ctx context.Context,
	taxonomy taxonomyservice.Service,
	routing routingservice.Service,
	detection detectionservice.Service,
	ledger submissiondb.Repository,
	opts submissionservice.Options,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	svc := submissionservice.NewSubmissionService(
		taxonomy, routing, detection, ledger, opts, logger, rec, tracer,
	)

	r := submissionrouter.NewSubmissionRouter(logger, router, bus, tracer, rec, registry)
	if err := r.Configure(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to configure submission router: %w", err)
	}

	return &Module{Service: svc, Router: r}, nil
}
