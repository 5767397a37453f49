// Package routing wires the routing resolver module.
package routing

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module owns routing resolution. Like taxonomy it carries no router; it is
// consumed by the submission and progress flows.
type Module struct {
	Service routingservice.Service
}

// NewRoutingModule constructs the module.
func NewRoutingModule(
	repo routingdb.Repository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *Module {
	return &Module{
		Service: routingservice.NewRoutingService(repo, logger, rec, tracer),
	}
}
