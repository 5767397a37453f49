// Package taxonomy wires the taxonomy cache module.
package taxonomy

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Module owns the taxonomy cache. It has no router of its own: refresh is
// triggered from the ops module, and the snapshot is consumed by submission
// validation.
type Module struct {
	Service taxonomyservice.Service
}

// NewTaxonomyModule constructs the module and performs the boot load. A boot
// load that gives up is reported but not fatal; the service stays not-ready.
func NewTaxonomyModule(
	ctx context.Context,
	repo taxonomydb.Repository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *Module {
	svc := taxonomyservice.NewTaxonomyService(repo, logger, rec, tracer)
	go func() {
		if err := svc.BootLoad(ctx); err != nil {
			logger.ErrorContext(ctx, "Taxonomy boot load gave up", attr.Error(err))
		}
	}()
	return &Module{Service: svc}
}
