package opsservice

import (
	"context"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// Service handles the operator-facing commands.
type Service interface {
	// HandleHealthRequested reports readiness, cache age and live counts.
	HandleHealthRequested(ctx context.Context, p *events.HealthRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleResyncRequested asks the gateway to re-register its command
	// surface. Restricted to elevated users.
	HandleResyncRequested(ctx context.Context, p *events.ResyncRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleTaxonomyRefreshRequested forces a taxonomy reload.
	HandleTaxonomyRefreshRequested(ctx context.Context, p *events.TaxonomyRefreshRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
