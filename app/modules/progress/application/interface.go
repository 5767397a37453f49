package progressservice

import (
	"context"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// Service answers compiled-progress queries from team channels.
type Service interface {
	// HandleProgressRequested renders the compiled progress for one tile,
	// chunked for the transport, optionally with an approved-per-tile chart.
	HandleProgressRequested(ctx context.Context, p *events.ProgressRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
