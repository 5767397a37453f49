package taxonomyservice

import (
	"context"
	"time"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// Service exposes the taxonomy cache.
type Service interface {
	// Load refreshes the snapshot from storage. A failed refresh keeps the
	// previous snapshot.
	Load(ctx context.Context) error

	// BootLoad performs the initial load with retries. If it gives up, the
	// service stays not-ready and handlers must refuse work.
	BootLoad(ctx context.Context) error

	Snapshot() *taxonomydomain.Snapshot
	Ready() bool
	LastError() error
	LoadedAt() time.Time
}
