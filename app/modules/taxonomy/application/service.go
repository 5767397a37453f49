// Package taxonomyservice maintains the in-memory taxonomy snapshot used by
// submission validation and fuzzy matching.
package taxonomyservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// TaxonomyService implements the Service interface.
type TaxonomyService struct {
	repo    taxonomydb.Repository
	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer

	bootBase time.Duration
	bootCap  time.Duration

	mu       sync.RWMutex
	snapshot *taxonomydomain.Snapshot
	loadedAt time.Time
	lastErr  error
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(
	repo taxonomydb.Repository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *TaxonomyService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return &TaxonomyService{
		repo:     repo,
		logger:   logger,
		metrics:  rec,
		tracer:   tracer,
		bootBase: bootRetryBase,
		bootCap:  bootRetryCap,
	}
}

// Load refreshes the snapshot from storage. On failure after a previous
// successful load the old snapshot is kept and the error is recorded so
// health reporting can surface the degraded state.
func (s *TaxonomyService) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "TaxonomyLoad", trace.WithAttributes(
		attribute.String("operation", "TaxonomyLoad"),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "TaxonomyLoad", "taxonomy")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "TaxonomyLoad", "taxonomy", time.Since(start))
	}()

	rows, err := s.repo.LoadTiles(ctx)
	if err != nil {
		wrapped := fmt.Errorf("taxonomy load: %w", err)
		s.mu.Lock()
		s.lastErr = wrapped
		s.mu.Unlock()

		s.logger.ErrorContext(ctx, "Taxonomy load failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(wrapped),
		)
		span.RecordError(wrapped)
		s.metrics.RecordOperationFailure(ctx, "TaxonomyLoad", "taxonomy")
		return wrapped
	}

	snapshot := taxonomydomain.BuildSnapshot(rows)

	s.mu.Lock()
	s.snapshot = snapshot
	s.loadedAt = time.Now().UTC()
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Taxonomy loaded",
		attr.ExtractCorrelationID(ctx),
		attr.Int("tiles", len(snapshot.Tiles())),
	)
	s.metrics.RecordOperationSuccess(ctx, "TaxonomyLoad", "taxonomy")
	return nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *TaxonomyService) Snapshot() *taxonomydomain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Ready reports whether at least one load has succeeded.
func (s *TaxonomyService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

// LastError returns the most recent load error, nil when healthy.
func (s *TaxonomyService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LoadedAt returns when the current snapshot was taken.
func (s *TaxonomyService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
