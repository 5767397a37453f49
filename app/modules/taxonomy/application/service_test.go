package taxonomyservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

func newTestService(repo *FakeTileRepository) *TaxonomyService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	s := NewTaxonomyService(repo, logger, metrics.NoOp{}, tracer)
	s.bootBase = time.Millisecond
	s.bootCap = 5 * time.Millisecond
	return s
}

func TestTaxonomyService_Load(t *testing.T) {
	ctx := context.Background()

	repo := NewFakeTileRepository()
	repo.LoadTilesFunc = func(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
		return []taxonomydomain.TileRecord{
			{Tile: "Zulrah", ItemsRaw: "Tanzanite fang"},
			{Tile: "Vorkath", ItemsRaw: "Vorkath's head"},
		}, nil
	}

	s := newTestService(repo)
	if s.Ready() {
		t.Fatal("service should not be ready before the first load")
	}

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !s.Ready() {
		t.Fatal("service should be ready after a successful load")
	}
	if s.LastError() != nil {
		t.Errorf("LastError = %v, want nil", s.LastError())
	}
	if got := len(s.Snapshot().Tiles()); got != 2 {
		t.Errorf("snapshot has %d tiles, want 2", got)
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set after a successful load")
	}
}

func TestTaxonomyService_LoadFailureKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	loadErr := errors.New("backend unavailable")

	repo := NewFakeTileRepository()
	repo.LoadTilesFunc = func(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
		return []taxonomydomain.TileRecord{{Tile: "Zulrah", ItemsRaw: "Tanzanite fang"}}, nil
	}

	s := newTestService(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("initial Load returned error: %v", err)
	}
	before := s.Snapshot()

	repo.LoadTilesFunc = func(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
		return nil, loadErr
	}
	if err := s.Load(ctx); err == nil {
		t.Fatal("Load should return the backend error")
	}

	if s.Snapshot() != before {
		t.Error("failed reload must keep the previous snapshot")
	}
	if !s.Ready() {
		t.Error("service stays ready on a degraded reload")
	}
	if !errors.Is(s.LastError(), loadErr) {
		t.Errorf("LastError = %v, want wrapped %v", s.LastError(), loadErr)
	}
}

func TestTaxonomyService_BootLoadRetries(t *testing.T) {
	ctx := context.Background()
	calls := 0

	repo := NewFakeTileRepository()
	repo.LoadTilesFunc = func(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("not yet")
		}
		return []taxonomydomain.TileRecord{{Tile: "Zulrah", ItemsRaw: ""}}, nil
	}

	s := newTestService(repo)
	if err := s.BootLoad(ctx); err != nil {
		t.Fatalf("BootLoad returned error: %v", err)
	}
	if calls != 3 {
		t.Errorf("repository called %d times, want 3", calls)
	}
	if !s.Ready() {
		t.Error("service should be ready after BootLoad succeeds")
	}
}

func TestTaxonomyService_BootLoadGivesUp(t *testing.T) {
	ctx := context.Background()
	calls := 0

	repo := NewFakeTileRepository()
	repo.LoadTilesFunc = func(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
		calls++
		return nil, errors.New("still down")
	}

	s := newTestService(repo)
	if err := s.BootLoad(ctx); err == nil {
		t.Fatal("BootLoad should give up with an error")
	}
	if calls != bootRetryAttempts {
		t.Errorf("repository called %d times, want %d", calls, bootRetryAttempts)
	}
	if s.Ready() {
		t.Error("service must stay not-ready when BootLoad gives up")
	}
}
