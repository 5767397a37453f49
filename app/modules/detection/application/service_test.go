package detectionservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

func newTestService(client *FakeClient, costs *FakeCostRepository) *DetectionService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	pricing := Pricing{PerImage: 0.00255, InputPer1K: 0.0003, OutputPer1K: 0.0006}
	return NewDetectionService(client, costs, pricing, "gpt-4o-mini", logger, metrics.NoOp{}, tracer)
}

func TestDetectionService_AnalyzeAndLog(t *testing.T) {
	ctx := context.Background()

	client := &FakeClient{
		AnalyzeFunc: func(ctx context.Context, imageURL string) (Result, error) {
			return Result{
				Items:            []string{"Tanzanite fang"},
				RSN:              "Zezima",
				PromptTokens:     1000,
				CompletionTokens: 500,
			}, nil
		},
	}
	costs := &FakeCostRepository{}

	result, err := newTestService(client, costs).AnalyzeAndLog(ctx, "https://cdn.example/shot.png", "Zezima")
	if err != nil {
		t.Fatalf("AnalyzeAndLog returned error: %v", err)
	}
	if result.RSN != "Zezima" || len(result.Items) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if len(costs.Entries) != 1 {
		t.Fatalf("cost ledger has %d entries, want 1", len(costs.Entries))
	}
	entry := costs.Entries[0]
	if entry.User != "Zezima" || entry.Model != "gpt-4o-mini" || entry.Images != 1 {
		t.Errorf("unexpected cost entry: %+v", entry)
	}
	if entry.CostUSD != 0.00315 {
		t.Errorf("cost = %v, want 0.00315", entry.CostUSD)
	}
}

func TestDetectionService_CostFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()

	client := &FakeClient{
		AnalyzeFunc: func(ctx context.Context, imageURL string) (Result, error) {
			return Result{Items: []string{"Magic fang"}}, nil
		},
	}
	costs := &FakeCostRepository{
		AppendCostFunc: func(ctx context.Context, entry detectiondb.CostEntry) error {
			return errors.New("cost backend down")
		},
	}

	result, err := newTestService(client, costs).AnalyzeAndLog(ctx, "url", "user")
	if err != nil {
		t.Fatalf("a cost append failure must not fail the analysis: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestDetectionService_QuotaErrorPropagates(t *testing.T) {
	ctx := context.Background()

	client := &FakeClient{
		AnalyzeFunc: func(ctx context.Context, imageURL string) (Result, error) {
			return Result{}, ErrQuotaExceeded
		},
	}
	costs := &FakeCostRepository{}

	_, err := newTestService(client, costs).AnalyzeAndLog(ctx, "url", "user")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
	if len(costs.Entries) != 0 {
		t.Error("no cost entry should be written for a refused call")
	}
}
