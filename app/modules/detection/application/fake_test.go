package detectionservice

import (
	"context"

	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
)

// FakeClient provides a programmable stub for the Client interface.
type FakeClient struct {
	AnalyzeFunc func(ctx context.Context, imageURL string) (Result, error)
}

func (f *FakeClient) Analyze(ctx context.Context, imageURL string) (Result, error) {
	if f.AnalyzeFunc != nil {
		return f.AnalyzeFunc(ctx, imageURL)
	}
	return Result{}, nil
}

// FakeCostRepository provides a programmable stub for the cost ledger.
type FakeCostRepository struct {
	Entries        []detectiondb.CostEntry
	AppendCostFunc func(ctx context.Context, entry detectiondb.CostEntry) error
}

func (f *FakeCostRepository) AppendCost(ctx context.Context, entry detectiondb.CostEntry) error {
	f.Entries = append(f.Entries, entry)
	if f.AppendCostFunc != nil {
		return f.AppendCostFunc(ctx, entry)
	}
	return nil
}

var (
	_ Client                     = (*FakeClient)(nil)
	_ detectiondb.CostRepository = (*FakeCostRepository)(nil)
)
