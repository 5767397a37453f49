package submissionservice

import (
	"context"
	"time"

	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// FakeTaxonomy serves a fixed snapshot.
type FakeTaxonomy struct {
	Snap     *taxonomydomain.Snapshot
	NotReady bool
	LastErr  error
}

func (f *FakeTaxonomy) Load(ctx context.Context) (err error)     { return f.LastErr }
func (f *FakeTaxonomy) BootLoad(ctx context.Context) (err error) { return f.LastErr }
func (f *FakeTaxonomy) Snapshot() *taxonomydomain.Snapshot {
	if f.NotReady {
		return nil
	}
	return f.Snap
}
func (f *FakeTaxonomy) Ready() bool         { return !f.NotReady }
func (f *FakeTaxonomy) LastError() error    { return f.LastErr }
func (f *FakeTaxonomy) LoadedAt() time.Time { return time.Time{} }

// FakeRouting provides a programmable stub for the routing service.
type FakeRouting struct {
	ResolveFunc             func(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error)
	TeamIndexForChannelFunc func(ctx context.Context, channelID string) (int, routingdomain.Entry, error)
}

func (f *FakeRouting) Resolve(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error) {
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, guildID, channelID)
	}
	return routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

func (f *FakeRouting) TeamIndexForChannel(ctx context.Context, channelID string) (int, routingdomain.Entry, error) {
	if f.TeamIndexForChannelFunc != nil {
		return f.TeamIndexForChannelFunc(ctx, channelID)
	}
	return 0, routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

// FakeDetection provides a programmable stub for the detection service.
type FakeDetection struct {
	AnalyzeAndLogFunc func(ctx context.Context, imageURL, user string) (detectionservice.Result, error)
}

func (f *FakeDetection) AnalyzeAndLog(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
	if f.AnalyzeAndLogFunc != nil {
		return f.AnalyzeAndLogFunc(ctx, imageURL, user)
	}
	return detectionservice.Result{}, nil
}

// FakeLedger records appended rows and can be programmed to fail.
type FakeLedger struct {
	Rows             []submissiondb.LedgerRow
	AppendLedgerFunc func(ctx context.Context, row submissiondb.LedgerRow) error
	LedgerRowsFunc   func(ctx context.Context, lookupKey string) ([]submissiondb.LedgerRow, error)
}

func (f *FakeLedger) AppendLedger(ctx context.Context, row submissiondb.LedgerRow) error {
	if f.AppendLedgerFunc != nil {
		if err := f.AppendLedgerFunc(ctx, row); err != nil {
			return err
		}
	}
	f.Rows = append(f.Rows, row)
	return nil
}

func (f *FakeLedger) LedgerRows(ctx context.Context, lookupKey string) ([]submissiondb.LedgerRow, error) {
	if f.LedgerRowsFunc != nil {
		return f.LedgerRowsFunc(ctx, lookupKey)
	}
	return f.Rows, nil
}

var (
	_ taxonomyservice.Service  = (*FakeTaxonomy)(nil)
	_ routingservice.Service   = (*FakeRouting)(nil)
	_ detectionservice.Service = (*FakeDetection)(nil)
	_ submissiondb.Repository  = (*FakeLedger)(nil)
)
