package progressservice

import (
	"context"
	"sort"
	"time"

	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// FakeTaxonomy only matters for the readiness gate here.
type FakeTaxonomy struct {
	NotReady bool
}

func (f *FakeTaxonomy) Load(ctx context.Context) error     { return nil }
func (f *FakeTaxonomy) BootLoad(ctx context.Context) error { return nil }
func (f *FakeTaxonomy) Snapshot() *taxonomydomain.Snapshot { return nil }
func (f *FakeTaxonomy) Ready() bool                        { return !f.NotReady }
func (f *FakeTaxonomy) LastError() error                   { return nil }
func (f *FakeTaxonomy) LoadedAt() time.Time                { return time.Time{} }

// FakeRouting provides a programmable stub for the routing service.
type FakeRouting struct {
	TeamIndexForChannelFunc func(ctx context.Context, channelID string) (int, routingdomain.Entry, error)
}

func (f *FakeRouting) Resolve(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error) {
	return routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

func (f *FakeRouting) TeamIndexForChannel(ctx context.Context, channelID string) (int, routingdomain.Entry, error) {
	if f.TeamIndexForChannelFunc != nil {
		return f.TeamIndexForChannelFunc(ctx, channelID)
	}
	return 0, routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

// FakeCompiled serves compiled messages from maps keyed by tile then team.
type FakeCompiled struct {
	Tiles        map[int]map[int][]string
	TileNumsFunc func(ctx context.Context) ([]int, error)
	CompiledFunc func(ctx context.Context, tileNumber, teamIndex int) ([]string, bool, error)
}

func (f *FakeCompiled) TileNumbers(ctx context.Context) ([]int, error) {
	if f.TileNumsFunc != nil {
		return f.TileNumsFunc(ctx)
	}
	numbers := make([]int, 0, len(f.Tiles))
	for n := range f.Tiles {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

func (f *FakeCompiled) Compiled(ctx context.Context, tileNumber, teamIndex int) ([]string, bool, error) {
	if f.CompiledFunc != nil {
		return f.CompiledFunc(ctx, tileNumber, teamIndex)
	}
	teams, ok := f.Tiles[tileNumber]
	if !ok {
		return nil, false, nil
	}
	return teams[teamIndex], true, nil
}

// FakeLedger returns canned rows per lookup key.
type FakeLedger struct {
	Rows           map[string][]submissiondb.LedgerRow
	LedgerRowsFunc func(ctx context.Context, lookupKey string) ([]submissiondb.LedgerRow, error)
}

func (f *FakeLedger) AppendLedger(ctx context.Context, row submissiondb.LedgerRow) error {
	return nil
}

func (f *FakeLedger) LedgerRows(ctx context.Context, lookupKey string) ([]submissiondb.LedgerRow, error) {
	if f.LedgerRowsFunc != nil {
		return f.LedgerRowsFunc(ctx, lookupKey)
	}
	return f.Rows[lookupKey], nil
}

var (
	_ taxonomyservice.Service = (*FakeTaxonomy)(nil)
	_ routingservice.Service  = (*FakeRouting)(nil)
	_ progressdb.Repository   = (*FakeCompiled)(nil)
	_ submissiondb.Repository = (*FakeLedger)(nil)
)
