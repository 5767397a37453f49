package routingservice

import (
	"context"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
)

// FakeRoutingRepository provides a programmable stub for the routingdb.Repository interface.
type FakeRoutingRepository struct {
	trace []string

	ModeFunc    func(ctx context.Context) (routingdomain.Mode, error)
	EntriesFunc func(ctx context.Context) ([]routingdomain.Entry, error)
}

func NewFakeRoutingRepository() *FakeRoutingRepository {
	return &FakeRoutingRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRoutingRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoutingRepository) Mode(ctx context.Context) (routingdomain.Mode, error) {
	f.trace = append(f.trace, "Mode")
	if f.ModeFunc != nil {
		return f.ModeFunc(ctx)
	}
	return routingdomain.ModeChannel, nil
}

func (f *FakeRoutingRepository) Entries(ctx context.Context) ([]routingdomain.Entry, error) {
	f.trace = append(f.trace, "Entries")
	if f.EntriesFunc != nil {
		return f.EntriesFunc(ctx)
	}
	return nil, nil
}

var _ routingdb.Repository = (*FakeRoutingRepository)(nil)
