package taxonomyservice

import (
	"context"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
)

// FakeTileRepository provides a programmable stub for the taxonomydb.Repository interface.
type FakeTileRepository struct {
	trace []string

	LoadTilesFunc func(ctx context.Context) ([]taxonomydomain.TileRecord, error)
}

func NewFakeTileRepository() *FakeTileRepository {
	return &FakeTileRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTileRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTileRepository) LoadTiles(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
	f.trace = append(f.trace, "LoadTiles")
	if f.LoadTilesFunc != nil {
		return f.LoadTilesFunc(ctx)
	}
	return nil, nil
}

var _ taxonomydb.Repository = (*FakeTileRepository)(nil)
