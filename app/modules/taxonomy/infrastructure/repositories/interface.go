package taxonomydb

import (
	"context"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// Repository loads raw tile rows from the configured backend.
type Repository interface {
	LoadTiles(ctx context.Context) ([]taxonomydomain.TileRecord, error)
}
