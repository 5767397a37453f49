package taxonomydb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// TileDBImpl is the bun-backed tile repository.
type TileDBImpl struct {
	DB *bun.DB
}

// LoadTiles returns every tile row ordered by board position.
func (db *TileDBImpl) LoadTiles(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
	var tiles []Tile
	err := db.DB.NewSelect().
		Model(&tiles).
		Order("position ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiles: %w", err)
	}
	if len(tiles) == 0 {
		return nil, ErrNotFound
	}

	records := make([]taxonomydomain.TileRecord, 0, len(tiles))
	for _, t := range tiles {
		records = append(records, taxonomydomain.TileRecord{
			Tile:     t.Name,
			ItemsRaw: t.Items,
		})
	}
	return records, nil
}
