package workbook

import (
	"context"
	"fmt"
	"strings"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
)

var _ taxonomydb.Repository = (*Store)(nil)

// LoadTiles reads the TilesActivities sheet: column A is the tile name,
// column C the raw item list.
func (s *Store) LoadTiles(ctx context.Context) ([]taxonomydomain.TileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(SheetTiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetTiles, err)
	}

	var records []taxonomydomain.TileRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		tile := strings.TrimSpace(cellAt(row, 0))
		if tile == "" {
			continue
		}
		records = append(records, taxonomydomain.TileRecord{
			Tile:     tile,
			ItemsRaw: cellAt(row, 2),
		})
	}
	if len(records) == 0 {
		return nil, taxonomydb.ErrNotFound
	}
	return records, nil
}
