package progressdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CompiledDBImpl is the bun-backed compiled-messages repository.
type CompiledDBImpl struct {
	DB *bun.DB
}

// TileNumbers returns distinct tile numbers ascending.
func (db *CompiledDBImpl) TileNumbers(ctx context.Context) ([]int, error) {
	var numbers []int
	err := db.DB.NewSelect().
		Model((*CompiledMessage)(nil)).
		ColumnExpr("DISTINCT tile_number").
		OrderExpr("tile_number ASC").
		Scan(ctx, &numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to load tile numbers: %w", err)
	}
	return numbers, nil
}

// Compiled returns the messages for one tile and team in stored order.
func (db *CompiledDBImpl) Compiled(ctx context.Context, tileNumber, teamIndex int) ([]string, bool, error) {
	exists, err := db.DB.NewSelect().
		Model((*CompiledMessage)(nil)).
		Where("tile_number = ?", tileNumber).
		Exists(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check tile %d: %w", tileNumber, err)
	}
	if !exists {
		return nil, false, nil
	}

	var rows []CompiledMessage
	err = db.DB.NewSelect().
		Model(&rows).
		Where("tile_number = ? AND team_index = ?", tileNumber, teamIndex).
		Order("position ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load compiled messages for tile %d: %w", tileNumber, err)
	}

	messages := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Message != "" {
			messages = append(messages, r.Message)
		}
	}
	return messages, true, nil
}
