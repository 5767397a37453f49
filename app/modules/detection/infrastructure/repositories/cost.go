package detectiondb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CostDBImpl is the bun-backed cost ledger.
type CostDBImpl struct {
	DB *bun.DB
}

// AppendCost inserts one cost row.
func (db *CostDBImpl) AppendCost(ctx context.Context, entry CostEntry) error {
	stored := APICost{
		Timestamp:        entry.Timestamp,
		UserDisplay:      entry.User,
		Model:            entry.Model,
		Images:           entry.Images,
		PromptTokens:     entry.PromptTokens,
		CompletionTokens: entry.CompletionTokens,
		CostUSD:          entry.CostUSD,
		Notes:            entry.Notes,
	}
	if _, err := db.DB.NewInsert().Model(&stored).Exec(ctx); err != nil {
		return fmt.Errorf("failed to append cost entry: %w", err)
	}
	return nil
}
