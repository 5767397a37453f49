package workbook

import (
	"context"
	"fmt"
	"time"

	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
)

var _ detectiondb.CostRepository = (*Store)(nil)

// AppendCost appends one row to the APICostLog sheet.
func (s *Store) AppendCost(ctx context.Context, entry detectiondb.CostEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.appendRow(SheetCosts, []interface{}{
		entry.Timestamp.Format(time.RFC3339),
		entry.User,
		entry.Model,
		entry.Images,
		entry.PromptTokens,
		entry.CompletionTokens,
		entry.CostUSD,
		entry.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to append cost entry: %w", err)
	}
	return nil
}
