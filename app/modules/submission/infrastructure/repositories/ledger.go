package submissiondb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// LedgerDBImpl is the bun-backed ledger repository.
type LedgerDBImpl struct {
	DB *bun.DB
}

// AppendLedger inserts one ledger row. The legacy activity column is kept
// equal to the tile.
func (db *LedgerDBImpl) AppendLedger(ctx context.Context, row LedgerRow) error {
	activity := row.Tile
	stored := Ledger{
		CreatedAt:   row.CreatedAt,
		LookupKey:   row.LookupKey,
		UserDisplay: row.UserDisplay,
		Tile:        row.Tile,
		Activity:    &activity,
		Item:        row.Item,
		Amount:      row.Amount,
		ImageURL:    row.ImageURL,
	}
	if _, err := db.DB.NewInsert().Model(&stored).Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}
	return nil
}

// LedgerRows returns every row for a lookup key, oldest first.
func (db *LedgerDBImpl) LedgerRows(ctx context.Context, lookupKey string) ([]LedgerRow, error) {
	var stored []Ledger
	err := db.DB.NewSelect().
		Model(&stored).
		Where("lookup_key = ?", lookupKey).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger rows: %w", err)
	}

	rows := make([]LedgerRow, 0, len(stored))
	for _, s := range stored {
		rows = append(rows, LedgerRow{
			CreatedAt:   s.CreatedAt,
			LookupKey:   s.LookupKey,
			UserDisplay: s.UserDisplay,
			Tile:        s.Tile,
			Item:        s.Item,
			Amount:      s.Amount,
			ImageURL:    s.ImageURL,
		})
	}
	return rows, nil
}
