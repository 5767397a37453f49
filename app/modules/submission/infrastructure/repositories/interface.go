package submissiondb

import (
	"context"
	"time"
)

// LedgerRow is one approved-or-submitted drop in the competition ledger.
// Legacy installations carry an extra Activity column; backends keep it
// aligned internally so callers never see it.
type LedgerRow struct {
	CreatedAt   time.Time
	LookupKey   string
	UserDisplay string
	Tile        string
	Item        string
	Amount      int
	ImageURL    string
}

// Repository appends to and reads from the submission ledger.
type Repository interface {
	// AppendLedger adds one row. Failure must leave the ledger untouched.
	AppendLedger(ctx context.Context, row LedgerRow) error

	// LedgerRows returns all rows for a lookup key, oldest first.
	LedgerRows(ctx context.Context, lookupKey string) ([]LedgerRow, error)
}
