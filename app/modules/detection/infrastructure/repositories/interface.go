package detectiondb

import (
	"context"
	"time"
)

// CostEntry is one row in the write-only API cost ledger.
type CostEntry struct {
	Timestamp        time.Time
	User             string
	Model            string
	Images           int
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
	Notes            string
}

// CostRepository appends to the API cost ledger. The ledger is never read by
// the service; organizers reconcile it against provider invoices.
type CostRepository interface {
	AppendCost(ctx context.Context, entry CostEntry) error
}
