package submissiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// Ledger is the stored form of a ledger row. Activity mirrors Tile for
// installations whose reporting still reads the legacy column.
type Ledger struct {
	bun.BaseModel `bun:"table:submission_ledger,alias:sl"`

	ID          int64     `bun:"id,pk,autoincrement"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	LookupKey   string    `bun:"lookup_key,notnull"`
	UserDisplay string    `bun:"user_display,notnull"`
	Tile        string    `bun:"tile,notnull"`
	Activity    *string   `bun:"activity"`
	Item        string    `bun:"item,notnull"`
	Amount      int       `bun:"amount,notnull"`
	ImageURL    string    `bun:"image_url"`
}
