package detectiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// APICost is the stored form of a cost entry.
type APICost struct {
	bun.BaseModel `bun:"table:api_cost_log,alias:acl"`

	ID               int64     `bun:"id,pk,autoincrement"`
	Timestamp        time.Time `bun:"timestamp,notnull"`
	UserDisplay      string    `bun:"user_display,notnull"`
	Model            string    `bun:"model,notnull"`
	Images           int       `bun:"images,notnull"`
	PromptTokens     int       `bun:"prompt_tokens,notnull"`
	CompletionTokens int       `bun:"completion_tokens,notnull"`
	CostUSD          float64   `bun:"cost_usd,notnull"`
	Notes            string    `bun:"notes"`
}
