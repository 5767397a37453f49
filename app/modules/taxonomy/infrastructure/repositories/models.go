package taxonomydb

import "github.com/uptrace/bun"

// Tile is one board tile row. Items holds the raw item cell; splitting and
// dedupe happen in the domain layer so both backends behave identically.
type Tile struct {
	bun.BaseModel `bun:"table:tiles,alias:t"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Name     string `bun:"name,notnull"`
	Items    string `bun:"items"`
	Position int    `bun:"position,notnull,default:0"`
}
