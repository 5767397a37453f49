package progressdb

import "github.com/uptrace/bun"

// CompiledMessage is one compiled progress line for a tile and team.
type CompiledMessage struct {
	bun.BaseModel `bun:"table:compiled_messages,alias:cm"`

	ID         int64  `bun:"id,pk,autoincrement"`
	TileNumber int    `bun:"tile_number,notnull"`
	TeamIndex  int    `bun:"team_index,notnull"`
	Message    string `bun:"message,notnull"`
	Position   int    `bun:"position,notnull,default:0"`
}
