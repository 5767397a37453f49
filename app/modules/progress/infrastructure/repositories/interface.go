package progressdb

import "context"

// Repository reads the compiled progress messages organizers maintain per
// tile and team.
type Repository interface {
	// TileNumbers returns the distinct tile numbers with compiled content,
	// ascending.
	TileNumbers(ctx context.Context) ([]int, error)

	// Compiled returns the messages for one tile and team. The boolean
	// distinguishes a tile that does not exist from one with no content yet.
	Compiled(ctx context.Context, tileNumber, teamIndex int) ([]string, bool, error)
}
