// Package taxonomydomain holds the competition taxonomy: the set of tiles on
// the board and the items that count for each tile.
package taxonomydomain

import "strings"

// MaxItemsPerTile caps how many items a single tile row contributes. Rows in
// the source ledger occasionally carry freeform junk past this point.
const MaxItemsPerTile = 25

// TileRecord is one raw tile row as stored, before splitting and dedupe.
type TileRecord struct {
	Tile     string
	ItemsRaw string
}

// Snapshot is an immutable view of the taxonomy. It is replaced wholesale on
// every reload; callers must never mutate the returned slices.
type Snapshot struct {
	tiles     []string
	items     map[string][]string
	canonical map[string]string
}

// BuildSnapshot folds raw tile rows into a snapshot. Rows with an empty tile
// cell are skipped. Repeated tile names are unioned in first-seen order, and
// items are deduplicated case-insensitively per tile.
func BuildSnapshot(rows []TileRecord) *Snapshot {
	s := &Snapshot{
		items:     make(map[string][]string),
		canonical: make(map[string]string),
	}
	seen := make(map[string]map[string]bool)

	for _, row := range rows {
		tile := strings.TrimSpace(row.Tile)
		if tile == "" {
			continue
		}
		key := strings.ToLower(tile)
		if _, ok := s.canonical[key]; !ok {
			s.canonical[key] = tile
			s.tiles = append(s.tiles, tile)
			seen[key] = make(map[string]bool)
		}
		for _, item := range SplitItems(row.ItemsRaw) {
			if len(s.items[key]) >= MaxItemsPerTile {
				break
			}
			ik := strings.ToLower(item)
			if seen[key][ik] {
				continue
			}
			seen[key][ik] = true
			s.items[key] = append(s.items[key], item)
		}
	}
	return s
}

// Tiles returns tile names in first-seen order.
func (s *Snapshot) Tiles() []string {
	return s.tiles
}

// Canonical resolves a tile name case-insensitively to its stored spelling.
func (s *Snapshot) Canonical(name string) (string, bool) {
	tile, ok := s.canonical[strings.ToLower(strings.TrimSpace(name))]
	return tile, ok
}

// Items returns the items for a tile, in first-seen order. The lookup is
// case-insensitive; an unknown tile yields nil.
func (s *Snapshot) Items(tile string) []string {
	return s.items[strings.ToLower(strings.TrimSpace(tile))]
}

// HasItem reports whether an item counts for a tile, case-insensitively.
func (s *Snapshot) HasItem(tile, item string) bool {
	want := strings.ToLower(strings.TrimSpace(item))
	for _, have := range s.Items(tile) {
		if strings.ToLower(have) == want {
			return true
		}
	}
	return false
}

// SplitItems splits an item cell on commas, semicolons and newlines, trims
// each piece and drops empties and case-insensitive duplicates.
func SplitItems(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	var out []string
	seen := make(map[string]bool)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
