package submissiondomain

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

// Matching defaults. The accept threshold is inclusive.
const (
	DefaultMatchThreshold = 88
	traceFloor            = 60
	traceLimit            = 10
)

// Match is the winning candidate of a fuzzy match.
type Match struct {
	Tile     string
	Item     string
	Score    float64
	Detected string
}

// TracePair is one scored comparison kept for debugging near-misses.
type TracePair struct {
	Detected  string
	Candidate string
	Score     float64
}

// Ratio is the levenshtein similarity of two strings on a 0..100 scale.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * float64(la+lb-dist) / float64(la+lb)
}

// TokenSetRatio scores two strings ignoring word order and repetition: the
// token intersection and the two difference sets are joined into sorted
// strings and the best pairwise Ratio wins. Substring-heavy pairs like
// "zulrah tanzanite fang" vs "tanzanite fang" score near 100.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			diffB = append(diffB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	base := strings.Join(inter, " ")
	combA := joinNonEmpty(base, strings.Join(diffA, " "))
	combB := joinNonEmpty(base, strings.Join(diffB, " "))

	score := Ratio(base, combA)
	if s := Ratio(base, combB); s > score {
		score = s
	}
	if s := Ratio(combA, combB); s > score {
		score = s
	}
	return score
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// candidate is one comparable taxonomy entry: a bare tile or a (tile, item).
type candidate struct {
	tile string
	item string
	text string
}

// BestMatch scores every detected string against every tile and (tile, item)
// pair. The highest score at or above the threshold wins, first seen breaking
// ties. A tile-only winner falls back to the tile's first item when it has
// one. The trace keeps comparisons scoring at least 60, the top ten by score.
func BestMatch(detected []string, snap *taxonomydomain.Snapshot, threshold float64) (Match, []TracePair, bool) {
	if snap == nil {
		return Match{}, nil, false
	}

	var candidates []candidate
	for _, tile := range snap.Tiles() {
		candidates = append(candidates, candidate{tile: tile, text: Normalize(tile)})
		for _, item := range snap.Items(tile) {
			candidates = append(candidates, candidate{tile: tile, item: item, text: Normalize(item)})
		}
	}

	var (
		best  Match
		found bool
		trace []TracePair
	)

	for _, d := range detected {
		variants := ExpandAliases(d)
		for _, c := range candidates {
			score := 0.0
			for _, v := range variants {
				if s := TokenSetRatio(v, c.text); s > score {
					score = s
				}
			}
			if score >= traceFloor {
				trace = append(trace, TracePair{Detected: d, Candidate: candidateLabel(c), Score: score})
			}
			if score >= threshold && (!found || score > best.Score) {
				best = Match{Tile: c.tile, Item: c.item, Score: score, Detected: d}
				found = true
			}
		}
	}

	sort.SliceStable(trace, func(i, j int) bool { return trace[i].Score > trace[j].Score })
	if len(trace) > traceLimit {
		trace = trace[:traceLimit]
	}

	if found && best.Item == "" {
		if items := snap.Items(best.Tile); len(items) > 0 {
			best.Item = items[0]
		}
	}
	return best, trace, found
}

func candidateLabel(c candidate) string {
	if c.item == "" {
		return c.tile
	}
	return c.tile + " / " + c.item
}
