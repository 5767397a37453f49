package submissiondomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
)

func testSnapshot() *taxonomydomain.Snapshot {
	return taxonomydomain.BuildSnapshot([]taxonomydomain.TileRecord{
		{Tile: "Zulrah", ItemsRaw: "Tanzanite fang, Magic fang, Serpentine visage"},
		{Tile: "Tombs of Amascut", ItemsRaw: "Lightbearer, Osmumten's fang"},
		{Tile: "Vorkath", ItemsRaw: "Vorkath's head"},
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tanzanite Fang!", "tanzanite fang"},
		{"  osmumten's_FANG  ", "osmumten s fang"},
		{"***", ""},
		{"a  b\tc", "a b c"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandAliases(t *testing.T) {
	got := ExpandAliases("TOA")
	want := []string{"toa", "tombs of amascut"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandAliases mismatch (-want +got):\n%s", diff)
	}

	got = ExpandAliases("dwh spec")
	want = []string{"dwh spec", "dragon warhammer spec", "dragon warhammer"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("substring expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("tanzanite fang", "tanzanite fang"); got != 100 {
		t.Errorf("identical strings scored %.2f, want 100", got)
	}
	// len 6 + len 7, one edit: 100 * 12 / 13.
	want := 100 * 12.0 / 13.0
	if got := Ratio("zezima", "zezimaa"); got != want {
		t.Errorf("Ratio(zezima, zezimaa) = %.4f, want %.4f", got, want)
	}
	if got := Ratio("zezima", "woox"); got >= 60 {
		t.Errorf("unrelated names scored %.2f, want well below 60", got)
	}
	if got := Ratio("", ""); got != 0 {
		t.Errorf("Ratio of two empty strings = %.2f, want 0", got)
	}
}

func TestTokenSetRatioIgnoresWordOrderAndSupersets(t *testing.T) {
	if got := TokenSetRatio("fang tanzanite", "tanzanite fang"); got != 100 {
		t.Errorf("reordered tokens scored %.2f, want 100", got)
	}
	if got := TokenSetRatio("zulrah tanzanite fang", "tanzanite fang"); got != 100 {
		t.Errorf("token superset scored %.2f, want 100", got)
	}
	if got := TokenSetRatio("tanzanite fang", "vorkath s head"); got >= DefaultMatchThreshold {
		t.Errorf("unrelated items scored %.2f, want below threshold", got)
	}
}

func TestBestMatch(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name      string
		detected  []string
		wantTile  string
		wantItem  string
		wantFound bool
	}{
		{
			name:      "exact item",
			detected:  []string{"Tanzanite fang"},
			wantTile:  "Zulrah",
			wantItem:  "Tanzanite fang",
			wantFound: true,
		},
		{
			name:      "alias resolves to tile and falls back to first item",
			detected:  []string{"toa"},
			wantTile:  "Tombs of Amascut",
			wantItem:  "Lightbearer",
			wantFound: true,
		},
		{
			name:      "noisy detection still lands",
			detected:  []string{"you got a drop: serpentine visage"},
			wantTile:  "Zulrah",
			wantItem:  "Serpentine visage",
			wantFound: true,
		},
		{
			name:      "garbage finds nothing",
			detected:  []string{"twisted bow"},
			wantFound: false,
		},
		{
			name:      "nothing detected",
			detected:  nil,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, found := BestMatch(tt.detected, snap, DefaultMatchThreshold)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !found {
				return
			}
			if m.Tile != tt.wantTile || m.Item != tt.wantItem {
				t.Errorf("got %q / %q, want %q / %q", m.Tile, m.Item, tt.wantTile, tt.wantItem)
			}
			if m.Score < DefaultMatchThreshold {
				t.Errorf("winning score %.2f below threshold", m.Score)
			}
		})
	}
}

func TestBestMatchThresholdInclusive(t *testing.T) {
	snap := testSnapshot()
	// Exact matches score 100, so a threshold of exactly 100 must accept.
	if _, _, found := BestMatch([]string{"Vorkath's head"}, snap, 100); !found {
		t.Error("score equal to the threshold must be accepted")
	}
}

func TestBestMatchThresholdBoundary(t *testing.T) {
	snap := taxonomydomain.BuildSnapshot([]taxonomydomain.TileRecord{
		{Tile: "Vorkath", ItemsRaw: "Vorkath's head"},
	})

	// Score the garbled detection against both candidates by hand, then pin
	// the threshold just above it.
	detected := "vorkat hed"
	score := TokenSetRatio(Normalize(detected), "vorkath")
	if s := TokenSetRatio(Normalize(detected), "vorkath s head"); s > score {
		score = s
	}

	if m, _, found := BestMatch([]string{detected}, snap, score+1); found {
		t.Errorf("score %.2f accepted against threshold %.2f: %+v", score, score+1, m)
	}
	if _, _, found := BestMatch([]string{detected}, snap, score); !found {
		t.Errorf("score %.2f equal to the threshold must be accepted", score)
	}
}

func TestBestMatchTrace(t *testing.T) {
	snap := testSnapshot()

	_, trace, _ := BestMatch([]string{"tanzanite fang", "magic fang"}, snap, DefaultMatchThreshold)

	if len(trace) == 0 {
		t.Fatal("expected trace entries for close comparisons")
	}
	if len(trace) > 10 {
		t.Errorf("trace holds %d entries, want at most 10", len(trace))
	}
	for i, p := range trace {
		if p.Score < 60 {
			t.Errorf("trace[%d] score %.2f below the 60 floor", i, p.Score)
		}
		if i > 0 && trace[i-1].Score < p.Score {
			t.Errorf("trace not sorted by score descending at %d", i)
		}
	}

	// Same inputs, same trace: ordering is deterministic under ties.
	_, again, _ := BestMatch([]string{"tanzanite fang", "magic fang"}, snap, DefaultMatchThreshold)
	if diff := cmp.Diff(trace, again); diff != "" {
		t.Errorf("trace not deterministic (-first +second):\n%s", diff)
	}
}

func TestBestMatchNilSnapshot(t *testing.T) {
	if _, _, found := BestMatch([]string{"anything"}, nil, DefaultMatchThreshold); found {
		t.Error("nil snapshot must never match")
	}
}
