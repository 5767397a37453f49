package submissiondomain

// DefaultNameThreshold is the inclusive similarity floor for treating an
// observed in-game name as the claimed one. Display names and RSNs drift by
// a character or two; full mismatches must stay rejected.
const DefaultNameThreshold = 90

// NamesMatch reports whether the observed name is close enough to the
// claimed one. Either side empty is an automatic reject.
func NamesMatch(claimed, observed string, threshold float64) bool {
	a := Normalize(claimed)
	b := Normalize(observed)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return Ratio(a, b) >= threshold
}
