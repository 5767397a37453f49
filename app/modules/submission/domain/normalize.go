// Package submissiondomain holds the submission record and the text matching
// logic used to reconcile detected drops against the board taxonomy.
package submissiondomain

import "strings"

// aliasHints maps community shorthand to the full name it stands for.
// Detection output and player input both use these freely.
var aliasHints = map[string]string{
	"toa": "tombs of amascut",
	"cox": "chambers of xeric",
	"tob": "theatre of blood",
	"zcb": "zaryte crossbow",
	"dwh": "dragon warhammer",
	"sra": "soulreaper axe",
}

// Normalize lowercases, maps every non-alphanumeric rune to a space and
// collapses runs of whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandAliases returns the normalized input plus variants per alias hit:
// the expansion itself when the whole string is the alias, and on a
// substring hit both the substituted string and the bare expansion. Order
// is deterministic.
func ExpandAliases(s string) []string {
	norm := Normalize(s)
	variants := []string{norm}
	for _, alias := range aliasOrder {
		full := aliasHints[alias]
		if norm == alias {
			variants = append(variants, full)
			continue
		}
		if strings.Contains(norm, alias) {
			variants = append(variants, strings.ReplaceAll(norm, alias, full), full)
		}
	}
	return variants
}

// aliasOrder keeps expansion deterministic across runs.
var aliasOrder = []string{"toa", "cox", "tob", "zcb", "dwh", "sra"}
