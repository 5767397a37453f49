package vision

import (
	"encoding/json"
	"strings"
)

type detectionJSON struct {
	Items []string `json:"items"`
	RSN   string   `json:"rsn"`
}

// ParseDetection decodes the model's reply. Strict JSON is expected, but
// models wrap answers in code fences or fall back to prose often enough that
// a comma-list fallback is kept.
func ParseDetection(content string) ([]string, string) {
	trimmed := stripFences(strings.TrimSpace(content))

	var parsed detectionJSON
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return dedupeItems(parsed.Items), strings.TrimSpace(parsed.RSN)
	}

	// Fallback: treat the whole reply as a comma-separated item list.
	var items []string
	for _, part := range strings.Split(trimmed, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return dedupeItems(items), ""
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func dedupeItems(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k := strings.ToLower(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}
