package progressservice

import (
	"bytes"
	"fmt"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
)

// RenderApprovedChart draws a bar chart of ledger rows per tile for one team.
func RenderApprovedChart(team string, rows []submissiondb.LedgerRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no ledger rows to chart")
	}

	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Tile]++
	}

	tiles := make([]string, 0, len(counts))
	for tile := range counts {
		tiles = append(tiles, tile)
	}
	sort.Strings(tiles)

	bars := make([]chart.Value, 0, len(tiles))
	for _, tile := range tiles {
		bars = append(bars, chart.Value{
			Label: tile,
			Value: float64(counts[tile]),
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Approved drops for %s", team),
		Width:    max(256, 80*len(bars)),
		Height:   512,
		BarWidth: 48,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
