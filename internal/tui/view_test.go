package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runhub/runhub/internal/core/metrics"
)

func TestViewTypeCycle(t *testing.T) {
	names := make([]string, 0, int(viewCount))
	for v := ViewType(0); v < viewCount; v++ {
		names = append(names, v.String())
	}
	assert.Equal(t, []string{"Runs", "Weekly", "Badges", "Heatmap", "Chat"}, names)
}

func TestShortDuration(t *testing.T) {
	assert.Equal(t, "47:12", shortDuration(2832))
	assert.Equal(t, "1:02:05", shortDuration(3725))
	assert.Equal(t, "0:00", shortDuration(-1))
}

func TestWeeklyBar(t *testing.T) {
	assert.Equal(t, "", weeklyBar(0, 10, 20))
	assert.Equal(t, strings.Repeat(barRune, 20), weeklyBar(10, 10, 20))
	assert.Equal(t, strings.Repeat(barRune, 10), weeklyBar(5, 10, 20))

	// Tiny but non-zero days stay visible.
	assert.Equal(t, barRune, weeklyBar(0.01, 26.2, 20))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 run", plural(1, "run"))
	assert.Equal(t, "3 runs", plural(3, "run"))
}

func TestHeatmapGrid(t *testing.T) {
	routes := []metrics.Route{
		{Name: "loop", Coords: [][]float64{
			{40.000, -105.000},
			{40.010, -105.000},
			{40.010, -105.010},
			{40.000, -105.010},
		}},
	}

	grid := heatmapGrid(routes, 10, 6)
	require.Len(t, grid, 6)
	require.Len(t, grid[0], 10)

	// Corners of the bounding box must be marked.
	assert.NotEqual(t, heatRamp[0], grid[0][0], "northwest corner")
	assert.NotEqual(t, heatRamp[0], grid[5][9], "southeast corner")

	// Something renders, and blank cells stay blank.
	rendered := renderGrid(grid)
	assert.Contains(t, rendered, string(heatRamp[len(heatRamp)-1]))
}

func TestHeatmapGrid_SinglePoint(t *testing.T) {
	routes := []metrics.Route{
		{Name: "dot", Coords: [][]float64{{40.0, -105.0}}},
	}

	grid := heatmapGrid(routes, 5, 5)
	require.Len(t, grid, 5)

	marked := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell != heatRamp[0] {
				marked++
			}
		}
	}
	assert.Equal(t, 1, marked, "a zero-span route collapses to one cell")
}

func TestHeatCell(t *testing.T) {
	assert.Equal(t, heatRamp[0], heatCell(0, 10))
	assert.Equal(t, heatRamp[len(heatRamp)-1], heatCell(10, 10))
	assert.Equal(t, heatRamp[1], heatCell(1, 10))
}
