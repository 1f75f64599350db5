package tui

import (
	"fmt"
	"strings"

	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/runhub"
)

// renderHeatmap draws every decoded route into one character grid, shading
// cells by how many route points land in them.
func (m Model) renderHeatmap(snap runhub.Snapshot) string {
	routes := metrics.DecodeRoutes(snap.Activities)
	if len(routes) == 0 {
		return "  " + subtleStyle.Render("No routes to draw. Outdoor runs with GPS show up here.")
	}

	gridW := m.width - 6
	gridH := m.height - 14
	if gridW < 20 {
		gridW = 20
	}
	if gridH < 8 {
		gridH = 8
	}

	var b strings.Builder
	for _, row := range heatmapGrid(routes, gridW, gridH) {
		b.WriteString("  " + accentStyle.Render(string(row)) + "\n")
	}

	lat, lng, _ := metrics.RecentCenter(routes)
	b.WriteString("\n  " + subtleStyle.Render(fmt.Sprintf(
		"%s • centered near %.4f, %.4f", plural(len(routes), "route"), lat, lng)))
	return b.String()
}

// heatmapGrid rasterizes route coordinates into a width x height rune grid.
// Cell density maps onto heatRamp; the grid is normalized to the bounding box
// of all points. Terminal cells are roughly twice as tall as wide, so
// latitude is compressed by eye with the height the caller picks.
func heatmapGrid(routes []metrics.Route, width, height int) [][]rune {
	if width < 1 || height < 1 {
		return nil
	}

	minLat, maxLat := routes[0].Coords[0][0], routes[0].Coords[0][0]
	minLng, maxLng := routes[0].Coords[0][1], routes[0].Coords[0][1]
	for _, r := range routes {
		for _, c := range r.Coords {
			minLat = min(minLat, c[0])
			maxLat = max(maxLat, c[0])
			minLng = min(minLng, c[1])
			maxLng = max(maxLng, c[1])
		}
	}

	latSpan := maxLat - minLat
	lngSpan := maxLng - minLng
	if latSpan == 0 {
		latSpan = 1e-9
	}
	if lngSpan == 0 {
		lngSpan = 1e-9
	}

	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}

	peak := 0
	for _, r := range routes {
		for _, c := range r.Coords {
			// Row 0 is the northern edge.
			y := int((maxLat - c[0]) / latSpan * float64(height-1))
			x := int((c[1] - minLng) / lngSpan * float64(width-1))
			counts[y][x]++
			if counts[y][x] > peak {
				peak = counts[y][x]
			}
		}
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = heatCell(counts[y][x], peak)
		}
	}
	return grid
}

func heatCell(count, peak int) rune {
	if count == 0 || peak == 0 {
		return heatRamp[0]
	}
	idx := 1 + count*(len(heatRamp)-2)/peak
	if idx >= len(heatRamp) {
		idx = len(heatRamp) - 1
	}
	return heatRamp[idx]
}

func renderGrid(grid [][]rune) string {
	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}
