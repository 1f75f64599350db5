package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/runhub"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// renderWeekly renders this week's mileage as a horizontal bar chart.
func (m Model) renderWeekly(snap runhub.Snapshot) string {
	summary := metrics.WeeklyAggregate(snap.Activities, time.Now())

	barWidth := m.width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(fmt.Sprintf(
		"Week of %s", summary.WeekStart.Format("Jan 2"))))
	b.WriteString("\n\n")

	for i, miles := range summary.Days {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			subtleStyle.Render(weekdayLabels[i]),
			accentStyle.Render(weeklyBar(miles, maxDay(summary), barWidth)),
			textStyle.Render(fmt.Sprintf("%.1f", miles)),
		))
	}

	b.WriteString("\n  " + textStyle.Render(fmt.Sprintf("%.1f mi", summary.TotalMiles)))
	b.WriteString(subtleStyle.Render(fmt.Sprintf(" across %s", plural(summary.Runs, "run"))))
	return b.String()
}

func maxDay(s metrics.WeeklySummary) float64 {
	max := 0.0
	for _, d := range s.Days {
		if d > max {
			max = d
		}
	}
	return max
}

// weeklyBar scales miles against the week's biggest day. Any non-zero day
// gets at least one cell so short runs stay visible.
func weeklyBar(miles, max float64, width int) string {
	if miles <= 0 || max <= 0 || width <= 0 {
		return ""
	}
	n := int(miles / max * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat(barRune, n)
}
