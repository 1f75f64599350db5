package commands

import "fmt"

// formatDuration renders moving time the way the run table shows it:
// "47m 12s", or "1h 03m" once an hour is crossed.
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

// formatMiles renders a distance in miles to two decimals.
func formatMiles(miles float64) string {
	return fmt.Sprintf("%.2f mi", miles)
}
