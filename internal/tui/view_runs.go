package tui

import (
	"fmt"
	"strings"

	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/runhub"
)

// renderRuns renders the paginated run table.
func (m Model) renderRuns(snap runhub.Snapshot) string {
	if snap.Collection == runhub.CollectionEmpty {
		return "  " + subtleStyle.Render("No runs yet. Lace up!")
	}

	acts := metrics.Page(snap.Activities, m.page, m.cfg.PageSize)

	nameWidth := m.width - 40
	if nameWidth < 12 {
		nameWidth = 12
	}

	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(fmt.Sprintf(
		"%-8s %-*s %9s %9s %7s", "DATE", nameWidth, "NAME", "DIST", "TIME", "PACE")))
	b.WriteString("\n")

	for _, a := range acts {
		name := a.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s %s\n",
			subtleStyle.Render(fmt.Sprintf("%-8s", a.StartDate.Local().Format("Jan 02"))),
			textStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
			textStyle.Render(fmt.Sprintf("%8.2fmi", metrics.Miles(a.Distance))),
			textStyle.Render(fmt.Sprintf("%9s", shortDuration(a.MovingTime))),
			accentStyle.Render(fmt.Sprintf("%7s", metrics.Pace(a.Distance, a.MovingTime))),
		))
	}

	total := metrics.TotalPages(len(snap.Activities), m.cfg.PageSize)
	if total > 1 {
		b.WriteString("\n  " + subtleStyle.Render(fmt.Sprintf(
			"page %d/%d • %d runs", m.page, total, len(snap.Activities))))
	}

	return strings.TrimRight(b.String(), "\n")
}

// shortDuration renders moving time compactly for table cells.
func shortDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	mm := (seconds % 3600) / 60
	ss := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%d:%02d", mm, ss)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
