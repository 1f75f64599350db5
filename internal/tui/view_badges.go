package tui

import (
	"fmt"
	"strings"

	"github.com/runhub/runhub/internal/core/metrics"
)

// renderBadges renders earned badges, newest first.
func (m Model) renderBadges() string {
	if len(m.badges) == 0 {
		return "  " + subtleStyle.Render("No badges yet. Keep running!")
	}

	sorted := metrics.RecentBadges(m.badges, len(m.badges))

	var b strings.Builder
	for i, badge := range sorted {
		icon := badge.Icon
		if icon == "" {
			icon = "🏅"
		}
		marker := textStyle
		if i < metrics.BadgePreviewCount {
			marker = goodStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			icon,
			marker.Render(badge.Name),
			subtleStyle.Render(badge.EarnedDate.Format("Jan 2, 2006")),
		))
		if badge.Description != "" {
			b.WriteString("     " + subtleStyle.Render(badge.Description) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
