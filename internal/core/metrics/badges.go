package metrics

import (
	"slices"

	"github.com/runhub/runhub/internal/core/activity"
)

// BadgePreviewCount is how many badges the preview shows.
const BadgePreviewCount = 4

// RecentBadges returns the n most recently earned badges, newest first.
// The input slice is not modified.
func RecentBadges(badges []activity.Badge, n int) []activity.Badge {
	sorted := slices.Clone(badges)
	slices.SortStableFunc(sorted, func(a, b activity.Badge) int {
		return b.EarnedDate.Compare(a.EarnedDate)
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
