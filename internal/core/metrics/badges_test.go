package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runhub/runhub/internal/core/activity"
)

func badge(name string, earned time.Time) activity.Badge {
	return activity.Badge{Name: name, EarnedDate: earned}
}

func TestRecentBadges(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	badges := []activity.Badge{
		badge("oldest", base),
		badge("newest", base.AddDate(0, 5, 0)),
		badge("middle", base.AddDate(0, 2, 0)),
		badge("second", base.AddDate(0, 4, 0)),
		badge("third", base.AddDate(0, 3, 0)),
	}

	got := RecentBadges(badges, BadgePreviewCount)

	require.Len(t, got, 4)
	assert.Equal(t, "newest", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "third", got[2].Name)
	assert.Equal(t, "middle", got[3].Name)

	// Input order untouched
	assert.Equal(t, "oldest", badges[0].Name)
}

func TestRecentBadges_FewerThanRequested(t *testing.T) {
	badges := []activity.Badge{badge("only", time.Now())}

	got := RecentBadges(badges, 4)
	assert.Len(t, got, 1)
}

func TestRecentBadges_Empty(t *testing.T) {
	assert.Empty(t, RecentBadges(nil, 4))
}
