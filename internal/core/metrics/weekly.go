package metrics

import (
	"time"

	"github.com/runhub/runhub/internal/core/activity"
)

// WeeklySummary is the current week's mileage bucketed by weekday.
// Days[0] is Monday through Days[6] Sunday, in miles.
type WeeklySummary struct {
	Days       [7]float64
	TotalMiles float64
	Runs       int
	WeekStart  time.Time
}

// WeekStart returns Monday 00:00 of the week containing now, in now's
// location. A Sunday is 6 days into the week, not the start of the next one.
func WeekStart(now time.Time) time.Time {
	daysBack := int(now.Weekday()) - int(time.Monday)
	if daysBack < 0 {
		daysBack += 7 // Sunday
	}
	y, m, d := now.AddDate(0, 0, -daysBack).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// WeeklyAggregate buckets every activity on/after this week's Monday into the
// weekday of its own local start time and sums miles per bucket. Activities
// before the boundary are excluded entirely, not clipped. The sum is
// independent of input order.
func WeeklyAggregate(acts []activity.Activity, now time.Time) WeeklySummary {
	start := WeekStart(now)
	summary := WeeklySummary{WeekStart: start}

	for _, a := range acts {
		local := a.StartDate.In(now.Location())
		if local.Before(start) {
			continue
		}

		slot := int(local.Weekday()) - int(time.Monday)
		if slot < 0 {
			slot += 7
		}

		miles := Miles(a.Distance)
		summary.Days[slot] += miles
		summary.TotalMiles += miles
		summary.Runs++
	}

	return summary
}
