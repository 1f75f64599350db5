// Package metrics computes the pure projections the dashboard views render:
// pagination slices, pace, weekly mileage buckets, decoded routes, and badge
// previews. Nothing here owns data; everything is a function of the store's
// snapshot.
package metrics

import "github.com/runhub/runhub/internal/core/activity"

// MetersPerMile is the conversion factor the dashboard uses throughout.
const MetersPerMile = 1609.0

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into the valid range for the given total. When the
// collection shrinks under the current page (e.g. a refresh deleted entries),
// the view lands on the last remaining page instead of an empty one.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page returns the contiguous slice of acts for the given 1-based page.
func Page(acts []activity.Activity, page, pageSize int) []activity.Activity {
	if pageSize <= 0 {
		return nil
	}
	page = ClampPage(page, TotalPages(len(acts), pageSize))

	start := (page - 1) * pageSize
	if start >= len(acts) {
		return nil
	}
	end := start + pageSize
	if end > len(acts) {
		end = len(acts)
	}
	return acts[start:end]
}
