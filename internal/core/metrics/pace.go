package metrics

import (
	"fmt"
	"math"
)

// PaceUnknown is rendered when a pace cannot be computed.
const PaceUnknown = "--:--"

// Pace formats minutes per mile as M:SS from meters and moving seconds.
// Seconds are rounded and zero-padded. Returns PaceUnknown for non-positive
// distance or time.
func Pace(distanceMeters float64, movingTimeSeconds int) string {
	if distanceMeters <= 0 || movingTimeSeconds <= 0 {
		return PaceUnknown
	}

	minPerMile := (float64(movingTimeSeconds) / 60) / (distanceMeters / MetersPerMile)

	mins := int(minPerMile)
	secs := int(math.Round((minPerMile - float64(mins)) * 60))
	if secs == 60 {
		mins++
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Miles converts meters to miles.
func Miles(meters float64) float64 {
	return meters / MetersPerMile
}
