package metrics

import (
	"github.com/twpayne/go-polyline"

	"github.com/runhub/runhub/internal/core/activity"
)

// Route is one activity's decoded geometry as lat/lng pairs.
type Route struct {
	Name   string
	Coords [][]float64
}

// DecodeRoutes decodes each activity's summary polyline, preserving input
// order (newest first). Activities without geometry, and the rare ones whose
// polyline fails to decode, are dropped silently rather than shown as errors.
func DecodeRoutes(acts []activity.Activity) []Route {
	routes := make([]Route, 0, len(acts))
	for _, a := range acts {
		if !a.HasRoute() {
			continue
		}

		coords, _, err := polyline.DecodeCoords([]byte(a.Map.SummaryPolyline))
		if err != nil || len(coords) == 0 {
			continue
		}

		routes = append(routes, Route{Name: a.Name, Coords: coords})
	}
	return routes
}

// RecentCenter returns the first coordinate of the most recent route, which
// the heatmap view centers on. ok is false when no route has geometry.
func RecentCenter(routes []Route) (lat, lng float64, ok bool) {
	if len(routes) == 0 {
		return 0, 0, false
	}
	c := routes[0].Coords[0]
	return c[0], c[1], true
}
