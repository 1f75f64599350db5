// Package activity defines the run, badge, and athlete domain types as the
// backend returns them.
package activity

import "time"

// Map holds the route geometry metadata attached to an activity.
type Map struct {
	ID              string `json:"id,omitempty"`
	SummaryPolyline string `json:"summary_polyline,omitempty"`
}

// Activity is one recorded run, verbatim from the backend. Activities are
// immutable once fetched; the collection is always replaced whole.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type,omitempty"`
	Distance           float64   `json:"distance"`    // meters
	MovingTime         int       `json:"moving_time"` // seconds
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain,omitempty"`
	StartDate          time.Time `json:"start_date"`
	Map                Map       `json:"map,omitempty"`
}

// HasRoute returns true if the activity carries route geometry.
func (a Activity) HasRoute() bool {
	return a.Map.SummaryPolyline != ""
}

// Athlete is the per-user profile returned by the backend.
type Athlete struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Profile   string `json:"profile"` // avatar URL
}

// DisplayName returns the athlete's full name.
func (a Athlete) DisplayName() string {
	if a.Lastname == "" {
		return a.Firstname
	}
	return a.Firstname + " " + a.Lastname
}

// Badge is a backend-computed achievement. Read-only on the client.
type Badge struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedDate  time.Time `json:"earned_date"`
}

// Changes summarizes what a resync altered upstream.
type Changes struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}
