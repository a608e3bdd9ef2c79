package planner

import "github.com/openhaul/dispatch/internal/logsheet"

// Location is a named point with optional coordinates. Nil coordinates mean
// the caller only knows the free-text label.
type Location struct {
	Label string   `json:"label"`
	Lng   *float64 `json:"lng"`
	Lat   *float64 `json:"lat"`
}

// PlanRequest is the body posted to the trip-planning backend.
type PlanRequest struct {
	CurrentLocation *Location `json:"current_location"`
	PickupLocation  *Location `json:"pickup_location"`
	DropoffLocation *Location `json:"dropoff_location"`
	CycleUsedHours  float64   `json:"cycle_used_hours"`
}

// Route is the planned route geometry and headline metrics.
type Route struct {
	Polyline      [][]float64 `json:"polyline"`
	DistanceMiles float64     `json:"distance_miles"`
	DurationHours float64     `json:"duration_hours"`
}

// Stop is one planned stop along the route.
type Stop struct {
	Type   string   `json:"type"`
	Reason string   `json:"reason,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Mile   *float64 `json:"mile,omitempty"`
}

// Summary carries the plan's aggregate metrics and HOS compliance verdict.
type Summary struct {
	TotalDays     int      `json:"total_days"`
	TotalMiles    float64  `json:"total_miles,omitempty"`
	DrivingHours  float64  `json:"driving_hours"`
	HOSCompliance bool     `json:"hos_compliance"`
	HOSReasons    []string `json:"hos_reasons,omitempty"`
}

// DayLog is one calendar day's duty events and remarks. Events and remarks
// stay in their raw wire shape; the log sheet normalizer is the boundary
// that cleans them up.
type DayLog struct {
	Day     int                  `json:"day"`
	Events  []logsheet.RawEvent  `json:"events"`
	Remarks []logsheet.RawRemark `json:"remarks"`
}

// PlanResponse is the full trip-planning backend response.
type PlanResponse struct {
	Route   Route    `json:"route"`
	Stops   []Stop   `json:"stops"`
	Summary Summary  `json:"summary"`
	Logs    []DayLog `json:"logs"`
}
