// Package logsheet renders FMCSA-style driver daily log sheets: a four-row
// duty-status grid for one 24-hour period with a continuous step-transition
// line, per-status totals, and a remarks strip with bracketed stop
// annotations.
package logsheet

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MinutesPerDay is the span of one log sheet.
const MinutesPerDay = 1440

// DutyStatus is one of the four duty-status rows on the grid.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDutyNotDriving
)

// StatusCount is the number of duty-status rows. Row order is a rendering
// contract: OffDuty=0, SleeperBerth=1, Driving=2, OnDutyNotDriving=3,
// drawn top to bottom.
const StatusCount = 4

// Label returns the row label as printed on the sheet.
func (s DutyStatus) Label() string {
	switch s {
	case OffDuty:
		return "Off Duty"
	case SleeperBerth:
		return "Sleeper Berth"
	case Driving:
		return "Driving"
	default:
		return "On Duty (Not Driving)"
	}
}

// String returns the canonical wire spelling of the status.
func (s DutyStatus) String() string {
	switch s {
	case OffDuty:
		return "OFF_DUTY"
	case SleeperBerth:
		return "SLEEPER"
	case Driving:
		return "DRIVING"
	default:
		return "ON_DUTY_NOT_DRIVING"
	}
}

// ParseDutyStatus maps a raw status string onto the four-way enum. The input
// is uppercased and whitespace is collapsed to underscores before matching a
// fixed synonym table. Unmatched spellings fall back to OnDutyNotDriving;
// upstream data quality problems must not prevent the sheet from rendering.
func ParseDutyStatus(raw string) DutyStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), "_")
	switch s {
	case "OFF_DUTY", "OFF", "OFFDUTY":
		return OffDuty
	case "SLEEPER", "SLEEPER_BERTH", "SB":
		return SleeperBerth
	case "DRIVING", "DRIVE":
		return Driving
	case "ON_DUTY_NOT_DRIVING", "ON_DUTY", "ONDUTY":
		return OnDutyNotDriving
	default:
		return OnDutyNotDriving
	}
}

// StopType categorizes a remark on the timeline.
type StopType int

const (
	StopGeneric StopType = iota
	StopPickup
	StopDropoff
	StopFuel
	StopBreak
)

// ParseStopType maps a raw stop_type string onto the closed set; unknown and
// empty strings map to StopGeneric.
func ParseStopType(raw string) StopType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pickup":
		return StopPickup
	case "dropoff":
		return StopDropoff
	case "fuel":
		return StopFuel
	case "break":
		return StopBreak
	default:
		return StopGeneric
	}
}

// inferStopType keyword-matches a free-text reason when no explicit
// stop_type was provided.
func inferStopType(reason string) StopType {
	r := strings.ToLower(strings.TrimSpace(reason))
	switch {
	case strings.Contains(r, "pick"):
		return StopPickup
	case strings.Contains(r, "drop"), strings.Contains(r, "post"):
		return StopDropoff
	case strings.Contains(r, "fuel"):
		return StopFuel
	case strings.Contains(r, "break"):
		return StopBreak
	default:
		return StopGeneric
	}
}

// DefaultReason returns the display text for a stop type when the remark
// carries no explicit reason.
func (t StopType) DefaultReason() string {
	switch t {
	case StopPickup:
		return "Pre-trip"
	case StopDropoff:
		return "Post-trip"
	case StopFuel:
		return "Fuel"
	case StopBreak:
		return "30-min break"
	default:
		return "Stop"
	}
}

func (t StopType) String() string {
	switch t {
	case StopPickup:
		return "pickup"
	case StopDropoff:
		return "dropoff"
	case StopFuel:
		return "fuel"
	case StopBreak:
		return "break"
	default:
		return "stop"
	}
}

// RawEvent is one duty-status interval as received from the trip-planning
// backend. Field types are deliberately loose: minutes may arrive as
// numbers, strings, or be absent entirely, and both short and _minute field
// spellings occur in the wild. Normalization is the boundary that turns
// this into something trustworthy.
type RawEvent struct {
	Status      any `json:"status"`
	Start       any `json:"start"`
	StartMinute any `json:"start_minute"`
	End         any `json:"end"`
	EndMinute   any `json:"end_minute"`
}

// RawRemark is one stop annotation as received from the backend.
type RawRemark struct {
	Minute      any    `json:"minute"`
	StartMinute any    `json:"start_minute"`
	EndMinute   any    `json:"end_minute"`
	StopType    string `json:"stop_type"`
	Reason      string `json:"reason"`
	Lng         any    `json:"lng"`
	Lat         any    `json:"lat"`
}

// DutyEvent is a normalized, clamped duty-status interval. End > Start holds
// by construction.
type DutyEvent struct {
	Status DutyStatus
	Start  int
	End    int
}

// Remark is a normalized stop annotation. Key is empty when the remark has
// no usable coordinates.
type Remark struct {
	Minute   int
	Start    int
	End      int
	StopType StopType
	Reason   string
	Lng      float64
	Lat      float64
	Key      string
}

// coerceMinute converts a loosely-typed minute value to a float64. Anything
// that does not coerce to a finite number becomes 0.
func coerceMinute(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, true
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, true
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, true
		}
		return f, true
	default:
		return 0, true
	}
}

// ClampMinute coerces a raw minute value and clamps it into [0, 1440].
// Non-numeric input clamps to 0.
func ClampMinute(v any) int {
	f, _ := coerceMinute(v)
	if f < 0 {
		return 0
	}
	if f > MinutesPerDay {
		return MinutesPerDay
	}
	return int(f)
}

// firstMinute returns the clamped value of the first present alias.
func firstMinute(aliases ...any) (int, bool) {
	for _, v := range aliases {
		if _, present := coerceMinute(v); present {
			return ClampMinute(v), true
		}
	}
	return 0, false
}

func statusString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// NormalizeEvents converts raw events into clamped, sorted DutyEvents.
// Events whose end does not fall after their start are dropped: the sheet
// displays only valid intervals.
func NormalizeEvents(raw []RawEvent) []DutyEvent {
	events := make([]DutyEvent, 0, len(raw))
	for _, ev := range raw {
		start, _ := firstMinute(ev.Start, ev.StartMinute)
		end, _ := firstMinute(ev.End, ev.EndMinute)
		if end <= start {
			continue
		}
		events = append(events, DutyEvent{
			Status: ParseDutyStatus(statusString(ev.Status)),
			Start:  start,
			End:    end,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events
}

// CoordKey builds the fixed-precision cache key for a coordinate pair, or
// "" when either component is missing or non-finite.
func CoordKey(lng, lat any) string {
	lngF, lngOK := coerceNumber(lng)
	latF, latOK := coerceNumber(lat)
	if !lngOK || !latOK {
		return ""
	}
	return fmt.Sprintf("%.5f,%.5f", lngF, latF)
}

// coerceNumber is like coerceMinute but rejects absent and non-numeric
// values instead of zeroing them; a coordinate of 0 is meaningful, a missing
// one is not.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeRemarks converts raw remarks into clamped, sorted Remarks. The
// stop span defaults to thirty minutes when no end is given.
func NormalizeRemarks(raw []RawRemark) []Remark {
	remarks := make([]Remark, 0, len(raw))
	for _, rm := range raw {
		stopType := ParseStopType(rm.StopType)
		if strings.TrimSpace(rm.StopType) == "" {
			stopType = inferStopType(rm.Reason)
		}

		start, ok := firstMinute(rm.StartMinute, rm.Minute)
		if !ok {
			start = 0
		}
		end, ok := firstMinute(rm.EndMinute)
		if !ok {
			end = ClampMinute(start + 30)
		}

		reason := strings.TrimSpace(rm.Reason)
		if reason == "" {
			reason = stopType.DefaultReason()
		}

		r := Remark{
			Minute:   ClampMinute(rm.Minute),
			Start:    start,
			End:      end,
			StopType: stopType,
			Reason:   reason,
			Key:      CoordKey(rm.Lng, rm.Lat),
		}
		if r.Key != "" {
			r.Lng, _ = coerceNumber(rm.Lng)
			r.Lat, _ = coerceNumber(rm.Lat)
		}
		remarks = append(remarks, r)
	}
	sort.SliceStable(remarks, func(i, j int) bool {
		return remarks[i].Minute < remarks[j].Minute
	})
	return remarks
}

// Totals holds accumulated minutes per duty status, indexed by row.
type Totals [StatusCount]int

// TotalsByStatus sums event durations per status. The grand total always
// equals the summed duration of the input events.
func TotalsByStatus(events []DutyEvent) Totals {
	var totals Totals
	for _, ev := range events {
		totals[ev.Status] += ev.End - ev.Start
	}
	return totals
}

// Hours returns a row's total formatted in hours with two decimals, as
// printed in the sheet's totals column.
func (t Totals) Hours(s DutyStatus) string {
	return strconv.FormatFloat(float64(t[s])/60.0, 'f', 2, 64)
}
