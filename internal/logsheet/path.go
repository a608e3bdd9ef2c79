package logsheet

import (
	"fmt"
	"strings"
)

// SegmentOp distinguishes pen-up from pen-down moves in a step path.
type SegmentOp int

const (
	MoveTo SegmentOp = iota
	LineTo
)

// PathSegment is one command of the duty-status step path.
type PathSegment struct {
	Op SegmentOp
	X  float64
	Y  float64
}

// BuildStepPath constructs the step-function polyline for a day's duty
// statuses. Events must be normalized (sorted, End > Start).
//
// The path follows the physical log-sheet convention: a horizontal run along
// each event's row, a vertical riser at the exact minute two contiguous
// events change status, and a disconnected restart whenever there is a time
// gap between events. An empty event list yields an empty path.
func BuildStepPath(events []DutyEvent, g Geometry) []PathSegment {
	if len(events) == 0 {
		return nil
	}

	first := events[0]
	segs := make([]PathSegment, 0, len(events)*2)
	segs = append(segs, PathSegment{MoveTo, g.XForMinute(first.Start), g.RowCenterY(first.Status)})

	for i, cur := range events {
		curY := g.RowCenterY(cur.Status)
		curEndX := g.XForMinute(cur.End)

		segs = append(segs, PathSegment{LineTo, curEndX, curY})

		if i+1 >= len(events) {
			continue
		}
		next := events[i+1]
		nextY := g.RowCenterY(next.Status)
		nextStartX := g.XForMinute(next.Start)
		contiguous := next.Start == cur.End

		if contiguous && nextY != curY {
			segs = append(segs, PathSegment{LineTo, curEndX, nextY})
		}

		if nextStartX != curEndX || (!contiguous && nextY != curY) {
			segs = append(segs, PathSegment{MoveTo, nextStartX, nextY})
		}
	}

	return segs
}

// PathData serializes a step path into SVG path-data syntax.
func PathData(segs []PathSegment) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		op := "M"
		if s.Op == LineTo {
			op = "L"
		}
		fmt.Fprintf(&b, "%s %s %s", op, trimFloat(s.X), trimFloat(s.Y))
	}
	return b.String()
}

// trimFloat formats a coordinate with up to two decimals, dropping
// trailing zeros so typical grid-aligned values stay compact.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
