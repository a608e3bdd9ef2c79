package logsheet

import "math"

// PlacedRemark is a remark with its resolved horizontal position and stagger
// level.
type PlacedRemark struct {
	Remark
	X     float64 // x of the remark's start minute
	Level int     // 0 = on the timeline, 1 = staggered one band down
}

// LayoutRemarks assigns each remark a stagger level so adjacent brackets do
// not collide. Remarks must be sorted by minute.
//
// The pass is greedy: a remark closer than the collision threshold to its
// predecessor alternates into the lower band, everything else sits at level
// zero. It avoids adjacent collisions only; it does not globally optimize
// spacing. Known limitation, acceptable for the handful of stops a day
// carries.
func LayoutRemarks(remarks []Remark, g Geometry) []PlacedRemark {
	placed := make([]PlacedRemark, 0, len(remarks))
	prevX := math.NaN()
	for i, rm := range remarks {
		x := g.XForMinute(rm.Start)
		level := 0
		if !math.IsNaN(prevX) && math.Abs(x-prevX) < g.CollisionThreshold {
			level = i % 2
		}
		prevX = x
		placed = append(placed, PlacedRemark{Remark: rm, X: x, Level: level})
	}
	return placed
}

// Bracket is the U-shaped marker geometry for one placed remark.
type Bracket struct {
	Left   float64 // x of the left arm
	Right  float64 // x of the right arm, floored to a minimum width
	Top    float64 // y where the arms start, offset by the stagger level
	Bottom float64 // y of the U's bottom bar
}

// BracketFor computes the bracket extents for a placed remark. The right arm
// never comes closer than MinBracketWidth to the left one, so point-in-time
// stops still render a visible marker.
func BracketFor(rm PlacedRemark, g Geometry) Bracket {
	left := g.XForMinute(rm.Start)
	right := math.Max(g.XForMinute(rm.End), left+g.MinBracketWidth)
	top := g.RemarksBoxBottom() + float64(rm.Level)*22
	return Bracket{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: top + g.BracketHang,
	}
}

// Mid returns the horizontal center of the bracket, where the pointer and
// rotated labels anchor.
func (b Bracket) Mid() float64 {
	return (b.Left + b.Right) / 2
}
