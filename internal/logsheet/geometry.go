package logsheet

// Geometry maps minutes of day and status rows to canvas coordinates. All
// methods are pure; the zero value is not usable, construct with
// DefaultGeometry and override fields as needed.
type Geometry struct {
	Width     float64 // total logical canvas width
	GridH     float64 // height of the duty-status grid area incl. pads
	LeftPad   float64
	RightPad  float64
	TopPad    float64
	BottomPad float64

	// Remarks strip layout below the grid.
	RemarksGap  float64 // gap between grid bottom and remarks box top
	RemarksBoxH float64 // height of the tick-mark strip
	BracketHang float64 // how far the U-bracket hangs below the box bottom
	LabelAreaH  float64 // vertical space reserved below brackets for labels

	// CollisionThreshold is the horizontal distance in pixels under which
	// two adjacent remarks are considered overlapping and get staggered.
	// Tunable, not a contract.
	CollisionThreshold float64

	// MinBracketWidth keeps point-in-time stops from rendering a
	// zero-width bracket.
	MinBracketWidth float64
}

// DefaultGeometry returns the reference sheet dimensions: an 1100-unit-wide
// logical canvas with a 460-unit grid area.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:              1100,
		GridH:              460,
		LeftPad:            120,
		RightPad:           90,
		TopPad:             50,
		BottomPad:          40,
		RemarksGap:         14,
		RemarksBoxH:        22,
		BracketHang:        20,
		LabelAreaH:         200,
		CollisionThreshold: 55,
		MinBracketWidth:    18,
	}
}

// PlotWidth is the width of the drawable grid between the pads.
func (g Geometry) PlotWidth() float64 {
	return g.Width - g.LeftPad - g.RightPad
}

// PlotHeight is the height of the drawable grid between the pads.
func (g Geometry) PlotHeight() float64 {
	return g.GridH - g.TopPad - g.BottomPad
}

// RowHeight is the height of one duty-status row band.
func (g Geometry) RowHeight() float64 {
	return g.PlotHeight() / StatusCount
}

// XForMinute maps a minute of day onto the horizontal axis.
func (g Geometry) XForMinute(minute int) float64 {
	return g.LeftPad + float64(minute)/MinutesPerDay*g.PlotWidth()
}

// RowCenterY is the vertical center of a status row band; the step line runs
// through row centers.
func (g Geometry) RowCenterY(row DutyStatus) float64 {
	return g.TopPad + g.RowHeight()*(float64(row)+0.5)
}

// RowTopY is the top edge of a status row band.
func (g Geometry) RowTopY(row DutyStatus) float64 {
	return g.TopPad + g.RowHeight()*float64(row)
}

// GridBottom is the bottom edge of the duty-status grid.
func (g Geometry) GridBottom() float64 {
	return g.TopPad + g.PlotHeight()
}

// RemarksBoxTop is the top edge of the remarks tick strip.
func (g Geometry) RemarksBoxTop() float64 {
	return g.GridBottom() + g.RemarksGap
}

// RemarksBoxBottom is the bottom edge of the remarks tick strip; brackets
// hang from here.
func (g Geometry) RemarksBoxBottom() float64 {
	return g.RemarksBoxTop() + g.RemarksBoxH
}

// CanvasHeight is the full height of the rendered sheet including the label
// area below the brackets.
func (g Geometry) CanvasHeight() float64 {
	return g.RemarksBoxBottom() + g.BracketHang + g.LabelAreaH
}
