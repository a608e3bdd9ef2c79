package logsheet

import (
	"fmt"
	"io"
	"strings"
)

// Sheet is everything needed to render one day's log: normalized events and
// remarks plus whatever location labels have resolved so far. Labels are
// keyed by Remark.Key; a missing entry renders the LOC sentinel.
type Sheet struct {
	Day     int
	Events  []DutyEvent
	Remarks []Remark
	Labels  map[string]string
}

// UnresolvedLabel is the sentinel shown for a remark whose location has not
// resolved (or cannot resolve).
const UnresolvedLabel = "LOC"

// Stroke palette for the rendered sheet.
const (
	strokeStrong = "#0f172a"
	strokeMajor  = "#334155"
	strokeMinor  = "#cbd5e1"
	textColor    = "#0f172a"
	pathColor    = "#1976d2"
)

// hourLabel returns the caption above an hour tick: Midnight, Noon, the
// bare hour, or nothing at hour 24.
func hourLabel(hour int) string {
	switch hour {
	case 0:
		return "Midnight"
	case 12:
		return "Noon"
	case 24:
		return ""
	default:
		return fmt.Sprintf("%d", hour)
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// RenderSVG writes the complete log sheet as a standalone SVG document.
// Empty events render the grid and axes with no step line; empty remarks
// render the remarks box with no brackets. Nothing in here can fail short of
// the writer itself failing.
func RenderSVG(w io.Writer, sheet Sheet, g Geometry) error {
	var b strings.Builder

	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&b, `<svg viewBox="0 0 %s %s" width="100%%" xmlns="http://www.w3.org/2000/svg">`+"\n",
		trimFloat(g.Width), trimFloat(g.CanvasHeight()))

	fmt.Fprintf(&b, `<text x="%s" y="24" font-size="15" font-weight="700" fill="%s">%s</text>`+"\n",
		trimFloat(g.LeftPad), textColor,
		escapeText(fmt.Sprintf("DRIVER'S DAILY LOG (ONE CALENDAR DAY — 24 HOURS) — Day %d", sheet.Day)))

	renderGrid(&b, g)
	renderTotals(&b, TotalsByStatus(sheet.Events), g)

	if d := PathData(BuildStepPath(sheet.Events, g)); d != "" {
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="6.5" stroke-linejoin="miter" stroke-linecap="butt"/>`+"\n",
			d, pathColor)
	}

	renderRemarks(&b, sheet, g)

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// renderGrid draws the bordered four-row grid, the 96 quarter-hour ticks,
// and the hour labels.
func renderGrid(b *strings.Builder, g Geometry) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="2.2"/>`+"\n",
		trimFloat(g.LeftPad), trimFloat(g.TopPad), trimFloat(g.PlotWidth()), trimFloat(g.PlotHeight()), strokeStrong)

	for minute := 0; minute <= MinutesPerDay; minute += 15 {
		x := g.XForMinute(minute)
		stroke, width := strokeMinor, "0.75"
		if minute%60 == 0 {
			stroke, width = strokeMajor, "2"
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			trimFloat(x), trimFloat(g.TopPad), trimFloat(x), trimFloat(g.TopPad+g.PlotHeight()), stroke, width)
	}

	for hour := 0; hour <= 24; hour++ {
		label := hourLabel(hour)
		if label == "" {
			continue
		}
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="%s">%s</text>`+"\n",
			trimFloat(g.XForMinute(hour*60)), trimFloat(g.TopPad-12), textColor, escapeText(label))
	}
}

// renderTotals draws the row separators, status labels, per-row totals, and
// the totals column header.
func renderTotals(b *strings.Builder, totals Totals, g Geometry) {
	totalsX := g.LeftPad + g.PlotWidth() + 45

	for row := DutyStatus(0); row < StatusCount; row++ {
		if row > 0 {
			y := g.RowTopY(row)
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2.2"/>`+"\n",
				trimFloat(g.LeftPad), trimFloat(y), trimFloat(g.LeftPad+g.PlotWidth()), trimFloat(y), strokeMajor)
		}
		centerY := g.RowCenterY(row)
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="12" text-anchor="end" fill="%s">%s</text>`+"\n",
			trimFloat(g.LeftPad-10), trimFloat(centerY+4), textColor, escapeText(row.Label()))
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="13" text-anchor="middle" fill="%s">%s</text>`+"\n",
			trimFloat(totalsX), trimFloat(centerY+4), textColor, totals.Hours(row))
	}

	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="11" text-anchor="middle" fill="%s">TOTAL HOURS</text>`+"\n",
		trimFloat(totalsX), trimFloat(g.TopPad-12), textColor)
}

// renderRemarks draws the remarks strip, its quarter-hour ticks, and one
// U-bracket with rotated reason and location labels per remark.
func renderRemarks(b *strings.Builder, sheet Sheet, g Geometry) {
	boxTop := g.RemarksBoxTop()

	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="11" font-weight="700" text-anchor="end" fill="%s">REMARKS</text>`+"\n",
		trimFloat(g.LeftPad-10), trimFloat(boxTop+g.RemarksBoxH/2+4), textColor)

	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="1.8"/>`+"\n",
		trimFloat(g.LeftPad), trimFloat(boxTop), trimFloat(g.PlotWidth()), trimFloat(g.RemarksBoxH), strokeMajor)

	for minute := 0; minute <= MinutesPerDay; minute += 15 {
		x := g.XForMinute(minute)
		stroke, width, tickLen := strokeMinor, "0.9", g.RemarksBoxH*0.5
		if minute%60 == 0 {
			stroke, width, tickLen = strokeMajor, "2", g.RemarksBoxH*0.85
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			trimFloat(x), trimFloat(boxTop), trimFloat(x), trimFloat(boxTop+tickLen), stroke, width)
	}

	for _, rm := range LayoutRemarks(sheet.Remarks, g) {
		br := BracketFor(rm, g)
		mid := br.Mid()

		// U-bracket: two arms and a bottom bar
		for _, arm := range [][4]float64{
			{br.Left, br.Top, br.Left, br.Bottom},
			{br.Right, br.Top, br.Right, br.Bottom},
			{br.Left, br.Bottom, br.Right, br.Bottom},
		} {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="3.3" stroke-linecap="square"/>`+"\n",
				trimFloat(arm[0]), trimFloat(arm[1]), trimFloat(arm[2]), trimFloat(arm[3]), pathColor)
		}

		pointerEndY := br.Bottom + 12
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5" stroke-linecap="round"/>`+"\n",
			trimFloat(mid), trimFloat(br.Bottom), trimFloat(mid), trimFloat(pointerEndY), pathColor)

		location := UnresolvedLabel
		if rm.Key != "" {
			if label, ok := sheet.Labels[rm.Key]; ok && label != "" {
				location = label
			}
		}

		reasonX := mid - 7
		locationX := mid + 7
		textY := pointerEndY + 44

		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="end" font-size="10.5" fill="%s" transform="rotate(-90 %s %s)">%s</text>`+"\n",
			trimFloat(reasonX), trimFloat(textY), textColor, trimFloat(reasonX), trimFloat(textY), escapeText(rm.Reason))
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="end" font-size="11.5" font-weight="600" fill="%s" transform="rotate(-90 %s %s)">%s</text>`+"\n",
			trimFloat(locationX), trimFloat(textY), textColor, trimFloat(locationX), trimFloat(textY), escapeText(location))
	}
}
