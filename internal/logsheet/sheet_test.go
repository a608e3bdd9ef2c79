package logsheet

import (
	"strings"
	"testing"
)

func renderToString(t *testing.T, sheet Sheet) string {
	t.Helper()
	var b strings.Builder
	if err := RenderSVG(&b, sheet, DefaultGeometry()); err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	return b.String()
}

func TestRenderSVGEmptySheet(t *testing.T) {
	svg := renderToString(t, Sheet{Day: 1})

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	if strings.Contains(svg, "<path") {
		t.Error("empty events must not render a step path")
	}
	// Grid chrome still present
	for _, want := range []string{"Midnight", "Noon", "TOTAL HOURS", "REMARKS", "Off Duty", "Sleeper Berth", "Driving", "On Duty (Not Driving)"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in empty sheet", want)
		}
	}
	// Empty sheet shows zero totals for all four rows
	if strings.Count(svg, ">0.00</text>") != StatusCount {
		t.Error("expected four 0.00 totals")
	}
}

func TestRenderSVGFullSheet(t *testing.T) {
	events := NormalizeEvents([]RawEvent{
		{Status: "OFF_DUTY", Start: 0.0, End: 360.0},
		{Status: "DRIVING", Start: 360.0, End: 720.0},
	})
	remarks := NormalizeRemarks([]RawRemark{
		{Minute: 360.0, Reason: "Pickup & load", Lng: -87.65005, Lat: 41.85003},
	})

	sheet := Sheet{
		Day:     2,
		Events:  events,
		Remarks: remarks,
		Labels:  map[string]string{remarks[0].Key: "Chicago, IL"},
	}
	svg := renderToString(t, sheet)

	if !strings.Contains(svg, "Day 2") {
		t.Error("missing day number in title")
	}
	if !strings.Contains(svg, "<path d=\"M ") {
		t.Error("missing step path")
	}
	if !strings.Contains(svg, "Chicago, IL") {
		t.Error("resolved location label not rendered")
	}
	if !strings.Contains(svg, "Pickup &amp; load") {
		t.Error("reason text must be escaped and rendered")
	}
	if !strings.Contains(svg, "rotate(-90") {
		t.Error("remark labels must be rotated")
	}
	if !strings.Contains(svg, ">6.00</text>") {
		t.Error("expected 6.00 hour totals for both occupied rows")
	}
}

func TestRenderSVGUnresolvedLabelSentinel(t *testing.T) {
	remarks := NormalizeRemarks([]RawRemark{
		{Minute: 100.0, Reason: "Fuel", Lng: -100.0, Lat: 35.0},
		{Minute: 900.0, Reason: "Break"}, // no coordinates at all
	})
	svg := renderToString(t, Sheet{Day: 1, Remarks: remarks})

	if strings.Count(svg, ">"+UnresolvedLabel+"<") != 2 {
		t.Errorf("both remarks should fall back to the %s sentinel", UnresolvedLabel)
	}
}

func TestRenderSVGTickCount(t *testing.T) {
	svg := renderToString(t, Sheet{Day: 1})
	// 97 grid ticks plus 97 remarks-strip ticks, plus 3 row separators and
	// any bracket lines (none here).
	lines := strings.Count(svg, "<line ")
	if lines != 97+97+3 {
		t.Errorf("expected 197 line elements on an empty sheet, got %d", lines)
	}
}
