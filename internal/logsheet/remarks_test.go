package logsheet

import (
	"math"
	"testing"
)

func TestLayoutRemarks(t *testing.T) {
	g := DefaultGeometry()

	tests := []struct {
		name           string
		minutes        []int
		expectedLevels []int
	}{
		{
			name:           "no remarks",
			minutes:        nil,
			expectedLevels: nil,
		},
		{
			name:           "single remark sits on the line",
			minutes:        []int{100},
			expectedLevels: []int{0},
		},
		{
			name:           "close pair alternates levels",
			minutes:        []int{100, 103},
			expectedLevels: []int{0, 1},
		},
		{
			name:           "distant remarks all level zero",
			minutes:        []int{0, 1000},
			expectedLevels: []int{0, 0},
		},
		{
			name:           "cluster staggers by index parity",
			minutes:        []int{100, 103, 106, 109},
			expectedLevels: []int{0, 1, 0, 1},
		},
		{
			name:           "far remark after a cluster resets to zero",
			minutes:        []int{100, 103, 1200},
			expectedLevels: []int{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remarks := make([]Remark, len(tt.minutes))
			for i, m := range tt.minutes {
				remarks[i] = Remark{Minute: m, Start: m, End: m + 30}
			}
			placed := LayoutRemarks(remarks, g)
			if len(placed) != len(tt.expectedLevels) {
				t.Fatalf("got %d placed remarks, expected %d", len(placed), len(tt.expectedLevels))
			}
			for i, p := range placed {
				if p.Level != tt.expectedLevels[i] {
					t.Errorf("remark %d (minute %d): level = %d, expected %d",
						i, tt.minutes[i], p.Level, tt.expectedLevels[i])
				}
				if math.Abs(p.X-g.XForMinute(tt.minutes[i])) > 0.001 {
					t.Errorf("remark %d: x = %f, expected %f", i, p.X, g.XForMinute(tt.minutes[i]))
				}
			}
		})
	}
}

func TestBracketFor(t *testing.T) {
	g := DefaultGeometry()

	t.Run("minimum width floor", func(t *testing.T) {
		rm := PlacedRemark{Remark: Remark{Start: 600, End: 600}}
		br := BracketFor(rm, g)
		if br.Right-br.Left < g.MinBracketWidth {
			t.Errorf("bracket width %f below floor %f", br.Right-br.Left, g.MinBracketWidth)
		}
	})

	t.Run("wide stop keeps its span", func(t *testing.T) {
		rm := PlacedRemark{Remark: Remark{Start: 600, End: 700}}
		br := BracketFor(rm, g)
		if math.Abs(br.Left-g.XForMinute(600)) > 0.001 || math.Abs(br.Right-g.XForMinute(700)) > 0.001 {
			t.Errorf("bracket = [%f,%f], expected [x(600),x(700)]", br.Left, br.Right)
		}
	})

	t.Run("staggered bracket hangs lower", func(t *testing.T) {
		flat := BracketFor(PlacedRemark{Remark: Remark{Start: 100, End: 130}, Level: 0}, g)
		low := BracketFor(PlacedRemark{Remark: Remark{Start: 100, End: 130}, Level: 1}, g)
		if low.Top <= flat.Top {
			t.Errorf("level 1 top %f not below level 0 top %f", low.Top, flat.Top)
		}
		if math.Abs((low.Bottom-low.Top)-(flat.Bottom-flat.Top)) > 0.001 {
			t.Error("stagger must offset the bracket, not stretch it")
		}
	})
}
