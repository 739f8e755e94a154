package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

func fixtureCategories() []models.Category {
	return []models.Category{
		{Label: "1992", Mean: 32000, Margin: 6489.2},
		{Label: "1993", Mean: 43000, Margin: 3244.6},
		{Label: "1994", Mean: 43500, Margin: 4542.4},
		{Label: "1995", Mean: 48000, Margin: 2271.2},
	}
}

func TestColorIndex_BelowInterval(t *testing.T) {
	for _, pos := range []float64{-0.0001, -0.5, -1, -1e9, math.Inf(-1)} {
		if got := ColorIndex(pos); got != 10 {
			t.Errorf("ColorIndex(%v) = %d, expected 10", pos, got)
		}
	}
}

func TestColorIndex_AboveInterval(t *testing.T) {
	for _, pos := range []float64{1.0001, 1.5, 2, 1e9, math.Inf(1)} {
		if got := ColorIndex(pos); got != 0 {
			t.Errorf("ColorIndex(%v) = %d, expected 0", pos, got)
		}
	}
}

func TestColorIndex_InsideInterval(t *testing.T) {
	tests := []struct {
		pos  float64
		want int
	}{
		{0, 9},
		{0.05, 9},
		{0.12, 8},
		{0.5, 5},
		{0.999, 1},
		{1, 0},
	}

	for _, tt := range tests {
		if got := ColorIndex(tt.pos); got != tt.want {
			t.Errorf("ColorIndex(%v) = %d, expected %d", tt.pos, got, tt.want)
		}
	}
}

func TestColorIndex_NaN(t *testing.T) {
	if got := ColorIndex(math.NaN()); got != 10 {
		t.Errorf("ColorIndex(NaN) = %d, expected 10", got)
	}
}

func TestColorIndex_MonotonicNonIncreasing(t *testing.T) {
	prev := ColorIndex(-0.01)
	for i := 0; i <= 10000; i++ {
		pos := float64(i) / 10000
		got := ColorIndex(pos)
		if got > prev {
			t.Fatalf("ColorIndex increased at %v: %d > %d", pos, got, prev)
		}
		if got < 0 || got > 10 {
			t.Fatalf("ColorIndex(%v) = %d out of [0, 10]", pos, got)
		}
		prev = got
	}
	if got := ColorIndex(1.01); got > prev {
		t.Errorf("ColorIndex above interval %d exceeds last in-range index %d", got, prev)
	}
}

func TestScaleIndex_DerivedFromLength(t *testing.T) {
	scale, err := BuildColorScale(palette.Blues[:3], palette.Reds[:2])
	if err != nil {
		t.Fatalf("BuildColorScale failed: %v", err)
	}
	if scale.Len() != 5 {
		t.Fatalf("Expected 5 stops, got %d", scale.Len())
	}

	tests := []struct {
		pos  float64
		want int
	}{
		{-0.1, 4},
		{0, 3},
		{0.4, 2},
		{0.999, 1},
		{1.1, 0},
	}
	for _, tt := range tests {
		if got := scale.Index(tt.pos); got != tt.want {
			t.Errorf("Index(%v) = %d, expected %d", tt.pos, got, tt.want)
		}
	}
}

func TestBuildColorScale(t *testing.T) {
	scale := DefaultScale()
	if scale.Len() != 11 {
		t.Fatalf("Expected 11 stops, got %d", scale.Len())
	}

	stops := scale.Stops()
	for i, st := range stops {
		want := float64(i) / 10
		if math.Abs(st.Value-want) > 1e-12 {
			t.Errorf("Stop %d value = %v, expected %v", i, st.Value, want)
		}
	}
	if err := models.ValidateStops(stops); err != nil {
		t.Errorf("Default scale failed validation: %v", err)
	}

	// Blues reversed: darkest blue first, lightest blue meets lightest red.
	checks := map[int]string{
		0:  "rgb(8, 48, 107)",
		5:  "rgb(247, 251, 255)",
		6:  "rgb(255, 245, 240)",
		10: "rgb(103, 0, 13)",
	}
	for i, want := range checks {
		if got := scale.Color(i).String(); got != want {
			t.Errorf("Stop %d color = %s, expected %s", i, got, want)
		}
	}
}

func TestBuildColorScale_Order(t *testing.T) {
	blues := []palette.RGB{{R: 1}, {R: 2}, {R: 3}}
	reds := []palette.RGB{{G: 1}, {G: 2}}
	scale, err := BuildColorScale(blues, reds)
	if err != nil {
		t.Fatalf("BuildColorScale failed: %v", err)
	}
	want := []palette.RGB{{R: 3}, {R: 2}, {R: 1}, {G: 1}, {G: 2}}
	got := scale.Colors()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Color %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestBuildColorScale_TooFewStops(t *testing.T) {
	_, err := BuildColorScale(palette.Blues[:1], palette.Reds[:1])
	if !errors.Is(err, ErrTooFewStops) {
		t.Errorf("Expected ErrTooFewStops, got %v", err)
	}
}

func TestFillColors_IntervalBottom(t *testing.T) {
	e := New(nil)
	cats := fixtureCategories()

	probe := cats[0].Mean - cats[0].Margin
	if pos := Position(probe, cats[0]); pos != 0 {
		t.Fatalf("Expected position 0, got %v", pos)
	}

	assignments := e.Assign(probe, cats)
	if assignments[0].Index != 9 {
		t.Errorf("Expected index 9 for category 0, got %d", assignments[0].Index)
	}
	colors := e.FillColors(probe, cats)
	if colors[0] != e.Scale().Color(9) {
		t.Errorf("Expected color of stop 9, got %v", colors[0])
	}
}

func TestFillColors_AboveAllIntervals(t *testing.T) {
	e := New(nil)
	cats := fixtureCategories()

	colors := e.FillColors(1e6, cats)
	if len(colors) != len(cats) {
		t.Fatalf("Expected %d colors, got %d", len(cats), len(colors))
	}
	for i, c := range colors {
		if c != e.Scale().Color(0) {
			t.Errorf("Category %d: expected top stop color, got %v", i, c)
		}
	}
}

func TestFillColors_BelowAllIntervals(t *testing.T) {
	e := New(nil)
	for i, a := range e.Assign(0, fixtureCategories()) {
		if a.Index != 10 {
			t.Errorf("Category %d: expected index 10, got %d", i, a.Index)
		}
	}
}

func TestFillColors_Idempotent(t *testing.T) {
	e := New(nil)
	cats := fixtureCategories()

	for _, probe := range []float64{0, 30000, 40400, 43000, 51595.8} {
		first := e.FillColors(probe, cats)
		second := e.FillColors(probe, cats)
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("probe %v category %d: %v != %v", probe, i, first[i], second[i])
			}
		}
	}
}

func TestFillColors_PreservesOrder(t *testing.T) {
	e := New(nil)
	cats := fixtureCategories()
	assignments := e.Assign(40400, cats)
	for i, a := range assignments {
		if a.Label != cats[i].Label {
			t.Errorf("Assignment %d label = %s, expected %s", i, a.Label, cats[i].Label)
		}
	}
}

func TestSteppedScale(t *testing.T) {
	scale := DefaultScale()
	stepped := scale.SteppedScale(12)
	if len(stepped) != 22 {
		t.Fatalf("Expected 22 stops, got %d", len(stepped))
	}
	if err := models.ValidateStops(stepped); err != nil {
		t.Errorf("Stepped scale failed validation: %v", err)
	}
	for j := 0; j < 11; j++ {
		lo, hi := stepped[2*j], stepped[2*j+1]
		if lo.Color != scale.Color(j) || hi.Color != scale.Color(j) {
			t.Errorf("Band %d not colored with stop %d", j, j)
		}
		if math.Abs(lo.Value-float64(j)/11) > 1e-12 || math.Abs(hi.Value-float64(j+1)/11) > 1e-12 {
			t.Errorf("Band %d spans [%v, %v]", j, lo.Value, hi.Value)
		}
	}
}

func TestSummarize(t *testing.T) {
	c, err := Summarize("x", []float64{1, 2, 3, 4, 5}, DefaultZScore)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if math.Abs(c.Mean-3) > 1e-12 {
		t.Errorf("Expected mean 3, got %v", c.Mean)
	}
	wantMargin := 1.96 * math.Sqrt(2.5) / math.Sqrt(5)
	if math.Abs(c.Margin-wantMargin) > 1e-12 {
		t.Errorf("Expected margin %v, got %v", wantMargin, c.Margin)
	}
}

func TestSummarize_Errors(t *testing.T) {
	if _, err := Summarize("x", []float64{1}, DefaultZScore); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("Expected ErrTooFewSamples, got %v", err)
	}
	if _, err := Summarize("x", []float64{4, 4, 4}, DefaultZScore); err == nil {
		t.Error("Expected error for zero-variance samples")
	}
	if _, err := Summarize("x", []float64{1, 2}, 0); err == nil {
		t.Error("Expected error for zero z-score")
	}
}
