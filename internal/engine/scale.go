package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

// DefaultStops is the stop count the default palettes produce: six blues and
// five reds.
const DefaultStops = 11

// ErrTooFewStops is returned when a scale cannot support the index formula,
// which needs at least one interior bucket.
var ErrTooFewStops = errors.New("color scale needs at least 3 stops")

// ColorScale is an immutable, evenly spaced piecewise color scale running from
// dark blue at index 0 to dark red at index Len()-1. Index maps positions above
// an interval to 0 and positions below it to Len()-1.
type ColorScale struct {
	stops []models.ColorStop
}

// BuildColorScale concatenates the blue stops in reverse with the red stops in
// order and pairs color i with the value i/(n-1).
func BuildColorScale(blueStops, redStops []palette.RGB) (*ColorScale, error) {
	n := len(blueStops) + len(redStops)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewStops, n)
	}

	colors := make([]palette.RGB, 0, n)
	for i := len(blueStops) - 1; i >= 0; i-- {
		colors = append(colors, blueStops[i])
	}
	colors = append(colors, redStops...)

	stops := make([]models.ColorStop, n)
	for i, c := range colors {
		stops[i] = models.ColorStop{Value: float64(i) / float64(n-1), Color: c}
	}
	stops[n-1].Value = 1

	return &ColorScale{stops: stops}, nil
}

// SampledScale samples blueCount colors from blues and redCount colors from
// reds at evenly spaced positions and builds the scale from them.
func SampledScale(blues, reds []palette.RGB, blueCount, redCount int) (*ColorScale, error) {
	b := palette.Sample(blues, palette.Linspace(0, 1, blueCount))
	r := palette.Sample(reds, palette.Linspace(0, 1, redCount))
	return BuildColorScale(b, r)
}

// DefaultScale is the 11-stop Blues/Reds scale.
func DefaultScale() *ColorScale {
	s, err := SampledScale(palette.Blues, palette.Reds, 6, 5)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of stops.
func (s *ColorScale) Len() int {
	return len(s.stops)
}

// Stops returns a copy of the stops.
func (s *ColorScale) Stops() []models.ColorStop {
	out := make([]models.ColorStop, len(s.stops))
	copy(out, s.stops)
	return out
}

// Colors returns the stop colors in scale order.
func (s *ColorScale) Colors() []palette.RGB {
	out := make([]palette.RGB, len(s.stops))
	for i, st := range s.stops {
		out[i] = st.Color
	}
	return out
}

// Color returns the color at index i.
func (s *ColorScale) Color(i int) palette.RGB {
	return s.stops[i].Color
}

// Index maps an interval position to a stop index. Positions below the
// interval take the last stop, positions above it the first, and positions
// inside are quantized into Len()-2 buckets over indexes Len()-2 down to 1.
// The two end stops therefore only ever mark out-of-interval probes.
func (s *ColorScale) Index(position float64) int {
	return quantize(position, len(s.stops))
}

// ColorIndex is Index for the default 11-stop scale.
func ColorIndex(position float64) int {
	return quantize(position, DefaultStops)
}

func quantize(position float64, numStops int) int {
	top := numStops - 1
	switch {
	case math.IsNaN(position) || position < 0:
		return top
	case position > 1:
		return 0
	}
	return top - (int(math.Floor(position*float64(numStops-2))) + 1)
}

// SteppedScale turns the scale into a discrete legend scale over ticks evenly
// spaced values: band j spans [t_j, t_j+1] in stop color j, emitted as the
// duplicated pair (t_j, c_j), (t_j+1, c_j). Colors beyond the last band are
// dropped and bands beyond the last color reuse it.
func (s *ColorScale) SteppedScale(ticks int) []models.ColorStop {
	if ticks < 2 || len(s.stops) == 0 {
		return nil
	}
	t := palette.Linspace(0, 1, ticks)
	out := make([]models.ColorStop, 0, 2*(ticks-1))
	for j := 0; j < ticks-1; j++ {
		c := s.stops[min(j, len(s.stops)-1)].Color
		out = append(out,
			models.ColorStop{Value: t[j], Color: c},
			models.ColorStop{Value: t[j+1], Color: c},
		)
	}
	return out
}
