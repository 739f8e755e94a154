package models

import (
	"errors"
	"math"
)

// ProbeRange constrains the probe value the way the slider does: a closed
// range with a fixed step measured from Min.
type ProbeRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Initial float64 `json:"initial"`
}

// Validate checks that the range is usable.
func (p *ProbeRange) Validate() error {
	for _, v := range []float64{p.Min, p.Max, p.Step, p.Initial} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("probe range values must be finite")
		}
	}
	if p.Min >= p.Max {
		return errors.New("probe min must be below probe max")
	}
	if p.Step <= 0 {
		return errors.New("probe step must be positive")
	}
	if p.Initial < p.Min || p.Initial > p.Max {
		return errors.New("probe initial value must lie within [min, max]")
	}
	return nil
}

// Clamp snaps v to the step grid anchored at Min and keeps it inside the
// range. NaN resolves to Initial.
func (p ProbeRange) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Initial
	}
	if v <= p.Min {
		return p.Min
	}
	if v >= p.Max {
		return p.Max
	}
	snapped := p.Min + math.Round((v-p.Min)/p.Step)*p.Step
	if snapped > p.Max {
		// Max need not sit on the grid; it is still a valid stop.
		below := snapped - p.Step
		if p.Max-v < v-below {
			return p.Max
		}
		return below
	}
	return snapped
}

// Ticks returns n evenly spaced values over the range.
func (p ProbeRange) Ticks(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{p.Min}
	}
	out := make([]float64, n)
	step := (p.Max - p.Min) / float64(n-1)
	for i := range out {
		out[i] = p.Min + float64(i)*step
	}
	out[n-1] = p.Max
	return out
}
