package models

import (
	"errors"
	"fmt"

	"github.com/rewired-gh/probebar/internal/palette"
)

// ColorStop is one (value, color) point of a piecewise color scale.
type ColorStop struct {
	Value float64
	Color palette.RGB
}

// MarshalJSON emits the [value, color] pair form chart libraries expect.
func (s ColorStop) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%g,%q]", s.Value, s.Color.String())), nil
}

// ValidateStops checks that stop values start at 0, end at 1 and never
// decrease. Stepped scales repeat values, so equal neighbours are allowed.
func ValidateStops(stops []ColorStop) error {
	if len(stops) < 2 {
		return errors.New("color scale needs at least two stops")
	}
	if stops[0].Value != 0 {
		return fmt.Errorf("first stop must be 0, got %g", stops[0].Value)
	}
	if last := stops[len(stops)-1].Value; last != 1 {
		return fmt.Errorf("last stop must be 1, got %g", last)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Value < stops[i-1].Value {
			return fmt.Errorf("stop %d value %g is below stop %d value %g",
				i, stops[i].Value, i-1, stops[i-1].Value)
		}
	}
	return nil
}
