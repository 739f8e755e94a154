// Package palette provides the RGB color type used by the color engine, the
// sequential palettes the bar fill is built from, and linear sampling of an
// evenly spaced palette at arbitrary positions.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB is a color with 0–255 float components. Components are kept as floats so
// interpolated colors do not accumulate rounding error before formatting.
type RGB struct {
	R, G, B float64
}

// String formats the color as a CSS rgb() value.
func (c RGB) String() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Color converts to an opaque image/color value.
func (c RGB) Color() color.RGBA {
	r, g, b := c.bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// MarshalText lets colors appear as rgb() strings in JSON.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c RGB) bytes() (uint8, uint8, uint8) {
	return clampByte(c.R), clampByte(c.G), clampByte(c.B)
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ErrInvalidColor is returned by Parse for unrecognized color strings.
var ErrInvalidColor = errors.New("invalid color")

// Parse reads "rgb(r, g, b)" (integer or float components) or "#rrggbb".
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) != 6 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGB{R: float64(v >> 16 & 0xff), G: float64(v >> 8 & 0xff), B: float64(v & 0xff)}, nil

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var comps [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || v < 0 || v > 255 {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			comps[i] = v
		}
		return RGB{R: comps[0], G: comps[1], B: comps[2]}, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParse is Parse for package-level palette literals.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses every entry of a configured palette.
func ParseAll(values []string) ([]RGB, error) {
	out := make([]RGB, len(values))
	for i, v := range values {
		c, err := Parse(v)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Lerp interpolates linearly between a and b; t is not clamped.
func Lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
	}
}

// Sample evaluates the palette, treated as evenly spaced stops over [0, 1], at
// each of the given positions. Positions outside [0, 1] take the end colors.
func Sample(colors []RGB, positions []float64) []RGB {
	out := make([]RGB, len(positions))
	if len(colors) == 0 {
		return out
	}
	last := len(colors) - 1
	for i, t := range positions {
		switch {
		case last == 0 || t <= 0:
			out[i] = colors[0]
		case t >= 1:
			out[i] = colors[last]
		default:
			x := t * float64(last)
			lo := int(math.Floor(x))
			if lo >= last {
				out[i] = colors[last]
				continue
			}
			out[i] = Lerp(colors[lo], colors[lo+1], x-float64(lo))
		}
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
