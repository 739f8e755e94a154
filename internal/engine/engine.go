// Package engine maps a probe value to one fill color per category.
//
// For every category the probe is located inside the category's confidence
// interval:
//
//	position = (probe - (mean - margin)) / (2 × margin)
//
// so 0 is the bottom of the interval and 1 the top. The position is quantized
// onto a blue→red ColorScale by Index; probes outside the interval saturate
// to the two end stops.
//
// Everything here is a pure function of its inputs. Categories and scales are
// never mutated, so one Engine can serve concurrent requests without locking.
package engine

import (
	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

// Assignment is the engine's result for one category.
type Assignment struct {
	Label    string      `json:"label"`
	Position float64     `json:"position"`
	Index    int         `json:"index"`
	Color    palette.RGB `json:"color"`
}

// Engine colors categories against a fixed scale.
type Engine struct {
	scale *ColorScale
}

// New creates an Engine over scale. A nil scale selects DefaultScale.
func New(scale *ColorScale) *Engine {
	if scale == nil {
		scale = DefaultScale()
	}
	return &Engine{scale: scale}
}

// Scale returns the engine's color scale.
func (e *Engine) Scale() *ColorScale {
	return e.scale
}

// Position locates probe within the category's confidence interval.
// Categories are validated at startup, so Margin is never zero here.
func Position(probe float64, c models.Category) float64 {
	return (probe - (c.Mean - c.Margin)) / (2 * c.Margin)
}

// FillColors returns the fill color of each category for probe, in category
// order.
func (e *Engine) FillColors(probe float64, categories []models.Category) []palette.RGB {
	colors := make([]palette.RGB, len(categories))
	for i, c := range categories {
		colors[i] = e.scale.Color(e.scale.Index(Position(probe, c)))
	}
	return colors
}

// Assign is FillColors with the intermediate position and index kept.
func (e *Engine) Assign(probe float64, categories []models.Category) []Assignment {
	out := make([]Assignment, len(categories))
	for i, c := range categories {
		pos := Position(probe, c)
		idx := e.scale.Index(pos)
		out[i] = Assignment{
			Label:    c.Label,
			Position: pos,
			Index:    idx,
			Color:    e.scale.Color(idx),
		}
	}
	return out
}
