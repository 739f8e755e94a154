// Package models defines the domain values shared by the color engine, the
// chart builders and the HTTP layer. Every model carries a Validate method so
// malformed statistics are rejected at startup rather than at render time.
//
// Terminology:
//   - Category: one bar of the chart, summarized by its sample mean and the
//     half-width of its 95% confidence interval.
//   - Probe value: the user-controlled scalar compared against every interval.
package models

import (
	"errors"
	"math"
)

// Category holds the precomputed statistics for one bar.
type Category struct {
	Label  string  `json:"label"`
	Mean   float64 `json:"mean"`
	Margin float64 `json:"margin_of_error"` // z × standard error
}

// Lower returns the bottom of the confidence interval.
func (c Category) Lower() float64 {
	return c.Mean - c.Margin
}

// Upper returns the top of the confidence interval.
func (c Category) Upper() float64 {
	return c.Mean + c.Margin
}

// Validate checks that the category can be used as an interval.
func (c *Category) Validate() error {
	if c.Label == "" {
		return errors.New("category label must not be empty")
	}
	if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) {
		return errors.New("category mean must be finite")
	}
	if math.IsNaN(c.Margin) || math.IsInf(c.Margin, 0) {
		return errors.New("category margin of error must be finite")
	}
	// A zero margin would divide by zero when positioning the probe.
	if c.Margin <= 0 {
		return errors.New("category margin of error must be positive")
	}
	return nil
}
