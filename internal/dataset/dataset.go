// Package dataset generates the synthetic sample population behind the chart.
// The seed and distribution parameters are passed in explicitly, so the same
// Params always produce the same samples and tests can use fixed fixtures.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rewired-gh/probebar/internal/engine"
	"github.com/rewired-gh/probebar/internal/models"
)

// Distribution describes the normal population drawn for one category.
type Distribution struct {
	Label  string  `mapstructure:"label" json:"label"`
	Mean   float64 `mapstructure:"mean" json:"mean"`
	StdDev float64 `mapstructure:"stddev" json:"stddev"`
}

// Params fully determines a generated dataset.
type Params struct {
	Seed       int64
	SampleSize int
	Categories []Distribution
}

// Validate checks that samples can be drawn and summarized.
func (p *Params) Validate() error {
	if p.SampleSize < 2 {
		return fmt.Errorf("sample size must be at least 2, got %d", p.SampleSize)
	}
	if len(p.Categories) == 0 {
		return errors.New("at least one category distribution is required")
	}
	for i, d := range p.Categories {
		if d.Label == "" {
			return fmt.Errorf("category %d: label must not be empty", i)
		}
		if d.StdDev <= 0 {
			return fmt.Errorf("category %s: stddev must be positive", d.Label)
		}
	}
	return nil
}

// Generate draws SampleSize normal samples per category from a single source
// seeded with Seed. Categories are drawn in order, so reordering them changes
// the samples.
func Generate(p Params) ([][]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset params: %w", err)
	}

	r := rand.New(rand.NewSource(p.Seed))
	out := make([][]float64, len(p.Categories))
	for i, d := range p.Categories {
		samples := make([]float64, p.SampleSize)
		for j := range samples {
			samples[j] = r.NormFloat64()*d.StdDev + d.Mean
		}
		out[i] = samples
	}
	return out, nil
}

// Build generates the samples and summarizes each category with the given
// z-score.
func Build(p Params, z float64) ([]models.Category, error) {
	samples, err := Generate(p)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, len(samples))
	for i, s := range samples {
		c, err := engine.Summarize(p.Categories[i].Label, s, z)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize category: %w", err)
		}
		categories[i] = c
	}
	return categories, nil
}
