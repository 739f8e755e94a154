package engine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/rewired-gh/probebar/internal/models"
)

// DefaultZScore is the two-sided 95% normal critical value.
const DefaultZScore = 1.96

// ErrTooFewSamples is returned when a standard error cannot be estimated.
var ErrTooFewSamples = errors.New("at least 2 samples are required")

// Summarize computes a category's mean and margin of error from raw samples.
// The standard deviation is the unbiased (n-1) estimate and the margin is
// z × sd / sqrt(n).
func Summarize(label string, samples []float64, z float64) (models.Category, error) {
	if len(samples) < 2 {
		return models.Category{}, fmt.Errorf("summarize %s: %w (got %d)", label, ErrTooFewSamples, len(samples))
	}
	if z <= 0 {
		return models.Category{}, fmt.Errorf("summarize %s: z-score must be positive, got %g", label, z)
	}

	mean, sd := stat.MeanStdDev(samples, nil)
	se := stat.StdErr(sd, float64(len(samples)))

	c := models.Category{
		Label:  label,
		Mean:   mean,
		Margin: z * se,
	}
	if err := c.Validate(); err != nil {
		return models.Category{}, fmt.Errorf("summarize %s: %w", label, err)
	}
	return c, nil
}
