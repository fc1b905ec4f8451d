package effect

import (
	"gonum.org/v1/gonum/stat"

	"gobest/domain/contrast"
)

// MeanDiff computes the raw difference of group means.
type MeanDiff struct{}

// NewMeanDiff creates a mean-difference calculator.
func NewMeanDiff() *MeanDiff {
	return &MeanDiff{}
}

// Kind returns the statistic kind
func (c *MeanDiff) Kind() contrast.StatisticKind {
	return contrast.StatMeanDiff
}

// Description returns a human-readable description
func (c *MeanDiff) Description() string {
	return "Unstandardized difference of group means, mean(test) - mean(control)"
}

// MinObservations returns the minimum per-group sample size
func (c *MeanDiff) MinObservations() int {
	return 1
}

// Compute returns mean(test) - mean(control)
func (c *MeanDiff) Compute(control, test []float64) (float64, error) {
	if err := checkSizes(c.Kind(), c.MinObservations(), control, test); err != nil {
		return 0, err
	}
	return stat.Mean(test, nil) - stat.Mean(control, nil), nil
}
