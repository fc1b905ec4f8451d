package effect

import (
	"github.com/montanaflynn/stats"

	"gobest/domain/contrast"
)

// MedianDiff computes the difference of group medians, a robust alternative
// to the mean difference for skewed measurements.
type MedianDiff struct{}

// NewMedianDiff creates a median-difference calculator.
func NewMedianDiff() *MedianDiff {
	return &MedianDiff{}
}

// Kind returns the statistic kind
func (c *MedianDiff) Kind() contrast.StatisticKind {
	return contrast.StatMedianDiff
}

// Description returns a human-readable description
func (c *MedianDiff) Description() string {
	return "Difference of group medians, median(test) - median(control)"
}

// MinObservations returns the minimum per-group sample size
func (c *MedianDiff) MinObservations() int {
	return 1
}

// Compute returns median(test) - median(control)
func (c *MedianDiff) Compute(control, test []float64) (float64, error) {
	if err := checkSizes(c.Kind(), c.MinObservations(), control, test); err != nil {
		return 0, err
	}
	controlMedian, err := stats.Median(control)
	if err != nil {
		return 0, err
	}
	testMedian, err := stats.Median(test)
	if err != nil {
		return 0, err
	}
	return testMedian - controlMedian, nil
}
