package effect

import (
	"gobest/domain/contrast"
)

// CliffsDelta is the ordinal effect size: the probability that a random test
// observation exceeds a random control observation, minus the reverse.
// Computed exactly from pairwise comparison counts, never by sampling.
type CliffsDelta struct{}

// NewCliffsDelta creates a Cliff's delta calculator.
func NewCliffsDelta() *CliffsDelta {
	return &CliffsDelta{}
}

// Kind returns the statistic kind
func (c *CliffsDelta) Kind() contrast.StatisticKind {
	return contrast.StatCliffsDelta
}

// Description returns a human-readable description
func (c *CliffsDelta) Description() string {
	return "Ordinal dominance: P(test > control) - P(control > test), computed exactly"
}

// MinObservations returns the minimum per-group sample size
func (c *CliffsDelta) MinObservations() int {
	return 1
}

// Compute returns (#{test > control} - #{control > test}) / (n1 * n2).
// Ties contribute to neither count, so identical samples yield exactly 0.
func (c *CliffsDelta) Compute(control, test []float64) (float64, error) {
	if err := checkSizes(c.Kind(), c.MinObservations(), control, test); err != nil {
		return 0, err
	}
	greater, less := 0, 0
	for _, t := range test {
		for _, ctl := range control {
			switch {
			case t > ctl:
				greater++
			case t < ctl:
				less++
			}
		}
	}
	pairs := float64(len(control) * len(test))
	return (float64(greater) - float64(less)) / pairs, nil
}
