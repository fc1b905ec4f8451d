package effect

import (
	"gobest/domain/contrast"
)

// HedgesG is Cohen's d with Hedges' small-sample bias correction.
type HedgesG struct {
	d *CohensD
}

// NewHedgesG creates a Hedges' g calculator.
func NewHedgesG() *HedgesG {
	return &HedgesG{d: NewCohensD()}
}

// Kind returns the statistic kind
func (c *HedgesG) Kind() contrast.StatisticKind {
	return contrast.StatHedgesG
}

// Description returns a human-readable description
func (c *HedgesG) Description() string {
	return "Cohen's d with Hedges' small-sample bias correction"
}

// MinObservations returns the minimum per-group sample size
func (c *HedgesG) MinObservations() int {
	return 2
}

// Compute returns Cohen's d scaled by 1 - 3/(4(n1+n2)-9).
// The factor is < 1 for all finite samples, so |g| <= |d|.
func (c *HedgesG) Compute(control, test []float64) (float64, error) {
	if err := checkSizes(c.Kind(), c.MinObservations(), control, test); err != nil {
		return 0, err
	}
	d, err := c.d.Compute(control, test)
	if err != nil {
		return 0, err
	}
	n := float64(len(control) + len(test))
	correction := 1 - 3/(4*n-9)
	return d * correction, nil
}
