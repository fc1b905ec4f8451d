package effect

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// CohensD standardizes the mean difference by the pooled standard deviation.
type CohensD struct{}

// NewCohensD creates a Cohen's d calculator.
func NewCohensD() *CohensD {
	return &CohensD{}
}

// Kind returns the statistic kind
func (c *CohensD) Kind() contrast.StatisticKind {
	return contrast.StatCohensD
}

// Description returns a human-readable description
func (c *CohensD) Description() string {
	return "Mean difference standardized by the pooled standard deviation, (n1+n2-2) df"
}

// MinObservations returns the minimum per-group sample size.
// Variance is undefined below two observations.
func (c *CohensD) MinObservations() int {
	return 2
}

// Compute returns (mean(test) - mean(control)) / pooledSD
func (c *CohensD) Compute(control, test []float64) (float64, error) {
	if err := checkSizes(c.Kind(), c.MinObservations(), control, test); err != nil {
		return 0, err
	}
	pooled := pooledStdDev(control, test)
	if pooled == 0 {
		return 0, fmt.Errorf("%w: pooled standard deviation is zero", core.ErrZeroVariance)
	}
	return (stat.Mean(test, nil) - stat.Mean(control, nil)) / pooled, nil
}
