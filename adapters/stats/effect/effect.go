package effect

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// Calculator maps two numeric samples (control, test) to a scalar effect
// size. Implementations are pure and deterministic: same inputs, same value.
type Calculator interface {
	Kind() contrast.StatisticKind
	Description() string

	// MinObservations is the smallest per-group sample size the statistic
	// is defined for.
	MinObservations() int

	Compute(control, test []float64) (float64, error)
}

// ForKind resolves a calculator by statistic kind. The switch is the closed
// enum dispatch: an unhandled kind is a compile-visible gap, not a runtime
// string lookup.
func ForKind(kind contrast.StatisticKind) (Calculator, error) {
	switch kind {
	case contrast.StatMeanDiff:
		return NewMeanDiff(), nil
	case contrast.StatMedianDiff:
		return NewMedianDiff(), nil
	case contrast.StatCohensD:
		return NewCohensD(), nil
	case contrast.StatHedgesG:
		return NewHedgesG(), nil
	case contrast.StatCliffsDelta:
		return NewCliffsDelta(), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownStatistic, kind)
	}
}

// checkSizes enforces the calculator's minimum per-group sample size.
func checkSizes(kind contrast.StatisticKind, min int, control, test []float64) error {
	if len(control) < min {
		return core.NewInsufficientDataError(string(kind), min, len(control))
	}
	if len(test) < min {
		return core.NewInsufficientDataError(string(kind), min, len(test))
	}
	return nil
}

// pooledStdDev computes the pooled standard deviation with (n1+n2-2)
// degrees of freedom.
func pooledStdDev(control, test []float64) float64 {
	n1 := float64(len(control))
	n2 := float64(len(test))
	v1 := stat.Variance(control, nil)
	v2 := stat.Variance(test, nil)
	pooled := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
	return math.Sqrt(pooled)
}
