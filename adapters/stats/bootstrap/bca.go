package bootstrap

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// EstimateInterval derives BCa confidence bounds from the observed statistic,
// the bootstrap distribution, and jackknife replicates.
//
// Degradation ladder, never silent:
//   - acceleration undefined (all jackknife replicates identical) -> BC
//     bounds (a=0), method "bc", Degraded=true.
//   - bias correction undefined (all bootstrap mass on one side of the
//     observed statistic) -> plain percentile bounds, method "percentile",
//     Degraded=true.
//
// BCa bounds are not required to contain the observed statistic.
func (e *Engine) EstimateInterval(observed float64, dist contrast.BootstrapDistribution, jackknife []float64, confidenceLevel float64) (contrast.IntervalResult, error) {
	if dist.Len() == 0 {
		return contrast.IntervalResult{}, fmt.Errorf("%w: empty bootstrap distribution", core.ErrDegenerateDistribution)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return contrast.IntervalResult{}, core.NewSpecError("confidence_level",
			fmt.Sprintf("must be in (0,1), got %g", confidenceLevel))
	}

	sorted := dist.Sorted()
	n := len(sorted)
	result := contrast.IntervalResult{
		Observed:        observed,
		ConfidenceLevel: confidenceLevel,
		Method:          contrast.MethodBCa,
	}

	alphaLo := (1 - confidenceLevel) / 2
	alphaHi := 1 - alphaLo

	// Bias fraction: values equal to the observed statistic credit 0.5
	// toward "less than", avoiding a biased z0 at distribution boundaries.
	below, equal := 0, 0
	for _, v := range sorted {
		switch {
		case v < observed:
			below++
		case v == observed:
			equal++
		}
	}
	biasFraction := (float64(below) + 0.5*float64(equal)) / float64(n)

	if biasFraction <= 0 || biasFraction >= 1 {
		// z0 would be infinite. Percentile bounds are the only honest output.
		e.log.Warn("bias fraction %g degenerate, falling back to percentile bounds", biasFraction)
		result.Method = contrast.MethodPercentile
		result.Degraded = true
		result.AlphaLow = alphaLo
		result.AlphaHigh = alphaHi
		result.Lower = sorted[nearestRank(alphaLo, n)]
		result.Upper = sorted[nearestRank(alphaHi, n)]
		return result, nil
	}

	z0 := distuv.UnitNormal.Quantile(biasFraction)
	result.BiasCorrection = z0

	accel, err := acceleration(jackknife)
	switch {
	case errors.Is(err, core.ErrDegenerateDistribution):
		e.log.Warn("acceleration undefined, falling back to bias-corrected bounds: %v", err)
		accel = 0
		result.Method = contrast.MethodBC
		result.Degraded = true
	case err != nil:
		return contrast.IntervalResult{}, err
	}
	result.Acceleration = accel

	zLo := distuv.UnitNormal.Quantile(alphaLo)
	zHi := distuv.UnitNormal.Quantile(alphaHi)
	result.AlphaLow = adjustedAlpha(z0, accel, zLo)
	result.AlphaHigh = adjustedAlpha(z0, accel, zHi)

	result.Lower = sorted[nearestRank(result.AlphaLow, n)]
	result.Upper = sorted[nearestRank(result.AlphaHigh, n)]
	return result, nil
}

// adjustedAlpha applies the BCa percentile adjustment
// alpha' = Phi(z0 + (z0+z)/(1 - a*(z0+z))).
func adjustedAlpha(z0, accel, z float64) float64 {
	shifted := z0 + z
	return distuv.UnitNormal.CDF(z0 + shifted/(1-accel*shifted))
}

// acceleration computes the BCa acceleration constant from jackknife
// replicates: a = sum((mean-J_i)^3) / (6 * sum((mean-J_i)^2)^1.5).
func acceleration(jackknife []float64) (float64, error) {
	if len(jackknife) == 0 {
		return 0, fmt.Errorf("%w: no jackknife replicates", core.ErrDegenerateDistribution)
	}
	mean := stat.Mean(jackknife, nil)
	var cubed, squared float64
	for _, v := range jackknife {
		d := mean - v
		squared += d * d
		cubed += d * d * d
	}
	if squared == 0 {
		return 0, fmt.Errorf("%w: all jackknife replicates identical", core.ErrDegenerateDistribution)
	}
	return cubed / (6 * math.Pow(squared, 1.5)), nil
}

// nearestRank maps a percentile rank to a 0-based index in a sorted
// distribution of size n: ceil(alpha*n)-1, clamped to [0, n-1].
func nearestRank(alpha float64, n int) int {
	idx := int(math.Ceil(alpha*float64(n))) - 1
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
