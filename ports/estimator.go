package ports

import (
	"context"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// BootstrapRequest carries everything one comparison's resampling needs.
// RunID and Seed scope the deterministic RNG streams; Resamples and
// Permutations are iteration counts (Permutations of zero disables the test).
type BootstrapRequest struct {
	RunID        core.RunID
	Seed         int64
	Spec         contrast.ComparisonSpec
	Control      contrast.Sample
	Test         contrast.Sample
	Resamples    int
	Permutations int
}

// EstimatorPort is the statistical engine behind the orchestrator.
type EstimatorPort interface {
	// Observed computes the spec's statistic on the original samples.
	Observed(req BootstrapRequest) (float64, error)

	// BuildDistribution resamples the spec's statistic Resamples times.
	// A calculator failure on any resample aborts the build; dropping
	// failed resamples would bias the interval.
	BuildDistribution(ctx context.Context, req BootstrapRequest) (contrast.BootstrapDistribution, error)

	// JackknifeValues computes leave-one-out replicates of the statistic on
	// the original (non-resampled) samples.
	JackknifeValues(req BootstrapRequest) ([]float64, error)

	// EstimateInterval derives BCa bounds, falling back to BC or plain
	// percentile bounds (flagged Degraded) when the correction is undefined.
	EstimateInterval(observed float64, dist contrast.BootstrapDistribution, jackknife []float64, confidenceLevel float64) (contrast.IntervalResult, error)

	// PermutationPValue runs a two-sided permutation test of the statistic.
	PermutationPValue(ctx context.Context, req BootstrapRequest) (float64, error)
}
