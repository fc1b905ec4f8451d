package bootstrap

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gobest/adapters/stats/effect"
	"gobest/adapters/stats/resample"
	"gobest/domain/contrast"
	"gobest/ports"
)

// PermutationPValue runs a two-sided permutation test of the spec's
// statistic under the null of no group difference.
//
// Unpaired designs relabel the pooled observations; paired designs swap
// control and test within randomly chosen pairs, which sign-flips the
// per-pair difference without breaking the pairing. The p-value uses
// add-one smoothing, p = (1 + #{|t*| >= |t|}) / (1 + P), so it is never
// exactly zero.
func (e *Engine) PermutationPValue(ctx context.Context, req ports.BootstrapRequest) (float64, error) {
	if err := req.Spec.Validate(); err != nil {
		return 0, err
	}
	calc, err := effect.ForKind(req.Spec.Kind)
	if err != nil {
		return 0, err
	}
	paired := req.Spec.Pairing == contrast.PairingPaired
	if _, err := resample.NewPlan(req.Control.Len(), req.Test.Len(), paired); err != nil {
		return 0, err
	}

	observed, err := calc.Compute(req.Control.Observations, req.Test.Observations)
	if err != nil {
		return 0, err
	}

	count := clampIterations(req.Permutations)
	nullValues := make([]float64, count)

	var fn chunkFn
	if paired {
		fn = e.pairedPermutations(calc, req, nullValues)
	} else {
		fn = e.pooledPermutations(calc, req, nullValues)
	}
	if err := e.runChunks(ctx, req, stagePermutation, count, fn); err != nil {
		return 0, err
	}

	extreme := 0
	absObserved := math.Abs(observed)
	for _, v := range nullValues {
		if math.Abs(v) >= absObserved {
			extreme++
		}
	}
	return float64(1+extreme) / float64(1+count), nil
}

// pooledPermutations relabels the pooled sample: each iteration shuffles
// control+test together and splits it back at the original group sizes.
func (e *Engine) pooledPermutations(calc effect.Calculator, req ports.BootstrapRequest, nullValues []float64) chunkFn {
	nControl := req.Control.Len()
	pooledLen := nControl + req.Test.Len()

	return func(ctx context.Context, rng *rand.Rand, start, end int) error {
		pooled := make([]float64, pooledLen)
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			copy(pooled, req.Control.Observations)
			copy(pooled[nControl:], req.Test.Observations)
			// Fisher-Yates shuffle
			for j := pooledLen - 1; j > 0; j-- {
				k := rng.Intn(j + 1)
				pooled[j], pooled[k] = pooled[k], pooled[j]
			}
			value, err := calc.Compute(pooled[:nControl], pooled[nControl:])
			if err != nil {
				return fmt.Errorf("permutation %d: %w", i, err)
			}
			nullValues[i] = value
		}
		return nil
	}
}

// pairedPermutations swaps control/test within each pair with probability
// one half.
func (e *Engine) pairedPermutations(calc effect.Calculator, req ports.BootstrapRequest, nullValues []float64) chunkFn {
	n := req.Control.Len()

	return func(ctx context.Context, rng *rand.Rand, start, end int) error {
		control := make([]float64, n)
		test := make([]float64, n)
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			copy(control, req.Control.Observations)
			copy(test, req.Test.Observations)
			for j := 0; j < n; j++ {
				if rng.Intn(2) == 1 {
					control[j], test[j] = test[j], control[j]
				}
			}
			value, err := calc.Compute(control, test)
			if err != nil {
				return fmt.Errorf("permutation %d: %w", i, err)
			}
			nullValues[i] = value
		}
		return nil
	}
}
