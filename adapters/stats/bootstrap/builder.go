package bootstrap

import (
	"context"
	"fmt"
	"math/rand"

	"gobest/adapters/stats/effect"
	"gobest/adapters/stats/resample"
	"gobest/domain/contrast"
	"gobest/ports"
)

// BuildDistribution resamples the spec's statistic req.Resamples times and
// returns the empirical distribution in iteration order.
//
// A calculator failure on any resample (a zero-variance draw under cohens_d,
// say) aborts the whole build with the iteration index in the error.
// Dropping the failed resample instead would bias the interval.
func (e *Engine) BuildDistribution(ctx context.Context, req ports.BootstrapRequest) (contrast.BootstrapDistribution, error) {
	if err := req.Spec.Validate(); err != nil {
		return contrast.BootstrapDistribution{}, err
	}
	calc, err := effect.ForKind(req.Spec.Kind)
	if err != nil {
		return contrast.BootstrapDistribution{}, err
	}
	paired := req.Spec.Pairing == contrast.PairingPaired
	plan, err := resample.NewPlan(req.Control.Len(), req.Test.Len(), paired)
	if err != nil {
		return contrast.BootstrapDistribution{}, err
	}

	count := clampIterations(req.Resamples)
	if count != req.Resamples {
		e.log.Warn("resample count %d clamped to %d for %s", req.Resamples, count, req.Spec.Key())
	}
	values := make([]float64, count)

	err = e.runChunks(ctx, req, stageBootstrap, count, func(ctx context.Context, rng *rand.Rand, start, end int) error {
		var idx resample.IndexSet
		var controlBuf, testBuf []float64
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx = plan.Draw(rng, idx)
			controlBuf = resample.Materialize(req.Control.Observations, idx.Control, controlBuf)
			testBuf = resample.Materialize(req.Test.Observations, idx.Test, testBuf)
			value, err := calc.Compute(controlBuf, testBuf)
			if err != nil {
				return fmt.Errorf("resample %d: %w", i, err)
			}
			values[i] = value
		}
		return nil
	})
	if err != nil {
		return contrast.BootstrapDistribution{}, err
	}

	e.log.Debug("built %d-resample distribution for %s", count, req.Spec.Key())
	return contrast.NewBootstrapDistribution(values), nil
}
