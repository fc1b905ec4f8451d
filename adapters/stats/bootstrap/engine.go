// Package bootstrap drives resampling to an empirical distribution of the
// chosen effect size and derives bias-corrected-and-accelerated confidence
// intervals from it.
package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/semaphore"

	"gobest/adapters/stats/effect"
	"gobest/adapters/stats/resample"
	"gobest/domain/contrast"
	"gobest/domain/core"
	"gobest/internal"
	"gobest/ports"
)

const (
	// Resample counts are clamped to keep a misconfigured request from
	// degenerating into a useless or unbounded build.
	minIterations = 1
	maxIterations = 200000

	// chunkSize is the sub-seeding granularity. Each chunk derives its own
	// RNG stream from (run, stage, spec key, chunk index), so results are
	// identical for any worker count.
	chunkSize = 256

	stageBootstrap   = "bootstrap"
	stagePermutation = "permutation"
)

// Engine implements ports.EstimatorPort.
type Engine struct {
	rngPort ports.RNGPort
	workers int64
	log     *internal.Logger
}

// NewEngine creates a sequential engine (one worker) with the default logger.
func NewEngine(rngPort ports.RNGPort) *Engine {
	return &Engine{
		rngPort: rngPort,
		workers: 1,
		log:     internal.DefaultLogger,
	}
}

// SetWorkers bounds the number of chunks resampled concurrently.
// The output is identical for any worker count; only wall time changes.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = int64(n)
}

// SetLogger overrides the default logger.
func (e *Engine) SetLogger(log *internal.Logger) {
	if log != nil {
		e.log = log
	}
}

// Observed computes the spec's statistic on the original samples.
func (e *Engine) Observed(req ports.BootstrapRequest) (float64, error) {
	calc, err := effect.ForKind(req.Spec.Kind)
	if err != nil {
		return 0, err
	}
	return calc.Compute(req.Control.Observations, req.Test.Observations)
}

// JackknifeValues computes leave-one-out replicates of the spec's statistic
// on the original (non-resampled) samples.
func (e *Engine) JackknifeValues(req ports.BootstrapRequest) ([]float64, error) {
	calc, err := effect.ForKind(req.Spec.Kind)
	if err != nil {
		return nil, err
	}
	paired := req.Spec.Pairing == contrast.PairingPaired
	if _, err := resample.NewPlan(req.Control.Len(), req.Test.Len(), paired); err != nil {
		return nil, err
	}
	return resample.JackknifeReplicates(calc.Compute, req.Control.Observations, req.Test.Observations, paired)
}

// clampIterations applies the engine guardrails to a requested count.
func clampIterations(n int) int {
	if n < minIterations {
		return minIterations
	}
	if n > maxIterations {
		return maxIterations
	}
	return n
}

// chunkFn runs iterations [start, end) on the chunk's own stream. It must
// check ctx between iterations so cancellation stays cooperative.
type chunkFn func(ctx context.Context, rng *rand.Rand, start, end int) error

// runChunks executes count iterations split into fixed-size chunks, bounded
// by the engine's worker semaphore. The first chunk error wins; cancellation
// aborts the run and no partial output is considered valid.
func (e *Engine) runChunks(ctx context.Context, req ports.BootstrapRequest, stage string, count int, fn chunkFn) error {
	numChunks := (count + chunkSize - 1) / chunkSize

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(e.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	for chunk := 0; chunk < numChunks; chunk++ {
		if err := sem.Acquire(runCtx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(chunk int) {
			defer wg.Done()
			defer sem.Release(1)

			rng, err := e.rngPort.Stream(runCtx, stage, req.Spec.Key(), chunk, req.Seed)
			if err != nil {
				fail(fmt.Errorf("derive %s stream for chunk %d: %w", stage, chunk, err))
				return
			}
			start := chunk * chunkSize
			end := start + chunkSize
			if end > count {
				end = count
			}
			if err := fn(runCtx, rng, start, end); err != nil {
				fail(err)
			}
		}(chunk)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrBuildCancelled, err)
	}
	return firstErr
}
