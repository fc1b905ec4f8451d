package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"gobest/domain/contrast"
	"gobest/domain/core"
	"gobest/domain/run"
	"gobest/internal"
	"gobest/internal/config"
	"gobest/ports"
)

// ContrastService orchestrates a batch of two-group comparisons: sample
// resolution, bootstrap distribution, jackknife, interval estimation and the
// optional permutation test. Comparisons are independent; a failure in one
// is recorded per-comparison and never aborts the batch.
type ContrastService struct {
	estimator ports.EstimatorPort
	log       *internal.Logger
}

// NewContrastService creates a contrast service
func NewContrastService(estimator ports.EstimatorPort) *ContrastService {
	return &ContrastService{
		estimator: estimator,
		log:       internal.DefaultLogger,
	}
}

// SetLogger overrides the default logger.
func (s *ContrastService) SetLogger(log *internal.Logger) {
	if log != nil {
		s.log = log
	}
}

// RunOptions configures one batch. Zero values mean defaults except
// Permutations, where zero disables the permutation test.
type RunOptions struct {
	// Seed is the base random seed. Nil draws a nondeterministic seed once;
	// whichever seed is used ends up in the run manifest.
	Seed *int64

	Resamples    int
	Permutations int
	Workers      int
}

// DefaultRunOptions returns the engine defaults with the permutation test
// enabled.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Resamples:    config.DefaultResamples,
		Permutations: config.DefaultPermutations,
		Workers:      config.DefaultWorkers,
	}
}

// OptionsFromConfig maps a loaded engine configuration onto run options.
func OptionsFromConfig(engine config.EngineConfig) RunOptions {
	opts := RunOptions{
		Resamples:    engine.Resamples,
		Permutations: engine.Permutations,
		Workers:      engine.Workers,
	}
	if engine.SeedSet {
		seed := engine.Seed
		opts.Seed = &seed
	}
	return opts
}

func (o RunOptions) normalized() RunOptions {
	if o.Resamples < 1 {
		o.Resamples = config.DefaultResamples
	}
	if o.Permutations < 0 {
		o.Permutations = 0
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// RunReport carries the manifest and one result per requested spec, in
// input order.
type RunReport struct {
	Manifest run.Manifest                `json:"manifest"`
	Results  []contrast.ComparisonResult `json:"results"`
}

// SummaryRows flattens the report into the statistics table handed to
// downstream reporting.
func (r *RunReport) SummaryRows() []contrast.SummaryRow {
	rows := make([]contrast.SummaryRow, len(r.Results))
	for i, result := range r.Results {
		rows[i] = result.Summary()
	}
	return rows
}

// Failed returns the results that did not complete.
func (r *RunReport) Failed() []contrast.ComparisonResult {
	var failed []contrast.ComparisonResult
	for _, result := range r.Results {
		if !result.OK() {
			failed = append(failed, result)
		}
	}
	return failed
}

// Run executes all comparison specs against the dataset. Output order
// matches spec order regardless of worker count, and so do the numbers:
// every comparison derives its RNG streams from its own spec key.
func (s *ContrastService) Run(ctx context.Context, ds ports.DatasetPort, specs []contrast.ComparisonSpec, opts RunOptions) (*RunReport, error) {
	opts = opts.normalized()

	seed := s.resolveSeed(opts)
	runID := core.RunID(core.NewID())

	normalized := make([]contrast.ComparisonSpec, len(specs))
	for i, spec := range specs {
		if spec.ConfidenceLevel == 0 {
			spec.ConfidenceLevel = contrast.DefaultConfidenceLevel
		}
		normalized[i] = spec
	}

	manifest := run.NewManifest(runID, normalized, seed, opts.Resamples, opts.Permutations, contrast.DefaultConfidenceLevel)
	s.log.Info("run %s: %d comparisons, seed=%d, resamples=%d, workers=%d",
		runID, len(normalized), seed, opts.Resamples, opts.Workers)

	results := make([]contrast.ComparisonResult, len(normalized))

	g := new(errgroup.Group)
	g.SetLimit(opts.Workers)
	for i, spec := range normalized {
		i, spec := i, spec
		g.Go(func() error {
			results[i] = s.runOne(ctx, ds, runID, seed, spec, opts)
			return nil
		})
	}
	// Goroutines never return errors; failures land in their result slot.
	_ = g.Wait()

	return &RunReport{Manifest: manifest, Results: results}, nil
}

// resolveSeed uses the explicit seed when given, otherwise draws one
// nondeterministically. Either way the run itself is seeded: replaying with
// the manifest's seed reproduces it bit-for-bit.
func (s *ContrastService) resolveSeed(opts RunOptions) int64 {
	if opts.Seed != nil {
		return *opts.Seed
	}
	seed := rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	s.log.Info("no seed supplied, drew %d", seed)
	return seed
}

func (s *ContrastService) runOne(ctx context.Context, ds ports.DatasetPort, runID core.RunID, seed int64, spec contrast.ComparisonSpec, opts RunOptions) contrast.ComparisonResult {
	if err := ctx.Err(); err != nil {
		return contrast.NewFailedResult(spec, fmt.Errorf("%w: %v", core.ErrBuildCancelled, err))
	}
	if err := spec.Validate(); err != nil {
		return contrast.NewFailedResult(spec, err)
	}

	control, err := ds.Group(spec.Control)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}
	test, err := ds.Group(spec.Test)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}

	req := ports.BootstrapRequest{
		RunID:        runID,
		Seed:         seed,
		Spec:         spec,
		Control:      control,
		Test:         test,
		Resamples:    opts.Resamples,
		Permutations: opts.Permutations,
	}

	observed, err := s.estimator.Observed(req)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}

	dist, err := s.estimator.BuildDistribution(ctx, req)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}

	jackknife, err := s.estimator.JackknifeValues(req)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}

	interval, err := s.estimator.EstimateInterval(observed, dist, jackknife, spec.ConfidenceLevel)
	if err != nil {
		return contrast.NewFailedResult(spec, err)
	}
	if interval.Degraded {
		s.log.Warn("comparison %s degraded to %s bounds", spec.Key(), interval.Method)
	}

	result := contrast.ComparisonResult{
		ID:           core.ComparisonID(core.NewID()),
		Spec:         spec,
		ControlN:     control.Len(),
		TestN:        test.Len(),
		Distribution: dist,
		Interval:     interval,
		Status:       contrast.StatusOK,
		CreatedAt:    core.Now(),
	}

	if opts.Permutations > 0 {
		p, err := s.estimator.PermutationPValue(ctx, req)
		if err != nil {
			return contrast.NewFailedResult(spec, err)
		}
		result.PermutationP = &p
	}

	return result
}

// SharedControlSpecs expands one control group against many test groups into
// an ordered spec list, the multi-group shape where every contrast shares
// the same baseline.
func SharedControlSpecs(control string, tests []string, kind contrast.StatisticKind, pairing contrast.PairingMode, confidenceLevel float64) []contrast.ComparisonSpec {
	if confidenceLevel == 0 {
		confidenceLevel = contrast.DefaultConfidenceLevel
	}
	specs := make([]contrast.ComparisonSpec, len(tests))
	for i, test := range tests {
		specs[i] = contrast.ComparisonSpec{
			Control:         control,
			Test:            test,
			Kind:            kind,
			Pairing:         pairing,
			ConfidenceLevel: confidenceLevel,
		}
	}
	return specs
}
