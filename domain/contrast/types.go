package contrast

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gobest/domain/core"
)

// StatisticKind identifies a supported effect-size statistic.
// The set is closed: dispatch happens by switch, never by string lookup,
// so adding a statistic is a compile-time extension.
type StatisticKind string

const (
	StatMeanDiff    StatisticKind = "mean_diff"
	StatMedianDiff  StatisticKind = "median_diff"
	StatCohensD     StatisticKind = "cohens_d"
	StatHedgesG     StatisticKind = "hedges_g"
	StatCliffsDelta StatisticKind = "cliffs_delta"
)

// StatisticKinds returns all supported kinds in stable order.
func StatisticKinds() []StatisticKind {
	return []StatisticKind{StatMeanDiff, StatMedianDiff, StatCohensD, StatHedgesG, StatCliffsDelta}
}

// Valid reports whether the kind is a member of the closed enum.
func (k StatisticKind) Valid() bool {
	switch k {
	case StatMeanDiff, StatMedianDiff, StatCohensD, StatHedgesG, StatCliffsDelta:
		return true
	}
	return false
}

func (k StatisticKind) String() string { return string(k) }

// PairingMode selects independent or joint resampling.
type PairingMode string

const (
	PairingUnpaired PairingMode = "unpaired"
	PairingPaired   PairingMode = "paired"
)

// Valid reports whether the mode is a member of the closed enum.
func (m PairingMode) Valid() bool {
	return m == PairingUnpaired || m == PairingPaired
}

func (m PairingMode) String() string { return string(m) }

// Sample is an ordered sequence of observations belonging to one named group.
// UnitIDs, when present, carry the pairing identifier for each observation
// (same length as Observations) for paired designs.
type Sample struct {
	Group        string    `json:"group"`
	Observations []float64 `json:"observations"`
	UnitIDs      []string  `json:"unit_ids,omitempty"`
}

// NewSample validates and constructs a Sample. Observations must be non-empty
// and finite; the caller is responsible for filtering missing values upstream.
func NewSample(group string, observations []float64, unitIDs []string) (Sample, error) {
	if group == "" {
		return Sample{}, core.NewSpecError("group", "group name cannot be empty")
	}
	if len(observations) == 0 {
		return Sample{}, fmt.Errorf("%w: group %q", core.ErrEmptySample, group)
	}
	for i, v := range observations {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Errorf("%w: group %q index %d", core.ErrNonFiniteValue, group, i)
		}
	}
	if len(unitIDs) != 0 && len(unitIDs) != len(observations) {
		return Sample{}, core.NewSpecError("unit_ids",
			fmt.Sprintf("expected %d unit IDs, got %d", len(observations), len(unitIDs)))
	}
	s := Sample{
		Group:        group,
		Observations: append([]float64(nil), observations...),
		UnitIDs:      append([]string(nil), unitIDs...),
	}
	return s, nil
}

// MustNewSample is NewSample for fixtures; panics on invalid input.
func MustNewSample(group string, observations []float64, unitIDs []string) Sample {
	s, err := NewSample(group, observations, unitIDs)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of observations.
func (s Sample) Len() int { return len(s.Observations) }

// ComparisonSpec identifies one control-vs-test contrast.
type ComparisonSpec struct {
	Control         string        `json:"control"`
	Test            string        `json:"test"`
	Kind            StatisticKind `json:"statistic"`
	Pairing         PairingMode   `json:"pairing"`
	ConfidenceLevel float64       `json:"confidence_level"`
}

// DefaultConfidenceLevel is used when a spec leaves the level unset.
const DefaultConfidenceLevel = 0.95

// NewComparisonSpec builds an unpaired spec with the default confidence level.
func NewComparisonSpec(control, test string, kind StatisticKind) ComparisonSpec {
	return ComparisonSpec{
		Control:         control,
		Test:            test,
		Kind:            kind,
		Pairing:         PairingUnpaired,
		ConfidenceLevel: DefaultConfidenceLevel,
	}
}

// Validate checks enum membership, group distinctness and confidence bounds.
func (s ComparisonSpec) Validate() error {
	if s.Control == "" {
		return core.NewSpecError("control", "control group cannot be empty")
	}
	if s.Test == "" {
		return core.NewSpecError("test", "test group cannot be empty")
	}
	if s.Control == s.Test {
		return core.NewSpecError("test", "control and test groups must differ")
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownStatistic, s.Kind)
	}
	if !s.Pairing.Valid() {
		return core.NewSpecError("pairing", fmt.Sprintf("unknown pairing mode %q", s.Pairing))
	}
	if s.ConfidenceLevel <= 0 || s.ConfidenceLevel >= 1 {
		return core.NewSpecError("confidence_level",
			fmt.Sprintf("must be in (0,1), got %g", s.ConfidenceLevel))
	}
	return nil
}

// Key returns a stable identifier for the spec, used to derive RNG streams.
func (s ComparisonSpec) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", s.Control, s.Test, s.Kind, s.Pairing)
}

// BootstrapDistribution holds the resampled statistic values for one spec,
// in iteration order. Immutable once built: accessors return copies.
type BootstrapDistribution struct {
	values []float64
}

// NewBootstrapDistribution takes ownership of values.
func NewBootstrapDistribution(values []float64) BootstrapDistribution {
	return BootstrapDistribution{values: values}
}

// Len returns the number of resamples.
func (d BootstrapDistribution) Len() int { return len(d.values) }

// Values returns a copy of the resampled statistics in iteration order.
func (d BootstrapDistribution) Values() []float64 {
	return append([]float64(nil), d.values...)
}

// Sorted returns a copy of the resampled statistics in ascending order.
func (d BootstrapDistribution) Sorted() []float64 {
	out := append([]float64(nil), d.values...)
	sort.Float64s(out)
	return out
}

// At returns the i-th resampled statistic.
func (d BootstrapDistribution) At(i int) float64 { return d.values[i] }

// DistributionSummary describes a bootstrap distribution for reporting.
type DistributionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// Summarize computes descriptive statistics over the distribution.
func (d BootstrapDistribution) Summarize() DistributionSummary {
	if len(d.values) == 0 {
		return DistributionSummary{}
	}
	data := stats.Float64Data(d.values)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)
	return DistributionSummary{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		P25:    q25,
		P75:    q75,
	}
}

// IntervalMethod records which interval derivation actually ran.
type IntervalMethod string

const (
	MethodBCa        IntervalMethod = "bca"
	MethodBC         IntervalMethod = "bc"
	MethodPercentile IntervalMethod = "percentile"
)

// IntervalResult is the outcome of confidence-interval estimation.
// BCa bounds are not required to contain the observed statistic.
type IntervalResult struct {
	Observed        float64        `json:"observed"`
	Lower           float64        `json:"lower"`
	Upper           float64        `json:"upper"`
	ConfidenceLevel float64        `json:"confidence_level"`
	BiasCorrection  float64        `json:"bias_correction"` // z0
	Acceleration    float64        `json:"acceleration"`    // a
	AlphaLow        float64        `json:"alpha_low"`       // adjusted lower percentile rank
	AlphaHigh       float64        `json:"alpha_high"`      // adjusted upper percentile rank
	Method          IntervalMethod `json:"method"`
	Degraded        bool           `json:"degraded"`
}

// ComparisonStatus tracks per-comparison outcome within a batch.
type ComparisonStatus string

const (
	StatusOK         ComparisonStatus = "ok"
	StatusFailed     ComparisonStatus = "failed"
	StatusIncomplete ComparisonStatus = "incomplete"
)

// ComparisonResult aggregates everything produced for one ComparisonSpec.
// Created once per comparison request, immutable after construction.
type ComparisonResult struct {
	ID           core.ComparisonID     `json:"id"`
	Spec         ComparisonSpec        `json:"spec"`
	ControlN     int                   `json:"control_n"`
	TestN        int                   `json:"test_n"`
	Distribution BootstrapDistribution `json:"-"`
	Interval     IntervalResult        `json:"interval"`
	PermutationP *float64              `json:"permutation_p,omitempty"`
	Status       ComparisonStatus      `json:"status"`
	ErrorKind    string                `json:"error_kind,omitempty"`
	ErrorText    string                `json:"error_text,omitempty"`
	CreatedAt    core.Timestamp        `json:"created_at"`
}

// NewFailedResult records a per-comparison failure without aborting the batch.
func NewFailedResult(spec ComparisonSpec, err error) ComparisonResult {
	status := StatusFailed
	if core.FailureKind(err) == "cancelled" {
		status = StatusIncomplete
	}
	return ComparisonResult{
		ID:        core.ComparisonID(core.NewID()),
		Spec:      spec,
		Status:    status,
		ErrorKind: core.FailureKind(err),
		ErrorText: err.Error(),
		CreatedAt: core.Now(),
	}
}

// OK reports whether the comparison completed.
func (r ComparisonResult) OK() bool { return r.Status == StatusOK }

// SummaryRow is the flat reporting payload for one comparison, one row per
// contrast in the statistics table handed to downstream reporting.
type SummaryRow struct {
	Control         string           `json:"control"`
	Test            string           `json:"test"`
	Statistic       StatisticKind    `json:"statistic"`
	Pairing         PairingMode      `json:"pairing"`
	ControlN        int              `json:"control_n"`
	TestN           int              `json:"test_n"`
	Observed        float64          `json:"observed"`
	Lower           float64          `json:"ci_lower"`
	Upper           float64          `json:"ci_upper"`
	ConfidenceLevel float64          `json:"confidence_level"`
	Method          IntervalMethod   `json:"method"`
	Degraded        bool             `json:"degraded"`
	Resamples       int              `json:"resamples"`
	PermutationP    *float64         `json:"permutation_p,omitempty"`
	Status          ComparisonStatus `json:"status"`
	ErrorKind       string           `json:"error_kind,omitempty"`
}

// Summary flattens the result for reporting.
func (r ComparisonResult) Summary() SummaryRow {
	return SummaryRow{
		Control:         r.Spec.Control,
		Test:            r.Spec.Test,
		Statistic:       r.Spec.Kind,
		Pairing:         r.Spec.Pairing,
		ControlN:        r.ControlN,
		TestN:           r.TestN,
		Observed:        r.Interval.Observed,
		Lower:           r.Interval.Lower,
		Upper:           r.Interval.Upper,
		ConfidenceLevel: r.Interval.ConfidenceLevel,
		Method:          r.Interval.Method,
		Degraded:        r.Interval.Degraded,
		Resamples:       r.Distribution.Len(),
		PermutationP:    r.PermutationP,
		Status:          r.Status,
		ErrorKind:       r.ErrorKind,
	}
}
