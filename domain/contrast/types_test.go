package contrast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobest/domain/core"
)

func TestNewSample_Validation(t *testing.T) {
	_, err := NewSample("", []float64{1}, nil)
	require.Error(t, err, "empty group name must be rejected")

	_, err = NewSample("control", nil, nil)
	assert.ErrorIs(t, err, core.ErrEmptySample)

	_, err = NewSample("control", []float64{1, math.NaN()}, nil)
	assert.ErrorIs(t, err, core.ErrNonFiniteValue)

	_, err = NewSample("control", []float64{1, math.Inf(1)}, nil)
	assert.ErrorIs(t, err, core.ErrNonFiniteValue)

	_, err = NewSample("control", []float64{1, 2, 3}, []string{"u1", "u2"})
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}

func TestNewSample_CopiesInput(t *testing.T) {
	observations := []float64{1, 2, 3}
	sample, err := NewSample("control", observations, nil)
	require.NoError(t, err)

	observations[0] = 99
	assert.Equal(t, 1.0, sample.Observations[0], "sample must not alias caller data")
}

func TestComparisonSpec_Validate(t *testing.T) {
	valid := ComparisonSpec{
		Control:         "a",
		Test:            "b",
		Kind:            StatMeanDiff,
		Pairing:         PairingUnpaired,
		ConfidenceLevel: 0.95,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*ComparisonSpec)
	}{
		{"empty control", func(s *ComparisonSpec) { s.Control = "" }},
		{"empty test", func(s *ComparisonSpec) { s.Test = "" }},
		{"same groups", func(s *ComparisonSpec) { s.Test = "a" }},
		{"unknown statistic", func(s *ComparisonSpec) { s.Kind = "anova" }},
		{"unknown pairing", func(s *ComparisonSpec) { s.Pairing = "blocked" }},
		{"zero confidence", func(s *ComparisonSpec) { s.ConfidenceLevel = 0 }},
		{"confidence of one", func(s *ComparisonSpec) { s.ConfidenceLevel = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid
			tc.mutate(&spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestStatisticKinds_AllValid(t *testing.T) {
	for _, kind := range StatisticKinds() {
		assert.True(t, kind.Valid(), "kind %s should be valid", kind)
	}
	assert.False(t, StatisticKind("anova").Valid())
}

func TestBootstrapDistribution_Immutable(t *testing.T) {
	dist := NewBootstrapDistribution([]float64{3, 1, 2})

	values := dist.Values()
	values[0] = 99
	assert.Equal(t, 3.0, dist.At(0), "Values() must return a copy")

	sorted := dist.Sorted()
	assert.Equal(t, []float64{1, 2, 3}, sorted)
	assert.Equal(t, 3.0, dist.At(0), "Sorted() must not reorder the distribution")
}

func TestBootstrapDistribution_Summarize(t *testing.T) {
	dist := NewBootstrapDistribution([]float64{1, 2, 3, 4, 5})
	summary := dist.Summarize()

	assert.Equal(t, 3.0, summary.Mean)
	assert.Equal(t, 3.0, summary.Median)
	assert.Equal(t, 1.0, summary.Min)
	assert.Equal(t, 5.0, summary.Max)
	assert.InDelta(t, 1.581, summary.StdDev, 0.001)
}

func TestNewFailedResult_StatusByErrorKind(t *testing.T) {
	spec := NewComparisonSpec("a", "b", StatMeanDiff)

	failed := NewFailedResult(spec, core.ErrInsufficientData)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "insufficient_data", failed.ErrorKind)
	assert.False(t, failed.OK())

	incomplete := NewFailedResult(spec, core.ErrBuildCancelled)
	assert.Equal(t, StatusIncomplete, incomplete.Status)
	assert.Equal(t, "cancelled", incomplete.ErrorKind)
}

func TestComparisonResult_Summary(t *testing.T) {
	p := 0.042
	result := ComparisonResult{
		Spec:         NewComparisonSpec("wt", "mutant", StatHedgesG),
		ControlN:     12,
		TestN:        14,
		Distribution: NewBootstrapDistribution([]float64{0.4, 0.5, 0.6}),
		Interval: IntervalResult{
			Observed:        0.5,
			Lower:           0.4,
			Upper:           0.6,
			ConfidenceLevel: 0.95,
			Method:          MethodBCa,
		},
		PermutationP: &p,
		Status:       StatusOK,
	}

	row := result.Summary()
	assert.Equal(t, "wt", row.Control)
	assert.Equal(t, "mutant", row.Test)
	assert.Equal(t, StatHedgesG, row.Statistic)
	assert.Equal(t, 0.5, row.Observed)
	assert.Equal(t, 3, row.Resamples)
	assert.Equal(t, MethodBCa, row.Method)
	require.NotNil(t, row.PermutationP)
	assert.Equal(t, 0.042, *row.PermutationP)
}
