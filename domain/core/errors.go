package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data errors
	ErrEmptySample      = errors.New("sample contains no observations")
	ErrInsufficientData = errors.New("insufficient data for statistic")
	ErrNonFiniteValue   = errors.New("non-finite observation")
	ErrGroupNotFound    = errors.New("group not found in dataset")

	// Design errors
	ErrSampleSizeMismatch = errors.New("paired samples have unequal length")
	ErrInvalidSpec        = errors.New("invalid comparison spec")
	ErrUnknownStatistic   = errors.New("unknown statistic kind")

	// Estimation errors
	ErrZeroVariance           = errors.New("zero variance in resample")
	ErrDegenerateDistribution = errors.New("degenerate distribution")
	ErrBuildCancelled         = errors.New("bootstrap build cancelled")
)

// Error constructors with context
func NewGroupNotFoundError(group string) error {
	return fmt.Errorf("%w: %q", ErrGroupNotFound, group)
}

func NewInsufficientDataError(kind string, need, got int) error {
	return fmt.Errorf("%w: %s requires at least %d observations per group, got %d", ErrInsufficientData, kind, need, got)
}

func NewSizeMismatchError(nControl, nTest int) error {
	return fmt.Errorf("%w: control has %d observations, test has %d", ErrSampleSizeMismatch, nControl, nTest)
}

func NewSpecError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidSpec, field, reason)
}

// Error checking helpers
func IsDataError(err error) bool {
	return errors.Is(err, ErrEmptySample) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNonFiniteValue) ||
		errors.Is(err, ErrGroupNotFound)
}

func IsDesignError(err error) bool {
	return errors.Is(err, ErrSampleSizeMismatch) ||
		errors.Is(err, ErrInvalidSpec) ||
		errors.Is(err, ErrUnknownStatistic)
}

func IsEstimationError(err error) bool {
	return errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrDegenerateDistribution)
}

// FailureKind maps a domain error onto a stable per-comparison failure code.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBuildCancelled):
		return "cancelled"
	case errors.Is(err, ErrGroupNotFound):
		return "group_not_found"
	case errors.Is(err, ErrEmptySample):
		return "empty_sample"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrNonFiniteValue):
		return "non_finite_value"
	case errors.Is(err, ErrSampleSizeMismatch):
		return "sample_size_mismatch"
	case errors.Is(err, ErrUnknownStatistic):
		return "unknown_statistic"
	case errors.Is(err, ErrInvalidSpec):
		return "invalid_spec"
	case errors.Is(err, ErrZeroVariance):
		return "zero_variance"
	case errors.Is(err, ErrDegenerateDistribution):
		return "degenerate_distribution"
	default:
		return "internal"
	}
}
