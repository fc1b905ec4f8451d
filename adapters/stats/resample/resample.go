// Package resample generates bootstrap index sets for unpaired and paired
// two-group designs. All randomness flows through an explicitly passed
// *rand.Rand; the package holds no random state of its own.
package resample

import (
	"math/rand"

	"gobest/domain/core"
)

// Plan fixes the shape of every draw for one comparison.
type Plan struct {
	NControl int
	NTest    int
	Paired   bool
}

// NewPlan validates sample sizes for the pairing mode. Paired designs
// require equal lengths: each index selects a pair.
func NewPlan(nControl, nTest int, paired bool) (Plan, error) {
	if nControl < 1 || nTest < 1 {
		return Plan{}, core.ErrEmptySample
	}
	if paired && nControl != nTest {
		return Plan{}, core.NewSizeMismatchError(nControl, nTest)
	}
	return Plan{NControl: nControl, NTest: nTest, Paired: paired}, nil
}

// IndexSet holds one iteration's with-replacement draw. In paired mode
// Control and Test alias the same slice: the shared indices are what keep
// the pair correlation intact across the resample.
type IndexSet struct {
	Control []int
	Test    []int
}

// Draw produces one resample index set, reusing dst's buffers when they
// have the right shape.
func (p Plan) Draw(rng *rand.Rand, dst IndexSet) IndexSet {
	if p.Paired {
		shared := dst.Control
		if len(shared) != p.NControl {
			shared = make([]int, p.NControl)
		}
		for i := range shared {
			shared[i] = rng.Intn(p.NControl)
		}
		return IndexSet{Control: shared, Test: shared}
	}

	control := dst.Control
	if len(control) != p.NControl {
		control = make([]int, p.NControl)
	}
	test := dst.Test
	if len(test) != p.NTest {
		test = make([]int, p.NTest)
	}
	for i := range control {
		control[i] = rng.Intn(p.NControl)
	}
	for i := range test {
		test[i] = rng.Intn(p.NTest)
	}
	return IndexSet{Control: control, Test: test}
}

// Materialize copies values selected by idx into dst, growing it if needed.
func Materialize(values []float64, idx []int, dst []float64) []float64 {
	if len(dst) != len(idx) {
		dst = make([]float64, len(idx))
	}
	for i, j := range idx {
		dst[i] = values[j]
	}
	return dst
}
