package resample

import (
	"fmt"
)

// Statistic is the scalar effect-size function jackknifed over the samples.
type Statistic func(control, test []float64) (float64, error)

// JackknifeReplicates computes leave-one-out replicates of the statistic on
// the original samples.
//
// Unpaired: one replicate per observation across both groups (n1+n2 total),
// each excluding that single observation from whichever group owns it.
// Paired: one replicate per pair (n total), excluding the pair from both
// sides - dropping one side only would break the pairing.
func JackknifeReplicates(stat Statistic, control, test []float64, paired bool) ([]float64, error) {
	if paired {
		return jackknifePaired(stat, control, test)
	}
	return jackknifeUnpaired(stat, control, test)
}

func jackknifeUnpaired(stat Statistic, control, test []float64) ([]float64, error) {
	replicates := make([]float64, 0, len(control)+len(test))
	controlScratch := make([]float64, len(control)-1)
	testScratch := make([]float64, len(test)-1)

	for i := range control {
		leaveOneOut(control, i, controlScratch)
		value, err := stat(controlScratch, test)
		if err != nil {
			return nil, fmt.Errorf("jackknife replicate excluding control[%d]: %w", i, err)
		}
		replicates = append(replicates, value)
	}
	for i := range test {
		leaveOneOut(test, i, testScratch)
		value, err := stat(control, testScratch)
		if err != nil {
			return nil, fmt.Errorf("jackknife replicate excluding test[%d]: %w", i, err)
		}
		replicates = append(replicates, value)
	}
	return replicates, nil
}

func jackknifePaired(stat Statistic, control, test []float64) ([]float64, error) {
	n := len(control)
	replicates := make([]float64, 0, n)
	controlScratch := make([]float64, n-1)
	testScratch := make([]float64, n-1)

	for i := 0; i < n; i++ {
		leaveOneOut(control, i, controlScratch)
		leaveOneOut(test, i, testScratch)
		value, err := stat(controlScratch, testScratch)
		if err != nil {
			return nil, fmt.Errorf("jackknife replicate excluding pair %d: %w", i, err)
		}
		replicates = append(replicates, value)
	}
	return replicates, nil
}

// leaveOneOut copies values into dst with index skip omitted.
// dst must have length len(values)-1.
func leaveOneOut(values []float64, skip int, dst []float64) {
	copy(dst[:skip], values[:skip])
	copy(dst[skip:], values[skip+1:])
}
