package testkit

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
)

func TestGenerateExperiment_Deterministic(t *testing.T) {
	groups := []GroupSpec{
		{Name: "control", N: 50, Mean: 10, StdDev: 2},
		{Name: "treatment", N: 40, Mean: 12, StdDev: 2},
	}

	first, err := GenerateExperiment(42, groups)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := GenerateExperiment(42, groups)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, name := range first.GroupNames() {
		a, _ := first.Group(name)
		b, _ := second.Group(name)
		for i := range a.Observations {
			if a.Observations[i] != b.Observations[i] {
				t.Fatalf("group %s diverged at %d", name, i)
			}
		}
	}
}

func TestGenerateExperiment_Moments(t *testing.T) {
	table, err := GenerateExperiment(7, []GroupSpec{
		{Name: "control", N: 5000, Mean: 100, StdDev: 15},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	sample, err := table.Group("control")
	if err != nil {
		t.Fatalf("group lookup failed: %v", err)
	}

	mean, _ := stats.Mean(sample.Observations)
	stdDev, _ := stats.StandardDeviationSample(sample.Observations)
	if math.Abs(mean-100) > 1 {
		t.Errorf("mean drifted: %g", mean)
	}
	if math.Abs(stdDev-15) > 1 {
		t.Errorf("std dev drifted: %g", stdDev)
	}
}

func TestGeneratePaired_SharedUnitsAndEffect(t *testing.T) {
	table, err := GeneratePaired(42, "before", "after", 200, 50, 5, 3, 0.5)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	before, _ := table.Group("before")
	after, _ := table.Group("after")
	if before.Len() != 200 || after.Len() != 200 {
		t.Fatalf("expected 200 paired observations, got %d/%d", before.Len(), after.Len())
	}
	for i := range before.UnitIDs {
		if before.UnitIDs[i] != after.UnitIDs[i] {
			t.Fatalf("unit IDs diverged at %d", i)
		}
	}

	// Per-pair differences should sit near the injected effect with the
	// noise scale, far tighter than the base spread.
	diffs := make([]float64, before.Len())
	for i := range diffs {
		diffs[i] = after.Observations[i] - before.Observations[i]
	}
	meanDiff, _ := stats.Mean(diffs)
	diffStdDev, _ := stats.StandardDeviationSample(diffs)
	if math.Abs(meanDiff-3) > 0.2 {
		t.Errorf("mean pair difference drifted: %g", meanDiff)
	}
	if diffStdDev > 1 {
		t.Errorf("pair differences too noisy: %g", diffStdDev)
	}
}

func TestTwoGroupTable(t *testing.T) {
	table, err := TwoGroupTable("a", []float64{1, 2}, "b", []float64{3, 4})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	names := table.GroupNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected group names: %v", names)
	}
}
