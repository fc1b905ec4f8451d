package effect

import (
	"errors"
	"math"
	"testing"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

func TestForKind_CoversAllStatistics(t *testing.T) {
	for _, kind := range contrast.StatisticKinds() {
		calc, err := ForKind(kind)
		if err != nil {
			t.Fatalf("ForKind(%s) failed: %v", kind, err)
		}
		if calc.Kind() != kind {
			t.Errorf("calculator for %s reports kind %s", kind, calc.Kind())
		}
		if calc.Description() == "" {
			t.Errorf("calculator for %s has empty description", kind)
		}
	}
}

func TestForKind_UnknownStatistic(t *testing.T) {
	_, err := ForKind(contrast.StatisticKind("anova"))
	if !errors.Is(err, core.ErrUnknownStatistic) {
		t.Fatalf("expected ErrUnknownStatistic, got %v", err)
	}
}

func TestMeanDiff_Antisymmetry(t *testing.T) {
	calc := NewMeanDiff()
	control := []float64{1, 2, 3, 4, 5}
	test := []float64{2.5, 3.5, 4.5, 6.0}

	forward, err := calc.Compute(control, test)
	if err != nil {
		t.Fatalf("forward compute failed: %v", err)
	}
	reverse, err := calc.Compute(test, control)
	if err != nil {
		t.Fatalf("reverse compute failed: %v", err)
	}

	if forward != -reverse {
		t.Errorf("mean_diff not antisymmetric: %g vs %g", forward, reverse)
	}
}

func TestMeanDiff_KnownValue(t *testing.T) {
	calc := NewMeanDiff()
	got, err := calc.Compute([]float64{1, 2, 3, 4, 5}, []float64{2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0, got %g", got)
	}
}

func TestMedianDiff_RobustToOutlier(t *testing.T) {
	calc := NewMedianDiff()
	control := []float64{1, 2, 3, 4, 5}
	test := []float64{2, 3, 4, 5, 1e6}

	got, err := calc.Compute(control, test)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	// median(test)=4, median(control)=3
	if got != 1.0 {
		t.Errorf("expected 1.0, got %g", got)
	}
}

func TestCohensD_KnownValue(t *testing.T) {
	calc := NewCohensD()
	control := []float64{2, 4, 6, 8}
	test := []float64{5, 7, 9, 11}

	got, err := calc.Compute(control, test)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	// Both groups have sample variance 20/3, so pooled SD = sqrt(20/3)
	// and d = 3 / sqrt(20/3).
	want := 3.0 / math.Sqrt(20.0/3.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestCohensD_ZeroVariance(t *testing.T) {
	calc := NewCohensD()
	_, err := calc.Compute([]float64{3, 3, 3}, []float64{5, 5, 5})
	if !errors.Is(err, core.ErrZeroVariance) {
		t.Fatalf("expected ErrZeroVariance, got %v", err)
	}
}

func TestHedgesG_MagnitudeBelowCohensD(t *testing.T) {
	d := NewCohensD()
	g := NewHedgesG()

	cases := [][2][]float64{
		{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}},
		{{10, 12, 9, 14}, {8, 7, 9, 6, 5}},
		{{0.1, 0.5, 0.9}, {0.2, 0.4, 0.8, 1.1}},
	}
	for i, pair := range cases {
		dVal, err := d.Compute(pair[0], pair[1])
		if err != nil {
			t.Fatalf("case %d: cohens_d failed: %v", i, err)
		}
		gVal, err := g.Compute(pair[0], pair[1])
		if err != nil {
			t.Fatalf("case %d: hedges_g failed: %v", i, err)
		}
		if math.Abs(gVal) > math.Abs(dVal) {
			t.Errorf("case %d: |g|=%g exceeds |d|=%g", i, math.Abs(gVal), math.Abs(dVal))
		}
		if dVal != 0 && math.Signbit(gVal) != math.Signbit(dVal) {
			t.Errorf("case %d: correction flipped the sign", i)
		}
	}
}

func TestCliffsDelta_IdenticalSamplesZero(t *testing.T) {
	calc := NewCliffsDelta()
	data := []float64{1.5, 2.5, 2.5, 3.0, 4.25}

	got, err := calc.Compute(data, data)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for identical samples, got %g", got)
	}
}

func TestCliffsDelta_CompleteSeparation(t *testing.T) {
	calc := NewCliffsDelta()

	got, err := calc.Compute([]float64{1, 2, 3}, []float64{10, 11, 12})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for complete separation, got %g", got)
	}

	got, err = calc.Compute([]float64{10, 11, 12}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if got != -1.0 {
		t.Errorf("expected -1.0 for reversed separation, got %g", got)
	}
}

func TestInsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		calc    Calculator
		control []float64
		test    []float64
	}{
		{"cohens_d single control", NewCohensD(), []float64{1}, []float64{1, 2, 3}},
		{"cohens_d single test", NewCohensD(), []float64{1, 2, 3}, []float64{4}},
		{"hedges_g single control", NewHedgesG(), []float64{1}, []float64{1, 2, 3}},
		{"mean_diff empty control", NewMeanDiff(), nil, []float64{1, 2}},
		{"median_diff empty test", NewMedianDiff(), []float64{1, 2}, nil},
		{"cliffs_delta empty control", NewCliffsDelta(), nil, []float64{1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.calc.Compute(tc.control, tc.test)
			if !errors.Is(err, core.ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}
