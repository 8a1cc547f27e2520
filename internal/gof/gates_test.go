package gof

import (
	"context"
	"math"
	"testing"

	"relifit/domain/core"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
)

func gofModel(t *testing.T, shape, scale float64) *analysis.WeibullModel {
	t.Helper()
	m, err := analysis.NewWeibullModel(weibull.FittedParameters{Shape: shape, Scale: scale})
	if err != nil {
		t.Fatalf("NewWeibullModel(%g, %g): %v", shape, scale, err)
	}
	return m
}

func TestAndersonDarlingGate_PinnedStatistic(t *testing.T) {
	// With shape=1, scale=1 the probability-integral transform is the
	// identity, so exponential quantiles at (i-0.5)/4 give a hand-checkable
	// statistic of ~0.1666 against the n=4 critical value 1.341/1.15.
	times := make([]float64, 4)
	for i := range times {
		p := (float64(i) + 0.5) / 4
		times[i] = -math.Log(1 - p)
	}

	gate := NewAndersonDarlingGate(analysis.NewDistributions())
	result := gate.Evaluate(context.Background(), gofModel(t, 1, 1), times)

	if !result.Available {
		t.Fatalf("gate unavailable: %s", result.FailureReason)
	}
	if math.Abs(result.Statistic-0.16664) > 0.005 {
		t.Errorf("statistic = %g, want ~0.16664", result.Statistic)
	}
	if want := 1.341 / 1.15; math.Abs(result.Threshold-want) > 1e-9 {
		t.Errorf("threshold = %g, want %g", result.Threshold, want)
	}
	if !result.Passed {
		t.Error("expected exponential quantiles to pass")
	}
}

func TestAndersonDarlingGate_TooFewSamples(t *testing.T) {
	gate := NewAndersonDarlingGate(analysis.NewDistributions())
	model := gofModel(t, 2, 1000)

	_, _, err := gate.statistic(model, []float64{150, 300})
	if err == nil {
		t.Fatal("expected error for two samples")
	}
	if !core.IsGoodnessOfFitError(err) {
		t.Errorf("error %v is not a goodness-of-fit error", err)
	}

	result := gate.Evaluate(context.Background(), model, []float64{150, 300})
	if result.Available {
		t.Error("result should be unavailable")
	}
	if result.FailureReason == "" {
		t.Error("unavailable result should carry a reason")
	}
}

func TestAndersonDarlingGate_OverflowingTransform(t *testing.T) {
	// An extreme shape overflows (t/eta)^beta; the gate must report itself
	// unavailable instead of emitting Inf.
	gate := NewAndersonDarlingGate(analysis.NewDistributions())
	result := gate.Evaluate(context.Background(), gofModel(t, 1100, 1000), []float64{2000, 2100, 2200})

	if result.Available {
		t.Fatalf("expected unavailable result, got statistic %g", result.Statistic)
	}
}

func TestKolmogorovSmirnovGate_PinnedStatistic(t *testing.T) {
	// For an exponential model with scale 1000 and failures 100, 500, 1200
	// the largest gap sits above the last step: D = 1 - F(1200) = e^-1.2.
	gate := NewKolmogorovSmirnovGate(analysis.NewDistributions())
	result := gate.Evaluate(context.Background(), gofModel(t, 1, 1000), []float64{100, 500, 1200})

	if !result.Available {
		t.Fatalf("gate unavailable: %s", result.FailureReason)
	}
	if want := math.Exp(-1.2); math.Abs(result.Statistic-want) > 1e-12 {
		t.Errorf("statistic = %g, want %g", result.Statistic, want)
	}
	if result.PValue < 0.8 || result.PValue > 0.95 {
		t.Errorf("p-value = %g, want within (0.8, 0.95)", result.PValue)
	}
	if !result.Passed {
		t.Error("expected a pass at this p-value")
	}
	if result.Threshold != DefaultSignificance {
		t.Errorf("threshold = %g, want %g", result.Threshold, DefaultSignificance)
	}
}

func TestKolmogorovSmirnovGate_EmptySample(t *testing.T) {
	gate := NewKolmogorovSmirnovGate(analysis.NewDistributions())

	_, _, err := gate.statistic(gofModel(t, 2, 1000), nil)
	if err == nil {
		t.Fatal("expected error for empty sample")
	}
	if !core.IsGoodnessOfFitError(err) {
		t.Errorf("error %v is not a goodness-of-fit error", err)
	}
}

func TestRSquaredGate_MatchesDirectFormula(t *testing.T) {
	times := []float64{150, 195, 230, 310, 420}
	model := gofModel(t, 1.8, 350)

	gate := NewRSquaredGate()
	result := gate.Evaluate(context.Background(), model, times)
	if !result.Available {
		t.Fatalf("gate unavailable: %s", result.FailureReason)
	}

	// Recompute R^2 = 1 - SS_res/SS_tot from the definition.
	n := float64(len(times))
	var observed, predicted []float64
	for i, tt := range times {
		observed = append(observed, (float64(i+1)-0.3)/(n+0.4))
		predicted = append(predicted, model.Unreliability(tt))
	}
	var meanObs float64
	for _, o := range observed {
		meanObs += o
	}
	meanObs /= n
	var ssRes, ssTot float64
	for i := range observed {
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
		ssTot += (observed[i] - meanObs) * (observed[i] - meanObs)
	}
	want := 1 - ssRes/ssTot

	if math.Abs(result.Statistic-want) > 1e-12 {
		t.Errorf("statistic = %g, direct formula gives %g", result.Statistic, want)
	}
}

func TestRSquaredGate_TooFewSamples(t *testing.T) {
	gate := NewRSquaredGate()

	_, err := gate.statistic(gofModel(t, 2, 1000), []float64{400})
	if err == nil {
		t.Fatal("expected error for a single sample")
	}
	if !core.IsGoodnessOfFitError(err) {
		t.Errorf("error %v is not a goodness-of-fit error", err)
	}
}

func TestQualityFromR2_Buckets(t *testing.T) {
	cases := []struct {
		r2   float64
		want weibull.FitQuality
	}{
		{0.99, weibull.QualityExcellent},
		{0.9501, weibull.QualityExcellent},
		{0.95, weibull.QualityGood},
		{0.92, weibull.QualityGood},
		{0.90, weibull.QualityAcceptable},
		{0.85, weibull.QualityAcceptable},
		{0.80, weibull.QualityPoor},
		{0.40, weibull.QualityPoor},
		{-2.0, weibull.QualityPoor},
	}

	for _, tc := range cases {
		if got := qualityFromR2(tc.r2); got != tc.want {
			t.Errorf("qualityFromR2(%g) = %s, want %s", tc.r2, got, tc.want)
		}
	}
}
