package gof

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"relifit/domain/core"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
)

// r2PassThreshold is the lowest coefficient of determination still counted
// as a pass; finer grading goes through the quality buckets.
const r2PassThreshold = 0.80

// RSquaredGate measures how much of the median-rank plotting positions the
// fitted CDF explains.
type RSquaredGate struct{}

// NewRSquaredGate creates the gate
func NewRSquaredGate() *RSquaredGate {
	return &RSquaredGate{}
}

func (g *RSquaredGate) Name() weibull.TestName {
	return weibull.TestRSquared
}

func (g *RSquaredGate) Evaluate(_ context.Context, model *analysis.WeibullModel, sortedFailures []float64) weibull.TestResult {
	r2, err := g.statistic(model, sortedFailures)
	if err != nil {
		return weibull.UnavailableTestResult(weibull.TestRSquared, err.Error())
	}

	quality := qualityFromR2(r2)
	return weibull.TestResult{
		TestName:       weibull.TestRSquared,
		Statistic:      r2,
		Threshold:      r2PassThreshold,
		Passed:         r2 > r2PassThreshold,
		Available:      true,
		Interpretation: fmt.Sprintf("%s fit to the data (R² = %.4f)", strings.ToLower(string(quality)), r2),
	}
}

func (g *RSquaredGate) statistic(model *analysis.WeibullModel, sorted []float64) (float64, error) {
	n := len(sorted)
	if n < 2 {
		return 0, core.NewGoodnessOfFitError(string(weibull.TestRSquared),
			"requires at least 2 failure times")
	}

	observed := make([]float64, n)
	predicted := make([]float64, n)
	for i, t := range sorted {
		observed[i] = (float64(i+1) - 0.3) / (float64(n) + 0.4)
		predicted[i] = model.Unreliability(t)
	}

	r2 := stat.RSquaredFrom(predicted, observed, nil)
	if math.IsNaN(r2) {
		return 0, core.NewGoodnessOfFitError(string(weibull.TestRSquared),
			"undefined for a sample with no rank spread")
	}
	return r2, nil
}

// qualityFromR2 buckets the coefficient of determination into fit-quality
// labels.
func qualityFromR2(r2 float64) weibull.FitQuality {
	switch {
	case r2 > 0.95:
		return weibull.QualityExcellent
	case r2 > 0.90:
		return weibull.QualityGood
	case r2 > 0.80:
		return weibull.QualityAcceptable
	default:
		return weibull.QualityPoor
	}
}
