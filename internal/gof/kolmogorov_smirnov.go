package gof

import (
	"context"
	"math"

	"relifit/domain/core"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
)

// KolmogorovSmirnovGate compares the empirical distribution of the failures
// against the fitted Weibull CDF with the two-sided one-sample statistic.
type KolmogorovSmirnovGate struct {
	dists        *analysis.Distributions
	significance float64
}

// NewKolmogorovSmirnovGate creates the gate at the default significance level
func NewKolmogorovSmirnovGate(dists *analysis.Distributions) *KolmogorovSmirnovGate {
	return &KolmogorovSmirnovGate{dists: dists, significance: DefaultSignificance}
}

func (g *KolmogorovSmirnovGate) Name() weibull.TestName {
	return weibull.TestKolmogorovSmirnov
}

func (g *KolmogorovSmirnovGate) Evaluate(_ context.Context, model *analysis.WeibullModel, sortedFailures []float64) weibull.TestResult {
	statistic, pValue, err := g.statistic(model, sortedFailures)
	if err != nil {
		return weibull.UnavailableTestResult(weibull.TestKolmogorovSmirnov, err.Error())
	}

	passed := pValue > g.significance
	interpretation := "failure times are consistent with the fitted Weibull distribution"
	if !passed {
		interpretation = "failure times may not follow the fitted Weibull distribution"
	}

	return weibull.TestResult{
		TestName:       weibull.TestKolmogorovSmirnov,
		Statistic:      statistic,
		Threshold:      g.significance,
		PValue:         pValue,
		Passed:         passed,
		Available:      true,
		Interpretation: interpretation,
	}
}

func (g *KolmogorovSmirnovGate) statistic(model *analysis.WeibullModel, sorted []float64) (float64, float64, error) {
	n := len(sorted)
	if n < 1 {
		return 0, 0, core.NewGoodnessOfFitError(string(weibull.TestKolmogorovSmirnov),
			"requires at least one failure time")
	}

	// D is the largest gap between the empirical step function and the
	// fitted CDF, checked on both sides of each step.
	var d float64
	for i, t := range sorted {
		f := model.Unreliability(t)
		if above := float64(i+1)/float64(n) - f; above > d {
			d = above
		}
		if below := f - float64(i)/float64(n); below > d {
			d = below
		}
	}
	if math.IsNaN(d) || d > 1 {
		return 0, 0, core.NewGoodnessOfFitError(string(weibull.TestKolmogorovSmirnov),
			"statistic did not evaluate to a valid distance")
	}

	return d, g.dists.KolmogorovPValue(d, n), nil
}
