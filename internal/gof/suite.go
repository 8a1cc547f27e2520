package gof

import (
	"context"

	"relifit/domain/core"
	"relifit/domain/dataset"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
)

// DefaultSignificance is the significance level every gate tests at.
const DefaultSignificance = 0.05

// Gate is one goodness-of-fit test. Gates are pure: they never mutate the
// model or the sample, and a gate that cannot run reports itself unavailable
// instead of failing the whole suite.
type Gate interface {
	Name() weibull.TestName
	Evaluate(ctx context.Context, model *analysis.WeibullModel, sortedFailures []float64) weibull.TestResult
}

// Suite orchestrates the goodness-of-fit gates against a fitted model
type Suite struct {
	gates []Gate
}

// NewSuite creates the standard three-gate suite
func NewSuite() *Suite {
	dists := analysis.NewDistributions()
	return &Suite{
		gates: []Gate{
			NewAndersonDarlingGate(dists),
			NewKolmogorovSmirnovGate(dists),
			NewRSquaredGate(),
		},
	}
}

// Evaluate runs all gates concurrently and assembles the report.
// Gates share nothing mutable, so one gate's numerical failure leaves the
// others untouched.
func (s *Suite) Evaluate(ctx context.Context, model *analysis.WeibullModel, ds *dataset.Dataset) (*weibull.GofReport, error) {
	if model == nil {
		return nil, core.NewValidationError("model", "must not be nil")
	}
	if ds == nil {
		return nil, core.NewValidationError("dataset", "must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortedFailures := ds.SortedFailures()

	type indexedResult struct {
		result weibull.TestResult
		index  int
	}

	results := make([]weibull.TestResult, len(s.gates))
	resultChan := make(chan indexedResult, len(s.gates))

	for i, gate := range s.gates {
		go func(gate Gate, idx int) {
			resultChan <- indexedResult{result: gate.Evaluate(ctx, model, sortedFailures), index: idx}
		}(gate, i)
	}
	for range s.gates {
		res := <-resultChan
		results[res.index] = res.result
	}

	report := &weibull.GofReport{}
	for _, r := range results {
		switch r.TestName {
		case weibull.TestAndersonDarling:
			report.AndersonDarling = r
		case weibull.TestKolmogorovSmirnov:
			report.KolmogorovSmirnov = r
		case weibull.TestRSquared:
			report.RSquared = r
		}
	}

	if report.RSquared.Available {
		report.Quality = qualityFromR2(report.RSquared.Statistic)
	} else {
		report.Quality = weibull.QualityUnknown
	}
	return report, nil
}

// ListGates returns the names of the configured gates
func (s *Suite) ListGates() []weibull.TestName {
	names := make([]weibull.TestName, len(s.gates))
	for i, gate := range s.gates {
		names[i] = gate.Name()
	}
	return names
}
