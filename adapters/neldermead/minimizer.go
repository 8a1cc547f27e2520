package neldermead

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"relifit/ports"
)

// infPenalty stands in for +Inf objective values; the simplex arithmetic
// needs finite numbers to order and reflect vertices.
const infPenalty = 1e30

// convergeWindow is how many non-improving iterations count as converged.
const convergeWindow = 25

// Minimizer adapts gonum's Nelder-Mead simplex to the MinimizerPort
type Minimizer struct {
	tolerance     float64
	maxIterations int
}

// New creates a minimizer with the given function-value tolerance and
// iteration cap. Non-positive arguments select the defaults (1e-8, 1000).
func New(tolerance float64, maxIterations int) *Minimizer {
	if tolerance <= 0 {
		tolerance = 1e-8
	}
	if maxIterations <= 0 {
		maxIterations = 1000
	}
	return &Minimizer{
		tolerance:     tolerance,
		maxIterations: maxIterations,
	}
}

// Minimize runs the simplex search from the initial point
func (m *Minimizer) Minimize(ctx context.Context, objective ports.Objective, initial []float64) (*ports.MinimizeResult, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("initial point must not be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			v := objective(x)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return infPenalty
			}
			return v
		},
	}

	settings := &optimize.Settings{
		MajorIterations: m.maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   m.tolerance,
			Relative:   m.tolerance,
			Iterations: convergeWindow,
		},
	}

	result, err := optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("nelder-mead search failed: %w", err)
	}

	return &ports.MinimizeResult{
		Point:      append([]float64(nil), result.X...),
		Value:      result.F,
		Converged:  result.Status == optimize.FunctionConvergence || result.Status == optimize.Success,
		Iterations: result.Stats.MajorIterations,
	}, nil
}
