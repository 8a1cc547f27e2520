package ports

import (
	"context"
)

// Objective is a scalar function over a parameter vector. Implementations
// must tolerate infeasible points by returning +Inf, never panicking.
type Objective func(x []float64) float64

// MinimizeResult contains the outcome of one derivative-free search
type MinimizeResult struct {
	Point      []float64
	Value      float64
	Converged  bool
	Iterations int
}

// MinimizerPort is a pluggable derivative-free minimizer. Fit correctness
// constrains the outcome of the search, not its internal mechanism, so the
// engine only depends on this narrow surface.
type MinimizerPort interface {
	Minimize(ctx context.Context, objective Objective, initial []float64) (*MinimizeResult, error)
}
