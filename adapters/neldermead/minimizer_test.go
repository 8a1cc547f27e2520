package neldermead

import (
	"context"
	"math"
	"testing"
)

// TestMinimize_Quadratic verifies convergence on a smooth bowl
func TestMinimize_Quadratic(t *testing.T) {
	m := New(1e-8, 1000)
	ctx := context.Background()

	// Minimum at (3, -2)
	objective := func(x []float64) float64 {
		dx := x[0] - 3
		dy := x[1] + 2
		return dx*dx + dy*dy
	}

	result, err := m.Minimize(ctx, objective, []float64{0, 0})
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	if !result.Converged {
		t.Error("Expected convergence on a quadratic bowl")
	}
	if math.Abs(result.Point[0]-3) > 1e-3 || math.Abs(result.Point[1]+2) > 1e-3 {
		t.Errorf("Expected minimum near (3, -2), got %v", result.Point)
	}
	if result.Value > 1e-6 {
		t.Errorf("Expected near-zero minimum value, got %g", result.Value)
	}
}

// TestMinimize_InfeasibleRegion verifies +Inf objectives do not break the search
func TestMinimize_InfeasibleRegion(t *testing.T) {
	m := New(1e-8, 1000)
	ctx := context.Background()

	// Feasible only for x > 0; minimum at x = 2
	objective := func(x []float64) float64 {
		if x[0] <= 0 {
			return math.Inf(1)
		}
		d := x[0] - 2
		return d * d
	}

	result, err := m.Minimize(ctx, objective, []float64{0.5})
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	if math.Abs(result.Point[0]-2) > 1e-3 {
		t.Errorf("Expected minimum near 2, got %v", result.Point)
	}
}

// TestMinimize_EmptyInitial verifies input validation
func TestMinimize_EmptyInitial(t *testing.T) {
	m := New(0, 0)
	if _, err := m.Minimize(context.Background(), func(x []float64) float64 { return 0 }, nil); err == nil {
		t.Error("Expected error for empty initial point")
	}
}

// TestMinimize_CancelledContext verifies the search is not started when cancelled
func TestMinimize_CancelledContext(t *testing.T) {
	m := New(1e-8, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Minimize(ctx, func(x []float64) float64 { return x[0] * x[0] }, []float64{1}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
