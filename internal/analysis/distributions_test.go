package analysis

import (
	"math"
	"testing"
)

func TestDistributions_NormalQuantile(t *testing.T) {
	d := NewDistributions()

	if q := d.NormalQuantile(0.975); math.Abs(q-1.9599639845400545) > 1e-9 {
		t.Errorf("NormalQuantile(0.975) = %g, want 1.95996...", q)
	}
	if q := d.NormalQuantile(0.5); math.Abs(q) > 1e-12 {
		t.Errorf("NormalQuantile(0.5) = %g, want 0", q)
	}
	if lo, hi := d.NormalQuantile(0.025), d.NormalQuantile(0.975); math.Abs(lo+hi) > 1e-9 {
		t.Errorf("quantiles not symmetric: %g vs %g", lo, hi)
	}
}

func TestDistributions_PoissonQuantile(t *testing.T) {
	d := NewDistributions()

	cases := []struct {
		p      float64
		lambda float64
		want   float64
	}{
		{0.95, 3, 6},
		{0.05, 3, 1},
		{0.025, 3, 0},
		{0.95, 10, 15},
		{0.975, 10, 17},
		{0.5, 0, 0},
		{0, 5, 0},
		{-0.1, 5, 0},
	}

	for _, tc := range cases {
		got := d.PoissonQuantile(tc.p, tc.lambda)
		if got != tc.want {
			t.Errorf("PoissonQuantile(%g, %g) = %g, want %g", tc.p, tc.lambda, got, tc.want)
		}
	}

	if q := d.PoissonQuantile(1, 5); !math.IsInf(q, 1) {
		t.Errorf("PoissonQuantile(1, 5) = %g, want +Inf", q)
	}
}

func TestDistributions_KolmogorovPValue(t *testing.T) {
	d := NewDistributions()

	if p := d.KolmogorovPValue(0, 100); p != 1 {
		t.Errorf("p-value for zero statistic = %g, want 1", p)
	}
	if p := d.KolmogorovPValue(0.1, 0); p != 1 {
		t.Errorf("p-value for empty sample = %g, want 1", p)
	}

	// Statistic chosen so the effective lambda is 1.0; the Kolmogorov series
	// then gives 2*(e^-2 - e^-8 + e^-18 - ...) = 0.2699996...
	dn := 1.0 / 10.131
	if p := d.KolmogorovPValue(dn, 100); math.Abs(p-0.2699996716) > 1e-6 {
		t.Errorf("KolmogorovPValue(%g, 100) = %g, want ~0.27", dn, p)
	}

	small, large := d.KolmogorovPValue(0.05, 100), d.KolmogorovPValue(0.15, 100)
	if small <= large {
		t.Errorf("p-value should shrink with the statistic: p(0.05)=%g, p(0.15)=%g", small, large)
	}

	for _, dn := range []float64{0.01, 0.05, 0.1, 0.3, 0.9} {
		if p := d.KolmogorovPValue(dn, 50); p < 0 || p > 1 {
			t.Errorf("KolmogorovPValue(%g, 50) = %g out of [0,1]", dn, p)
		}
	}
}

func TestDistributions_ExponentialADCritical(t *testing.T) {
	d := NewDistributions()

	if c := d.ExponentialADCritical(0.05, 10); math.Abs(c-1.341/1.06) > 1e-12 {
		t.Errorf("5%% critical at n=10 = %g, want %g", c, 1.341/1.06)
	}
	if c := d.ExponentialADCritical(0.05, 1_000_000); math.Abs(c-1.341) > 1e-3 {
		t.Errorf("5%% critical at large n = %g, want ~1.341", c)
	}
	if c := d.ExponentialADCritical(0.01, 20); math.Abs(c-1.957/1.03) > 1e-12 {
		t.Errorf("1%% critical at n=20 = %g, want %g", c, 1.957/1.03)
	}

	// Unknown significance levels fall back to the 5% row.
	if got, want := d.ExponentialADCritical(0.07, 30), d.ExponentialADCritical(0.05, 30); got != want {
		t.Errorf("unknown significance = %g, want 5%% fallback %g", got, want)
	}

	small, strict := d.ExponentialADCritical(0.15, 25), d.ExponentialADCritical(0.01, 25)
	if small >= strict {
		t.Errorf("critical values should grow as significance tightens: %g vs %g", small, strict)
	}
}
