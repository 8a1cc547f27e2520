package analysis

import (
	"math"
	"testing"

	"relifit/domain/weibull"
)

func newModel(t *testing.T, shape, scale float64) *WeibullModel {
	t.Helper()
	m, err := NewWeibullModel(weibull.FittedParameters{Shape: shape, Scale: scale})
	if err != nil {
		t.Fatalf("NewWeibullModel(%g, %g): %v", shape, scale, err)
	}
	return m
}

func TestWeibullModel_InvalidParameters(t *testing.T) {
	cases := []struct {
		name  string
		shape float64
		scale float64
	}{
		{"zero shape", 0, 1000},
		{"negative shape", -2, 1000},
		{"zero scale", 2, 0},
		{"negative scale", 2, -1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWeibullModel(weibull.FittedParameters{Shape: tc.shape, Scale: tc.scale})
			if err == nil {
				t.Fatalf("expected error for shape=%g scale=%g", tc.shape, tc.scale)
			}
		})
	}
}

func TestWeibullModel_BoundaryValues(t *testing.T) {
	m := newModel(t, 2.0, 1000.0)

	if r := m.Reliability(0); r != 1 {
		t.Errorf("Reliability(0) = %g, want 1", r)
	}
	if u := m.Unreliability(0); u != 0 {
		t.Errorf("Unreliability(0) = %g, want 0", u)
	}
	if r := m.Reliability(20000); r > 1e-12 {
		t.Errorf("Reliability far beyond scale = %g, want ~0", r)
	}
}

func TestWeibullModel_Complementarity(t *testing.T) {
	m := newModel(t, 1.7, 800.0)

	for _, tt := range []float64{0, 1, 50, 300, 800, 1500, 4000, 20000} {
		r := m.Reliability(tt)
		u := m.Unreliability(tt)
		if diff := math.Abs(r + u - 1); diff > 1e-15 {
			t.Errorf("Reliability(%g)+Unreliability(%g) = %g, off by %g", tt, tt, r+u, diff)
		}
	}
}

func TestWeibullModel_ReliabilityMonotone(t *testing.T) {
	m := newModel(t, 2.5, 500.0)

	prev := m.Reliability(0)
	for tt := 50.0; tt <= 2000; tt += 50 {
		r := m.Reliability(tt)
		if r > prev {
			t.Fatalf("Reliability increased from %g to %g at t=%g", prev, r, tt)
		}
		prev = r
	}
}

func TestWeibullModel_BLifeOrdering(t *testing.T) {
	m := newModel(t, 2.0, 1000.0)

	b10 := m.BLife(10)
	b50 := m.BLife(50)
	b90 := m.BLife(90)

	if !(b10 < b50 && b50 < b90) {
		t.Fatalf("expected b10 < b50 < b90, got %g, %g, %g", b10, b50, b90)
	}

	median := m.MedianLife()
	if math.Abs(b50-median)/median > 1e-12 {
		t.Errorf("BLife(50) = %g disagrees with MedianLife = %g", b50, median)
	}

	if b := m.BLife(0); b != 0 {
		t.Errorf("BLife(0) = %g, want 0", b)
	}
	if b := m.BLife(-5); b != 0 {
		t.Errorf("BLife(-5) = %g, want 0", b)
	}
	if b := m.BLife(100); !math.IsInf(b, 1) {
		t.Errorf("BLife(100) = %g, want +Inf", b)
	}
}

func TestWeibullModel_ExponentialSpecialCase(t *testing.T) {
	const scale = 500.0
	m := newModel(t, 1.0, scale)

	if mean := m.MeanLife(); math.Abs(mean-scale)/scale > 1e-9 {
		t.Errorf("MeanLife = %g, want %g for shape=1", mean, scale)
	}

	want := 1 / scale
	for _, tt := range []float64{0, 10, 250, 1000, 5000} {
		if h := m.HazardRate(tt); math.Abs(h-want) > 1e-15 {
			t.Errorf("HazardRate(%g) = %g, want constant %g", tt, h, want)
		}
	}

	if p := m.PDF(0); math.Abs(p-want) > 1e-15 {
		t.Errorf("PDF(0) = %g, want %g for shape=1", p, want)
	}
	if cv := m.CoefficientOfVariation(); math.Abs(cv-1) > 1e-9 {
		t.Errorf("CoefficientOfVariation = %g, want 1 for shape=1", cv)
	}
}

func TestWeibullModel_OriginSingularities(t *testing.T) {
	early := newModel(t, 0.5, 1000.0)
	if p := early.PDF(0); !math.IsInf(p, 1) {
		t.Errorf("PDF(0) = %g for shape<1, want +Inf", p)
	}
	if h := early.HazardRate(0); !math.IsInf(h, 1) {
		t.Errorf("HazardRate(0) = %g for shape<1, want +Inf", h)
	}
	if mode := early.Mode(); mode != 0 {
		t.Errorf("Mode = %g for shape<1, want 0", mode)
	}

	wearOut := newModel(t, 3.0, 1000.0)
	if p := wearOut.PDF(0); p != 0 {
		t.Errorf("PDF(0) = %g for shape>1, want 0", p)
	}
	if h := wearOut.HazardRate(0); h != 0 {
		t.Errorf("HazardRate(0) = %g for shape>1, want 0", h)
	}
	if mode := wearOut.Mode(); mode <= 0 {
		t.Errorf("Mode = %g for shape>1, want positive", mode)
	}
}

func TestWeibullModel_HazardShapes(t *testing.T) {
	early := newModel(t, 0.5, 1000.0)
	if h1, h2 := early.HazardRate(100), early.HazardRate(500); h1 <= h2 {
		t.Errorf("shape<1 hazard should decrease: h(100)=%g, h(500)=%g", h1, h2)
	}

	wearOut := newModel(t, 3.0, 1000.0)
	if h1, h2 := wearOut.HazardRate(100), wearOut.HazardRate(500); h1 >= h2 {
		t.Errorf("shape>1 hazard should increase: h(100)=%g, h(500)=%g", h1, h2)
	}
}

func TestWeibullModel_MomentsAgainstClosedForm(t *testing.T) {
	m := newModel(t, 2.0, 1000.0)

	// For shape=2: mean = scale*sqrt(pi)/2, variance = scale^2*(1 - pi/4),
	// mode = scale/sqrt(2), median = scale*sqrt(ln 2).
	wantMean := 500 * math.Sqrt(math.Pi)
	if mean := m.MeanLife(); math.Abs(mean-wantMean)/wantMean > 1e-9 {
		t.Errorf("MeanLife = %g, want %g", mean, wantMean)
	}

	wantVar := 1e6 * (1 - math.Pi/4)
	if v := m.Variance(); math.Abs(v-wantVar)/wantVar > 1e-9 {
		t.Errorf("Variance = %g, want %g", v, wantVar)
	}
	if sd := m.StdDev(); math.Abs(sd-math.Sqrt(wantVar))/math.Sqrt(wantVar) > 1e-9 {
		t.Errorf("StdDev = %g, want %g", sd, math.Sqrt(wantVar))
	}

	wantMode := 1000 / math.Sqrt2
	if mode := m.Mode(); math.Abs(mode-wantMode)/wantMode > 1e-9 {
		t.Errorf("Mode = %g, want %g", mode, wantMode)
	}

	wantMedian := 1000 * math.Sqrt(math.Ln2)
	if med := m.MedianLife(); math.Abs(med-wantMedian)/wantMedian > 1e-9 {
		t.Errorf("MedianLife = %g, want %g", med, wantMedian)
	}

	if cl := m.CharacteristicLife(); cl != 1000 {
		t.Errorf("CharacteristicLife = %g, want 1000", cl)
	}
}

func TestWeibullModel_EvaluateMany(t *testing.T) {
	m := newModel(t, 2.0, 1000.0)
	times := []float64{0, 100, 500, 1000, 2500}

	points := m.EvaluateMany(times)
	if len(points) != len(times) {
		t.Fatalf("got %d points, want %d", len(points), len(times))
	}

	for i, pt := range points {
		if pt.Time != times[i] {
			t.Errorf("point %d has time %g, want %g", i, pt.Time, times[i])
		}
		if math.Abs(pt.Reliability+pt.Unreliability-1) > 1e-15 {
			t.Errorf("point %d reliability pair sums to %g", i, pt.Reliability+pt.Unreliability)
		}
		if pt.Reliability < 0 || pt.Reliability > 1 {
			t.Errorf("point %d reliability %g out of [0,1]", i, pt.Reliability)
		}
	}

	if points[0].Reliability != 1 || points[0].Unreliability != 0 {
		t.Errorf("origin point = %+v, want reliability 1", points[0])
	}
}
