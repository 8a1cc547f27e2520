package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"relifit/domain/core"
	"relifit/domain/weibull"
)

// WeibullModel exposes the closed-form life functions of a fitted
// distribution. All methods are pure functions of time given the wrapped
// parameters; the model is safe for concurrent use.
type WeibullModel struct {
	params weibull.FittedParameters
	dist   distuv.Weibull
}

// NewWeibullModel wraps fitted parameters. Positivity is re-checked because
// callers may construct FittedParameters directly.
func NewWeibullModel(params weibull.FittedParameters) (*WeibullModel, error) {
	if params.Shape <= 0 || params.Scale <= 0 {
		return nil, core.NewValidationError("params",
			fmt.Sprintf("shape and scale must be positive, got (%g, %g)", params.Shape, params.Scale))
	}
	return &WeibullModel{
		params: params,
		dist:   distuv.Weibull{K: params.Shape, Lambda: params.Scale},
	}, nil
}

// Params returns the wrapped fitted parameters
func (m *WeibullModel) Params() weibull.FittedParameters {
	return m.params
}

// Reliability is the survival probability at time t
func (m *WeibullModel) Reliability(t float64) float64 {
	return m.dist.Survival(t)
}

// Unreliability is the failure probability at time t, defined as the exact
// complement of Reliability so the pair always sums to one.
func (m *WeibullModel) Unreliability(t float64) float64 {
	return 1 - m.dist.Survival(t)
}

// PDF is the failure density at time t.
// The t=0 singularity resolves by policy: +Inf for shape<1, 1/scale for
// shape=1 and 0 for shape>1.
func (m *WeibullModel) PDF(t float64) float64 {
	if t == 0 {
		switch {
		case m.params.Shape < 1:
			return math.Inf(1)
		case m.params.Shape == 1:
			return 1 / m.params.Scale
		default:
			return 0
		}
	}
	return m.dist.Prob(t)
}

// HazardRate is the instantaneous failure rate at time t, with the same
// t=0 policy as PDF.
func (m *WeibullModel) HazardRate(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t == 0 {
		switch {
		case m.params.Shape < 1:
			return math.Inf(1)
		case m.params.Shape == 1:
			return 1 / m.params.Scale
		default:
			return 0
		}
	}
	return (m.params.Shape / m.params.Scale) * math.Pow(t/m.params.Scale, m.params.Shape-1)
}

// MeanLife is the MTTF of the fitted distribution
func (m *WeibullModel) MeanLife() float64 {
	return m.dist.Mean()
}

// MedianLife is the time by which half the population has failed
func (m *WeibullModel) MedianLife() float64 {
	return m.dist.Median()
}

// CharacteristicLife is the scale: the time by which ~63.2% have failed
func (m *WeibullModel) CharacteristicLife() float64 {
	return m.params.Scale
}

// BLife is the time by which p percent of the population has failed.
// Out-of-range percentiles saturate to the distribution's limits.
func (m *WeibullModel) BLife(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 100 {
		return math.Inf(1)
	}
	return m.dist.Quantile(p / 100)
}

// Mode is the most likely failure time (0 when shape <= 1)
func (m *WeibullModel) Mode() float64 {
	return m.dist.Mode()
}

// Variance of the failure-time distribution
func (m *WeibullModel) Variance() float64 {
	return m.dist.Variance()
}

// StdDev of the failure-time distribution
func (m *WeibullModel) StdDev() float64 {
	return m.dist.StdDev()
}

// CoefficientOfVariation is StdDev/MeanLife, 0 for a zero mean
func (m *WeibullModel) CoefficientOfVariation() float64 {
	mean := m.dist.Mean()
	if mean == 0 {
		return 0
	}
	return m.dist.StdDev() / mean
}

// EvaluateAt projects the reliability state at one query time
func (m *WeibullModel) EvaluateAt(t float64) weibull.PointEvaluation {
	return weibull.PointEvaluation{
		Time:          t,
		Reliability:   m.Reliability(t),
		Unreliability: m.Unreliability(t),
		PDF:           m.PDF(t),
		HazardRate:    m.HazardRate(t),
	}
}

// EvaluateMany projects the reliability state over a sequence of query times
func (m *WeibullModel) EvaluateMany(times []float64) []weibull.PointEvaluation {
	out := make([]weibull.PointEvaluation, len(times))
	for i, t := range times {
		out[i] = m.EvaluateAt(t)
	}
	return out
}
