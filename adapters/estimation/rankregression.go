package estimation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"relifit/domain/core"
	"relifit/domain/dataset"
	"relifit/domain/weibull"
)

// fitRR estimates parameters by median-rank least squares
func (e *Engine) fitRR(ds *dataset.Dataset) (*weibull.FitOutcome, error) {
	shape, scale, err := e.rankRegression(ds)
	if err != nil {
		return nil, err
	}

	params, err := e.withConfidence(shape, scale, weibull.MethodRR, ds)
	if err != nil {
		return nil, err
	}
	return weibull.NewFitOutcome(params), nil
}

// rankRegression runs the closed-form median-rank fit: Benard's
// approximation (i-0.3)/(n+0.4) gives plotting positions, the double-log
// transform linearizes the CDF, and ordinary least squares recovers the
// parameters. Estimates are clamped as a numerical safety net.
func (e *Engine) rankRegression(ds *dataset.Dataset) (shape, scale float64, err error) {
	failures := ds.SortedFailures()
	n := len(failures)

	if failures[0] == failures[n-1] {
		return 0, 0, core.NewDegenerateInputError("all failure times are identical")
	}

	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i, t := range failures {
		rank := (float64(i+1) - 0.3) / (float64(n) + 0.4)
		if rank <= rankFloor || rank >= rankCeil {
			continue
		}
		x = append(x, math.Log(t))
		y = append(y, math.Log(-math.Log(1-rank)))
	}
	if len(x) < 2 {
		return 0, 0, core.NewDegenerateInputError("no usable median ranks after bracket filtering")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsNaN(intercept) || slope == 0 {
		return 0, 0, core.NewDegenerateInputError("rank regression produced a flat line")
	}

	shape = slope
	scale = math.Exp(-intercept / slope)

	shape = clamp(shape, rrShapeMin, rrShapeMax)
	scale = clamp(scale, rrScaleMinFactor*failures[0], rrScaleMaxFactor*failures[n-1])
	return shape, scale, nil
}
