package estimation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"relifit/domain/dataset"
	"relifit/domain/weibull"
)

// withConfidence attaches normal-approximation intervals to the estimates.
// Standard errors use the est/sqrt(n) approximation rather than a Fisher
// information inversion; changing that would silently move every reported
// interval, so the approximation is part of the contract.
func (e *Engine) withConfidence(shape, scale float64, method weibull.FitMethod, ds *dataset.Dataset) (weibull.FittedParameters, error) {
	n := float64(ds.NFailures())
	z := distuv.UnitNormal.Quantile(1 - (1-e.opts.ConfidenceLevel)/2)

	shapeSE := shape / math.Sqrt(n)
	scaleSE := scale / math.Sqrt(n)

	shapeCI := weibull.ConfidenceInterval{
		Lower: flooredLower(shape, z*shapeSE),
		Upper: shape + z*shapeSE,
	}
	scaleCI := weibull.ConfidenceInterval{
		Lower: flooredLower(scale, z*scaleSE),
		Upper: scale + z*scaleSE,
	}

	return weibull.NewFittedParameters(shape, scale, shapeCI, scaleCI, method,
		e.opts.ConfidenceLevel, ds.NFailures(), ds.NCensored(), ds.TimeUnit())
}

// flooredLower keeps lower bounds physical. The floor is capped at the
// estimate itself so the interval still contains estimates below the floor.
func flooredLower(estimate, halfWidth float64) float64 {
	lower := estimate - halfWidth
	floor := math.Min(ciLowerFloor, estimate)
	if lower < floor {
		return floor
	}
	return lower
}
