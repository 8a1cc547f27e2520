package interpret

import (
	"fmt"

	"relifit/domain/core"
	"relifit/domain/weibull"
)

// usefulLifeShapeCeiling bounds the tolerance band around shape=1 that still
// reads as random failures. The band is one-sided in effect: any shape below
// 1 classifies as infant mortality first.
const usefulLifeShapeCeiling = 1.1

// Interpret maps a fitted shape onto a failure-mode classification with
// engineering guidance
func Interpret(shape float64) (weibull.Interpretation, error) {
	if shape <= 0 {
		return weibull.Interpretation{}, core.NewValidationError("shape",
			fmt.Sprintf("must be positive, got %g", shape))
	}

	switch {
	case shape < 1:
		return weibull.Interpretation{
			Shape:          shape,
			FailureMode:    weibull.ModeInfantMortality,
			Behavior:       "Decreasing failure rate; early failures are most common",
			Recommendation: "Consider burn-in or component screening",
		}, nil
	case shape <= usefulLifeShapeCeiling:
		return weibull.Interpretation{
			Shape:          shape,
			FailureMode:    weibull.ModeUsefulLife,
			Behavior:       "Roughly constant failure rate; failures occur at random",
			Recommendation: "Condition-based maintenance may be appropriate",
		}, nil
	default:
		return weibull.Interpretation{
			Shape:          shape,
			FailureMode:    weibull.ModeWearOut,
			Behavior:       "Increasing failure rate; failures concentrate with age",
			Recommendation: "Time-based preventive maintenance is recommended",
		}, nil
	}
}
