package metrics

import (
	"fmt"
	"math"

	"relifit/domain/core"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
)

const (
	// DefaultTargetReliability drives maintenance planning when the caller
	// does not pick a target.
	DefaultTargetReliability = 0.90

	// preventiveIntervalFactor places preventive maintenance at this share
	// of the MTTF for the cost comparison.
	preventiveIntervalFactor = 0.8

	conservativeFactor = 0.8
	moderateFactor     = 0.9
	aggressiveFactor   = 0.95
)

// Calculator derives planning quantities from a fitted model.
// All outputs are pure functions of the model parameters and the call
// arguments.
type Calculator struct {
	model *analysis.WeibullModel
	dists *analysis.Distributions
}

// NewCalculator creates a calculator over a fitted model
func NewCalculator(model *analysis.WeibullModel) (*Calculator, error) {
	if model == nil {
		return nil, core.NewValidationError("model", "must not be nil")
	}
	return &Calculator{model: model, dists: analysis.NewDistributions()}, nil
}

// Bundle collects every named life metric of the fitted model
func (c *Calculator) Bundle(timeUnit string) weibull.MetricsBundle {
	return weibull.MetricsBundle{
		MTTF:                   c.model.MeanLife(),
		MedianLife:             c.model.MedianLife(),
		CharacteristicLife:     c.model.CharacteristicLife(),
		B10Life:                c.model.BLife(10),
		B50Life:                c.model.BLife(50),
		B90Life:                c.model.BLife(90),
		Mode:                   c.model.Mode(),
		Variance:               c.model.Variance(),
		StdDev:                 c.model.StdDev(),
		CoefficientOfVariation: c.model.CoefficientOfVariation(),
		TimeUnit:               timeUnit,
	}
}

// AtTime evaluates the reliability state at one query time
func (c *Calculator) AtTime(t float64) (weibull.PointEvaluation, error) {
	if t < 0 {
		return weibull.PointEvaluation{}, core.NewValidationError("time",
			fmt.Sprintf("must be non-negative, got %g", t))
	}
	return c.model.EvaluateAt(t), nil
}

// Mission checks a reliability requirement at a mission time and reports the
// time by which reliability decays to the requirement. A requirement of 1 or
// more yields a zero TimeToRequired: no positive mission time can hold it.
func (c *Calculator) Mission(missionTime, requiredReliability float64) (*weibull.MissionAssessment, error) {
	if missionTime < 0 {
		return nil, core.NewValidationError("mission_time",
			fmt.Sprintf("must be non-negative, got %g", missionTime))
	}
	if requiredReliability <= 0 {
		return nil, core.NewValidationError("required_reliability",
			fmt.Sprintf("must be positive, got %g", requiredReliability))
	}

	actual := c.model.Reliability(missionTime)

	var timeToRequired float64
	if requiredReliability < 1 {
		params := c.model.Params()
		timeToRequired = params.Scale * math.Pow(-math.Log(requiredReliability), 1/params.Shape)
	}

	return &weibull.MissionAssessment{
		MissionTime:         missionTime,
		RequiredReliability: requiredReliability,
		ActualReliability:   actual,
		MeetsRequirement:    actual >= requiredReliability,
		Margin:              actual - requiredReliability,
		TimeToRequired:      timeToRequired,
	}, nil
}

// SpareParts sizes spare stock for a fleet over a period. Fleet failures are
// treated as Poisson with mean fleet_size * F(period); the recommended stock
// is the upper 95% bound.
func (c *Calculator) SpareParts(fleetSize int, timePeriod float64) (*weibull.SparePartsForecast, error) {
	if fleetSize < 1 {
		return nil, core.NewValidationError("fleet_size",
			fmt.Sprintf("must be at least 1, got %d", fleetSize))
	}
	if timePeriod <= 0 {
		return nil, core.NewValidationError("time_period",
			fmt.Sprintf("must be positive, got %g", timePeriod))
	}

	failureProbability := c.model.Unreliability(timePeriod)
	expected := float64(fleetSize) * failureProbability

	lower90 := c.dists.PoissonQuantile(0.05, expected)
	upper90 := c.dists.PoissonQuantile(0.95, expected)
	lower95 := c.dists.PoissonQuantile(0.025, expected)
	upper95 := c.dists.PoissonQuantile(0.975, expected)

	return &weibull.SparePartsForecast{
		FleetSize:          fleetSize,
		TimePeriod:         timePeriod,
		FailureProbability: failureProbability,
		ExpectedFailures:   expected,
		Bounds90:           weibull.ConfidenceInterval{Lower: lower90, Upper: upper90},
		Bounds95:           weibull.ConfidenceInterval{Lower: lower95, Upper: upper95},
		RecommendedStock:   int(upper95),
	}, nil
}

// CompareCosts weighs preventive maintenance at 80% of the MTTF against
// running to failure. Rates are cost per time unit of the fitted dataset.
func (c *Calculator) CompareCosts(maintenanceCost, failureCost, downtimeCostPerHour, mttr float64) (*weibull.CostComparison, error) {
	if maintenanceCost <= 0 {
		return nil, core.NewValidationError("maintenance_cost",
			fmt.Sprintf("must be positive, got %g", maintenanceCost))
	}
	if failureCost < 0 {
		return nil, core.NewValidationError("failure_cost",
			fmt.Sprintf("must be non-negative, got %g", failureCost))
	}
	if downtimeCostPerHour < 0 {
		return nil, core.NewValidationError("downtime_cost",
			fmt.Sprintf("must be non-negative, got %g", downtimeCostPerHour))
	}
	if mttr < 0 {
		return nil, core.NewValidationError("mttr",
			fmt.Sprintf("must be non-negative, got %g", mttr))
	}

	mttf := c.model.MeanLife()
	totalFailureCost := failureCost + downtimeCostPerHour*mttr
	reactiveRate := totalFailureCost / mttf

	preventiveInterval := preventiveIntervalFactor * mttf
	preventiveRate := maintenanceCost / preventiveInterval

	savings := reactiveRate - preventiveRate
	recommended := weibull.CostReactive
	if savings > 0 {
		recommended = weibull.CostPreventive
	}

	return &weibull.CostComparison{
		PreventiveInterval: preventiveInterval,
		PreventiveCostRate: preventiveRate,
		ReactiveCostRate:   reactiveRate,
		SavingsRate:        savings,
		Recommended:        recommended,
	}, nil
}

// PlanMaintenance derives replacement intervals for a target reliability.
// The base interval is the time at which reliability decays to the target;
// the strategies scale it down by fixed safety factors. Steep wear-out
// (shape > 2) gets the conservative recommendation.
func (c *Calculator) PlanMaintenance(targetReliability float64) (*weibull.MaintenancePlan, error) {
	if targetReliability <= 0 || targetReliability >= 1 {
		return nil, core.NewValidationError("target_reliability",
			fmt.Sprintf("must be within (0, 1), got %g", targetReliability))
	}

	params := c.model.Params()
	base := params.Scale * math.Pow(-math.Log(targetReliability), 1/params.Shape)

	recommended := weibull.StrategyModerate
	if params.Shape > 2 {
		recommended = weibull.StrategyConservative
	}

	return &weibull.MaintenancePlan{
		TargetReliability:    targetReliability,
		BaseInterval:         base,
		ConservativeInterval: conservativeFactor * base,
		ModerateInterval:     moderateFactor * base,
		AggressiveInterval:   aggressiveFactor * base,
		Recommended:          recommended,
	}, nil
}
