package app

import (
	"context"
	"testing"

	"relifit/domain/core"
	"relifit/domain/weibull"
	"relifit/internal/metrics"

	"github.com/stretchr/testify/assert"
)

func newTestPlanningService() *PlanningService {
	return NewPlanningService(newTestAnalysisService())
}

func TestPlanningService_FullPlan(t *testing.T) {
	svc := newTestPlanningService()

	plan, err := svc.Plan(context.Background(), PlanRequest{
		Analysis:            AnalysisRequest{Failures: pumpFailures, TimeUnit: "hours"},
		TargetReliability:   0.90,
		MissionTime:         100,
		RequiredReliability: 0.95,
		FleetSize:           50,
		Period:              500,
		MaintenanceCost:     500,
		FailureCost:         5000,
		DowntimeCostPerHour: 100,
		MTTR:                8,
	})

	assert.NoError(t, err)
	assert.NotNil(t, plan.Analysis)

	m := plan.Maintenance
	assert.NotNil(t, m)
	assert.Equal(t, 0.90, m.TargetReliability)
	assert.Greater(t, m.ConservativeInterval, 0.0)
	assert.Less(t, m.ConservativeInterval, m.ModerateInterval)
	assert.Less(t, m.ModerateInterval, m.AggressiveInterval)
	assert.Less(t, m.AggressiveInterval, m.BaseInterval)
	// wear-out shape on this sample is comfortably above 2
	assert.Equal(t, weibull.StrategyConservative, m.Recommended)

	mission := plan.Mission
	assert.NotNil(t, mission)
	assert.Equal(t, 100.0, mission.MissionTime)
	assert.Equal(t, 0.95, mission.RequiredReliability)
	assert.Greater(t, mission.ActualReliability, 0.0)
	assert.Less(t, mission.ActualReliability, 1.0)
	assert.Equal(t, mission.ActualReliability >= mission.RequiredReliability, mission.MeetsRequirement)
	assert.InDelta(t, mission.ActualReliability-mission.RequiredReliability, mission.Margin, 1e-12)
	assert.Greater(t, mission.TimeToRequired, 0.0)

	spares := plan.Spares
	assert.NotNil(t, spares)
	assert.Equal(t, 50, spares.FleetSize)
	assert.Equal(t, 500.0, spares.TimePeriod)
	assert.Greater(t, spares.ExpectedFailures, 0.0)
	assert.LessOrEqual(t, spares.Bounds95.Lower, spares.Bounds90.Lower)
	assert.LessOrEqual(t, spares.Bounds90.Lower, spares.Bounds90.Upper)
	assert.LessOrEqual(t, spares.Bounds90.Upper, spares.Bounds95.Upper)
	assert.GreaterOrEqual(t, spares.RecommendedStock, int(spares.ExpectedFailures))

	costs := plan.Costs
	assert.NotNil(t, costs)
	assert.Greater(t, costs.PreventiveInterval, 0.0)
	assert.Greater(t, costs.PreventiveCostRate, 0.0)
	assert.Greater(t, costs.ReactiveCostRate, 0.0)
	assert.InDelta(t, costs.ReactiveCostRate-costs.PreventiveCostRate, costs.SavingsRate, 1e-12)
	// cheap scheduled replacements against a 5000-per-failure bill favor prevention
	assert.Equal(t, weibull.CostPreventive, costs.Recommended)
	assert.Greater(t, costs.SavingsRate, 0.0)
}

func TestPlanningService_MaintenanceOnlyByDefault(t *testing.T) {
	svc := newTestPlanningService()

	plan, err := svc.Plan(context.Background(), PlanRequest{
		Analysis: AnalysisRequest{Failures: pumpFailures, TimeUnit: "hours"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, plan.Maintenance)
	assert.Equal(t, metrics.DefaultTargetReliability, plan.Maintenance.TargetReliability)
	assert.Nil(t, plan.Mission)
	assert.Nil(t, plan.Spares)
	assert.Nil(t, plan.Costs)
}

func TestPlanningService_InvalidTarget(t *testing.T) {
	svc := newTestPlanningService()

	_, err := svc.Plan(context.Background(), PlanRequest{
		Analysis:          AnalysisRequest{Failures: pumpFailures, TimeUnit: "hours"},
		TargetReliability: 1.5,
	})

	assert.Error(t, err)
	assert.True(t, core.IsInvalidInputError(err))
}

func TestPlanningService_AnalysisFailurePropagates(t *testing.T) {
	svc := newTestPlanningService()

	_, err := svc.Plan(context.Background(), PlanRequest{
		Analysis: AnalysisRequest{Failures: []float64{50}, TimeUnit: "hours"},
	})

	assert.Error(t, err)
	assert.True(t, core.IsInsufficientDataError(err))
}
