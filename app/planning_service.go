package app

import (
	"context"
	"fmt"

	"relifit/domain/weibull"
	"relifit/internal/analysis"
	"relifit/internal/metrics"
)

// PlanningService turns a fitted analysis into maintenance guidance:
// replacement intervals, mission assessments, spare-parts forecasts and a
// preventive-versus-reactive cost comparison.
type PlanningService struct {
	analysis *AnalysisService
}

// PlanRequest extends an analysis with planning inputs. The maintenance plan
// is always produced; the optional sections activate when their inputs are
// set.
type PlanRequest struct {
	Analysis          AnalysisRequest
	TargetReliability float64 // reliability the maintenance interval must hold, default 0.90

	MissionTime         float64 // > 0 enables the mission assessment
	RequiredReliability float64 // default 0.90 when the mission assessment is enabled

	FleetSize int     // > 0 enables the spare-parts forecast
	Period    float64 // planning horizon for the forecast

	MaintenanceCost     float64 // > 0 enables the cost comparison
	FailureCost         float64
	DowntimeCostPerHour float64
	MTTR                float64
}

// PlanReport bundles the analysis with every planning section that ran
type PlanReport struct {
	Analysis    *weibull.AnalysisReport     `json:"analysis"`
	Maintenance *weibull.MaintenancePlan    `json:"maintenance"`
	Mission     *weibull.MissionAssessment  `json:"mission,omitempty"`
	Spares      *weibull.SparePartsForecast `json:"spares,omitempty"`
	Costs       *weibull.CostComparison     `json:"costs,omitempty"`
}

func NewPlanningService(analysis *AnalysisService) *PlanningService {
	return &PlanningService{analysis: analysis}
}

// Plan analyzes the dataset and derives the requested planning sections
// from the fitted model
func (s *PlanningService) Plan(ctx context.Context, req PlanRequest) (*PlanReport, error) {
	report, err := s.analysis.Run(ctx, req.Analysis)
	if err != nil {
		return nil, err
	}

	model, err := analysis.NewWeibullModel(report.Outcome.Params)
	if err != nil {
		return nil, fmt.Errorf("model construction failed: %w", err)
	}
	calc, err := metrics.NewCalculator(model)
	if err != nil {
		return nil, fmt.Errorf("metrics calculation failed: %w", err)
	}

	target := req.TargetReliability
	if target == 0 {
		target = metrics.DefaultTargetReliability
	}
	plan, err := calc.PlanMaintenance(target)
	if err != nil {
		return nil, fmt.Errorf("maintenance planning failed: %w", err)
	}

	out := &PlanReport{
		Analysis:    report,
		Maintenance: plan,
	}

	if req.MissionTime > 0 {
		required := req.RequiredReliability
		if required == 0 {
			required = metrics.DefaultTargetReliability
		}
		mission, err := calc.Mission(req.MissionTime, required)
		if err != nil {
			return nil, fmt.Errorf("mission assessment failed: %w", err)
		}
		out.Mission = mission
	}

	if req.FleetSize > 0 {
		spares, err := calc.SpareParts(req.FleetSize, req.Period)
		if err != nil {
			return nil, fmt.Errorf("spare-parts forecast failed: %w", err)
		}
		out.Spares = spares
	}

	if req.MaintenanceCost > 0 {
		costs, err := calc.CompareCosts(req.MaintenanceCost, req.FailureCost, req.DowntimeCostPerHour, req.MTTR)
		if err != nil {
			return nil, fmt.Errorf("cost comparison failed: %w", err)
		}
		out.Costs = costs
	}

	return out, nil
}
