package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"relifit/adapters/estimation"
	"relifit/domain/core"
	"relifit/domain/dataset"
	"relifit/domain/weibull"
	"relifit/internal/analysis"
	"relifit/internal/gof"
	"relifit/internal/interpret"
	"relifit/internal/metrics"
)

// AnalysisService runs the full reliability pipeline: dataset validation,
// parameter estimation, goodness-of-fit gating, life metrics and the
// failure-mode interpretation.
type AnalysisService struct {
	engine      *estimation.Engine
	gofSuite    *gof.Suite
	minFailures int
}

// AnalysisRequest defines the inputs for one analysis run
type AnalysisRequest struct {
	Failures   []float64
	Censored   []float64
	TimeUnit   string
	Method     weibull.FitMethod // empty selects MLE
	QueryTimes []float64         // optional evaluation grid for the report
	AnalysisID core.AnalysisID   // optional, generated if empty
}

// NewAnalysisService creates an analysis service. A minFailures below the
// dataset floor is raised to it.
func NewAnalysisService(engine *estimation.Engine, gofSuite *gof.Suite, minFailures int) *AnalysisService {
	if minFailures < dataset.MinFailures {
		minFailures = dataset.MinFailures
	}
	return &AnalysisService{
		engine:      engine,
		gofSuite:    gofSuite,
		minFailures: minFailures,
	}
}

// Run executes one complete analysis and assembles the report
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*weibull.AnalysisReport, error) {
	startTime := time.Now()

	for _, q := range req.QueryTimes {
		if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return nil, core.NewValidationError("query_times",
				fmt.Sprintf("times must be non-negative and finite, got %g", q))
		}
	}

	analysisID := req.AnalysisID
	if analysisID == "" {
		analysisID = core.NewAnalysisID()
	}

	ds, err := dataset.New(req.Failures, req.Censored, req.TimeUnit)
	if err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}
	if ds.NFailures() < s.minFailures {
		return nil, core.NewInsufficientDataError(ds.NFailures(), s.minFailures)
	}

	method := req.Method
	if method == "" {
		method = weibull.MethodMLE
	}

	outcome, err := s.engine.Fit(ctx, ds, method)
	if err != nil {
		return nil, fmt.Errorf("parameter estimation failed: %w", err)
	}

	model, err := analysis.NewWeibullModel(outcome.Params)
	if err != nil {
		return nil, fmt.Errorf("model construction failed: %w", err)
	}

	gofReport, err := s.gofSuite.Evaluate(ctx, model, ds)
	if err != nil {
		return nil, fmt.Errorf("goodness-of-fit evaluation failed: %w", err)
	}

	calc, err := metrics.NewCalculator(model)
	if err != nil {
		return nil, fmt.Errorf("metrics calculation failed: %w", err)
	}

	interpretation, err := interpret.Interpret(outcome.Params.Shape)
	if err != nil {
		return nil, fmt.Errorf("interpretation failed: %w", err)
	}

	var points []weibull.PointEvaluation
	if len(req.QueryTimes) > 0 {
		points = model.EvaluateMany(req.QueryTimes)
	}

	return &weibull.AnalysisReport{
		AnalysisID: analysisID,
		Dataset: weibull.DatasetDigest{
			NFailures:   ds.NFailures(),
			NCensored:   ds.NCensored(),
			TimeUnit:    ds.TimeUnit(),
			Fingerprint: ds.Fingerprint(),
		},
		Outcome:        *outcome,
		Metrics:        calc.Bundle(ds.TimeUnit()),
		GoodnessOfFit:  *gofReport,
		Interpretation: interpretation,
		Points:         points,
		ElapsedMS:      time.Since(startTime).Milliseconds(),
		ComputedAt:     core.Now(),
	}, nil
}
