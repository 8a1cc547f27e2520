package app

import (
	"context"
	"fmt"
	"time"

	"relifit/domain/core"
	"relifit/domain/weibull"
)

// ComparisonService analyzes several labeled datasets side by side so their
// fitted parameters and life metrics can be ranked against each other.
type ComparisonService struct {
	analysis *AnalysisService
}

// ComparisonEntry pairs a label with the dataset to analyze under it
type ComparisonEntry struct {
	Label   string
	Request AnalysisRequest
}

// ComparisonRequest bundles the entries to compare. QueryTimes, when set,
// replaces each entry's own grid so every report is evaluated at the same
// time points.
type ComparisonRequest struct {
	Entries    []ComparisonEntry
	QueryTimes []float64
}

// ComparisonRow is one line of the side-by-side summary table
type ComparisonRow struct {
	Label       string              `json:"label"`
	Shape       float64             `json:"shape"`
	Scale       float64             `json:"scale"`
	MTTF        float64             `json:"mttf"`
	MedianLife  float64             `json:"median_life"`
	B10Life     float64             `json:"b10_life"`
	B90Life     float64             `json:"b90_life"`
	FailureMode weibull.FailureMode `json:"failure_mode"`
}

// ComparisonResult holds the summary rows and the full report behind each
// row, in entry order
type ComparisonResult struct {
	Rows      []ComparisonRow           `json:"rows"`
	Reports   []*weibull.AnalysisReport `json:"reports"`
	ElapsedMS int64                     `json:"elapsed_ms"`
}

func NewComparisonService(analysis *AnalysisService) *ComparisonService {
	return &ComparisonService{analysis: analysis}
}

// Compare runs every entry through the analysis pipeline and builds the
// summary table. It requires at least two entries and distinct labels.
func (s *ComparisonService) Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResult, error) {
	startTime := time.Now()

	if len(req.Entries) < 2 {
		return nil, core.NewValidationError("entries",
			fmt.Sprintf("comparison requires at least 2 datasets, got %d", len(req.Entries)))
	}
	seen := make(map[string]bool, len(req.Entries))
	for i, entry := range req.Entries {
		if entry.Label == "" {
			return nil, core.NewValidationError("entries", fmt.Sprintf("entry %d: label is required", i))
		}
		if seen[entry.Label] {
			return nil, core.NewValidationError("entries", fmt.Sprintf("duplicate label %q", entry.Label))
		}
		seen[entry.Label] = true
	}

	result := &ComparisonResult{
		Rows:    make([]ComparisonRow, 0, len(req.Entries)),
		Reports: make([]*weibull.AnalysisReport, 0, len(req.Entries)),
	}
	for _, entry := range req.Entries {
		analysisReq := entry.Request
		if len(req.QueryTimes) > 0 {
			analysisReq.QueryTimes = req.QueryTimes
		}

		report, err := s.analysis.Run(ctx, analysisReq)
		if err != nil {
			return nil, fmt.Errorf("analysis %q failed: %w", entry.Label, err)
		}

		result.Rows = append(result.Rows, ComparisonRow{
			Label:       entry.Label,
			Shape:       report.Outcome.Params.Shape,
			Scale:       report.Outcome.Params.Scale,
			MTTF:        report.Metrics.MTTF,
			MedianLife:  report.Metrics.MedianLife,
			B10Life:     report.Metrics.B10Life,
			B90Life:     report.Metrics.B90Life,
			FailureMode: report.Interpretation.FailureMode,
		})
		result.Reports = append(result.Reports, report)
	}

	result.ElapsedMS = time.Since(startTime).Milliseconds()
	return result, nil
}
