package weibull

import (
	"fmt"
	"strings"

	"relifit/domain/core"
)

// ============================================================================
// FIT METHODS & WARNINGS
// ============================================================================

// FitMethod identifies the estimation procedure behind a set of parameters
type FitMethod string

const (
	MethodMLE FitMethod = "mle"             // censoring-aware maximum likelihood
	MethodRR  FitMethod = "rank_regression" // median-rank least squares
)

// ParseFitMethod maps user-facing method names onto a FitMethod
func ParseFitMethod(s string) (FitMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mle", "maximum_likelihood":
		return MethodMLE, nil
	case "rr", "rank_regression", "rank-regression":
		return MethodRR, nil
	default:
		return "", core.NewValidationError("method",
			fmt.Sprintf("unknown fit method %q (want mle or rank_regression)", s))
	}
}

// WarningCode represents structured warning types attached to fit outcomes
type WarningCode string

const (
	WarningFewFailures   WarningCode = "FEW_FAILURES"   // fewer than 10 observed failures
	WarningHighCensoring WarningCode = "HIGH_CENSORING" // censored observations dominate the sample
	WarningMLEFallback   WarningCode = "MLE_FALLBACK"   // MLE search degraded to rank regression
)

// ============================================================================
// FITTED PARAMETERS
// ============================================================================

// ConfidenceInterval bounds a point estimate
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies inside the interval
func (ci ConfidenceInterval) Contains(v float64) bool {
	return ci.Lower <= v && v <= ci.Upper
}

// FittedParameters is the immutable product of one fit call.
// INVARIANTS:
// - Shape > 0 and Scale > 0
// - ShapeCI contains Shape, ScaleCI contains Scale
// - ConfidenceLevel in (0, 1)
type FittedParameters struct {
	Shape           float64            `json:"shape"`
	Scale           float64            `json:"scale"`
	ShapeCI         ConfidenceInterval `json:"shape_ci"`
	ScaleCI         ConfidenceInterval `json:"scale_ci"`
	Method          FitMethod          `json:"method"`
	ConfidenceLevel float64            `json:"confidence_level"`
	NFailures       int                `json:"n_failures"`
	NCensored       int                `json:"n_censored"`
	TimeUnit        string             `json:"time_unit"`
}

// NewFittedParameters creates fitted parameters with invariant validation
func NewFittedParameters(shape, scale float64, shapeCI, scaleCI ConfidenceInterval,
	method FitMethod, confidenceLevel float64, nFailures, nCensored int, timeUnit string) (FittedParameters, error) {

	if shape <= 0 {
		return FittedParameters{}, fmt.Errorf("shape must be > 0, got %g", shape)
	}
	if scale <= 0 {
		return FittedParameters{}, fmt.Errorf("scale must be > 0, got %g", scale)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return FittedParameters{}, fmt.Errorf("confidence level must be in (0, 1), got %g", confidenceLevel)
	}
	if nFailures <= 0 {
		return FittedParameters{}, fmt.Errorf("n_failures must be > 0, got %d", nFailures)
	}
	if nCensored < 0 {
		return FittedParameters{}, fmt.Errorf("n_censored must be >= 0, got %d", nCensored)
	}
	if method != MethodMLE && method != MethodRR {
		return FittedParameters{}, fmt.Errorf("unknown fit method %q", method)
	}
	if !shapeCI.Contains(shape) {
		return FittedParameters{}, fmt.Errorf("shape CI [%g, %g] must contain shape %g", shapeCI.Lower, shapeCI.Upper, shape)
	}
	if !scaleCI.Contains(scale) {
		return FittedParameters{}, fmt.Errorf("scale CI [%g, %g] must contain scale %g", scaleCI.Lower, scaleCI.Upper, scale)
	}

	return FittedParameters{
		Shape:           shape,
		Scale:           scale,
		ShapeCI:         shapeCI,
		ScaleCI:         scaleCI,
		Method:          method,
		ConfidenceLevel: confidenceLevel,
		NFailures:       nFailures,
		NCensored:       nCensored,
		TimeUnit:        timeUnit,
	}, nil
}

// ============================================================================
// FIT OUTCOME
// ============================================================================

// FitStatus tags how a fit concluded. Fatal failures are Go errors, not a
// status: a FitOutcome always carries usable parameters.
type FitStatus string

const (
	StatusSucceeded FitStatus = "succeeded"
	StatusFallback  FitStatus = "fallback"
)

// FallbackNote records why the requested method was substituted
type FallbackNote struct {
	FromMethod FitMethod `json:"from_method"`
	ToMethod   FitMethod `json:"to_method"`
	Reason     string    `json:"reason"`
}

// TrialSummary records one multi-start optimization trial for diagnostics
type TrialSummary struct {
	StartShape float64 `json:"start_shape"`
	StartScale float64 `json:"start_scale"`
	Shape      float64 `json:"shape"`
	Scale      float64 `json:"scale"`
	NegLogLik  float64 `json:"neg_log_lik"`
	Converged  bool    `json:"converged"`
	Feasible   bool    `json:"feasible"`
}

// FitOutcome is the tagged result of a fit: parameters plus how they were
// obtained, with any non-fatal degradations embedded rather than raised.
type FitOutcome struct {
	Status   FitStatus        `json:"status"`
	Params   FittedParameters `json:"params"`
	Fallback *FallbackNote    `json:"fallback,omitempty"`
	Warnings []WarningCode    `json:"warnings,omitempty"`
	Trials   []TrialSummary   `json:"trials,omitempty"`
}

// NewFitOutcome creates a clean outcome for a fit that used the requested method
func NewFitOutcome(params FittedParameters) *FitOutcome {
	return &FitOutcome{
		Status: StatusSucceeded,
		Params: params,
	}
}

// NewFallbackOutcome creates an outcome whose requested method was substituted
func NewFallbackOutcome(params FittedParameters, from FitMethod, reason string) *FitOutcome {
	return &FitOutcome{
		Status: StatusFallback,
		Params: params,
		Fallback: &FallbackNote{
			FromMethod: from,
			ToMethod:   params.Method,
			Reason:     reason,
		},
		Warnings: []WarningCode{WarningMLEFallback},
	}
}

// AddWarning appends a warning code if not already present
func (o *FitOutcome) AddWarning(code WarningCode) {
	if !o.HasWarning(code) {
		o.Warnings = append(o.Warnings, code)
	}
}

// HasWarning reports whether the outcome carries a warning code
func (o *FitOutcome) HasWarning(code WarningCode) bool {
	for _, w := range o.Warnings {
		if w == code {
			return true
		}
	}
	return false
}

// UsedFallback reports whether the requested method was substituted
func (o *FitOutcome) UsedFallback() bool {
	return o.Status == StatusFallback
}
