package estimation

import (
	"context"
	"fmt"

	"relifit/domain/core"
	"relifit/domain/dataset"
	"relifit/domain/weibull"
	"relifit/internal"
	"relifit/ports"
)

// Numerical safety nets around the estimation paths. The brackets and bounds
// are empirically chosen constants; they are part of the engine's contract
// and are deliberately not configurable.
const (
	// rank regression: median ranks outside this open interval are discarded
	rankFloor = 0.001
	rankCeil  = 0.999

	// rank regression parameter clamps
	rrShapeMin       = 0.1
	rrShapeMax       = 10.0
	rrScaleMinFactor = 0.5
	rrScaleMaxFactor = 2.0

	// lower confidence bounds are floored here to stay physical
	ciLowerFloor = 0.1
)

// Options configures the fit engine. Optimizer tolerances live on the
// injected minimizer, not here.
type Options struct {
	ConfidenceLevel   float64 // interval coverage, default 0.95
	ShapeFallbackMax  float64 // MLE shapes beyond this trigger the rank-regression fallback, default 20
	MaxParallelTrials int     // concurrent multi-start trials, default 4
}

// DefaultOptions returns the standard engine configuration
func DefaultOptions() Options {
	return Options{
		ConfidenceLevel:   0.95,
		ShapeFallbackMax:  20.0,
		MaxParallelTrials: 4,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		o.ConfidenceLevel = def.ConfidenceLevel
	}
	if o.ShapeFallbackMax <= 0 {
		o.ShapeFallbackMax = def.ShapeFallbackMax
	}
	if o.MaxParallelTrials <= 0 {
		o.MaxParallelTrials = def.MaxParallelTrials
	}
	return o
}

// Engine fits two-parameter Weibull distributions to lifetime data
type Engine struct {
	minimizer ports.MinimizerPort
	opts      Options
	logger    *internal.Logger
}

// NewEngine creates a fit engine around a minimizer strategy
func NewEngine(minimizer ports.MinimizerPort, opts Options) *Engine {
	return &Engine{
		minimizer: minimizer,
		opts:      opts.withDefaults(),
		logger:    internal.NewDefaultLogger(),
	}
}

// Options returns the effective engine configuration
func (e *Engine) Options() Options {
	return e.opts
}

// Fit estimates (shape, scale) for the dataset with the requested method.
// Fatal problems (insufficient or degenerate data) come back as errors; a
// failed MLE search degrades to rank regression and reports the substitution
// on the outcome instead of erroring. Dataset quality findings ride on the
// outcome as warnings.
func (e *Engine) Fit(ctx context.Context, ds *dataset.Dataset, method weibull.FitMethod) (*weibull.FitOutcome, error) {
	if ds == nil {
		return nil, core.NewValidationError("dataset", "must not be nil")
	}
	if ds.NFailures() < dataset.MinFailures {
		return nil, core.NewInsufficientDataError(ds.NFailures(), dataset.MinFailures)
	}

	e.logger.Debug("fitting %s on %d failures, %d censored", method, ds.NFailures(), ds.NCensored())

	var (
		outcome *weibull.FitOutcome
		err     error
	)
	switch method {
	case weibull.MethodMLE:
		outcome, err = e.fitMLE(ctx, ds)
	case weibull.MethodRR:
		outcome, err = e.fitRR(ds)
	default:
		return nil, core.NewValidationError("method", fmt.Sprintf("unknown fit method %q", method))
	}
	if err != nil {
		return nil, err
	}

	if outcome.UsedFallback() {
		e.logger.Warn("%s estimation fell back to %s: %s",
			outcome.Fallback.FromMethod, outcome.Fallback.ToMethod, outcome.Fallback.Reason)
	}
	e.logger.Info("fitted shape=%.4f scale=%.4f via %s",
		outcome.Params.Shape, outcome.Params.Scale, outcome.Params.Method)

	if ds.FewFailures() {
		outcome.AddWarning(weibull.WarningFewFailures)
	}
	if ds.HighCensoring() {
		outcome.AddWarning(weibull.WarningHighCensoring)
	}
	return outcome, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
