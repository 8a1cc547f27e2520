package estimation

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/semaphore"

	"relifit/domain/core"
	"relifit/domain/dataset"
	"relifit/domain/weibull"
	"relifit/ports"
)

// negLogLikelihood builds the censoring-aware objective for the sample.
// Failures contribute the log density, censored observations the log
// survival. The function is +Inf off the feasible region (shape > 0,
// scale > 0) and wherever the arithmetic degenerates.
func negLogLikelihood(failures, censored []float64) ports.Objective {
	return func(x []float64) float64 {
		shape, scale := x[0], x[1]
		if shape <= 0 || scale <= 0 {
			return math.Inf(1)
		}

		logShape := math.Log(shape)
		logScale := math.Log(scale)

		ll := 0.0
		for _, t := range failures {
			ll += logShape - shape*logScale + (shape-1)*math.Log(t) - math.Pow(t/scale, shape)
		}
		for _, t := range censored {
			ll -= math.Pow(t/scale, shape)
		}

		if math.IsNaN(ll) {
			return math.Inf(1)
		}
		return -ll
	}
}

// startPoint is one multi-start seed in (shape, scale) space
type startPoint struct {
	shape float64
	scale float64
}

// seedPoints derives the multi-start grid from the sample's coefficient of
// variation. Seeds are arithmetic functions of the data, never sampled, so
// the whole MLE path stays deterministic.
func seedPoints(summary dataset.Summary) []startPoint {
	cv := 1.0
	if summary.Mean > 0 {
		cv = summary.StdDev / summary.Mean
	}

	var seedShape float64
	switch {
	case cv < 0.3:
		seedShape = 3.5
	case cv < 0.5:
		seedShape = 2.5
	case cv < 0.8:
		seedShape = 1.5
	default:
		seedShape = 1.0
	}
	seedShape = clamp(seedShape, 0.5, 10)

	seedScale := summary.Mean / math.Gamma(1+1/seedShape)
	seedScale = clamp(seedScale, 0.5*summary.Mean, 2*summary.Mean)

	shapes := []float64{seedShape, 1.0, 2.0}
	scales := []float64{seedScale, summary.Mean, summary.Median}

	points := make([]startPoint, 0, len(shapes)*len(scales))
	for _, b := range shapes {
		for _, s := range scales {
			points = append(points, startPoint{shape: b, scale: s})
		}
	}
	return points
}

// fitMLE maximizes the censored likelihood by multi-start simplex search.
// The best feasible optimum wins; an empty or implausible result degrades to
// rank regression.
func (e *Engine) fitMLE(ctx context.Context, ds *dataset.Dataset) (*weibull.FitOutcome, error) {
	objective := negLogLikelihood(ds.Failures(), ds.Censored())
	seeds := seedPoints(ds.Summary())

	trials := e.runTrials(ctx, objective, seeds)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best, ok := bestFeasible(trials)
	if !ok {
		return e.fallbackToRR(ds, trials,
			core.NewOptimizationError(string(weibull.MethodMLE), "no feasible optimum found"))
	}
	if best.Shape > e.opts.ShapeFallbackMax {
		return e.fallbackToRR(ds, trials, core.NewInfeasibleEstimateError("shape", best.Shape))
	}

	params, err := e.withConfidence(best.Shape, best.Scale, weibull.MethodMLE, ds)
	if err != nil {
		return nil, err
	}

	outcome := weibull.NewFitOutcome(params)
	outcome.Trials = trials
	return outcome, nil
}

// runTrials evaluates the optimizer from every seed. Trials are independent
// and run concurrently, bounded by a weighted semaphore; each goroutine owns
// one slot of the results slice so no locking is needed. Cancellation stops
// scheduling; running trials finish.
func (e *Engine) runTrials(ctx context.Context, objective ports.Objective, seeds []startPoint) []weibull.TrialSummary {
	trials := make([]weibull.TrialSummary, len(seeds))
	sem := semaphore.NewWeighted(int64(e.opts.MaxParallelTrials))
	var wg sync.WaitGroup

	for i, seed := range seeds {
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(seeds); j++ {
				trials[j] = weibull.TrialSummary{StartShape: seeds[j].shape, StartScale: seeds[j].scale}
			}
			break
		}

		wg.Add(1)
		go func(slot int, seed startPoint) {
			defer wg.Done()
			defer sem.Release(1)
			trials[slot] = e.runTrial(ctx, objective, seed)
		}(i, seed)
	}

	wg.Wait()
	return trials
}

// runTrial executes one seed and normalizes the result into a summary.
// NegLogLik is meaningful only when Feasible is set.
func (e *Engine) runTrial(ctx context.Context, objective ports.Objective, seed startPoint) weibull.TrialSummary {
	summary := weibull.TrialSummary{
		StartShape: seed.shape,
		StartScale: seed.scale,
	}

	result, err := e.minimizer.Minimize(ctx, objective, []float64{seed.shape, seed.scale})
	if err != nil || len(result.Point) != 2 {
		return summary
	}

	summary.Shape = result.Point[0]
	summary.Scale = result.Point[1]
	summary.Converged = result.Converged

	// Re-evaluate the raw objective: the minimizer reports penalty-clamped
	// values, the true objective distinguishes feasible from infeasible.
	value := objective(result.Point)
	if !math.IsInf(value, 0) && !math.IsNaN(value) {
		summary.Feasible = true
		summary.NegLogLik = value
	}
	return summary
}

// bestFeasible picks the feasible trial with the lowest objective
func bestFeasible(trials []weibull.TrialSummary) (weibull.TrialSummary, bool) {
	var best weibull.TrialSummary
	bestValue := math.Inf(1)
	found := false

	for _, tr := range trials {
		if tr.Feasible && tr.NegLogLik < bestValue {
			best = tr
			bestValue = tr.NegLogLik
			found = true
		}
	}
	return best, found
}

// fallbackToRR degrades an MLE fit to rank regression, keeping the trial
// diagnostics and recording why the substitution happened. Only recoverable
// causes degrade; anything else propagates unchanged.
func (e *Engine) fallbackToRR(ds *dataset.Dataset, trials []weibull.TrialSummary, cause error) (*weibull.FitOutcome, error) {
	if !core.IsRecoverableFitError(cause) {
		return nil, cause
	}

	shape, scale, err := e.rankRegression(ds)
	if err != nil {
		if core.IsFatalFitError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("rank-regression fallback failed: %w (after %v)", err, cause)
	}

	params, err := e.withConfidence(shape, scale, weibull.MethodRR, ds)
	if err != nil {
		return nil, err
	}

	outcome := weibull.NewFallbackOutcome(params, weibull.MethodMLE, cause.Error())
	outcome.Trials = trials
	return outcome, nil
}
