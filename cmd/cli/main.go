package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"relifit/adapters/estimation"
	"relifit/adapters/neldermead"
	"relifit/app"
	"relifit/domain/weibull"
	"relifit/internal/apperr"
	"relifit/internal/config"
	"relifit/internal/gof"
	"relifit/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables win over file entries
	_ = godotenv.Load()
	log.SetFlags(0)
	log.SetPrefix("relifit: ")

	rootCmd := &cobra.Command{
		Use:   "relifit-cli",
		Short: "Two-parameter Weibull reliability analysis from failure data",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newCompareCmd(),
		newPlanCmd(),
		newSimulateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		appErr := apperr.FromDomain(err)
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", appErr.Code, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var failuresRaw, censoredRaw, unit, method, timesRaw string
	var confidence float64
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fit a Weibull model to failure data and report life metrics",
		Long: `Fit a two-parameter Weibull distribution to observed failure times,
gate the fit with goodness-of-fit tests and report life metrics.

Example: relifit-cli analyze --failures "150,230,310,420,195,380,290,165,275,360" --unit hours`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildAnalysisRequest(failuresRaw, censoredRaw, unit, method, timesRaw)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), req, confidence, jsonOut)
		},
	}

	cmd.Flags().StringVar(&failuresRaw, "failures", "", "Comma-separated failure times (required)")
	cmd.Flags().StringVar(&censoredRaw, "censored", "", "Comma-separated right-censored times")
	cmd.Flags().StringVar(&unit, "unit", "", "Time unit label (default from configuration)")
	cmd.Flags().StringVar(&method, "method", "mle", "Fit method: mle|rank_regression")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Confidence level override, e.g. 0.90")
	cmd.Flags().StringVar(&timesRaw, "times", "", "Comma-separated times to evaluate the fitted model at")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full report as JSON")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var datasets []string
	var unit, method, timesRaw string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Analyze several labeled datasets side by side",
		Long: `Fit every labeled dataset and print a comparison table of parameters,
life metrics and failure modes. Datasets are given as label:times pairs.

Example: relifit-cli compare --dataset "supplier-a:150,230,310,420,195" --dataset "supplier-b:80,120,160,210,95"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(datasets) == 0 {
				return apperr.InvalidInput("at least two --dataset flags are required")
			}
			queryTimes, err := parseTimes(timesRaw)
			if err != nil {
				return fmt.Errorf("--times: %w", err)
			}
			fitMethod, err := weibull.ParseFitMethod(method)
			if err != nil {
				return err
			}
			return runCompare(cmd.Context(), datasets, unit, fitMethod, queryTimes, jsonOut)
		},
	}

	cmd.Flags().StringArrayVar(&datasets, "dataset", nil, "Labeled dataset as label:t1,t2,... (repeatable)")
	cmd.Flags().StringVar(&unit, "unit", "", "Time unit label shared by all datasets")
	cmd.Flags().StringVar(&method, "method", "mle", "Fit method: mle|rank_regression")
	cmd.Flags().StringVar(&timesRaw, "times", "", "Shared evaluation grid for all reports")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full result as JSON")

	return cmd
}

func newPlanCmd() *cobra.Command {
	var failuresRaw, censoredRaw, unit string
	var target, missionTime, required, period float64
	var fleetSize int
	var maintenanceCost, failureCost, downtimeCost, mttr float64
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Derive maintenance guidance from a fitted Weibull model",
		Long: `Fit the failure data, then derive replacement intervals and, when their
inputs are given, a mission assessment, a spare-parts forecast and a
preventive-versus-reactive cost comparison.

Example: relifit-cli plan --failures "150,230,310,420,195,380,290,165,275,360" --fleet-size 50 --period 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysisReq, err := buildAnalysisRequest(failuresRaw, censoredRaw, unit, "mle", "")
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), app.PlanRequest{
				Analysis:            analysisReq,
				TargetReliability:   target,
				MissionTime:         missionTime,
				RequiredReliability: required,
				FleetSize:           fleetSize,
				Period:              period,
				MaintenanceCost:     maintenanceCost,
				FailureCost:         failureCost,
				DowntimeCostPerHour: downtimeCost,
				MTTR:                mttr,
			}, jsonOut)
		},
	}

	cmd.Flags().StringVar(&failuresRaw, "failures", "", "Comma-separated failure times (required)")
	cmd.Flags().StringVar(&censoredRaw, "censored", "", "Comma-separated right-censored times")
	cmd.Flags().StringVar(&unit, "unit", "", "Time unit label (default from configuration)")
	cmd.Flags().Float64Var(&target, "target", 0, "Target reliability for the maintenance plan (default 0.90)")
	cmd.Flags().Float64Var(&missionTime, "mission-time", 0, "Mission duration to assess")
	cmd.Flags().Float64Var(&required, "required", 0, "Required mission reliability (default 0.90)")
	cmd.Flags().IntVar(&fleetSize, "fleet-size", 0, "Fleet size for the spare-parts forecast")
	cmd.Flags().Float64Var(&period, "period", 0, "Planning horizon for the spare-parts forecast")
	cmd.Flags().Float64Var(&maintenanceCost, "maintenance-cost", 0, "Cost of one planned replacement")
	cmd.Flags().Float64Var(&failureCost, "failure-cost", 0, "Cost of one unplanned failure")
	cmd.Flags().Float64Var(&downtimeCost, "downtime-cost", 0, "Downtime cost per hour")
	cmd.Flags().Float64Var(&mttr, "mttr", 0, "Mean time to repair in hours")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full plan as JSON")

	return cmd
}

func newSimulateCmd() *cobra.Command {
	var shape, scale, censorAt float64
	var n int
	var seed int64
	var unit string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Draw synthetic Weibull lifetimes and refit them",
		Long: `Draw lifetimes from a known Weibull distribution, optionally censor them
at a cutoff, then run the full analysis to see how well the parameters
are recovered.

Example: relifit-cli simulate --shape 2.5 --scale 1000 --n 50 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shape <= 0 || scale <= 0 {
				return apperr.InvalidInput("--shape and --scale must be positive")
			}
			return runSimulate(cmd.Context(), testkit.SampleConfig{
				Shape:    shape,
				Scale:    scale,
				N:        n,
				CensorAt: censorAt,
				TimeUnit: unit,
				Seed:     seed,
			}, jsonOut)
		},
	}

	cmd.Flags().Float64Var(&shape, "shape", 2.0, "True shape parameter")
	cmd.Flags().Float64Var(&scale, "scale", 1000, "True scale parameter")
	cmd.Flags().IntVar(&n, "n", 50, "Number of lifetimes to draw")
	cmd.Flags().Float64Var(&censorAt, "censor-at", 0, "Type-I censoring cutoff, 0 disables")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic draws")
	cmd.Flags().StringVar(&unit, "unit", "", "Time unit label (default from configuration)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print config and report as JSON")

	return cmd
}

// buildAnalysisRequest parses the shared flag set into an analysis request
func buildAnalysisRequest(failuresRaw, censoredRaw, unit, method, timesRaw string) (app.AnalysisRequest, error) {
	if strings.TrimSpace(failuresRaw) == "" {
		return app.AnalysisRequest{}, apperr.InvalidInput("--failures is required")
	}
	failures, err := parseTimes(failuresRaw)
	if err != nil {
		return app.AnalysisRequest{}, fmt.Errorf("--failures: %w", err)
	}
	censored, err := parseTimes(censoredRaw)
	if err != nil {
		return app.AnalysisRequest{}, fmt.Errorf("--censored: %w", err)
	}
	queryTimes, err := parseTimes(timesRaw)
	if err != nil {
		return app.AnalysisRequest{}, fmt.Errorf("--times: %w", err)
	}
	fitMethod, err := weibull.ParseFitMethod(method)
	if err != nil {
		return app.AnalysisRequest{}, err
	}
	return app.AnalysisRequest{
		Failures:   failures,
		Censored:   censored,
		TimeUnit:   unit,
		Method:     fitMethod,
		QueryTimes: queryTimes,
	}, nil
}

func runAnalyze(ctx context.Context, req app.AnalysisRequest, confidence float64, jsonOut bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if req.TimeUnit == "" {
		req.TimeUnit = cfg.Data.TimeUnit
	}

	svc := buildAnalysisService(cfg, confidence)
	ctx, cancel := fitContext(ctx, cfg)
	defer cancel()

	report, err := svc.Run(ctx, req)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

func runCompare(ctx context.Context, datasets []string, unit string, method weibull.FitMethod, queryTimes []float64, jsonOut bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if unit == "" {
		unit = cfg.Data.TimeUnit
	}

	entries := make([]app.ComparisonEntry, 0, len(datasets))
	for _, raw := range datasets {
		label, times, err := parseLabeledDataset(raw)
		if err != nil {
			return err
		}
		entries = append(entries, app.ComparisonEntry{
			Label: label,
			Request: app.AnalysisRequest{
				Failures: times,
				TimeUnit: unit,
				Method:   method,
			},
		})
	}

	svc := app.NewComparisonService(buildAnalysisService(cfg, 0))
	ctx, cancel := fitContext(ctx, cfg)
	defer cancel()

	result, err := svc.Compare(ctx, app.ComparisonRequest{
		Entries:    entries,
		QueryTimes: queryTimes,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(result)
	}
	printComparison(result, unit)
	return nil
}

func runPlan(ctx context.Context, req app.PlanRequest, jsonOut bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if req.Analysis.TimeUnit == "" {
		req.Analysis.TimeUnit = cfg.Data.TimeUnit
	}

	svc := app.NewPlanningService(buildAnalysisService(cfg, 0))
	ctx, cancel := fitContext(ctx, cfg)
	defer cancel()

	plan, err := svc.Plan(ctx, req)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(plan)
	}
	printReport(plan.Analysis)
	printPlan(plan)
	return nil
}

func runSimulate(ctx context.Context, sample testkit.SampleConfig, jsonOut bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if sample.TimeUnit == "" {
		sample.TimeUnit = cfg.Data.TimeUnit
	}

	ds, err := testkit.NewLifetimeGenerator(sample).Generate()
	if err != nil {
		return fmt.Errorf("sample generation failed: %w", err)
	}

	svc := buildAnalysisService(cfg, 0)
	ctx, cancel := fitContext(ctx, cfg)
	defer cancel()

	report, err := svc.Run(ctx, app.AnalysisRequest{
		Failures: ds.Failures(),
		Censored: ds.Censored(),
		TimeUnit: ds.TimeUnit(),
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"sample": sample,
			"report": report,
		})
	}

	fmt.Printf("\n=== SYNTHETIC SAMPLE ===\n")
	fmt.Printf("True parameters: shape %.4f, scale %.2f\n", sample.Shape, sample.Scale)
	fmt.Printf("Drawn: %d failures, %d censored (seed %d)\n", ds.NFailures(), ds.NCensored(), sample.Seed)
	printReport(report)

	recovered := report.Outcome.Params
	fmt.Printf("\n=== RECOVERY ===\n")
	fmt.Printf("Shape: true %.4f, recovered %.4f\n", sample.Shape, recovered.Shape)
	fmt.Printf("Scale: true %.2f, recovered %.2f\n", sample.Scale, recovered.Scale)
	return nil
}

// buildAnalysisService wires the estimation stack from configuration. A
// positive confidence overrides the configured level for this invocation.
func buildAnalysisService(cfg *config.Config, confidence float64) *app.AnalysisService {
	opts := cfg.EstimatorOptions()
	if confidence > 0 {
		opts.ConfidenceLevel = confidence
	}
	minimizer := neldermead.New(cfg.Estimation.Tolerance, cfg.Estimation.MaxIterations)
	engine := estimation.NewEngine(minimizer, opts)
	return app.NewAnalysisService(engine, gof.NewSuite(), cfg.Estimation.MinFailures)
}

// fitContext applies the configured fit deadline when one is set
func fitContext(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Estimation.FitTimeout > 0 {
		return context.WithTimeout(ctx, cfg.Estimation.FitTimeout)
	}
	return context.WithCancel(ctx)
}

// parseTimes parses a comma-separated list of numbers, ignoring blanks
func parseTimes(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid number %q", p))
		}
		out = append(out, v)
	}
	return out, nil
}

// parseLabeledDataset splits a label:t1,t2,... pair
func parseLabeledDataset(raw string) (string, []float64, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", nil, apperr.InvalidInput(fmt.Sprintf("dataset %q must have the form label:t1,t2,...", raw))
	}
	times, err := parseTimes(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("dataset %q: %w", parts[0], err)
	}
	return strings.TrimSpace(parts[0]), times, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printReport(report *weibull.AnalysisReport) {
	params := report.Outcome.Params

	fmt.Printf("\n=== WEIBULL FIT ===\n")
	fmt.Printf("Analysis ID: %s\n", report.AnalysisID)
	fmt.Printf("Dataset: %d failures, %d censored (%s)\n",
		report.Dataset.NFailures, report.Dataset.NCensored, report.Dataset.TimeUnit)
	fmt.Printf("Method: %s, status %s\n", params.Method, report.Outcome.Status)
	if report.Outcome.Fallback != nil {
		log.Printf("warning: %s estimation fell back to %s: %s",
			report.Outcome.Fallback.FromMethod, report.Outcome.Fallback.ToMethod, report.Outcome.Fallback.Reason)
	}
	fmt.Printf("Shape (beta): %.4f  [%.4f, %.4f]\n", params.Shape, params.ShapeCI.Lower, params.ShapeCI.Upper)
	fmt.Printf("Scale (eta):  %.2f  [%.2f, %.2f]\n", params.Scale, params.ScaleCI.Lower, params.ScaleCI.Upper)
	fmt.Printf("Confidence level: %.0f%%\n", params.ConfidenceLevel*100)

	m := report.Metrics
	fmt.Printf("\n=== LIFE METRICS (%s) ===\n", m.TimeUnit)
	fmt.Printf("MTTF:        %.2f\n", m.MTTF)
	fmt.Printf("Median life: %.2f\n", m.MedianLife)
	fmt.Printf("B10 life:    %.2f\n", m.B10Life)
	fmt.Printf("B90 life:    %.2f\n", m.B90Life)
	fmt.Printf("Std dev:     %.2f (CV %.3f)\n", m.StdDev, m.CoefficientOfVariation)

	fmt.Printf("\n=== GOODNESS OF FIT ===\n")
	for _, tr := range report.GoodnessOfFit.Results() {
		printTestResult(tr)
	}
	fmt.Printf("Overall quality: %s\n", report.GoodnessOfFit.Quality)

	fmt.Printf("\n=== INTERPRETATION ===\n")
	fmt.Printf("Failure mode: %s\n", report.Interpretation.FailureMode)
	fmt.Printf("%s\n", report.Interpretation.Behavior)
	fmt.Printf("%s\n", report.Interpretation.Recommendation)

	if len(report.Points) > 0 {
		fmt.Printf("\n=== MODEL EVALUATION ===\n")
		fmt.Printf("%10s %12s %12s %14s\n", "time", "R(t)", "F(t)", "hazard")
		for _, p := range report.Points {
			fmt.Printf("%10.2f %12.6f %12.6f %14.6f\n", p.Time, p.Reliability, p.Unreliability, p.HazardRate)
		}
	}

	fmt.Printf("\nCompleted in %d ms\n", report.ElapsedMS)
}

func printTestResult(tr weibull.TestResult) {
	if !tr.Available {
		fmt.Printf("%-20s unavailable: %s\n", tr.TestName, tr.FailureReason)
		return
	}
	verdict := "FAIL"
	if tr.Passed {
		verdict = "PASS"
	}
	switch tr.TestName {
	case weibull.TestKolmogorovSmirnov:
		fmt.Printf("%-20s %s (statistic %.4f, p-value %.4f)\n", tr.TestName, verdict, tr.Statistic, tr.PValue)
	case weibull.TestRSquared:
		fmt.Printf("%-20s %s (R^2 %.4f)\n", tr.TestName, verdict, tr.Statistic)
	default:
		fmt.Printf("%-20s %s (statistic %.4f, critical %.4f)\n", tr.TestName, verdict, tr.Statistic, tr.Threshold)
	}
}

func printComparison(result *app.ComparisonResult, unit string) {
	fmt.Printf("\n=== COMPARISON (%d datasets, %s) ===\n", len(result.Rows), unit)
	fmt.Printf("%-16s %10s %12s %12s %12s %12s %12s  %s\n",
		"label", "shape", "scale", "mttf", "median", "b10", "b90", "failure mode")
	for _, row := range result.Rows {
		fmt.Printf("%-16s %10.4f %12.2f %12.2f %12.2f %12.2f %12.2f  %s\n",
			row.Label, row.Shape, row.Scale, row.MTTF, row.MedianLife, row.B10Life, row.B90Life, row.FailureMode)
	}
	fmt.Printf("\nCompleted in %d ms\n", result.ElapsedMS)
}

func printPlan(plan *app.PlanReport) {
	m := plan.Maintenance
	fmt.Printf("\n=== MAINTENANCE PLAN ===\n")
	fmt.Printf("Target reliability: %.0f%%\n", m.TargetReliability*100)
	fmt.Printf("Base interval:         %.2f\n", m.BaseInterval)
	fmt.Printf("Conservative interval: %.2f\n", m.ConservativeInterval)
	fmt.Printf("Moderate interval:     %.2f\n", m.ModerateInterval)
	fmt.Printf("Aggressive interval:   %.2f\n", m.AggressiveInterval)
	fmt.Printf("Recommended strategy:  %s\n", m.Recommended)

	if plan.Mission != nil {
		mi := plan.Mission
		verdict := "NOT MET"
		if mi.MeetsRequirement {
			verdict = "MET"
		}
		fmt.Printf("\n=== MISSION ASSESSMENT ===\n")
		fmt.Printf("Mission time: %.2f, required reliability %.2f%%\n", mi.MissionTime, mi.RequiredReliability*100)
		fmt.Printf("Actual reliability: %.4f (margin %+.4f), requirement %s\n", mi.ActualReliability, mi.Margin, verdict)
		fmt.Printf("Reliability decays to the requirement at t = %.2f\n", mi.TimeToRequired)
	}

	if plan.Spares != nil {
		sp := plan.Spares
		fmt.Printf("\n=== SPARE PARTS FORECAST ===\n")
		fmt.Printf("Fleet of %d over a horizon of %.2f\n", sp.FleetSize, sp.TimePeriod)
		fmt.Printf("Per-unit failure probability: %.4f\n", sp.FailureProbability)
		fmt.Printf("Expected failures: %.2f\n", sp.ExpectedFailures)
		fmt.Printf("90%% bounds: [%.0f, %.0f], 95%% bounds: [%.0f, %.0f]\n",
			sp.Bounds90.Lower, sp.Bounds90.Upper, sp.Bounds95.Lower, sp.Bounds95.Upper)
		fmt.Printf("Recommended stock: %d\n", sp.RecommendedStock)
	}

	if plan.Costs != nil {
		c := plan.Costs
		unit := plan.Analysis.Metrics.TimeUnit
		fmt.Printf("\n=== COST COMPARISON ===\n")
		fmt.Printf("Preventive: %.4f per %s (replace every %.2f)\n", c.PreventiveCostRate, unit, c.PreventiveInterval)
		fmt.Printf("Reactive:   %.4f per %s\n", c.ReactiveCostRate, unit)
		fmt.Printf("Savings:    %.4f per %s, recommended strategy: %s\n", c.SavingsRate, unit, c.Recommended)
	}
}
