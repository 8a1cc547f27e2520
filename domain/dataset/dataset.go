package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"relifit/domain/core"
)

// MinFailures is the hard minimum number of observed failures for any fit.
const MinFailures = 3

// DefaultTimeUnit labels datasets whose caller did not name a unit.
const DefaultTimeUnit = "hours"

// Quality screening thresholds. Crossing one attaches a warning to the fit
// result; it never blocks the analysis.
const (
	FewFailuresThreshold  = 10
	HighCensoringFraction = 0.5
)

// ============================================================================
// DATASET
// ============================================================================

// Dataset is an immutable partition of observed times into failures and
// right-censored values, tagged with a time unit. Construction validates and
// copies the inputs; accessors return copies, so callers never share memory
// with a Dataset.
type Dataset struct {
	failures []float64
	censored []float64
	timeUnit string
	summary  Summary
}

// Summary holds descriptive statistics over the failure times.
type Summary struct {
	NFailures int     `json:"n_failures"`
	NCensored int     `json:"n_censored"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"std_dev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// New validates and constructs a Dataset.
// Failure times must be positive and finite; censored times non-negative and
// finite; at least MinFailures failures are required for any fit downstream.
func New(failures, censored []float64, timeUnit string) (*Dataset, error) {
	if len(failures) < MinFailures {
		return nil, core.NewInsufficientDataError(len(failures), MinFailures)
	}
	for _, t := range failures {
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
			return nil, core.NewValidationError("failures", fmt.Sprintf("failure times must be positive and finite, got %g", t))
		}
	}
	for _, t := range censored {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return nil, core.NewValidationError("censored", fmt.Sprintf("censored times must be non-negative and finite, got %g", t))
		}
	}
	if timeUnit == "" {
		timeUnit = DefaultTimeUnit
	}

	ds := &Dataset{
		failures: append([]float64(nil), failures...),
		censored: append([]float64(nil), censored...),
		timeUnit: timeUnit,
	}

	summary, err := summarize(ds.failures, len(censored))
	if err != nil {
		return nil, core.NewValidationError("failures", err.Error())
	}
	ds.summary = summary
	return ds, nil
}

func summarize(failures []float64, nCensored int) (Summary, error) {
	mean, err := stats.Mean(failures)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(failures)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviation(failures)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(failures)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(failures)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		NFailures: len(failures),
		NCensored: nCensored,
		Mean:      mean,
		Median:    median,
		StdDev:    stdDev,
		Min:       min,
		Max:       max,
	}, nil
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Failures returns a copy of the failure times in input order.
func (d *Dataset) Failures() []float64 {
	return append([]float64(nil), d.failures...)
}

// SortedFailures returns the failure times in ascending order.
func (d *Dataset) SortedFailures() []float64 {
	out := d.Failures()
	sort.Float64s(out)
	return out
}

// Censored returns a copy of the censored times in input order.
func (d *Dataset) Censored() []float64 {
	return append([]float64(nil), d.censored...)
}

// TimeUnit returns the unit label for all times in the dataset.
func (d *Dataset) TimeUnit() string {
	return d.timeUnit
}

// NFailures returns the number of observed failures.
func (d *Dataset) NFailures() int {
	return len(d.failures)
}

// NCensored returns the number of right-censored observations.
func (d *Dataset) NCensored() int {
	return len(d.censored)
}

// Summary returns descriptive statistics over the failure times.
func (d *Dataset) Summary() Summary {
	return d.summary
}

// CensoringRate returns the censored fraction of all observations.
func (d *Dataset) CensoringRate() float64 {
	total := len(d.failures) + len(d.censored)
	if total == 0 {
		return 0
	}
	return float64(len(d.censored)) / float64(total)
}

// FewFailures reports whether the failure count is below the screening
// threshold for a trustworthy fit.
func (d *Dataset) FewFailures() bool {
	return len(d.failures) < FewFailuresThreshold
}

// HighCensoring reports whether censored observations dominate the dataset.
func (d *Dataset) HighCensoring() bool {
	return d.CensoringRate() > HighCensoringFraction
}

// Fingerprint returns a stable content fingerprint for the dataset.
func (d *Dataset) Fingerprint() core.DatasetFingerprint {
	return core.ComputeDatasetFingerprint(d.failures, d.censored, d.timeUnit)
}
