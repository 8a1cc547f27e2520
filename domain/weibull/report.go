package weibull

import (
	"relifit/domain/core"
)

// ============================================================================
// LIFE METRICS
// ============================================================================

// MetricsBundle names every derived life metric of a fitted model.
// All times are in the dataset's unit. Pure function of FittedParameters.
type MetricsBundle struct {
	MTTF                   float64 `json:"mttf"`
	MedianLife             float64 `json:"median_life"`
	CharacteristicLife     float64 `json:"characteristic_life"`
	B10Life                float64 `json:"b10_life"`
	B50Life                float64 `json:"b50_life"`
	B90Life                float64 `json:"b90_life"`
	Mode                   float64 `json:"mode"`
	Variance               float64 `json:"variance"`
	StdDev                 float64 `json:"std_dev"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	TimeUnit               string  `json:"time_unit"`
}

// PointEvaluation is the reliability state at one query time
type PointEvaluation struct {
	Time          float64 `json:"time"`
	Reliability   float64 `json:"reliability"`
	Unreliability float64 `json:"unreliability"`
	PDF           float64 `json:"pdf"`
	HazardRate    float64 `json:"hazard_rate"`
}

// ============================================================================
// GOODNESS OF FIT
// ============================================================================

// TestName identifies a goodness-of-fit gate
type TestName string

const (
	TestAndersonDarling   TestName = "anderson_darling"
	TestKolmogorovSmirnov TestName = "kolmogorov_smirnov"
	TestRSquared          TestName = "r_squared"
)

// FitQuality labels how well the fitted model explains the sample
type FitQuality string

const (
	QualityExcellent  FitQuality = "Excellent"
	QualityGood       FitQuality = "Good"
	QualityAcceptable FitQuality = "Acceptable"
	QualityPoor       FitQuality = "Poor"
	QualityUnknown    FitQuality = "Unknown"
)

// TestResult is the outcome of one goodness-of-fit test.
// Available=false marks a test that could not be computed; Statistic and
// Passed are meaningless in that case and FailureReason says why.
type TestResult struct {
	TestName       TestName `json:"test_name"`
	Statistic      float64  `json:"statistic"`
	Threshold      float64  `json:"threshold,omitempty"` // pass boundary: critical value or significance level
	PValue         float64  `json:"p_value,omitempty"`   // for p-value-based tests
	Passed         bool     `json:"passed"`
	Available      bool     `json:"available"`
	Interpretation string   `json:"interpretation,omitempty"`
	FailureReason  string   `json:"failure_reason,omitempty"`
}

// UnavailableTestResult marks a gate that could not run
func UnavailableTestResult(name TestName, reason string) TestResult {
	return TestResult{
		TestName:      name,
		Available:     false,
		FailureReason: reason,
	}
}

// GofReport aggregates the three goodness-of-fit gates
type GofReport struct {
	AndersonDarling   TestResult `json:"anderson_darling"`
	KolmogorovSmirnov TestResult `json:"kolmogorov_smirnov"`
	RSquared          TestResult `json:"r_squared"`
	Quality           FitQuality `json:"quality"`
}

// Results returns the gates in reporting order
func (r GofReport) Results() []TestResult {
	return []TestResult{r.AndersonDarling, r.KolmogorovSmirnov, r.RSquared}
}

// AllPassed reports whether every available gate passed.
// A report with no available gates did not pass anything.
func (r GofReport) AllPassed() bool {
	any := false
	for _, tr := range r.Results() {
		if !tr.Available {
			continue
		}
		if !tr.Passed {
			return false
		}
		any = true
	}
	return any
}

// ============================================================================
// INTERPRETATION
// ============================================================================

// FailureMode classifies the hazard-rate trend implied by the shape
type FailureMode string

const (
	ModeInfantMortality FailureMode = "infant_mortality"
	ModeUsefulLife      FailureMode = "useful_life"
	ModeWearOut         FailureMode = "wear_out"
)

// Interpretation maps a fitted shape onto engineering guidance
type Interpretation struct {
	Shape          float64     `json:"shape"`
	FailureMode    FailureMode `json:"failure_mode"`
	Behavior       string      `json:"behavior"`
	Recommendation string      `json:"recommendation"`
}

// ============================================================================
// MISSION, SPARES, COST, MAINTENANCE
// ============================================================================

// MissionAssessment evaluates a reliability requirement at a mission time
type MissionAssessment struct {
	MissionTime         float64 `json:"mission_time"`
	RequiredReliability float64 `json:"required_reliability"`
	ActualReliability   float64 `json:"actual_reliability"`
	MeetsRequirement    bool    `json:"meets_requirement"`
	Margin              float64 `json:"margin"`
	TimeToRequired      float64 `json:"time_to_required"` // time at which reliability decays to the requirement
}

// SparePartsForecast sizes spare stock for a fleet over a period
type SparePartsForecast struct {
	FleetSize          int                `json:"fleet_size"`
	TimePeriod         float64            `json:"time_period"`
	FailureProbability float64            `json:"failure_probability"`
	ExpectedFailures   float64            `json:"expected_failures"`
	Bounds90           ConfidenceInterval `json:"bounds_90"`
	Bounds95           ConfidenceInterval `json:"bounds_95"`
	RecommendedStock   int                `json:"recommended_stock"`
}

// CostStrategy names a maintenance cost policy
type CostStrategy string

const (
	CostPreventive CostStrategy = "preventive"
	CostReactive   CostStrategy = "reactive"
)

// CostComparison compares preventive vs reactive maintenance cost rates.
// Rates are cost per time unit of the fitted dataset.
type CostComparison struct {
	PreventiveInterval float64      `json:"preventive_interval"`
	PreventiveCostRate float64      `json:"preventive_cost_rate"`
	ReactiveCostRate   float64      `json:"reactive_cost_rate"`
	SavingsRate        float64      `json:"savings_rate"`
	Recommended        CostStrategy `json:"recommended_strategy"`
}

// MaintenanceStrategy names a replacement-interval policy
type MaintenanceStrategy string

const (
	StrategyConservative MaintenanceStrategy = "conservative"
	StrategyModerate     MaintenanceStrategy = "moderate"
	StrategyAggressive   MaintenanceStrategy = "aggressive"
)

// MaintenancePlan derives replacement intervals for a target reliability
type MaintenancePlan struct {
	TargetReliability    float64             `json:"target_reliability"`
	BaseInterval         float64             `json:"base_interval"`
	ConservativeInterval float64             `json:"conservative_interval"`
	ModerateInterval     float64             `json:"moderate_interval"`
	AggressiveInterval   float64             `json:"aggressive_interval"`
	Recommended          MaintenanceStrategy `json:"recommended_strategy"`
}

// ============================================================================
// ANALYSIS REPORT
// ============================================================================

// DatasetDigest carries the identifying facts of the analyzed dataset
type DatasetDigest struct {
	NFailures   int                     `json:"n_failures"`
	NCensored   int                     `json:"n_censored"`
	TimeUnit    string                  `json:"time_unit"`
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
}

// AnalysisReport is the complete outcome of one analysis run: the fit, the
// derived metrics, the goodness-of-fit gates and the interpretation, plus
// optional point evaluations at caller-supplied query times.
type AnalysisReport struct {
	AnalysisID     core.AnalysisID   `json:"analysis_id"`
	Dataset        DatasetDigest     `json:"dataset"`
	Outcome        FitOutcome        `json:"outcome"`
	Metrics        MetricsBundle     `json:"metrics"`
	GoodnessOfFit  GofReport         `json:"goodness_of_fit"`
	Interpretation Interpretation    `json:"interpretation"`
	Points         []PointEvaluation `json:"points,omitempty"`
	ElapsedMS      int64             `json:"elapsed_ms"`
	ComputedAt     core.Timestamp    `json:"computed_at"`
}
