package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"relifit/domain/dataset"
)

// SampleConfig configures the synthetic lifetime generator
type SampleConfig struct {
	Shape    float64 `json:"shape"`
	Scale    float64 `json:"scale"`
	N        int     `json:"n"`
	CensorAt float64 `json:"censor_at"` // 0 disables type-I censoring
	TimeUnit string  `json:"time_unit"`
	Seed     int64   `json:"seed"`
}

// DefaultSampleConfig returns sensible defaults for synthetic lifetimes
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Shape:    2.0,
		Scale:    1000,
		N:        100,
		CensorAt: 0,
		TimeUnit: "hours",
		Seed:     42,
	}
}

// LifetimeGenerator draws Weibull lifetimes by inverse-CDF sampling
type LifetimeGenerator struct {
	config SampleConfig
	rng    *rand.Rand
}

// NewLifetimeGenerator creates a deterministic generator for the config
func NewLifetimeGenerator(config SampleConfig) *LifetimeGenerator {
	return &LifetimeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate draws N lifetimes from the configured distribution. With
// CensorAt > 0, draws above the cutoff are reported as censored at the
// cutoff (type-I censoring).
func (g *LifetimeGenerator) Generate() (*dataset.Dataset, error) {
	if g.config.Shape <= 0 || g.config.Scale <= 0 {
		return nil, fmt.Errorf("generator needs positive shape and scale, got (%g, %g)", g.config.Shape, g.config.Scale)
	}
	if g.config.N < 1 {
		return nil, fmt.Errorf("generator needs N >= 1, got %d", g.config.N)
	}

	failures := make([]float64, 0, g.config.N)
	var censored []float64

	for i := 0; i < g.config.N; i++ {
		t := g.drawLifetime()
		if g.config.CensorAt > 0 && t > g.config.CensorAt {
			censored = append(censored, g.config.CensorAt)
			continue
		}
		failures = append(failures, t)
	}

	return dataset.New(failures, censored, g.config.TimeUnit)
}

// drawLifetime inverts the Weibull CDF at a uniform draw
func (g *LifetimeGenerator) drawLifetime() float64 {
	u := g.rng.Float64()
	for u == 0 { // inverse CDF maps 0 to an invalid zero lifetime
		u = g.rng.Float64()
	}
	return g.config.Scale * math.Pow(-math.Log(1-u), 1/g.config.Shape)
}
