package props

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Simulate runs a seeded Monte Carlo projection of one stat category
// against a line. The projected mean blends recent form with the full
// sample, and the sample deviation is inflated to reflect postseason
// volatility. Identical inputs and config reproduce identical output.
func Simulate(values []float64, category models.StatCategory, line float64, cfg SimulationConfig) (models.PropSimulation, error) {
	if err := cfg.Validate(); err != nil {
		return models.PropSimulation{}, err
	}
	if len(values) < cfg.MinGames {
		return models.PropSimulation{}, fmt.Errorf("simulation for %s needs %d games, have %d: %w",
			category, cfg.MinGames, len(values), models.ErrInsufficientData)
	}

	overallMean := stat.Mean(values, nil)
	recent := values
	if len(values) > cfg.RecentWindow {
		recent = values[len(values)-cfg.RecentWindow:]
	}
	recentMean := stat.Mean(recent, nil)

	projMean := cfg.RecentBlend*recentMean + (1-cfg.RecentBlend)*overallMean
	projStd := stat.StdDev(values, nil) * cfg.VarianceInflation

	rng := rand.New(rand.NewSource(cfg.Seed))
	sims := make([]float64, cfg.Iterations)
	over := 0
	for i := range sims {
		v := rng.NormFloat64()*projStd + projMean
		if v < 0 {
			v = 0
		}
		sims[i] = v
		if v > line {
			over++
		}
	}
	sort.Float64s(sims)

	overProb := float64(over) / float64(cfg.Iterations)
	return models.PropSimulation{
		Category:         category,
		Line:             line,
		ProjectedMean:    projMean,
		ProjectedStdDev:  projStd,
		SimMean:          stat.Mean(sims, nil),
		SimMedian:        median(sims),
		CI80Low:          percentile(sims, 0.10),
		CI80High:         percentile(sims, 0.90),
		OverProbability:  overProb,
		UnderProbability: 1 - overProb,
		Recommendation:   recommend(overProb, cfg),
		Iterations:       cfg.Iterations,
	}, nil
}

// percentile reads the p-quantile from an already sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// recommend maps the simulated over probability to a betting call using
// the configured strong and lean thresholds, mirrored for unders.
func recommend(overProb float64, cfg SimulationConfig) models.PropCall {
	switch {
	case overProb >= cfg.StrongThreshold:
		return models.CallStrongOver
	case overProb >= cfg.LeanThreshold:
		return models.CallLeanOver
	case overProb <= 1-cfg.StrongThreshold:
		return models.CallStrongUnder
	case overProb <= 1-cfg.LeanThreshold:
		return models.CallLeanUnder
	default:
		return models.CallNoEdge
	}
}
