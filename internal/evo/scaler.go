package evo

import "math"

// Scaler converts raw (minimize-is-better) fitness values into
// non-negative selection weights (maximize-is-better) for roulette-wheel
// sampling, adjusting scores between measurement and selection so that
// null or sigma-scaled shaping can be swapped in without touching the
// selection code itself.
type Scaler interface {
	Name() string
	Weights(fitness []float64) []float64
}

// NullScaler inverts raw fitness around the worst-in-population value with
// no further shaping: weight_i = worst - fitness_i. Every organism gets a
// nonzero chance except those tied at the worst value, which floor at zero.
type NullScaler struct{}

func (NullScaler) Name() string { return "null" }

func (NullScaler) Weights(fitness []float64) []float64 {
	if len(fitness) == 0 {
		return nil
	}
	worst := fitness[0]
	for _, f := range fitness[1:] {
		if f > worst {
			worst = f
		}
	}
	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		weights[i] = worst - f
	}
	return weights
}

// SigmaScaler applies classic sigma (standard-deviation) scaling
// (Goldberg): weight_i = 1 + (mean - fitness_i) / (2*stddev), floored at a
// small positive epsilon so every organism retains some chance of
// selection even many standard deviations from the mean. When the
// population has zero variance every organism gets an equal weight.
type SigmaScaler struct{}

func (SigmaScaler) Name() string { return "sigma" }

func (SigmaScaler) Weights(fitness []float64) []float64 {
	n := len(fitness)
	if n == 0 {
		return nil
	}
	mean := 0.0
	for _, f := range fitness {
		mean += f
	}
	mean /= float64(n)

	variance := 0.0
	for _, f := range fitness {
		d := f - mean
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)

	weights := make([]float64, n)
	if stddev == 0 {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}
	const epsilon = 0.05
	for i, f := range fitness {
		w := 1 + (mean-f)/(2*stddev)
		if w < epsilon {
			w = epsilon
		}
		weights[i] = w
	}
	return weights
}
