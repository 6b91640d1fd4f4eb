package evo

import (
	"fmt"

	"acovea/internal/randsrc"
)

// Selector chooses one parent organism from a scaled population via
// weighted roulette-wheel sampling over a Scaler's output.
type Selector interface {
	Name() string
	PickParent(rng *randsrc.Source, organisms []Organism, weights []float64) (Organism, error)
	PickParentIndex(rng *randsrc.Source, weights []float64) (int, error)
}

// RouletteSelector samples proportionally to weight: an organism with
// twice the weight of another is twice as likely to be picked. A
// zero-total weight vector (every organism tied at the population worst)
// falls back to uniform sampling.
type RouletteSelector struct{}

func (RouletteSelector) Name() string { return "roulette" }

func (RouletteSelector) PickParent(rng *randsrc.Source, organisms []Organism, weights []float64) (Organism, error) {
	if len(organisms) == 0 || len(organisms) != len(weights) {
		return Organism{}, fmt.Errorf("roulette selection: %d organisms, %d weights", len(organisms), len(weights))
	}
	idx, err := RouletteSelector{}.PickParentIndex(rng, weights)
	if err != nil {
		return Organism{}, err
	}
	return organisms[idx], nil
}

// PickParentIndex samples an index into weights proportionally to weight,
// letting callers that need parent identity (distinct-parent resampling
// for crossover) avoid comparing Organism values directly.
func (RouletteSelector) PickParentIndex(rng *randsrc.Source, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("roulette selection: no weights")
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights)), nil
	}
	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// Elite returns the eliteCount best organisms of a fitness-ascending-sorted
// slice, cloned so callers may mutate them freely. The best organisms of a
// generation survive unmutated into the next.
func Elite(sorted []Organism, eliteCount int) []Organism {
	if eliteCount > len(sorted) {
		eliteCount = len(sorted)
	}
	elite := make([]Organism, eliteCount)
	for i := 0; i < eliteCount; i++ {
		elite[i] = sorted[i].Clone()
	}
	return elite
}

// Truncate returns the prefix of a fitness-ascending-sorted slice
// surviving as breeding stock: only the top truncationFraction of the
// population may become parents.
func Truncate(sorted []Organism, truncationFraction float64) []Organism {
	n := len(sorted)
	if n == 0 {
		return nil
	}
	keep := int(float64(n) * truncationFraction)
	if keep < 1 {
		keep = 1
	}
	if keep > n {
		keep = n
	}
	return sorted[:keep]
}
