package evo

import (
	"sort"

	"acovea/internal/gene"
	"acovea/internal/randsrc"
	"acovea/internal/runner"
	"acovea/internal/target"
)

// Population is one isolated breeding pool of organisms sharing a
// chromosome template. Multiple populations evolve in parallel and
// periodically exchange organisms so no single pool converges alone.
type Population struct {
	Organisms []Organism
}

// Seed creates a population of size organisms with randomized chromosomes
// drawn from the target's template.
func Seed(t *target.Target, size int, rng *randsrc.Source) Population {
	organisms := make([]Organism, size)
	for i := range organisms {
		organisms[i] = Organism{Chromosome: t.RandomChromosome(rng), Fitness: 0}
	}
	return Population{Organisms: organisms}
}

// SortByFitness orders organisms ascending (best first) in place.
func (p *Population) SortByFitness() {
	sort.Stable(byFitness(p.Organisms))
}

// Best returns the organism with the lowest fitness (the earliest one on a
// tie). It scans linearly, so the population need not be sorted.
func (p Population) Best() Organism {
	best := p.Organisms[0]
	for _, o := range p.Organisms[1:] {
		if o.Fitness < best.Fitness {
			best = o
		}
	}
	return best
}

// AverageFitness returns the mean fitness across the population, excluding
// any Bogus entries left by failed trials. Returns runner.Bogus itself if
// every organism is
// Bogus, since there is then no non-Bogus fitness left to average.
func (p Population) AverageFitness() float64 {
	total := 0.0
	count := 0
	for _, o := range p.Organisms {
		if o.Fitness >= runner.Bogus {
			continue
		}
		total += o.Fitness
		count++
	}
	if count == 0 {
		return runner.Bogus
	}
	return total / float64(count)
}

// maxParentResamples bounds the distinct-second-parent retries before
// Advance falls back to the next survivor slot outright.
const maxParentResamples = 10

// Advance produces the next generation: the top eliteCount organisms carry
// over unmutated, and the remaining slots are filled one at a time from a
// parent drawn from the truncated survivor pool. With probability
// crossoverRate the child is bred from that parent and a second, distinct
// survivor; otherwise the child is a clone of the single parent. Either
// way the child is then mutated at mutationRate.
func (p Population) Advance(t *target.Target, scaler Scaler, selector Selector, eliteCount int, truncationFraction, mutationRate, crossoverRate float64, rng *randsrc.Source) (Population, error) {
	sorted := make([]Organism, len(p.Organisms))
	copy(sorted, p.Organisms)
	sort.Stable(byFitness(sorted))

	next := make([]Organism, 0, len(sorted))
	next = append(next, Elite(sorted, eliteCount)...)

	survivors := Truncate(sorted, truncationFraction)
	fitness := make([]float64, len(survivors))
	for i, o := range survivors {
		fitness[i] = o.Fitness
	}
	weights := scaler.Weights(fitness)

	for len(next) < len(sorted) {
		idxA, err := selector.PickParentIndex(rng, weights)
		if err != nil {
			return Population{}, err
		}
		parentA := survivors[idxA]

		var childChromosome gene.Chromosome
		if len(survivors) > 1 && rng.Bool(crossoverRate) {
			idxB, err := selector.PickParentIndex(rng, weights)
			if err != nil {
				return Population{}, err
			}
			for attempt := 0; attempt < maxParentResamples && idxB == idxA; attempt++ {
				idxB, err = selector.PickParentIndex(rng, weights)
				if err != nil {
					return Population{}, err
				}
			}
			if idxB == idxA {
				idxB = (idxA + 1) % len(survivors)
			}
			child, err := t.Breed(parentA.Chromosome, survivors[idxB].Chromosome, rng)
			if err != nil {
				return Population{}, err
			}
			childChromosome = child
		} else {
			childChromosome = parentA.Chromosome.Clone()
		}

		t.Mutate(childChromosome, rng, mutationRate)
		next = append(next, Organism{Chromosome: childChromosome, Fitness: 0})
	}
	return Population{Organisms: next}, nil
}

// CommonGenes returns the logical AND of every organism's enabled bits,
// the option set common to the whole population, for the final report's
// "common options" row.
func (p Population) CommonGenes(template gene.Chromosome) gene.Chromosome {
	if len(p.Organisms) == 0 {
		return gene.EmptyFrom(template)
	}
	common := p.Organisms[0].Chromosome.Clone()
	for _, o := range p.Organisms[1:] {
		common = common.Intersect(o.Chromosome)
	}
	return common
}
