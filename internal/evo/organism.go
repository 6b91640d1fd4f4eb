// Package evo implements the gene-model-independent evolutionary loop:
// populations of organisms bred and mutated over generations, with
// elitism-and-truncation survivor selection, roulette-wheel parent
// selection, migration between populations, and final report assembly.
package evo

import "acovea/internal/gene"

// Organism pairs one chromosome with its measured fitness. Lower fitness
// is better; runner.Bogus marks a failed trial.
type Organism struct {
	Chromosome gene.Chromosome
	Fitness    float64
}

// Clone returns a deep copy safe to mutate independently of the original.
func (o Organism) Clone() Organism {
	return Organism{Chromosome: o.Chromosome.Clone(), Fitness: o.Fitness}
}

// byFitness sorts organisms ascending, so index 0 is always the best.
type byFitness []Organism

func (b byFitness) Len() int           { return len(b) }
func (b byFitness) Less(i, j int) bool { return b[i].Fitness < b[j].Fitness }
func (b byFitness) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
