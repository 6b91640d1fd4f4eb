package evo

import (
	"testing"

	"acovea/internal/randsrc"
)

func TestRouletteSelectorErrorsOnLengthMismatch(t *testing.T) {
	_, err := RouletteSelector{}.PickParent(randsrc.New(1), []Organism{{}}, nil)
	if err == nil {
		t.Fatalf("expected an error for mismatched organisms/weights lengths")
	}
}

func TestRouletteSelectorFallsBackToUniformOnZeroWeight(t *testing.T) {
	rng := randsrc.New(1)
	organisms := []Organism{{Fitness: 1}, {Fitness: 2}}
	weights := []float64{0, 0}
	for i := 0; i < 20; i++ {
		if _, err := (RouletteSelector{}).PickParent(rng, organisms, weights); err != nil {
			t.Fatalf("PickParent: %v", err)
		}
	}
}

func TestRouletteSelectorPrefersHeavierWeight(t *testing.T) {
	rng := randsrc.New(7)
	organisms := []Organism{{Fitness: 1}, {Fitness: 2}}
	weights := []float64{0, 100}
	for i := 0; i < 20; i++ {
		picked, err := RouletteSelector{}.PickParent(rng, organisms, weights)
		if err != nil {
			t.Fatalf("PickParent: %v", err)
		}
		if picked.Fitness != 2 {
			t.Fatalf("expected the zero-weight organism to never be picked, got fitness %v", picked.Fitness)
		}
	}
}

func TestEliteClonesAndCaps(t *testing.T) {
	sorted := []Organism{{Fitness: 1}, {Fitness: 2}, {Fitness: 3}}
	elite := Elite(sorted, 5)
	if len(elite) != 3 {
		t.Fatalf("expected elite count capped to population size 3, got %d", len(elite))
	}
	elite = Elite(sorted, 2)
	if len(elite) != 2 || elite[0].Fitness != 1 || elite[1].Fitness != 2 {
		t.Fatalf("unexpected elite selection: %+v", elite)
	}
}

func TestTruncateKeepsAtLeastOne(t *testing.T) {
	sorted := []Organism{{Fitness: 1}, {Fitness: 2}, {Fitness: 3}, {Fitness: 4}}
	survivors := Truncate(sorted, 0.01)
	if len(survivors) != 1 {
		t.Fatalf("expected truncation to keep at least one survivor, got %d", len(survivors))
	}
	survivors = Truncate(sorted, 0.5)
	if len(survivors) != 2 {
		t.Fatalf("expected 50%% truncation to keep 2 of 4, got %d", len(survivors))
	}
}

func TestTruncateEmptyInput(t *testing.T) {
	if survivors := Truncate(nil, 0.5); survivors != nil {
		t.Fatalf("expected nil survivors for empty input, got %v", survivors)
	}
}
