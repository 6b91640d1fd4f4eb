package evo

import "testing"

func TestClampEnforcesMinimums(t *testing.T) {
	h := Hyperparameters{}.Clamp()
	if h.PopulationSize != 2 {
		t.Fatalf("expected PopulationSize floor of 2, got %d", h.PopulationSize)
	}
	if h.NumPopulations != 1 {
		t.Fatalf("expected NumPopulations floor of 1, got %d", h.NumPopulations)
	}
	if h.Generations != 1 {
		t.Fatalf("expected Generations floor of 1, got %d", h.Generations)
	}
	if h.MigrationInterval != 1 {
		t.Fatalf("expected MigrationInterval floor of 1, got %d", h.MigrationInterval)
	}
	if h.TruncationFraction != 0 {
		t.Fatalf("expected zero-value TruncationFraction to pass through as 0, got %v", h.TruncationFraction)
	}
	if h.MutationRate != 0 {
		t.Fatalf("expected zero-value MutationRate to pass through as 0, got %v", h.MutationRate)
	}
	if h.CrossoverRate != 0 {
		t.Fatalf("expected zero-value CrossoverRate to pass through as 0, got %v", h.CrossoverRate)
	}
}

func TestClampCapsEliteCountToPopulationSize(t *testing.T) {
	h := Hyperparameters{PopulationSize: 4, EliteCount: 10}.Clamp()
	if h.EliteCount != 4 {
		t.Fatalf("expected EliteCount capped to PopulationSize 4, got %d", h.EliteCount)
	}
}

func TestClampPassesThroughZeroRates(t *testing.T) {
	h := Hyperparameters{PopulationSize: 4, TruncationFraction: 0, MutationRate: 0, CrossoverRate: 0}.Clamp()
	if h.TruncationFraction != 0 {
		t.Fatalf("expected TruncationFraction=0 to remain 0 (legal, floors to the single elite via Truncate), got %v", h.TruncationFraction)
	}
	if h.MutationRate != 0 {
		t.Fatalf("expected MutationRate=0 to remain 0 (legal, no gene modified), got %v", h.MutationRate)
	}
	if h.CrossoverRate != 0 {
		t.Fatalf("expected CrossoverRate=0 to remain 0 (legal, every child a single-parent clone), got %v", h.CrossoverRate)
	}
}

func TestClampBoundsOutOfRangeRates(t *testing.T) {
	h := Hyperparameters{PopulationSize: 4, TruncationFraction: 1.5, MutationRate: -1, CrossoverRate: 2}.Clamp()
	if h.TruncationFraction != 1 {
		t.Fatalf("expected out-of-range TruncationFraction clamped to its boundary 1, got %v", h.TruncationFraction)
	}
	if h.MutationRate != 0 {
		t.Fatalf("expected out-of-range MutationRate clamped to its boundary 0, got %v", h.MutationRate)
	}
	if h.CrossoverRate != 1 {
		t.Fatalf("expected out-of-range CrossoverRate clamped to its boundary 1, got %v", h.CrossoverRate)
	}
}

func TestClampCapsMutationRateAt095(t *testing.T) {
	h := Hyperparameters{PopulationSize: 4, MutationRate: 1}.Clamp()
	if h.MutationRate != 0.95 {
		t.Fatalf("expected MutationRate capped at 0.95, got %v", h.MutationRate)
	}
}

func TestClampPreservesValidValues(t *testing.T) {
	h := Hyperparameters{
		PopulationSize:     20,
		NumPopulations:     3,
		Generations:        50,
		EliteCount:         2,
		TruncationFraction: 0.3,
		MutationRate:       0.02,
		CrossoverRate:      0.8,
		MigrantCount:       1,
		MigrationInterval:  5,
	}.Clamp()
	if h.PopulationSize != 20 || h.NumPopulations != 3 || h.Generations != 50 {
		t.Fatalf("expected valid values to pass through unchanged, got %+v", h)
	}
	if h.TruncationFraction != 0.3 || h.MutationRate != 0.02 || h.CrossoverRate != 0.8 {
		t.Fatalf("expected valid rates to pass through unchanged, got %+v", h)
	}
}
