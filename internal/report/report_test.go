package report

import (
	"testing"

	"acovea/internal/gene"
)

func testTemplate() gene.Chromosome {
	return gene.Chromosome{
		gene.NewSimple("-O2", false),
		gene.NewEnum([]string{"-fast", "-slow"}, false),
		gene.NewTuning("unroll", '=', 1, 8, 1, 1, false),
	}
}

func TestAccumulatorRecordBestCreditsPopulationAndTotal(t *testing.T) {
	a := NewAccumulator(2, testTemplate())

	best0 := testTemplate()
	best0[0].Enabled = true
	a.RecordBest(0, best0)

	best1 := testTemplate()
	best1[0].Enabled = true
	a.RecordBest(1, best1)

	if got := a.TotalEnabledCount(); got != 2 {
		t.Fatalf("expected total enabled count 2, got %d", got)
	}
}

func TestZScoresAreZeroForASingleTokenCatalog(t *testing.T) {
	template := gene.Chromosome{gene.NewSimple("-O2", false)}
	a := NewAccumulator(1, template)
	best := template.Clone()
	best[0].Enabled = true
	a.RecordBest(0, best)

	for _, z := range a.ZScores() {
		if z.ZScore != 0 {
			t.Fatalf("expected z-score 0 for a single-token catalog, got %v for %s", z.ZScore, z.Name)
		}
	}
}

func TestZScoresSumOfCountsMatchesTotalEnabled(t *testing.T) {
	a := NewAccumulator(3, testTemplate())
	for pop := 0; pop < 3; pop++ {
		best := testTemplate()
		best[0].Enabled = true
		best[1].Enabled = true
		a.RecordBest(pop, best)
	}

	if got, want := a.TotalEnabledCount(), uint64(6); got != want {
		t.Fatalf("expected total enabled count %d, got %d", want, got)
	}
}

func TestTuningStatsAveragesChosenValues(t *testing.T) {
	a := NewAccumulator(1, testTemplate())

	first := testTemplate()
	first[2].Enabled = true
	first[2].Value = 2
	a.RecordBest(0, first)

	second := testTemplate()
	second[2].Enabled = true
	second[2].Value = 4
	a.RecordBest(0, second)

	stats := a.TuningStats()
	if len(stats) != 1 {
		t.Fatalf("expected exactly one tuning stat, got %d", len(stats))
	}
	if stats[0].Name != "unroll" || stats[0].Mean != 3 || stats[0].Count != 2 {
		t.Fatalf("unexpected tuning stat: %+v", stats[0])
	}
}

func TestOptimisticAndPessimisticFilterByThreshold(t *testing.T) {
	report := &FinalReport{
		ZScores: []OptionZScore{
			{Name: "-O2", ZScore: 2.0},
			{Name: "-O1", ZScore: 0.1},
			{Name: "-O0", ZScore: -1.6},
		},
	}
	if opt := report.Optimistic(); len(opt) != 1 || opt[0] != "-O2" {
		t.Fatalf("expected only -O2 to be optimistic, got %v", opt)
	}
	if pess := report.Pessimistic(); len(pess) != 1 || pess[0] != "-O0" {
		t.Fatalf("expected only -O0 to be pessimistic, got %v", pess)
	}
}

func TestFormatFitnessRendersFailedForBogus(t *testing.T) {
	if got := FormatFitness("speed", 1e18, 1e18); got != "FAILED" {
		t.Fatalf("expected FAILED for a bogus fitness, got %q", got)
	}
}

func TestFormatFitnessUsesHumanizeForSize(t *testing.T) {
	if got := FormatFitness("size", 2048, 1e18); got == "" {
		t.Fatalf("expected a non-empty humanized byte count")
	}
}
