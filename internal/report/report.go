// Package report implements the reporter/aggregator: the per-population
// best-organism gene-frequency accumulator and the final z-score
// computation, plus the small formatting helpers the bundled CLI sink
// uses to present numbers.
package report

import (
	"math"
	"sort"

	"github.com/dustin/go-humanize"

	"acovea/internal/gene"
)

// TestResult is one row of the final comparison report: a description
// (e.g. "best-of-best", "common", or a baseline's own description), an
// optional detail string (the rendered command line), a fitness, and
// whether it was produced by the evolved chromosome or an external
// baseline.
type TestResult struct {
	Description     string
	Detail          string
	Fitness         float64
	AcoveaGenerated bool
}

// OptionZScore names one distinct option token and its cross-population
// z-score.
type OptionZScore struct {
	Name   string
	ZScore float64
}

// TuningStat carries the supplemental settings-tracker statistic: the
// mean and count of the values chosen for a tuning gene by
// population-best organisms across the run.
type TuningStat struct {
	Name  string
	Mean  float64
	Count int
}

// FinalReport is the complete end-of-run report: comparative fitnesses,
// per-token z-scores, and the tuning-value supplement.
type FinalReport struct {
	Results     []TestResult
	ZScores     []OptionZScore
	TuningStats []TuningStat
}

// Optimistic returns every token whose z-score is >= +1.5.
func (r *FinalReport) Optimistic() []string {
	return filterByThreshold(r.ZScores, 1.5, true)
}

// Pessimistic returns every token whose z-score is <= -1.5.
func (r *FinalReport) Pessimistic() []string {
	return filterByThreshold(r.ZScores, -1.5, false)
}

func filterByThreshold(zscores []OptionZScore, threshold float64, ge bool) []string {
	var out []string
	for _, z := range zscores {
		if ge && z.ZScore >= threshold {
			out = append(out, z.Name)
		}
		if !ge && z.ZScore <= threshold {
			out = append(out, z.Name)
		}
	}
	return out
}

// Accumulator is the report accumulator: for each distinct option token,
// a vector of counts sized numPopulations+1 (the last slot is the
// cross-population total used for z-scoring).
type Accumulator struct {
	numPopulations int
	tokens         []string
	index          map[string]int
	counts         [][]uint64

	tuningValues map[string][]int
}

// NewAccumulator builds the token catalog from template: one per
// enum-choice or simple name, with tuning genes contributing one per
// name, and allocates numPopulations+1 counters per token.
func NewAccumulator(numPopulations int, template gene.Chromosome) *Accumulator {
	a := &Accumulator{
		numPopulations: numPopulations,
		index:          make(map[string]int),
		tuningValues:   make(map[string][]int),
	}
	for _, g := range template {
		for _, tok := range g.TrackTokens() {
			if _, exists := a.index[tok]; exists {
				continue
			}
			a.index[tok] = len(a.tokens)
			a.tokens = append(a.tokens, tok)
		}
	}
	a.counts = make([][]uint64, len(a.tokens))
	for i := range a.counts {
		a.counts[i] = make([]uint64, numPopulations+1)
	}
	return a
}

// RecordBest accumulates the enabled genes of a single population's best
// organism: each enabled gene's active token is credited to that
// population's column and the cross-population total column.
func (a *Accumulator) RecordBest(popIndex int, best gene.Chromosome) {
	for _, g := range best {
		if tok, ok := g.ActiveToken(); ok {
			a.increment(tok, popIndex)
		}
		if val, ok := g.TuningValue(); ok {
			a.tuningValues[g.Name] = append(a.tuningValues[g.Name], val)
		}
	}
}

func (a *Accumulator) increment(tok string, pop int) {
	idx, ok := a.index[tok]
	if !ok {
		return
	}
	a.counts[idx][pop]++
	a.counts[idx][a.numPopulations]++
}

// ZScores computes, for each token, z_i = (total_i - mean)/stddev across
// all tokens' cross-population totals, rounded to 4 significant digits.
// When stddev is zero (e.g. a single-token catalog, or every token
// tied), every z-score is reported as exactly 0 rather than NaN or
// infinity.
func (a *Accumulator) ZScores() []OptionZScore {
	n := len(a.tokens)
	out := make([]OptionZScore, n)
	if n == 0 {
		return out
	}

	totals := make([]float64, n)
	var sum float64
	for i, counts := range a.counts {
		totals[i] = float64(counts[a.numPopulations])
		sum += totals[i]
	}
	mean := sum / float64(n)

	var variance float64
	for _, t := range totals {
		d := t - mean
		variance += d * d
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)

	for i, tok := range a.tokens {
		var z float64
		if stddev != 0 {
			z = roundSignificant((totals[i]-mean)/stddev, 4)
		}
		out[i] = OptionZScore{Name: tok, ZScore: z}
	}
	return out
}

// TuningStats returns the mean and count of the values chosen for every
// tuning gene name that appeared enabled in at least one recorded best
// organism.
func (a *Accumulator) TuningStats() []TuningStat {
	names := make([]string, 0, len(a.tuningValues))
	for name := range a.tuningValues {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TuningStat, 0, len(names))
	for _, name := range names {
		values := a.tuningValues[name]
		var sum int
		for _, v := range values {
			sum += v
		}
		out = append(out, TuningStat{
			Name:  name,
			Mean:  float64(sum) / float64(len(values)),
			Count: len(values),
		})
	}
	return out
}

// TotalEnabledCount sums every token's cross-population total: the sum
// of counts across all tokens equals the total number of enabled genes
// across the population bests.
func (a *Accumulator) TotalEnabledCount() uint64 {
	var total uint64
	for _, counts := range a.counts {
		total += counts[a.numPopulations]
	}
	return total
}

func roundSignificant(x float64, sig int) float64 {
	if x == 0 {
		return 0
	}
	mag := math.Ceil(math.Log10(math.Abs(x)))
	factor := math.Pow(10, float64(sig)-mag)
	return math.Round(x*factor) / factor
}

// FormatFitness renders a fitness value for human consumption with
// go-humanize: a byte count in size mode, otherwise a comma-grouped number
// with four decimal places. BOGUS is rendered as "FAILED".
func FormatFitness(mode string, fitness float64, bogus float64) string {
	if fitness >= bogus {
		return "FAILED"
	}
	if mode == "size" {
		return humanize.Bytes(uint64(fitness))
	}
	return humanize.FormatFloat("#,###.####", fitness)
}
