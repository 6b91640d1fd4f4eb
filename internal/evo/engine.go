package evo

import (
	"context"
	"fmt"
	"strings"

	"acovea/internal/acoveaerr"
	"acovea/internal/gene"
	"acovea/internal/randsrc"
	"acovea/internal/report"
	"acovea/internal/runner"
	"acovea/internal/sink"
	"acovea/internal/target"
)

// Engine drives one full evolutionary run against a single compilation
// target: seeding populations, evaluating every organism through a
// Runner, advancing generations, migrating between populations, and
// assembling the final report.
type Engine struct {
	Target *target.Target
	Runner *runner.Runner
	Sink   sink.Sink
	Hyper  Hyperparameters
	Scaler Scaler

	InputPath string

	rng *randsrc.Source
}

// New constructs an Engine with clamped hyperparameters and a seeded
// deterministic RNG. sigmaScaling selects SigmaScaler over the NullScaler
// default.
func New(t *target.Target, r *runner.Runner, s sink.Sink, hyper Hyperparameters, inputPath string, sigmaScaling bool) *Engine {
	var scaler Scaler = NullScaler{}
	if sigmaScaling {
		scaler = SigmaScaler{}
	}
	return &Engine{
		Target:    t,
		Runner:    r,
		Sink:      s,
		Hyper:     hyper.Clamp(),
		Scaler:    scaler,
		InputPath: inputPath,
		rng:       randsrc.New(hyper.Seed),
	}
}

// Run executes the full generation loop and returns the final report.
// It stops early and returns acoveaerr.ErrAborted if the sink signals
// abort at a generation boundary.
func (e *Engine) Run(ctx context.Context) (report.FinalReport, error) {
	populations := make([]Population, e.Hyper.NumPopulations)
	for i := range populations {
		populations[i] = Seed(e.Target, e.Hyper.PopulationSize, e.rng)
	}

	accumulator := report.NewAccumulator(e.Hyper.NumPopulations, e.Target.Template())
	trend := report.NewTrend()
	migrator := RandomPoolMigrator{MigrantCount: e.Hyper.MigrantCount}
	selector := RouletteSelector{}

	for gen := 0; gen < e.Hyper.Generations; gen++ {
		e.Sink.PingGenerationBegin(gen)

		var genFitnessTotal float64
		var genOrganismCount int
		for popIdx := range populations {
			e.Sink.PingPopulationBegin(popIdx)
			e.Runner.ResetMemo()
			if err := e.evaluatePopulation(ctx, &populations[popIdx]); err != nil {
				e.Sink.PingPopulationEnd(popIdx)
				e.Sink.PingGenerationEnd(gen)
				return report.FinalReport{}, err
			}
			populations[popIdx].SortByFitness()
			accumulator.RecordBest(popIdx, populations[popIdx].Best().Chromosome)

			for _, o := range populations[popIdx].Organisms {
				if o.Fitness >= runner.Bogus {
					continue
				}
				genFitnessTotal += o.Fitness
				genOrganismCount++
			}
			e.Sink.PingPopulationEnd(popIdx)
		}

		avgFitness := runner.Bogus
		if genOrganismCount > 0 {
			avgFitness = genFitnessTotal / float64(genOrganismCount)
		}
		trend.Add(avgFitness)
		e.Sink.ReportGeneration(gen, avgFitness)

		if gen%e.Hyper.MigrationInterval == 0 {
			migrator.Migrate(populations, e.rng)
		}

		if e.Sink.Aborted() {
			e.Sink.PingGenerationEnd(gen)
			final := e.finalReport(ctx, populations, accumulator)
			e.Sink.ReportFinal(final.Results, final.ZScores)
			return final, acoveaerr.ErrAborted
		}

		if gen < e.Hyper.Generations-1 {
			for popIdx := range populations {
				next, err := populations[popIdx].Advance(e.Target, e.Scaler, selector, e.Hyper.EliteCount, e.Hyper.TruncationFraction, e.Hyper.MutationRate, e.Hyper.CrossoverRate, e.rng)
				if err != nil {
					e.Sink.PingGenerationEnd(gen)
					return report.FinalReport{}, fmt.Errorf("advancing population %d: %w", popIdx, err)
				}
				populations[popIdx] = next
			}
		}

		e.Sink.PingGenerationEnd(gen)
	}

	final := e.finalReport(ctx, populations, accumulator)
	e.Sink.ReportFinal(final.Results, final.ZScores)
	e.Sink.RunComplete()
	return final, nil
}

func (e *Engine) evaluatePopulation(ctx context.Context, pop *Population) error {
	for i := range pop.Organisms {
		e.Sink.PingFitnessTestBegin(i)
		fitness, err := e.evaluateChromosome(ctx, pop.Organisms[i].Chromosome)
		if err != nil {
			e.Sink.PingFitnessTestEnd(i)
			return err
		}
		pop.Organisms[i].Fitness = fitness
		e.Sink.PingFitnessTestEnd(i)
	}
	return nil
}

func (e *Engine) finalReport(ctx context.Context, populations []Population, accumulator *report.Accumulator) report.FinalReport {
	results := e.compareResults(ctx, populations)
	return report.FinalReport{
		Results:     results,
		ZScores:     accumulator.ZScores(),
		TuningStats: accumulator.TuningStats(),
	}
}

func (e *Engine) compareResults(ctx context.Context, populations []Population) []report.TestResult {
	var results []report.TestResult
	e.Runner.ResetMemo()

	best := populations[0].Best()
	for _, p := range populations[1:] {
		if candidate := p.Best(); candidate.Fitness < best.Fitness {
			best = candidate
		}
	}
	if fitness, err := e.evaluateChromosome(ctx, best.Chromosome); err == nil {
		results = append(results, report.TestResult{
			Description:     "Best evolved options",
			Detail:          renderDetail(best.Chromosome),
			Fitness:         fitness,
			AcoveaGenerated: true,
		})
	}

	template := e.Target.Template()
	common := populations[0].CommonGenes(template)
	for _, p := range populations[1:] {
		common = common.Intersect(p.CommonGenes(template))
	}
	if fitness, err := e.evaluateChromosome(ctx, common); err == nil {
		results = append(results, report.TestResult{
			Description:     "Options common to every population",
			Detail:          renderDetail(common),
			Fitness:         fitness,
			AcoveaGenerated: true,
		})
	}

	for i := range e.Target.BaselineCommandTemplates() {
		output := e.Runner.NewArtifactPath()
		named := e.Target.BaselineCommands(e.InputPath, output)
		baseline := named[i]
		fitness, err := e.Runner.Evaluate(ctx, baseline.Argv, output, e.Hyper.Mode, e.Sink)
		if err != nil {
			continue
		}
		results = append(results, report.TestResult{
			Description:     baseline.Description,
			Detail:          "",
			Fitness:         fitness,
			AcoveaGenerated: false,
		})
	}

	return results
}

func (e *Engine) evaluateChromosome(ctx context.Context, c gene.Chromosome) (float64, error) {
	output := e.Runner.NewArtifactPath()
	argv := e.Target.PrimeCommand(e.InputPath, output, c)
	return e.Runner.Evaluate(ctx, argv, output, e.Hyper.Mode, e.Sink)
}

func renderDetail(c gene.Chromosome) string {
	return strings.Join(c.RenderTokens(), " ")
}
