// Package sink defines the progress sink surface: the set of
// side-effect-only methods the engine calls on an external collaborator to
// report progress and receive abort requests. The core never writes to
// stdout itself; every observable event flows through a Sink.
package sink

import "acovea/internal/report"

// Sink is implemented by the core's caller. All methods are side-effect
// only; none may block the engine indefinitely except Yield, which the
// engine calls between subprocess status polls specifically so the sink
// can sleep briefly.
type Sink interface {
	PingGenerationBegin(generation int)
	PingGenerationEnd(generation int)
	PingPopulationBegin(population int)
	PingPopulationEnd(population int)
	PingFitnessTestBegin(organism int)
	PingFitnessTestEnd(organism int)

	Report(text string)
	ReportError(text string)
	ReportConfig(text string)
	ReportGeneration(generation int, avgFitness float64)
	ReportFinal(results []report.TestResult, zscores []report.OptionZScore)

	RunComplete()

	// Yield is called between non-blocking subprocess status checks; a
	// well-behaved sink sleeps briefly here rather than spinning the
	// caller's CPU.
	Yield()

	// Aborted is checked at generation boundaries; once it returns true
	// the engine finishes emitting whatever final report it can and
	// returns acoveaerr.ErrAborted.
	Aborted() bool
}

// Nop is a Sink that does nothing and never requests abort. It is useful
// for tests and for embedding into partial sink implementations.
type Nop struct{}

func (Nop) PingGenerationBegin(int)      {}
func (Nop) PingGenerationEnd(int)        {}
func (Nop) PingPopulationBegin(int)      {}
func (Nop) PingPopulationEnd(int)        {}
func (Nop) PingFitnessTestBegin(int)     {}
func (Nop) PingFitnessTestEnd(int)       {}
func (Nop) Report(string)                {}
func (Nop) ReportError(string)           {}
func (Nop) ReportConfig(string)          {}
func (Nop) ReportGeneration(int, float64) {}
func (Nop) ReportFinal([]report.TestResult, []report.OptionZScore) {}
func (Nop) RunComplete()                 {}
func (Nop) Yield()                       {}
func (Nop) Aborted() bool                { return false }
