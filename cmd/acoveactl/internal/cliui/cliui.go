// Package cliui implements a stdout sink.Sink: styled progress lines,
// error highlighting, and a final results table, using lipgloss for
// terminal styling (colors for status, bold for headers, muted for
// detail).
package cliui

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"acovea/internal/report"
)

var (
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// Sink writes progress and reports to w, styled with lipgloss, and can be
// asked to abort a run from outside the evolutionary loop (e.g. on
// SIGINT) via RequestAbort.
type Sink struct {
	w       io.Writer
	aborted atomic.Bool
}

// New creates a Sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// RequestAbort marks the run for abort; the engine checks this at the
// next generation boundary.
func (s *Sink) RequestAbort() {
	s.aborted.Store(true)
}

func (s *Sink) Aborted() bool {
	return s.aborted.Load()
}

func (s *Sink) PingGenerationBegin(generation int) {
	fmt.Fprintln(s.w, styleTitle.Render(fmt.Sprintf("== generation %d ==", generation)))
}

func (s *Sink) PingGenerationEnd(int) {}

func (s *Sink) PingPopulationBegin(population int) {
	fmt.Fprintln(s.w, styleMuted.Render(fmt.Sprintf("  population %d", population)))
}

func (s *Sink) PingPopulationEnd(int) {}
func (s *Sink) PingFitnessTestBegin(int) {}
func (s *Sink) PingFitnessTestEnd(int)   {}

func (s *Sink) Report(text string) {
	fmt.Fprintln(s.w, text)
}

func (s *Sink) ReportError(text string) {
	fmt.Fprintln(s.w, styleError.Render("error: "+text))
}

func (s *Sink) ReportConfig(text string) {
	fmt.Fprintln(s.w, styleMuted.Render(text))
}

func (s *Sink) ReportGeneration(generation int, avgFitness float64) {
	fmt.Fprintln(s.w, styleMuted.Render(fmt.Sprintf("  avg fitness: %.4f", avgFitness)))
}

func (s *Sink) ReportFinal(results []report.TestResult, zscores []report.OptionZScore) {
	fmt.Fprintln(s.w, styleTitle.Render("== final report =="))
	for _, r := range results {
		label := "baseline"
		if r.AcoveaGenerated {
			label = "evolved"
		}
		fmt.Fprintf(s.w, "  [%s] %-40s fitness=%s\n", label, r.Description, report.FormatFitness("", r.Fitness, 1e18))
		if r.Detail != "" {
			fmt.Fprintln(s.w, styleMuted.Render("      "+r.Detail))
		}
	}
	if len(zscores) == 0 {
		return
	}
	fmt.Fprintln(s.w, styleTitle.Render("== option z-scores =="))
	for _, z := range zscores {
		line := fmt.Sprintf("  %-24s % .3f", z.Name, z.ZScore)
		switch {
		case z.ZScore >= 1.5:
			fmt.Fprintln(s.w, styleWarning.Render(line+"  (optimistic)"))
		case z.ZScore <= -1.5:
			fmt.Fprintln(s.w, styleError.Render(line+"  (pessimistic)"))
		default:
			fmt.Fprintln(s.w, line)
		}
	}
}

func (s *Sink) RunComplete() {
	fmt.Fprintln(s.w, styleTitle.Render(strings.Repeat("=", 40)))
}

func (s *Sink) Yield() {}
