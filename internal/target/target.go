// Package target implements the immutable description of one compilation
// target: the catalog of genes plus the command templates (prime,
// optional baselines, optional version probe) and substitution rules, and
// the factory of chromosomes (random, bred, mutated) built from it.
package target

import (
	"fmt"

	"acovea/internal/acoveaerr"
	"acovea/internal/gene"
	"acovea/internal/randsrc"
)

// CommandTemplate is a program plus its whitespace-split argument
// template, with ACOVEA_INPUT / ACOVEA_OUTPUT / ACOVEA_OPTIONS
// placeholders substituted at render time.
type CommandTemplate struct {
	Command string
	Flags   []string
}

// BaselineCommand is one named, fixed (non-evolved) flag configuration the
// final report compares the evolved result against.
type BaselineCommand struct {
	Description string
	Command     CommandTemplate
}

// Target is the immutable catalog of genes plus command templates for one
// compiler (or command-line tool) under test. Construct one with Builder.
type Target struct {
	description   string
	configVersion string
	quotedOptions bool
	prime         CommandTemplate
	baselines     []BaselineCommand
	versionProbe  []string
	template      gene.Chromosome
}

// Description returns the human-readable description of this target.
func (t *Target) Description() string { return t.description }

// ConfigVersion returns the version string of the configuration this
// target was built from.
func (t *Target) ConfigVersion() string { return t.configVersion }

// QuotedOptions reports whether ACOVEA_OPTIONS is spliced in-token (true)
// or as distinct argv entries (false).
func (t *Target) QuotedOptions() bool { return t.quotedOptions }

// ChromosomeLength returns the fixed gene count of every chromosome this
// target produces.
func (t *Target) ChromosomeLength() int { return len(t.template) }

// Template returns a defensive clone of the catalog chromosome genes were
// constructed from.
func (t *Target) Template() gene.Chromosome { return t.template.Clone() }

// BaselineCommandTemplates returns the configured baseline command
// templates, for callers that want the description/command pair without
// also rendering argv.
func (t *Target) BaselineCommandTemplates() []BaselineCommand {
	out := make([]BaselineCommand, len(t.baselines))
	copy(out, t.baselines)
	return out
}

// VersionProbeCommand returns the optional whitespace-split command used
// to print a version header at engine start, or nil if none was
// configured.
func (t *Target) VersionProbeCommand() []string {
	if t.versionProbe == nil {
		return nil
	}
	out := make([]string, len(t.versionProbe))
	copy(out, t.versionProbe)
	return out
}

// RandomChromosome produces a new chromosome the same shape as the
// template, with every gene cloned from the template then randomized.
func (t *Target) RandomChromosome(rng *randsrc.Source) gene.Chromosome {
	return gene.RandomFrom(t.template, rng)
}

// Breed forwards to gene.Breed, returning acoveaerr.ErrShapeMismatch if a
// and b differ in length or in a position's gene variant. Neither is
// checked against this target's template.
func (t *Target) Breed(a, b gene.Chromosome, rng *randsrc.Source) (gene.Chromosome, error) {
	return gene.Breed(a, b, rng)
}

// Mutate forwards to gene.Mutate.
func (t *Target) Mutate(c gene.Chromosome, rng *randsrc.Source, rate float64) {
	gene.Mutate(c, rng, rate)
}

// PrimeCommand materializes the argv for compiling input to output with
// chromosome c's enabled genes as options.
func (t *Target) PrimeCommand(input, output string, c gene.Chromosome) []string {
	return renderArgv(t.prime, input, output, c.RenderTokens(), t.quotedOptions)
}

// BaselineCommands materializes the argv for every configured baseline,
// compiling input to output with no evolved options: each baseline is
// rendered against an all-disabled chromosome the shape of the target's
// template.
func (t *Target) BaselineCommands(input, output string) []NamedCommand {
	empty := gene.EmptyFrom(t.template)
	out := make([]NamedCommand, len(t.baselines))
	for i, b := range t.baselines {
		out[i] = NamedCommand{
			Description: b.Description,
			Argv:        renderArgv(b.Command, input, output, empty.RenderTokens(), t.quotedOptions),
		}
	}
	return out
}

// NamedCommand pairs a human-readable description with the argv it maps
// to, used for baseline comparison runs.
type NamedCommand struct {
	Description string
	Argv        []string
}

func validate(b *Builder) error {
	if b.prime.Command == "" {
		return fmt.Errorf("target: %w: prime command is required", acoveaerr.ErrConfigInvalid)
	}
	return nil
}
