// Package targetconfig loads a compilation target's description from a
// YAML document into a target.Builder: an on-disk schema of plain
// structs, unmarshaled in one shot via gopkg.in/yaml.v3, then walked to
// populate the builder.
package targetconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"acovea/internal/acoveaerr"
	"acovea/internal/randsrc"
	"acovea/internal/target"
)

// Document is the on-disk YAML schema for one target definition.
type Document struct {
	Description   string        `yaml:"description"`
	ConfigVersion string        `yaml:"config_version"`
	QuotedOptions bool          `yaml:"quoted_options"`
	VersionProbe  string        `yaml:"version_probe"`
	Prime         CommandYAML   `yaml:"prime"`
	Baselines     []BaselineYAML `yaml:"baselines"`
	Genes         []GeneYAML    `yaml:"genes"`
}

// CommandYAML is a program plus a whitespace-split flag template.
type CommandYAML struct {
	Command string `yaml:"command"`
	Flags   string `yaml:"flags"`
}

// BaselineYAML names one baseline comparison command.
type BaselineYAML struct {
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
	Flags       string `yaml:"flags"`
}

// GeneYAML is a tagged-union gene entry: Kind selects which of the
// remaining fields apply, mirroring the gene package's own tagged struct
// over an interface hierarchy.
type GeneYAML struct {
	Kind      string   `yaml:"kind"` // "simple", "enum", or "tuning"
	Enabled   bool     `yaml:"enabled"`
	Token     string   `yaml:"token"`     // simple
	Choices   []string `yaml:"choices"`   // enum
	Name      string   `yaml:"name"`      // tuning
	Separator string   `yaml:"separator"` // tuning, single character
	Min       int      `yaml:"min"`       // tuning
	Max       int      `yaml:"max"`       // tuning
	Step      int      `yaml:"step"`      // tuning
	Default   int      `yaml:"default"`   // tuning
}

// Load parses path and builds a *target.Target from it.
func Load(path string, rng *randsrc.Source) (*target.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading target config %q: %w", acoveaerr.ErrConfigInvalid, path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing target config %q: %w", acoveaerr.ErrConfigInvalid, path, err)
	}

	return Build(doc, rng)
}

// Build assembles a *target.Target from an already-parsed Document.
func Build(doc Document, rng *randsrc.Source) (*target.Target, error) {
	b := target.NewBuilder(rng).
		SetDescription(doc.Description).
		SetConfigVersion(doc.ConfigVersion).
		SetQuotedOptions(doc.QuotedOptions).
		SetPrime(doc.Prime.Command, doc.Prime.Flags).
		SetVersionProbe(doc.VersionProbe)

	for _, baseline := range doc.Baselines {
		b.AddBaseline(baseline.Description, baseline.Command, baseline.Flags)
	}

	for i, g := range doc.Genes {
		switch g.Kind {
		case "simple":
			b.AddSimpleGene(g.Token, g.Enabled)
		case "enum":
			if len(g.Choices) == 0 {
				return nil, fmt.Errorf("%w: gene %d (enum) has no choices", acoveaerr.ErrConfigInvalid, i)
			}
			b.AddEnumGene(g.Choices, g.Enabled)
		case "tuning":
			sep := byte('=')
			if len(g.Separator) > 0 {
				sep = g.Separator[0]
			}
			b.AddTuningGene(g.Name, sep, g.Min, g.Max, g.Step, g.Default, g.Enabled)
		default:
			return nil, fmt.Errorf("%w: gene %d has unknown kind %q", acoveaerr.ErrConfigInvalid, i, g.Kind)
		}
	}

	return b.Build()
}
