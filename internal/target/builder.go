package target

import (
	"strings"

	"acovea/internal/gene"
	"acovea/internal/randsrc"
)

// Builder is the external-loader-facing surface: an interface sufficient
// for a loader to register genes positionally and validate the resulting
// template. Parsing the on-disk configuration format itself is out of
// scope here (internal/targetconfig does that) but Builder is how any
// loader hands the result to the core.
type Builder struct {
	description   string
	configVersion string
	quotedOptions bool
	prime         CommandTemplate
	baselines     []BaselineCommand
	versionProbe  []string
	genes         gene.Chromosome
	rng           *randsrc.Source
}

// NewBuilder creates an empty Builder. rng is used only for the
// construction-time tuning-gene jitter applied to each tuning gene as it
// is added.
func NewBuilder(rng *randsrc.Source) *Builder {
	return &Builder{rng: rng}
}

// SetDescription sets the human-readable target description.
func (b *Builder) SetDescription(s string) *Builder {
	b.description = s
	return b
}

// SetConfigVersion sets the configuration's version string.
func (b *Builder) SetConfigVersion(s string) *Builder {
	b.configVersion = s
	return b
}

// SetQuotedOptions sets whether ACOVEA_OPTIONS splices in-token (true) or
// splices as distinct argv entries (false).
func (b *Builder) SetQuotedOptions(quoted bool) *Builder {
	b.quotedOptions = quoted
	return b
}

// SetPrime registers the prime command: the program plus a whitespace-split
// argument template.
func (b *Builder) SetPrime(command, flags string) *Builder {
	b.prime = CommandTemplate{Command: command, Flags: splitFields(flags)}
	return b
}

// AddBaseline registers one baseline command for final-report comparison.
func (b *Builder) AddBaseline(description, command, flags string) *Builder {
	b.baselines = append(b.baselines, BaselineCommand{
		Description: description,
		Command:     CommandTemplate{Command: command, Flags: splitFields(flags)},
	})
	return b
}

// SetVersionProbe registers the optional whitespace-split command run once
// at engine start to capture a version header.
func (b *Builder) SetVersionProbe(command string) *Builder {
	if strings.TrimSpace(command) == "" {
		b.versionProbe = nil
		return b
	}
	b.versionProbe = splitFields(command)
	return b
}

// AddSimpleGene registers a simple (fixed-token) gene.
func (b *Builder) AddSimpleGene(token string, enabled bool) *Builder {
	b.genes = append(b.genes, gene.NewSimple(token, enabled))
	return b
}

// AddEnumGene registers an enum gene over an ordered choice list.
func (b *Builder) AddEnumGene(choices []string, enabled bool) *Builder {
	b.genes = append(b.genes, gene.NewEnum(choices, enabled))
	return b
}

// AddTuningGene registers a tuning gene, applying the construction-time
// jitter immediately.
func (b *Builder) AddTuningGene(name string, separator byte, min, max, step, deflt int, enabled bool) *Builder {
	g := gene.NewTuning(name, separator, min, max, step, deflt, enabled)
	g.Jitter(b.rng)
	b.genes = append(b.genes, g)
	return b
}

// Build validates and returns the assembled Target, or
// acoveaerr.ErrConfigInvalid if the prime command is missing.
func (b *Builder) Build() (*Target, error) {
	if err := validate(b); err != nil {
		return nil, err
	}
	return &Target{
		description:   b.description,
		configVersion: b.configVersion,
		quotedOptions: b.quotedOptions,
		prime:         b.prime,
		baselines:     append([]BaselineCommand(nil), b.baselines...),
		versionProbe:  b.versionProbe,
		template:      b.genes.Clone(),
	}, nil
}

func splitFields(s string) []string {
	return strings.Fields(s)
}
