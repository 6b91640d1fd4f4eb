package gene

import (
	"fmt"

	"acovea/internal/acoveaerr"
	"acovea/internal/randsrc"
)

// Chromosome is an ordered sequence of genes comprising one candidate flag
// set. It owns its genes exclusively; cloning is always a deep copy.
type Chromosome []Gene

// Clone deep-copies every gene in c.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	for i, g := range c {
		out[i] = g.Clone()
	}
	return out
}

// RandomFrom produces a same-shape chromosome whose genes are clones of
// template's genes, each then randomized.
func RandomFrom(template Chromosome, rng *randsrc.Source) Chromosome {
	out := template.Clone()
	for i := range out {
		out[i].Randomize(rng)
	}
	return out
}

// Breed performs uniform crossover: position i of the result is a clone of
// either a[i] or b[i], chosen by an independent fair coin per position. a
// and b must have equal length and matching per-position gene variants, or
// Breed returns acoveaerr.ErrShapeMismatch.
func Breed(a, b Chromosome, rng *randsrc.Source) (Chromosome, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("breed: %w: %d genes vs %d genes", acoveaerr.ErrShapeMismatch, len(a), len(b))
	}
	out := make(Chromosome, len(a))
	for i := range a {
		if !a[i].SameShape(b[i]) {
			return nil, fmt.Errorf("breed: %w: position %d is %s vs %s", acoveaerr.ErrShapeMismatch, i, a[i].Kind, b[i].Kind)
		}
		if rng.CoinFlip() {
			out[i] = a[i].Clone()
		} else {
			out[i] = b[i].Clone()
		}
	}
	return out, nil
}

// Mutate applies gene-level mutation independently to every gene in c, each
// with probability rate.
func Mutate(c Chromosome, rng *randsrc.Source, rate float64) {
	for i := range c {
		if rng.Bool(rate) {
			c[i].Mutate(rng)
		}
	}
}

// RenderTokens returns the ordered, non-empty rendering of every enabled
// gene in c.
func (c Chromosome) RenderTokens() []string {
	out := make([]string, 0, len(c))
	for _, g := range c {
		if tok := g.Render(); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Intersect returns a chromosome the same shape as c whose enabled bits are
// the logical AND of c and other's enabled bits at each position (used by
// the reporter's "common" chromosome). Non-enabled-bit gene
// state (index/value) is taken from c. c and other must be the same
// length; mismatched lengths are a programmer error and panic, since this
// is only ever called on chromosomes already known to share a template.
func (c Chromosome) Intersect(other Chromosome) Chromosome {
	if len(c) != len(other) {
		panic("gene: Intersect requires equal-length chromosomes")
	}
	out := c.Clone()
	for i := range out {
		out[i].Enabled = out[i].Enabled && other[i].Enabled
	}
	return out
}

// EmptyFrom returns a same-shape chromosome with every gene disabled, used
// to render baseline commands with no evolved options.
func EmptyFrom(template Chromosome) Chromosome {
	out := template.Clone()
	for i := range out {
		out[i].Enabled = false
	}
	return out
}
