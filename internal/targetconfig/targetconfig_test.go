package targetconfig

import (
	"os"
	"path/filepath"
	"testing"

	"acovea/internal/randsrc"
)

func TestBuildAssemblesTargetFromDocument(t *testing.T) {
	doc := Document{
		Description:   "gcc x86_64",
		ConfigVersion: "1.0",
		QuotedOptions: true,
		VersionProbe:  "gcc --version",
		Prime: CommandYAML{
			Command: "gcc",
			Flags:   "-o ACOVEA_OUTPUT ACOVEA_OPTIONS ACOVEA_INPUT",
		},
		Baselines: []BaselineYAML{
			{Description: "-O2 baseline", Command: "gcc", Flags: "-O2 -o ACOVEA_OUTPUT ACOVEA_INPUT"},
		},
		Genes: []GeneYAML{
			{Kind: "simple", Token: "-funroll-loops", Enabled: false},
			{Kind: "enum", Choices: []string{"-O1", "-O2", "-O3"}, Enabled: true},
			{Kind: "tuning", Name: "-falign-loops", Separator: "=", Min: 0, Max: 16, Step: 2, Default: 4, Enabled: true},
		},
	}

	rng := randsrc.New(1)
	tgt, err := Build(doc, rng)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tgt.Description() != "gcc x86_64" {
		t.Fatalf("unexpected description %q", tgt.Description())
	}
	if tgt.ChromosomeLength() != 3 {
		t.Fatalf("expected 3 genes, got %d", tgt.ChromosomeLength())
	}
	if got := tgt.VersionProbeCommand(); len(got) != 2 || got[0] != "gcc" || got[1] != "--version" {
		t.Fatalf("unexpected version probe %v", got)
	}
}

func TestBuildRejectsEnumWithNoChoices(t *testing.T) {
	doc := Document{
		Prime: CommandYAML{Command: "gcc", Flags: "-o ACOVEA_OUTPUT ACOVEA_INPUT"},
		Genes: []GeneYAML{{Kind: "enum", Enabled: true}},
	}
	if _, err := Build(doc, randsrc.New(1)); err == nil {
		t.Fatalf("expected an error for an enum gene with no choices")
	}
}

func TestBuildRejectsUnknownGeneKind(t *testing.T) {
	doc := Document{
		Prime: CommandYAML{Command: "gcc", Flags: "-o ACOVEA_OUTPUT ACOVEA_INPUT"},
		Genes: []GeneYAML{{Kind: "bogus"}},
	}
	if _, err := Build(doc, randsrc.New(1)); err == nil {
		t.Fatalf("expected an error for an unknown gene kind")
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.yaml")
	contents := `
description: "gcc x86_64"
config_version: "1.0"
quoted_options: true
prime:
  command: gcc
  flags: "-o ACOVEA_OUTPUT ACOVEA_OPTIONS ACOVEA_INPUT"
genes:
  - kind: simple
    token: "-funroll-loops"
    enabled: false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tgt, err := Load(path, randsrc.New(1))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tgt.ChromosomeLength() != 1 {
		t.Fatalf("expected 1 gene, got %d", tgt.ChromosomeLength())
	}
}
