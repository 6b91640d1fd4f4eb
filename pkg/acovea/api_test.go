package acovea

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"acovea/internal/evo"
	"acovea/internal/runner"
	"acovea/internal/sink"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("writeScript: %v", err)
	}
	return path
}

func writeTargetYAML(t *testing.T, dir, compile string) string {
	t.Helper()
	path := filepath.Join(dir, "target.yaml")
	contents := `
description: "fake compiler"
config_version: "1.0"
quoted_options: false
prime:
  command: ` + compile + `
  flags: "ACOVEA_OUTPUT ACOVEA_OPTIONS"
genes:
  - kind: simple
    token: "-x"
    enabled: true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestClientRunProducesAFinalReport(t *testing.T) {
	dir := t.TempDir()
	compile := writeScript(t, dir, "compile.sh", `printf 'ab' > "$1"`)
	targetPath := writeTargetYAML(t, dir, compile)

	ctx := context.Background()
	client, err := NewClient(ctx, Options{StoreKind: "memory", ScratchDir: dir})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	tgt, err := client.LoadTarget(targetPath, 1)
	if err != nil {
		t.Fatalf("LoadTarget: %v", err)
	}

	hyper := evo.Hyperparameters{
		PopulationSize: 4,
		NumPopulations: 1,
		Generations:    2,
		EliteCount:     1,
		Mode:           runner.ModeSize,
		Seed:           1,
	}.Clamp()

	summary, err := client.Run(ctx, RunRequest{
		Target:    tgt,
		Hyper:     hyper,
		InputPath: "",
		Sink:      sink.Nop{},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatalf("expected a non-empty run ID")
	}
	if len(summary.Report.Results) == 0 {
		t.Fatalf("expected at least one comparison result in the final report")
	}

	stored, ok, err := client.History(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if !ok {
		t.Fatalf("expected run history to be persisted")
	}
	if len(stored.Results) != len(summary.Report.Results) {
		t.Fatalf("persisted report mismatch")
	}
}
