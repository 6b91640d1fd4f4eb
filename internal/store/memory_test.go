package store

import (
	"context"
	"testing"
	"time"

	"acovea/internal/report"
)

func TestMemoryStoreRoundTripsRun(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	run := RunRecord{
		ID:            "run-1",
		TargetName:    "gcc-x86",
		ConfigVersion: "1.0",
		Mode:          "speed",
		Seed:          42,
		StartedAt:     time.Unix(0, 0),
		FinishedAt:    time.Unix(100, 0),
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, ok, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !ok {
		t.Fatalf("expected run to be found")
	}
	if got.TargetName != run.TargetName || got.Seed != run.Seed {
		t.Fatalf("round-tripped run mismatch: %+v", got)
	}
}

func TestMemoryStoreMissingRunNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Init(ctx)

	_, ok, err := s.GetRun(ctx, "nope")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if ok {
		t.Fatalf("expected missing run to report not found")
	}
}

func TestMemoryStoreAccumulatesGenerations(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Init(ctx)

	for gen := 0; gen < 3; gen++ {
		rec := GenerationRecord{RunID: "run-1", Generation: gen, AvgFitness: float64(gen) * 1.5}
		if err := s.SaveGeneration(ctx, rec); err != nil {
			t.Fatalf("SaveGeneration: %v", err)
		}
	}

	recs, ok, err := s.GetGenerations(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetGenerations: %v", err)
	}
	if !ok || len(recs) != 3 {
		t.Fatalf("expected 3 generation records, got %d (ok=%v)", len(recs), ok)
	}
	if recs[2].AvgFitness != 3.0 {
		t.Fatalf("expected third record's avg fitness 3.0, got %v", recs[2].AvgFitness)
	}
}

func TestMemoryStoreRoundTripsFinalReport(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Init(ctx)

	final := report.FinalReport{
		Results: []report.TestResult{{Description: "baseline", Fitness: 10.0}},
		ZScores: []report.OptionZScore{{Name: "-O2", ZScore: 1.8}},
	}
	if err := s.SaveFinalReport(ctx, "run-1", final); err != nil {
		t.Fatalf("SaveFinalReport: %v", err)
	}

	got, ok, err := s.GetFinalReport(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetFinalReport: %v", err)
	}
	if !ok || len(got.Results) != 1 || got.Results[0].Description != "baseline" {
		t.Fatalf("round-tripped final report mismatch: %+v", got)
	}
}
