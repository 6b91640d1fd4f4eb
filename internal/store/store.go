// Package store persists run history: per-generation fitness trends and
// final reports, so a later invocation can compare runs or resume
// reporting without re-running the evolutionary search. modernc.org/sqlite
// is an optional backend behind a build tag; the in-memory backend is the
// default.
package store

import (
	"context"
	"time"

	"acovea/internal/report"
)

// RunRecord captures one completed or in-progress evolutionary run.
type RunRecord struct {
	ID            string
	TargetName    string
	ConfigVersion string
	Mode          string
	Seed          int64
	StartedAt     time.Time
	FinishedAt    time.Time
	Aborted       bool
}

// GenerationRecord captures one generation's trend point.
type GenerationRecord struct {
	RunID      string
	Generation int
	AvgFitness float64
}

// Store defines persistence operations for run history.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	SaveGeneration(ctx context.Context, rec GenerationRecord) error
	GetGenerations(ctx context.Context, runID string) ([]GenerationRecord, bool, error)
	SaveFinalReport(ctx context.Context, runID string, final report.FinalReport) error
	GetFinalReport(ctx context.Context, runID string) (report.FinalReport, bool, error)
}
