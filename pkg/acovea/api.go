// Package acovea is the public façade wiring target loading, run
// configuration, the evolutionary engine, and run-history persistence
// into the handful of operations a CLI or embedding program needs.
package acovea

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"acovea/internal/evo"
	"acovea/internal/randsrc"
	"acovea/internal/report"
	"acovea/internal/runconfig"
	"acovea/internal/runner"
	"acovea/internal/sink"
	"acovea/internal/store"
	"acovea/internal/target"
	"acovea/internal/targetconfig"
)

// Options configures a Client.
type Options struct {
	StoreKind  string // "memory" (default) or "sqlite"
	SQLitePath string
	ScratchDir string
}

// Client bundles the persistence backend behind a small operation
// surface: LoadTarget, LoadRunConfig, and Run.
type Client struct {
	store      store.Store
	scratchDir string
}

// NewClient constructs a Client and initializes its store backend.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	s, err := store.New(opts.StoreKind, opts.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("constructing store: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	scratch := opts.ScratchDir
	if scratch == "" {
		scratch = "."
	}
	return &Client{store: s, scratchDir: scratch}, nil
}

// Close releases the store backend, if its kind requires it.
func (c *Client) Close() error {
	return store.CloseIfSupported(c.store)
}

// LoadTarget parses a target definition from a YAML file.
func (c *Client) LoadTarget(path string, seed int64) (*target.Target, error) {
	return targetconfig.Load(path, randsrc.New(seed))
}

// LoadRunConfig parses hyperparameters from an INI file.
func (c *Client) LoadRunConfig(path string) (evo.Hyperparameters, bool, error) {
	return runconfig.Load(path)
}

// RunRequest names everything one evolutionary run needs beyond a parsed
// target and hyperparameters.
type RunRequest struct {
	Target       *target.Target
	Hyper        evo.Hyperparameters
	SigmaScaling bool
	InputPath    string
	Sink         sink.Sink
}

// RunSummary is what a caller gets back after a run completes.
type RunSummary struct {
	RunID   string
	Report  report.FinalReport
	Aborted bool
}

// Run executes one evolutionary search end to end: it builds a Runner
// scoped to the client's scratch directory, drives the Engine, and
// persists the run record and its final report. Per-generation averages
// are not saved to the store.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Target == nil {
		return RunSummary{}, fmt.Errorf("run request requires a target")
	}
	if req.Sink == nil {
		req.Sink = sink.Nop{}
	}

	runID := uuid.NewString()
	startedAt := time.Now()

	r := runner.New(c.scratchDir)
	engine := evo.New(req.Target, r, req.Sink, req.Hyper, req.InputPath, req.SigmaScaling)

	run := store.RunRecord{
		ID:            runID,
		TargetName:    req.Target.Description(),
		ConfigVersion: req.Target.ConfigVersion(),
		Mode:          req.Hyper.Mode.String(),
		Seed:          req.Hyper.Seed,
		StartedAt:     startedAt,
	}

	final, runErr := engine.Run(ctx)

	run.FinishedAt = time.Now()
	run.Aborted = runErr != nil
	_ = c.store.SaveRun(ctx, run)
	_ = c.store.SaveFinalReport(ctx, runID, final)

	summary := RunSummary{RunID: runID, Report: final, Aborted: run.Aborted}
	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}

// History returns a previously persisted run's final report.
func (c *Client) History(ctx context.Context, runID string) (report.FinalReport, bool, error) {
	return c.store.GetFinalReport(ctx, runID)
}
