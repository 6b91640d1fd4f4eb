// Package runner implements the single fitness-evaluation operation:
// fork/exec the compile command, wait for it while yielding to the
// progress sink between polls, then (on success) derive a fitness scalar
// from the artifact according to the configured Mode. All subprocess and
// filesystem contact is isolated here.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"acovea/internal/sink"
)

// pollInterval is how often Evaluate checks subprocess status between
// sink.Yield() calls; the sink is expected to sleep briefly here, on the
// order of tens of milliseconds.
const pollInterval = 15 * time.Millisecond

// Runner isolates all subprocess and filesystem contact for one target's
// trials. A Runner is not safe for concurrent Evaluate calls against the
// same scratch directory unless each caller supplies its own artifact
// path; NewArtifactPath draws random paths and does not check them for
// collisions.
type Runner struct {
	scratchDir string
	logger     *zap.Logger

	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter

	cacheMu sync.Mutex
	cache   *lru.Cache[string, float64]
	group   singleflight.Group
}

// Option configures a Runner at construction.
type Option func(*Runner)

// WithLogger attaches structured diagnostic logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSpawnRateLimit throttles subprocess spawning to at most rps per
// second with the given burst.
func WithSpawnRateLimit(rps float64, burst int) Option {
	return func(r *Runner) {
		if rps > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// New creates a Runner whose temporary artifacts live under scratchDir. A
// gobreaker circuit breaker trips after repeated consecutive compile
// failures so a misconfigured target stops burning subprocess spawns; it
// resets automatically after its cooldown interval.
func New(scratchDir string, opts ...Option) *Runner {
	r := &Runner{
		scratchDir: scratchDir,
		logger:     zap.NewNop(),
	}
	cache, _ := lru.New[string, float64](4096)
	r.cache = cache
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "acovea-compile",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 8
		},
	})
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResetMemo clears the trial-result memoization cache. The engine calls
// this before evaluating each population and before the final comparison
// runs, so memoized results never carry across populations or
// generations.
func (r *Runner) ResetMemo() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache.Purge()
}

// Evaluate runs one compile+measure trial, returning its fitness (lower is
// better) or runner.Bogus if the trial failed. Trials with the same mode
// and the same argvCompile apart from the artifact path, observed since the
// last ResetMemo, are deduplicated via singleflight and memoized, so
// concurrent or repeated identical chromosomes do not re-spawn subprocesses.
func (r *Runner) Evaluate(ctx context.Context, argvCompile []string, artifactPath string, mode Mode, s sink.Sink) (float64, error) {
	joined := strings.Join(argvCompile, "\x00")
	if artifactPath != "" {
		// Every trial gets a fresh artifact path; leave it out of the key so
		// identical chromosomes share one result.
		joined = strings.ReplaceAll(joined, artifactPath, "\x01")
	}
	key := mode.String() + "\x00" + joined

	if cached, ok := r.cachedValue(key); ok {
		return cached, nil
	}

	result, err, _ := r.group.Do(key, func() (any, error) {
		fitness := r.evaluateUncached(ctx, argvCompile, artifactPath, mode, s)
		r.storeValue(key, fitness)
		return fitness, nil
	})
	if err != nil {
		return Bogus, err
	}
	return result.(float64), nil
}

func (r *Runner) cachedValue(key string) (float64, bool) {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	return r.cache.Get(key)
}

func (r *Runner) storeValue(key string, value float64) {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache.Add(key, value)
}

func (r *Runner) evaluateUncached(ctx context.Context, argvCompile []string, artifactPath string, mode Mode, s sink.Sink) float64 {
	defer removeArtifact(artifactPath)

	rc, _, err := r.runCompile(ctx, argvCompile, s)
	if err != nil {
		s.ReportError(fmt.Sprintf("compile failed to start: %v", err))
		return Bogus
	}
	if rc != 0 {
		s.ReportError(fmt.Sprintf("compile exited %d: %s", rc, strings.Join(argvCompile, " ")))
		return Bogus
	}

	switch mode {
	case ModeSize:
		return r.measureSize(artifactPath, s)
	case ModeRetval:
		return r.measureRetval(ctx, artifactPath, s)
	case ModeSpeed:
		return r.measureSpeed(ctx, artifactPath, s)
	default:
		s.ReportError(fmt.Sprintf("unknown runner mode %v", mode))
		return Bogus
	}
}

func (r *Runner) measureSize(artifactPath string, s sink.Sink) float64 {
	info, err := os.Stat(artifactPath)
	if err != nil {
		s.ReportError(fmt.Sprintf("artifact missing after compile: %v", err))
		return Bogus
	}
	return float64(info.Size())
}

func (r *Runner) measureRetval(ctx context.Context, artifactPath string, s sink.Sink) float64 {
	rc, _, err := r.runArtifact(ctx, artifactPath, s)
	if err != nil {
		s.ReportError(fmt.Sprintf("run failed to start: %v", err))
		return Bogus
	}
	return float64(rc)
}

func (r *Runner) measureSpeed(ctx context.Context, artifactPath string, s sink.Sink) float64 {
	rc, stdout, err := r.runArtifact(ctx, artifactPath, s)
	if err != nil {
		s.ReportError(fmt.Sprintf("run failed to start: %v", err))
		return Bogus
	}
	if rc != 0 {
		s.ReportError(fmt.Sprintf("benchmark exited %d", rc))
		return Bogus
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(stdout)), 64)
	if err != nil {
		s.ReportError(fmt.Sprintf("benchmark produced unparseable output: %q", stdout))
		return Bogus
	}
	return seconds
}

// runCompile executes argvCompile through the circuit breaker and rate
// limiter, returning its exit code.
func (r *Runner) runCompile(ctx context.Context, argv []string, s sink.Sink) (int, []byte, error) {
	if err := r.throttle(ctx); err != nil {
		return -1, nil, err
	}
	errNonZeroExit := fmt.Errorf("compile exited non-zero")
	result, err := r.breaker.Execute(func() (any, error) {
		rc, stdout, runErr := r.spawn(ctx, argv, nil, s)
		if runErr != nil {
			return nil, runErr
		}
		if rc != 0 {
			// Counted as a breaker failure; the exit code is still returned.
			return spawnResult{rc: rc, stdout: stdout}, errNonZeroExit
		}
		return spawnResult{rc: rc, stdout: stdout}, nil
	})
	if err == errNonZeroExit {
		sr := result.(spawnResult)
		return sr.rc, sr.stdout, nil
	}
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			r.logger.Warn("compile circuit breaker open, skipping spawn", zap.String("argv", strings.Join(argv, " ")))
			return -1, nil, err
		}
		return -1, nil, err
	}
	sr := result.(spawnResult)
	return sr.rc, sr.stdout, nil
}

// runArtifact executes the compiled artifact with the benchmark protocol:
// sole argument -ga, empty environment.
func (r *Runner) runArtifact(ctx context.Context, artifactPath string, s sink.Sink) (int, []byte, error) {
	if err := r.throttle(ctx); err != nil {
		return -1, nil, err
	}
	return r.spawn(ctx, []string{artifactPath, "-ga"}, []string{}, s)
}

func (r *Runner) throttle(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

type spawnResult struct {
	rc     int
	stdout []byte
}

// spawn forks/execs argv, waiting to completion while yielding to the sink
// between non-blocking status polls. env == nil inherits the caller's
// environment; a non-nil (possibly empty) slice replaces it.
func (r *Runner) spawn(ctx context.Context, argv []string, env []string, s sink.Sink) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if env != nil {
		cmd.Env = env
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return -1, nil, err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case err := <-done:
			return exitCodeOf(err), stdout.Bytes(), nil
		case <-time.After(pollInterval):
			s.Yield()
		}
	}
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
