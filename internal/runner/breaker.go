package runner

import "github.com/sony/gobreaker"

// BreakerState reports the compile circuit breaker's current state
// ("closed", "half-open" or "open"), for diagnostics.
func (r *Runner) BreakerState() string {
	return r.breaker.State().String()
}

// BreakerCounts reports the compile circuit breaker's rolling counters.
func (r *Runner) BreakerCounts() gobreaker.Counts {
	return r.breaker.Counts()
}
