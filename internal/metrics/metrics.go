// Package metrics exposes prometheus counters and gauges for a run:
// trials attempted/failed, generations completed, and the compile
// circuit breaker's state, so a long-running search can be observed
// externally.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles every metric a run publishes, registered against a
// caller-supplied prometheus.Registerer so tests and the CLI can each
// choose their own registry instance instead of fighting over the global
// default one.
type Registry struct {
	TrialsTotal       prometheus.Counter
	TrialsFailedTotal prometheus.Counter
	GenerationsTotal  prometheus.Counter
	BestFitness       prometheus.Gauge
	BreakerOpen       prometheus.Gauge
}

// New registers and returns a fresh Registry.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		TrialsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acovea_trials_total",
			Help: "Total fitness trials attempted.",
		}),
		TrialsFailedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acovea_trials_failed_total",
			Help: "Total fitness trials that returned the bogus fitness sentinel.",
		}),
		GenerationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acovea_generations_total",
			Help: "Total generations completed across all populations.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "acovea_best_fitness",
			Help: "Best (lowest) fitness seen so far in the current run.",
		}),
		BreakerOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "acovea_compile_breaker_open",
			Help: "1 if the compile circuit breaker is currently open, 0 otherwise.",
		}),
	}
	reg.MustRegister(r.TrialsTotal, r.TrialsFailedTotal, r.GenerationsTotal, r.BestFitness, r.BreakerOpen)
	return r
}

// RecordTrial updates trial counters given a measured fitness and the
// sentinel value that marks a failed trial.
func (r *Registry) RecordTrial(fitness, bogus float64) {
	r.TrialsTotal.Inc()
	if fitness >= bogus {
		r.TrialsFailedTotal.Inc()
	}
}

// RecordGeneration updates generation and best-fitness-so-far counters.
func (r *Registry) RecordGeneration(bestFitness float64) {
	r.GenerationsTotal.Inc()
	r.BestFitness.Set(bestFitness)
}

// RecordBreakerState publishes whether the compile circuit breaker is
// currently open.
func (r *Registry) RecordBreakerState(open bool) {
	if open {
		r.BreakerOpen.Set(1)
		return
	}
	r.BreakerOpen.Set(0)
}
