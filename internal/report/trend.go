package report

import "github.com/VividCortex/ewma"

// Trend tracks an exponentially-weighted moving average of per-generation
// average fitness, a smoothed companion to the raw avg_fitness reported
// each generation. Engine.Run feeds it every generation's average; the
// smoothed value is not passed to the sink.
type Trend struct {
	avg ewma.MovingAverage
}

// NewTrend creates a Trend using ewma's simple moving average with its
// default decay (an average sample age of 30 generations).
func NewTrend() *Trend {
	return &Trend{avg: ewma.NewMovingAverage()}
}

// Add records one generation's average fitness.
func (t *Trend) Add(avgFitness float64) {
	t.avg.Add(avgFitness)
}

// Value returns the current smoothed average fitness.
func (t *Trend) Value() float64 {
	return t.avg.Value()
}
