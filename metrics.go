package st

import "github.com/peos-rtos/st/internal/sched"

// Metrics and MetricsSnapshot re-export the scheduler's atomic-counter
// metrics: dispatch counts (overall and per task), timer fires,
// message traffic, idle passes, and a handler latency histogram with
// percentile interpolation.
type (
	Metrics         = sched.Metrics
	MetricsSnapshot = sched.MetricsSnapshot
)

// NewMetrics creates a new, running metrics instance. Scheduler
// already creates one internally (see Scheduler.Metrics); this is for
// callers that want to track metrics independent of a Scheduler, e.g.
// in a custom Observer.
func NewMetrics() *Metrics {
	return sched.NewMetrics()
}
