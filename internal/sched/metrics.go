package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// latencyBuckets are log-spaced nanosecond boundaries bounding handler
// run time. A cooperative scheduler's handlers are expected to run in
// well under a millisecond, so the histogram is biased toward the low
// end.
var latencyBuckets = []uint64{
	1_000,       // 1us
	10_000,      // 10us
	100_000,     // 100us
	1_000_000,   // 1ms
	10_000_000,  // 10ms
	100_000_000, // 100ms
	1_000_000_000,
	10_000_000_000,
}

const numLatencyBuckets = 8

// Metrics tracks scheduler-level operational statistics — dispatches,
// timer fires, message traffic — on atomic counters so ISR-context
// paths can record without blocking.
type Metrics struct {
	Dispatches atomic.Uint64
	TimerFires atomic.Uint64
	MsgSends   atomic.Uint64
	MsgRecvs   atomic.Uint64
	MsgFails   atomic.Uint64
	IdlePasses atomic.Uint64

	TotalLatencyNs atomic.Uint64
	OpCount        atomic.Uint64
	LatencyBuckets [numLatencyBuckets]atomic.Uint64

	mu            sync.Mutex
	perTaskCounts map[TaskID]uint64

	StartTime atomic.Int64
	StopTime  atomic.Int64
}

// NewMetrics creates a new, running metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{perTaskCounts: make(map[TaskID]uint64)}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

func (m *Metrics) recordDispatch(task TaskID, event EventID, latencyNs uint64) {
	m.Dispatches.Add(1)
	m.TotalLatencyNs.Add(latencyNs)
	m.OpCount.Add(1)
	for i, bucket := range latencyBuckets {
		if latencyNs <= bucket {
			m.LatencyBuckets[i].Add(1)
		}
	}
	m.mu.Lock()
	m.perTaskCounts[task]++
	m.mu.Unlock()
}

func (m *Metrics) recordTimerFire()       { m.TimerFires.Add(1) }
func (m *Metrics) recordMsgSend()         { m.MsgSends.Add(1) }
func (m *Metrics) recordMsgRecv()         { m.MsgRecvs.Add(1) }
func (m *Metrics) recordMsgAllocFailure() { m.MsgFails.Add(1) }
func (m *Metrics) recordIdle()            { m.IdlePasses.Add(1) }

// Stop marks the scheduler as stopped, freezing uptime for Snapshot.
func (m *Metrics) Stop() {
	m.StopTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time, non-atomic copy of Metrics,
// safe to read or print without racing the live counters.
type MetricsSnapshot struct {
	Dispatches uint64
	TimerFires uint64
	MsgSends   uint64
	MsgRecvs   uint64
	MsgFails   uint64
	IdlePasses uint64

	DispatchesByTask map[TaskID]uint64

	AvgLatencyNs  uint64
	LatencyP50Ns  uint64
	LatencyP99Ns  uint64
	LatencyP999Ns uint64

	LatencyHistogram [numLatencyBuckets]uint64
	UptimeNs         uint64
}

// Snapshot captures the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Dispatches: m.Dispatches.Load(),
		TimerFires: m.TimerFires.Load(),
		MsgSends:   m.MsgSends.Load(),
		MsgRecvs:   m.MsgRecvs.Load(),
		MsgFails:   m.MsgFails.Load(),
		IdlePasses: m.IdlePasses.Load(),
	}

	m.mu.Lock()
	snap.DispatchesByTask = make(map[TaskID]uint64, len(m.perTaskCounts))
	for k, v := range m.perTaskCounts {
		snap.DispatchesByTask[k] = v
	}
	m.mu.Unlock()

	opCount := m.OpCount.Load()
	if opCount > 0 {
		snap.AvgLatencyNs = m.TotalLatencyNs.Load() / opCount
		snap.LatencyP50Ns = m.percentile(0.50)
		snap.LatencyP99Ns = m.percentile(0.99)
		snap.LatencyP999Ns = m.percentile(0.999)
	}

	startTime := m.StartTime.Load()
	stopTime := m.StopTime.Load()
	if stopTime > 0 {
		snap.UptimeNs = uint64(stopTime - startTime)
	} else {
		snap.UptimeNs = uint64(time.Now().UnixNano() - startTime)
	}

	for i := 0; i < numLatencyBuckets; i++ {
		snap.LatencyHistogram[i] = m.LatencyBuckets[i].Load()
	}
	return snap
}

// percentile interpolates linearly within the histogram bucket
// containing the target rank.
func (m *Metrics) percentile(p float64) uint64 {
	total := m.OpCount.Load()
	if total == 0 {
		return 0
	}
	target := uint64(float64(total) * p)
	prevBucket := uint64(0)
	for i, bucket := range latencyBuckets {
		count := m.LatencyBuckets[i].Load()
		if count >= target {
			prevCount := uint64(0)
			if i > 0 {
				prevCount = m.LatencyBuckets[i-1].Load()
			}
			if count == prevCount {
				return bucket
			}
			fraction := float64(target-prevCount) / float64(count-prevCount)
			return prevBucket + uint64(fraction*float64(bucket-prevBucket))
		}
		prevBucket = bucket
	}
	return latencyBuckets[numLatencyBuckets-1]
}
