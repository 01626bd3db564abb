package st

import (
	"sync"

	"github.com/peos-rtos/st/internal/sched"
)

// RecordingObserver is a test double implementing Observer: it tracks
// every call it receives for assertion — a fake collaborator with
// inspectable state rather than a mock framework.
type RecordingObserver struct {
	mu sync.Mutex

	Dispatches []DispatchRecord
	TimerFires []TimerRecord
	MsgSends   []MsgRecord
	MsgRecvs   []MsgRecord
	AllocFails []int
	IdleCount  int
}

// DispatchRecord captures one ObserveDispatch call.
type DispatchRecord struct {
	Task      TaskID
	Event     EventID
	LatencyNs uint64
}

// TimerRecord captures one ObserveTimerFire call.
type TimerRecord struct {
	Task  TaskID
	Event EventID
}

// MsgRecord captures one ObserveMsgSend/ObserveMsgRecv call.
type MsgRecord struct {
	Task TaskID
	Size int
}

func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (o *RecordingObserver) ObserveDispatch(task TaskID, event EventID, latencyNs uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Dispatches = append(o.Dispatches, DispatchRecord{task, event, latencyNs})
}

func (o *RecordingObserver) ObserveTimerFire(task TaskID, event EventID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.TimerFires = append(o.TimerFires, TimerRecord{task, event})
}

func (o *RecordingObserver) ObserveMsgSend(task TaskID, size int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.MsgSends = append(o.MsgSends, MsgRecord{task, size})
}

func (o *RecordingObserver) ObserveMsgRecv(task TaskID, size int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.MsgRecvs = append(o.MsgRecvs, MsgRecord{task, size})
}

func (o *RecordingObserver) ObserveMsgAllocFailure(size int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.AllocFails = append(o.AllocFails, size)
}

func (o *RecordingObserver) ObserveIdle() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.IdleCount++
}

var _ Observer = (*RecordingObserver)(nil)

// NewTestScheduler builds a Scheduler with Config.ManualClock set, so
// tests advance simulated time deterministically via Tick instead of
// racing a real ticker goroutine.
func NewTestScheduler(entries []Entry) *Scheduler {
	cfg := Config{ManualClock: true}
	return sched.New(cfg, entries)
}
