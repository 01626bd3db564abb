package sched

// Logger is the optional logging sink the scheduler calls into. The
// method set matches internal/logging.Logger so that type can be
// passed directly without an adapter.
type Logger interface {
	Printf(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Observer allows pluggable collection of scheduler statistics over
// dispatch, timer, and message events.
type Observer interface {
	// ObserveDispatch is called after a handler returns, with how long
	// it ran.
	ObserveDispatch(task TaskID, event EventID, latencyNs uint64)
	// ObserveTimerFire is called when the timer wheel matures an entry.
	ObserveTimerFire(task TaskID, event EventID)
	// ObserveMsgSend is called when a message is enqueued.
	ObserveMsgSend(receiver TaskID, size int)
	// ObserveMsgRecv is called when a message is dequeued.
	ObserveMsgRecv(receiver TaskID, size int)
	// ObserveMsgAllocFailure is called when Allocator.Alloc returns nil.
	ObserveMsgAllocFailure(size int)
	// ObserveIdle is called once per dispatcher pass that found no
	// pending event anywhere, just before the idle hook runs.
	ObserveIdle()
}

// NoOpObserver discards every observation.
type NoOpObserver struct{}

func (NoOpObserver) ObserveDispatch(TaskID, EventID, uint64) {}
func (NoOpObserver) ObserveTimerFire(TaskID, EventID)        {}
func (NoOpObserver) ObserveMsgSend(TaskID, int)              {}
func (NoOpObserver) ObserveMsgRecv(TaskID, int)              {}
func (NoOpObserver) ObserveMsgAllocFailure(int)              {}
func (NoOpObserver) ObserveIdle()                            {}

var _ Observer = NoOpObserver{}

// Allocator is the platform's payload-storage contract: allocate size
// bytes, or return nil on resource exhaustion.
type Allocator interface {
	Alloc(size int) *Message
	Free(m *Message)
}
