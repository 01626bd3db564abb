package st

import "sync"

var (
	defaultMu    sync.RWMutex
	defaultSched *Scheduler
)

// SetDefault installs s as the process-wide scheduler the free
// ISR-context helpers below target. A board with a single scheduler
// instance (the common case) sets it once during init so interrupt
// shims don't need a *Scheduler threaded through to them.
func SetDefault(s *Scheduler) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSched = s
}

// Default returns the scheduler installed by SetDefault, or nil if
// none has been set.
func Default() *Scheduler {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultSched
}

// EventSet marks event pending for task on the default scheduler.
// Callable from ISR context. A no-op before SetDefault — an interrupt
// that fires before board init has nothing to wake yet.
func EventSet(task TaskID, event EventID) error {
	if s := Default(); s != nil {
		return s.EventSet(task, event)
	}
	return nil
}

// EventClear clears event for task on the default scheduler. Callable
// from ISR context.
func EventClear(task TaskID, event EventID) error {
	if s := Default(); s != nil {
		return s.EventClear(task, event)
	}
	return nil
}

// MsgSend enqueues m for receiver on the default scheduler. Callable
// from ISR context when the allocator that produced m is safe to use
// there.
func MsgSend(receiver TaskID, m *Message) error {
	if s := Default(); s != nil {
		return s.MsgSend(receiver, m)
	}
	return nil
}

// TickAdvance advances the default scheduler's clock and timer wheel
// by elapsedMS — the hook a platform tick interrupt calls.
func TickAdvance(elapsedMS uint64) {
	if s := Default(); s != nil {
		s.Tick(elapsedMS)
	}
}
