package sched

import "math/bits"

// eventMatrix is the per-task pending-event bitfield vector. All
// mutation happens under the owning Scheduler's critical section;
// eventMatrix itself holds no lock of its own.
type eventMatrix struct {
	bits []EventMask
}

func newEventMatrix(taskMax int) *eventMatrix {
	return &eventMatrix{bits: make([]EventMask, taskMax)}
}

// set ORs event's bit into task's pending set. Idempotent: setting an
// already-pending event is a no-op beyond the OR itself. Caller must
// hold the critical section.
func (m *eventMatrix) set(task TaskID, event EventID) {
	m.bits[task] |= EventMask(1) << EventMask(event)
}

// clear ANDs event's bit out of task's pending set. Clearing an
// already-clear bit is a silent no-op. Caller must hold the critical
// section.
func (m *eventMatrix) clear(task TaskID, event EventID) {
	m.bits[task] &^= EventMask(1) << EventMask(event)
}

// pending returns task's raw bitfield. Caller must hold the critical
// section.
func (m *eventMatrix) pending(task TaskID) EventMask {
	return m.bits[task]
}

// lowestSet returns the lowest-numbered pending event for task, and
// whether any event is pending at all — the dispatcher's "lowest bit
// first" event-selection rule. Caller must hold the critical section.
func (m *eventMatrix) lowestSet(task TaskID) (EventID, bool) {
	word := uint32(m.bits[task])
	if word == 0 {
		return 0, false
	}
	return EventID(bits.TrailingZeros32(word)), true
}
