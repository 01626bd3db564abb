package sched

// timerEntry is one node of the timer Δ-list: delta is relative to
// the previous entry (absolute ms-until-fire for the head), so the sum
// of deltas from head through any entry equals the wall-clock
// milliseconds until that entry fires.
type timerEntry struct {
	task  TaskID
	event EventID
	delta uint32
	next  *timerEntry
}

// timerWheel holds the one-shot timers as a Δ-list. setBit is called
// to mature an entry (or to set the bit synchronously for a zero-delay
// create); it is always eventMatrix.set bound to the owning Scheduler,
// invoked under the critical section.
type timerWheel struct {
	head   *timerEntry
	setBit func(task TaskID, event EventID)
}

func newTimerWheel(setBit func(TaskID, EventID)) *timerWheel {
	return &timerWheel{setBit: setBit}
}

// find walks the list for (task, event), returning the entry and its
// predecessor (nil if the entry is the head). Caller must hold the
// critical section.
func (w *timerWheel) find(task TaskID, event EventID) (entry, prev *timerEntry) {
	prev = nil
	cur := w.head
	for cur != nil {
		if cur.task == task && cur.event == event {
			return cur, prev
		}
		prev = cur
		cur = cur.next
	}
	return nil, nil
}

// create inserts a new entry for (task, event) firing delayMS from
// now. delayMS == 0 sets the bit synchronously instead of inserting.
// Returns ErrAlreadyExists if an entry for (task, event) is already
// armed. Caller must hold the critical section.
func (w *timerWheel) create(task TaskID, event EventID, delayMS uint32) error {
	if entry, _ := w.find(task, event); entry != nil {
		return ErrAlreadyExists
	}
	if delayMS == 0 {
		w.setBit(task, event)
		return nil
	}

	var prev *timerEntry
	cur := w.head
	sum := uint32(0)
	// Walk while the entry at cur matures at or before delayMS; a new
	// entry whose cumulative deadline ties an existing one lands after
	// it, so ties fire in arming order.
	for cur != nil && sum+cur.delta <= delayMS {
		sum += cur.delta
		prev = cur
		cur = cur.next
	}

	entry := &timerEntry{task: task, event: event, delta: delayMS - sum, next: cur}
	if cur != nil {
		cur.delta -= entry.delta
	}
	if prev == nil {
		w.head = entry
	} else {
		prev.next = entry
	}
	return nil
}

// delete removes the entry for (task, event) if present, folding its
// delta into the following entry so downstream deadlines are
// preserved. Missing entries are a silent no-op. Caller must hold the
// critical section.
func (w *timerWheel) delete(task TaskID, event EventID) {
	entry, prev := w.find(task, event)
	if entry == nil {
		return
	}
	if entry.next != nil {
		entry.next.delta += entry.delta
	}
	if prev == nil {
		w.head = entry.next
	} else {
		prev.next = entry.next
	}
}

// update is delete followed by create.
func (w *timerWheel) update(task TaskID, event EventID, newDelayMS uint32) error {
	w.delete(task, event)
	return w.create(task, event, newDelayMS)
}

// remaining sums deltas from head through the matched entry. Caller
// must hold the critical section.
func (w *timerWheel) remaining(task TaskID, event EventID) (uint32, bool) {
	sum := uint32(0)
	cur := w.head
	for cur != nil {
		sum += cur.delta
		if cur.task == task && cur.event == event {
			return sum, true
		}
		cur = cur.next
	}
	return 0, false
}

// advance matures every entry whose cumulative delta is at most
// elapsedMS, firing them in list order (FIFO by original arming time
// among equal deadlines), and leaves the remaining head's delta
// rebased against whatever elapsed time is left over. Caller must hold
// the critical section — the tick ISR already does by calling through
// Scheduler.tick.
func (w *timerWheel) advance(elapsedMS uint32) {
	for w.head != nil && w.head.delta <= elapsedMS {
		elapsedMS -= w.head.delta
		fired := w.head
		w.head = w.head.next
		w.setBit(fired.task, fired.event)
	}
	if w.head != nil {
		w.head.delta -= elapsedMS
	}
}
