package sched

import "time"

// dispatch runs one full priority scan: walk tasks in ascending
// task-id order (the registry keeps its table sorted; lower id is
// higher priority), and for the first task with any event pending,
// consume its lowest-set bit and return immediately — a fresh scan
// restarts from the top of the priority list next call, so a
// high-priority task that keeps re-arming itself can starve lower
// ones. That starvation is strict id priority working as intended,
// not a bug to route around here.
//
// Returns the consumed (task, event) pair and whether anything was
// pending; the caller follows up with runHandler outside the lock.
func (s *Scheduler) dispatch() (task TaskID, event EventID, ran bool) {
	s.crit.enter()
	defer s.crit.exit()

	for _, e := range s.registry.entries {
		bit, ok := s.events.lowestSet(e.Task)
		if !ok {
			continue
		}
		s.events.clear(e.Task, bit)
		return e.Task, bit, true
	}
	return 0, 0, false
}

// runHandler invokes the handler for (task) outside the critical
// section — handlers run with interrupts (other goroutines calling
// ISR-context methods) free to proceed. The critical section is
// re-entered only for the bookkeeping inside EventSet/MsgSend/etc.
// that the handler itself calls.
func (s *Scheduler) runHandler(task TaskID, event EventID) {
	h, ok := s.registry.handlerFor(task)
	if !ok {
		return
	}
	s.curTask.Store(uint32(task))
	start := time.Now()
	h(s, task)
	elapsed := uint64(time.Since(start).Nanoseconds())
	s.curTask.Store(noTask)
	s.metrics.recordDispatch(task, event, elapsed)
	if s.observer != nil {
		s.observer.ObserveDispatch(task, event, elapsed)
	}
}
