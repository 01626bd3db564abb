package sched

import "sort"

// Handler is one task's event handler. The dispatched event is not
// passed directly — handlers re-query via EventsPending(task) if they
// care which bits are still set, so the signature only carries the
// task identity. The (task, event) pair the dispatcher consumed still
// reaches Observer.ObserveDispatch and Metrics for instrumentation.
type Handler func(s *Scheduler, task TaskID)

// InitFn runs once at Start, in ascending task-id order, before the
// dispatcher's first scan.
type InitFn func(s *Scheduler)

// Entry binds a TaskID slot to its handler and optional init
// function — one row of the static task table.
type Entry struct {
	Task    TaskID
	Init    InitFn
	Handler Handler
}

// registry is the immutable, post-construction task table, held in
// ascending task-id order. Built once in New and never mutated
// afterward, so it needs no locking.
type registry struct {
	entries []Entry
	byTask  map[TaskID]Handler
}

func newRegistry(entries []Entry) *registry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	// Priority is task id, not registration order: keep the table
	// sorted so the dispatch scan and the init pass both service lower
	// ids first no matter how the caller ordered the slice.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Task < sorted[j].Task })

	r := &registry{
		entries: sorted,
		byTask:  make(map[TaskID]Handler, len(sorted)),
	}
	for _, e := range sorted {
		r.byTask[e.Task] = e.Handler
	}
	return r
}

func (r *registry) taskMax() int {
	max := 0
	for _, e := range r.entries {
		if int(e.Task)+1 > max {
			max = int(e.Task) + 1
		}
	}
	return max
}

func (r *registry) runInit(s *Scheduler) {
	for _, e := range r.entries {
		if e.Init != nil {
			e.Init(s)
		}
	}
}

func (r *registry) handlerFor(task TaskID) (Handler, bool) {
	h, ok := r.byTask[task]
	return h, ok
}
