package sched

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestRegistryTaskMaxAndLookup(t *testing.T) {
	var initOrder []TaskID
	entries := []Entry{
		{Task: 0, Init: func(s *Scheduler) { initOrder = append(initOrder, 0) }, Handler: func(s *Scheduler, task TaskID) {}},
		{Task: 3, Init: func(s *Scheduler) { initOrder = append(initOrder, 3) }, Handler: func(s *Scheduler, task TaskID) {}},
	}
	r := newRegistry(entries)
	tassert.Equal(t, 4, r.taskMax())

	_, ok := r.handlerFor(1)
	tassert.False(t, ok)

	_, ok = r.handlerFor(3)
	tassert.True(t, ok)

	r.runInit(nil)
	tassert.Equal(t, []TaskID{0, 3}, initOrder)
}

func TestRegistrySortsEntriesByTask(t *testing.T) {
	var initOrder []TaskID
	entries := []Entry{
		{Task: 5, Init: func(s *Scheduler) { initOrder = append(initOrder, 5) }, Handler: func(s *Scheduler, task TaskID) {}},
		{Task: 2, Init: func(s *Scheduler) { initOrder = append(initOrder, 2) }, Handler: func(s *Scheduler, task TaskID) {}},
		{Task: 4, Init: func(s *Scheduler) { initOrder = append(initOrder, 4) }, Handler: func(s *Scheduler, task TaskID) {}},
	}
	r := newRegistry(entries)

	got := make([]TaskID, 0, len(r.entries))
	for _, e := range r.entries {
		got = append(got, e.Task)
	}
	tassert.Equal(t, []TaskID{2, 4, 5}, got)

	// The caller's slice is left alone.
	tassert.Equal(t, TaskID(5), entries[0].Task)

	r.runInit(nil)
	tassert.Equal(t, []TaskID{2, 4, 5}, initOrder)
}
