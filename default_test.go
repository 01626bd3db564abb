package st

import "testing"

func TestDefaultSchedulerHelpers(t *testing.T) {
	defer SetDefault(nil)

	// Before SetDefault the ISR helpers are silent no-ops.
	if err := EventSet(0, 1); err != nil {
		t.Fatalf("EventSet with no default: %v", err)
	}
	TickAdvance(5)

	s := NewTestScheduler([]Entry{
		{Task: 0, Handler: func(s *Scheduler, task TaskID) {}},
	})
	SetDefault(s)
	if Default() != s {
		t.Fatal("Default did not return the installed scheduler")
	}

	if err := EventSet(0, 1); err != nil {
		t.Fatalf("EventSet: %v", err)
	}
	if s.EventsPending(0)&(1<<1) == 0 {
		t.Fatal("EventSet via default did not set the bit")
	}
	if err := EventClear(0, 1); err != nil {
		t.Fatalf("EventClear: %v", err)
	}
	if s.EventsPending(0) != 0 {
		t.Fatal("EventClear via default left bits set")
	}

	m := s.MsgAlloc(2)
	if m == nil {
		t.Fatal("MsgAlloc returned nil")
	}
	if err := MsgSend(0, m); err != nil {
		t.Fatalf("MsgSend: %v", err)
	}
	if got := s.MsgRecv(0); got != m {
		t.Fatal("MsgSend via default did not reach the queue")
	}
	s.MsgFree(m)

	if err := s.TimerCreate(0, 2, 5); err != nil {
		t.Fatalf("TimerCreate: %v", err)
	}
	TickAdvance(5)
	if s.EventsPending(0)&(1<<2) == 0 {
		t.Fatal("TickAdvance via default did not mature the timer")
	}
}
