package st

import (
	"context"
	"testing"
	"time"
)

func TestMetricsTracksDispatchesAndTimers(t *testing.T) {
	entries := []Entry{
		{Task: 0, Init: func(s *Scheduler) {
			if err := s.TimerCreate(0, 1, 1); err != nil {
				t.Fatalf("TimerCreate: %v", err)
			}
		}, Handler: func(s *Scheduler, task TaskID) {
			s.Stop()
		}},
	}
	s := New(Config{TickMS: time.Millisecond}, entries)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	snap := s.MetricsSnapshot()
	if snap.Dispatches == 0 {
		t.Error("expected at least one dispatch")
	}
	if snap.TimerFires == 0 {
		t.Error("expected at least one timer fire")
	}
	if snap.UptimeNs == 0 {
		t.Error("expected nonzero uptime")
	}
}

func TestMetricsMessageCounters(t *testing.T) {
	s := NewTestScheduler([]Entry{
		{Task: 0, Handler: func(s *Scheduler, task TaskID) {}},
		{Task: 1, Handler: func(s *Scheduler, task TaskID) {}},
	})

	m := s.MsgAlloc(4)
	if m == nil {
		t.Fatal("expected non-nil message")
	}
	if err := s.MsgSend(1, m); err != nil {
		t.Fatalf("MsgSend: %v", err)
	}
	s.MsgRecv(1)

	snap := s.MetricsSnapshot()
	if snap.MsgSends != 1 || snap.MsgRecvs != 1 {
		t.Errorf("expected 1 send and 1 recv, got sends=%d recvs=%d", snap.MsgSends, snap.MsgRecvs)
	}
}

func TestMetricsAllocFailureCounted(t *testing.T) {
	s := NewTestScheduler([]Entry{
		{Task: 0, Handler: func(s *Scheduler, task TaskID) {}},
	})
	m := s.MsgAlloc(-1)
	if m != nil {
		t.Fatal("expected nil message for invalid size")
	}
	snap := s.MetricsSnapshot()
	if snap.MsgFails != 1 {
		t.Errorf("expected 1 alloc failure, got %d", snap.MsgFails)
	}
}
