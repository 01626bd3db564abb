package sched

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/peos-rtos/st/internal/constants"
)

// noTask marks curTask when no handler is currently executing.
const noTask = ^uint32(0)

// Config carries what a board-support layer supplies at build time:
// tick period, idle hook, allocator, and logging/observer sinks.
type Config struct {
	// TickMS is the simulated hardware tick period. Defaults to
	// constants.DefaultTickMS.
	TickMS time.Duration
	// IdleHook runs once per dispatch pass that found nothing
	// pending — the platform's low-power wait. May be nil.
	IdleHook func()
	// Allocator backs MsgAlloc/MsgFree. Defaults to a bufferPool sized
	// by MaxMsgSize.
	Allocator Allocator
	// MaxMsgSize bounds the default Allocator; ignored if Allocator is
	// set explicitly. Zero means unbounded.
	MaxMsgSize int
	// CPUAffinity, if non-empty, pins the dispatcher goroutine to the
	// given CPU set via unix.SchedSetaffinity, standing in for a
	// single-core MCU's run-to-completion guarantee on multi-core
	// hosts.
	CPUAffinity []int
	Logger      Logger
	Observer    Observer
	// ManualClock disables the background tick goroutine; tests drive
	// time with Scheduler.Tick instead, giving deterministic control
	// over exactly when timers mature relative to dispatch.
	ManualClock bool
}

// Scheduler is the cooperative kernel: critical section + clock +
// event matrix + timer wheel + per-task message queues + priority
// dispatcher + static task registry.
type Scheduler struct {
	crit     critical
	clock    Clock
	events   *eventMatrix
	timers   *timerWheel
	queues   []msgQueue
	registry *registry
	alloc    Allocator
	metrics  *Metrics
	logger   Logger
	observer Observer

	cfg    Config
	ticker *tickerSource

	curTask atomic.Uint32
	running atomic.Bool
	stopCh  chan struct{}
}

// New builds a Scheduler from a static task table. Entries may be
// given in any order; dispatch priority is always ascending task id,
// lowest id highest priority.
func New(cfg Config, entries []Entry) *Scheduler {
	reg := newRegistry(entries)
	taskMax := reg.taskMax()
	if taskMax < constants.DefaultTaskMax {
		// The event matrix and queue table are sized to a fixed floor
		// even when fewer tasks are actually registered, so a build
		// that later adds a task below the ceiling never needs to
		// resize those tables.
		taskMax = constants.DefaultTaskMax
	}

	s := &Scheduler{
		registry: reg,
		queues:   make([]msgQueue, taskMax),
		metrics:  NewMetrics(),
		logger:   cfg.Logger,
		observer: cfg.Observer,
		cfg:      cfg,
		stopCh:   make(chan struct{}),
	}
	s.curTask.Store(noTask)
	s.events = newEventMatrix(taskMax)
	s.timers = newTimerWheel(func(task TaskID, event EventID) {
		s.events.set(task, event)
		s.metrics.recordTimerFire()
		s.observer.ObserveTimerFire(task, event)
	})

	if cfg.Allocator != nil {
		s.alloc = cfg.Allocator
	} else {
		s.alloc = newBufferPool(cfg.MaxMsgSize)
	}
	if s.observer == nil {
		s.observer = NoOpObserver{}
	}
	return s
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}

// Start runs task init hooks, arms the tick source, and runs the
// dispatch loop until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return newError("Start", 0, 0, CodeInvalidArgument, "scheduler already running")
	}
	defer s.running.Store(false)
	defer s.metrics.Stop()

	if len(s.cfg.CPUAffinity) > 0 {
		// SchedSetaffinity applies to the calling OS thread, so the
		// dispatcher goroutine has to stay on that thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	if err := s.pinCPU(); err != nil {
		s.logf("sched: cpu affinity not applied: %v", err)
	}

	s.logf("sched: starting, %d tasks, tick=%s", len(s.registry.entries), s.tickPeriod())
	s.registry.runInit(s)

	var tickDone chan struct{}
	if !s.cfg.ManualClock {
		s.ticker = newTickerSource(s.tickPeriod())
		tickDone = make(chan struct{})
		go func() {
			defer close(tickDone)
			s.ticker.run(s.tick)
		}()
		defer func() {
			s.ticker.Stop()
			<-tickDone
		}()
	}

	for {
		select {
		case <-ctx.Done():
			s.logf("sched: context cancelled, stopping")
			return ctx.Err()
		case <-s.stopCh:
			s.logf("sched: stop requested")
			return nil
		default:
		}

		task, event, ran := s.dispatch()
		if ran {
			s.runHandler(task, event)
			continue
		}

		s.metrics.recordIdle()
		s.observer.ObserveIdle()
		if s.cfg.IdleHook != nil {
			s.cfg.IdleHook()
		} else {
			// No platform idle hook: yield briefly rather than
			// spinning a hosted goroutine at 100% CPU. Real firmware
			// would enter a low-power sleep here instead.
			time.Sleep(time.Millisecond)
		}
	}
}

// Stop requests the dispatch loop to exit after its current pass.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

func (s *Scheduler) tickPeriod() time.Duration {
	if s.cfg.TickMS > 0 {
		return s.cfg.TickMS
	}
	return time.Millisecond
}

// Tick manually advances the scheduler's clock and timer wheel by
// elapsedMS. Only meaningful when Config.ManualClock is set; calling
// it on a scheduler driven by the real tick source just adds an extra
// advance on top of the background one.
func (s *Scheduler) Tick(elapsedMS uint64) {
	s.tick(elapsedMS)
}

// tick is the simulated tick ISR: advance the clock, then mature the
// timer wheel under the critical section.
func (s *Scheduler) tick(elapsedMS uint64) {
	s.clock.Advance(elapsedMS)
	s.crit.section(func() {
		s.timers.advance(uint32(elapsedMS))
	})
}

func (s *Scheduler) pinCPU() error {
	if len(s.cfg.CPUAffinity) == 0 {
		return nil
	}
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range s.cfg.CPUAffinity {
		set.Set(cpu)
	}
	return unix.SchedSetaffinity(0, &set)
}

// --- ISR-context and task-context public API ---

// checkIDs guards the public entry points against out-of-range task or
// event ids and registry gaps (an in-range task id with no registered
// handler — any event posted there would be stuck forever, since the
// dispatch scan only visits registered tasks). These are programmer
// errors, not recoverable conditions, so the AssertHandler fires
// first; if the installed handler elects to continue (a release
// build's silent-continue policy), the call still surfaces an
// invalid-argument error instead of corrupting the matrix.
func (s *Scheduler) checkIDs(op string, task TaskID, event EventID) error {
	if int(task) >= len(s.queues) {
		assert(false, op+": task id out of range")
		return newError(op, task, event, CodeInvalidArgument, "task id out of range")
	}
	if int(event) >= EventMax {
		assert(false, op+": event id out of range")
		return newError(op, task, event, CodeInvalidArgument, "event id out of range")
	}
	if _, ok := s.registry.handlerFor(task); !ok {
		assert(false, op+": no task registered for id")
		return newError(op, task, event, CodeInvalidArgument, "no task registered for id")
	}
	return nil
}

// EventSet marks event pending for task. Callable from any context.
func (s *Scheduler) EventSet(task TaskID, event EventID) error {
	if err := s.checkIDs("EventSet", task, event); err != nil {
		return err
	}
	s.crit.section(func() {
		s.events.set(task, event)
	})
	return nil
}

// EventClear clears event for task without running its handler.
func (s *Scheduler) EventClear(task TaskID, event EventID) error {
	if err := s.checkIDs("EventClear", task, event); err != nil {
		return err
	}
	s.crit.section(func() {
		s.events.clear(task, event)
	})
	return nil
}

// EventsPending returns task's raw pending bitfield, letting a handler
// that was woken for one event also notice siblings set since.
func (s *Scheduler) EventsPending(task TaskID) EventMask {
	var mask EventMask
	s.crit.section(func() {
		mask = s.events.pending(task)
	})
	return mask
}

// TimerCreate arms a one-shot timer that sets event on task after
// delayMS milliseconds. Returns ErrAlreadyExists if (task, event)
// already has an armed timer.
func (s *Scheduler) TimerCreate(task TaskID, event EventID, delayMS uint32) error {
	if err := s.checkIDs("TimerCreate", task, event); err != nil {
		return err
	}
	var err error
	s.crit.section(func() {
		err = s.timers.create(task, event, delayMS)
	})
	return err
}

// TimerDelete disarms (task, event)'s timer if present; a no-op
// otherwise.
func (s *Scheduler) TimerDelete(task TaskID, event EventID) {
	s.crit.section(func() {
		s.timers.delete(task, event)
	})
}

// TimerUpdate re-arms (task, event) with a new delay, replacing any
// existing entry.
func (s *Scheduler) TimerUpdate(task TaskID, event EventID, newDelayMS uint32) error {
	if err := s.checkIDs("TimerUpdate", task, event); err != nil {
		return err
	}
	var err error
	s.crit.section(func() {
		err = s.timers.update(task, event, newDelayMS)
	})
	return err
}

// TimerGetRemaining reports the milliseconds left before (task,
// event)'s timer fires, or false if no such timer is armed.
func (s *Scheduler) TimerGetRemaining(task TaskID, event EventID) (uint32, bool) {
	var ms uint32
	var ok bool
	s.crit.section(func() {
		ms, ok = s.timers.remaining(task, event)
	})
	return ms, ok
}

// MsgAlloc reserves size bytes of payload storage. Returns nil on
// resource exhaustion — callers must check before writing into the
// handle.
func (s *Scheduler) MsgAlloc(size int) *Message {
	m := s.alloc.Alloc(size)
	if m == nil {
		s.metrics.recordMsgAllocFailure()
		s.observer.ObserveMsgAllocFailure(size)
	}
	return m
}

// MsgFree releases a handle back to the allocator. Safe to call with a
// handle that was never sent (e.g. alloc-then-decide-not-to-send).
func (s *Scheduler) MsgFree(m *Message) {
	s.alloc.Free(m)
}

// MsgSend enqueues m on receiver's queue and sets MsgEvent on it.
// Ownership of m transfers to the queue; the caller must not touch it
// again until it comes back out of a matching MsgRecv.
func (s *Scheduler) MsgSend(receiver TaskID, m *Message) error {
	if err := s.checkIDs("MsgSend", receiver, MsgEvent); err != nil {
		return err
	}
	if m == nil {
		assert(false, "MsgSend: nil message")
		return newError("MsgSend", receiver, MsgEvent, CodeInvalidArgument, "nil message")
	}
	s.crit.section(func() {
		s.queues[receiver].enqueue(m)
		s.events.set(receiver, MsgEvent)
	})
	s.metrics.recordMsgSend()
	s.observer.ObserveMsgSend(receiver, m.Len())
	return nil
}

// MsgRecv dequeues the next message for task, or nil if its queue is
// empty. Handlers call this in a loop on MsgEvent, since MsgEvent
// carries no count of how many messages arrived.
func (s *Scheduler) MsgRecv(task TaskID) *Message {
	var m *Message
	s.crit.section(func() {
		m = s.queues[task].dequeue()
	})
	if m != nil {
		s.metrics.recordMsgRecv()
		s.observer.ObserveMsgRecv(task, m.Len())
	}
	return m
}

// SelfTaskID returns the TaskID of the handler currently executing on
// the dispatcher goroutine, or false when no handler is running. The
// value is shared, not per goroutine: a call from another goroutine
// while a handler runs reports that handler's task.
func (s *Scheduler) SelfTaskID() (TaskID, bool) {
	v := s.curTask.Load()
	if v == noTask {
		return 0, false
	}
	return TaskID(v), true
}

// NowMS returns the scheduler's simulated uptime in milliseconds.
func (s *Scheduler) NowMS() uint64 { return s.clock.NowMS() }

// NowSplit returns NowMS split into (seconds, millis).
func (s *Scheduler) NowSplit() (uint32, uint16) { return s.clock.NowSplit() }

// Metrics returns the live metrics instance.
func (s *Scheduler) Metrics() *Metrics { return s.metrics }

// MetricsSnapshot returns a point-in-time copy of the scheduler's
// metrics.
func (s *Scheduler) MetricsSnapshot() MetricsSnapshot { return s.metrics.Snapshot() }

func (s *Scheduler) String() string {
	return fmt.Sprintf("Scheduler{tasks=%d, running=%v}", len(s.registry.entries), s.running.Load())
}
