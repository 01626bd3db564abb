// Package st implements a cooperative, non-preemptive task/event
// scheduler for resource-constrained targets: a static task table, a
// per-task pending-event bitfield, a Δ-list timer wheel, and per-task
// message queues, driven by a priority, lowest-bit-first dispatcher.
//
// The scheduling core lives in internal/sched; this package re-exports
// its public surface as type aliases so callers never import the
// internal package directly.
package st

import (
	"context"

	"github.com/peos-rtos/st/internal/sched"
)

type (
	TaskID    = sched.TaskID
	EventID   = sched.EventID
	Entry     = sched.Entry
	Handler   = sched.Handler
	InitFn    = sched.InitFn
	Message   = sched.Message
	Logger    = sched.Logger
	Observer  = sched.Observer
	Config    = sched.Config
	Scheduler = sched.Scheduler
)

// MsgEvent is event id 0, reserved across every build's event width:
// set implicitly whenever a message is delivered to a task's queue.
const MsgEvent = sched.MsgEvent

// NoOpObserver discards every metrics observation.
type NoOpObserver = sched.NoOpObserver

// New builds a Scheduler from a static task table. Entries may be
// given in any order; dispatch priority is always ascending task id,
// lowest id highest priority.
func New(cfg Config, entries []Entry) *Scheduler {
	return sched.New(cfg, entries)
}

// Run is a convenience wrapper around Scheduler.Start for callers that
// don't need to hold onto the Scheduler beyond running it to
// completion or cancellation.
func Run(ctx context.Context, cfg Config, entries []Entry) error {
	return New(cfg, entries).Start(ctx)
}
