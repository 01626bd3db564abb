package sched

// TaskID identifies a cooperative task. Dense, assigned by the
// registry in task_id order; valid values are [0, TaskMax).
type TaskID uint8

// EventID identifies one bit in a task's event bitfield. Events are a
// per-task namespace: event 0 means different things to different
// tasks, except that event 0 is always MsgEvent, set implicitly by the
// message queue.
type EventID uint8

// MsgEvent is event id 0, reserved across every EventMask width.
const MsgEvent EventID = 0
