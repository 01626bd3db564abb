//go:build !event8 && !event16

package sched

// EventMask is the per-task pending-event bitfield scalar. The width
// is a compile-time choice, selected by build tag rather than a type
// parameter. This file is the default build (32 events per task);
// build with -tags event16 or -tags event8 to narrow it (see
// eventmask_event16.go, eventmask_event8.go).
type EventMask = uint32

// EventMax is the number of legal event ids for this build. Event 0 is
// always MsgEvent regardless of width.
const EventMax = 32
