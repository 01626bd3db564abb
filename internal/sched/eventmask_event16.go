//go:build event16

package sched

// EventMask narrowed to 16 bits (EVENT_MAX=16). See eventmask.go.
type EventMask = uint16

// EventMax is the number of legal event ids for this build.
const EventMax = 16
