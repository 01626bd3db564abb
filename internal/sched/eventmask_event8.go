//go:build event8

package sched

// EventMask narrowed to 8 bits (EVENT_MAX=8). See eventmask.go.
type EventMask = uint8

// EventMax is the number of legal event ids for this build.
const EventMax = 8
