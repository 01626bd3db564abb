// Package constants holds build-time tunables for the scheduler core
// and its default demo wiring.
package constants

import "time"

// Core scheduling limits.
//
// The task ceiling and the event width are compile-time choices:
// DefaultTaskMax is a plain constant (Scheduler.New floors the event
// matrix and queue table at it regardless of how many Entry values a
// caller actually registers), and the event width is chosen by build
// tag (see internal/sched/eventmask_*.go) rather than by a generic
// type parameter.
const (
	// DefaultTaskMax is the floor Scheduler.New sizes its task-indexed
	// tables to, even when fewer tasks are registered.
	DefaultTaskMax = 8

	// MsgEvent is event 0, reserved across all event widths: it is set
	// implicitly whenever a message is delivered to a task's queue.
	MsgEvent = 0

	// DefaultTickMS is the nominal period of the simulated tick ISR.
	DefaultTickMS = 1
)

// Timing constants for the demo dispatcher and BSP collaborators.
const (
	// UARTOpenRetryDelay is how long the console driver waits between
	// attempts to open a configured serial device that isn't present yet.
	UARTOpenRetryDelay = 100 * time.Millisecond

	// UARTOpenMaxRetries bounds how long UARTOpenRetryDelay is applied
	// before the console driver falls back to an in-memory pipe.
	UARTOpenMaxRetries = 10

	// LEDEffectTick is the interval at which the LED effects state
	// machine re-arms its own timer for the solid effect, and for blink
	// and pulse when no period is given. A blink or pulse period passed
	// to SetEffect replaces it, even when shorter.
	LEDEffectTick = 50 * time.Millisecond
)

// Message allocator size buckets, in bytes. Mirrors the shape of a
// size-bucketed pool, scaled down from disk-I/O buffer sizes to
// task-to-task message payload sizes.
const (
	MsgBucketSmall  = 32
	MsgBucketMedium = 128
	MsgBucketLarge  = 512
	MsgBucketXLarge = 2048
)
