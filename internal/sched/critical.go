package sched

import (
	"sync"
	"sync/atomic"
)

// critical is the critical-section primitive: a scoped bracket that
// must be held whenever shared scheduler state (event matrix, timer
// list, queue heads) is mutated or read from a context where a
// concurrent mutation is possible.
//
// On a real MCU this disables the specific interrupt sources that can
// touch core state; a hosted Go process has no interrupt controller to
// program, so a mutex plays that role. Every goroutine that plays the
// role of an ISR (the tick ticker, a UART reader goroutine) must take
// this exactly like a task-context caller would.
//
// Nesting counter is for introspection only (catching an exit without
// a matching enter in tests); the core itself never re-enters the lock
// from within an already-held section — internal helpers that run
// under the lock are unexported and assume it's held, the public,
// locking entry points call them exactly once per invocation.
type critical struct {
	mu      sync.Mutex
	nesting atomic.Int32
}

func (c *critical) enter() {
	c.mu.Lock()
	c.nesting.Add(1)
}

func (c *critical) exit() {
	n := c.nesting.Add(-1)
	assert(n >= 0, "critical section exit without matching enter")
	c.mu.Unlock()
}

// section runs fn with the critical section held.
func (c *critical) section(fn func()) {
	c.enter()
	defer c.exit()
	fn()
}

// depth reports the current nesting depth, for tests asserting the
// section is balanced.
func (c *critical) depth() int32 {
	return c.nesting.Load()
}
