package sched

import (
	"sync/atomic"
	"time"
)

// Clock is the monotonic millisecond time source. A hardware tick ISR
// normally drives it with Advance once per tick period; the counter
// itself is an atomic.Uint64, readable from task context without the
// critical section on a 64-bit host (narrower targets would need the
// bracket here too).
type Clock struct {
	ms atomic.Uint64
}

// NowMS returns milliseconds elapsed since the clock was created.
func (c *Clock) NowMS() uint64 {
	return c.ms.Load()
}

// NowSplit returns (seconds, millis), the way a platform that keeps a
// 32-bit seconds counter plus a 16-bit millisecond remainder would
// report the same instant.
func (c *Clock) NowSplit() (seconds uint32, millis uint16) {
	now := c.ms.Load()
	return uint32(now / 1000), uint16(now % 1000)
}

// Advance is the ISR-callable entry point: add elapsedMS to the
// counter. Callers are expected to follow it with a timer-wheel
// advance at decisecond granularity or finer (see Scheduler.tick).
func (c *Clock) Advance(elapsedMS uint64) {
	c.ms.Add(elapsedMS)
}

// tickerSource drives a Clock from a time.Ticker, standing in for the
// periodic hardware tick interrupt.
type tickerSource struct {
	ticker *time.Ticker
	tickMS uint64
	stop   chan struct{}
	done   chan struct{}
}

func newTickerSource(period time.Duration) *tickerSource {
	if period <= 0 {
		period = time.Millisecond
	}
	tickMS := uint64(period / time.Millisecond)
	if tickMS == 0 {
		tickMS = 1
	}
	return &tickerSource{
		ticker: time.NewTicker(period),
		tickMS: tickMS,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// run calls onTick(tickMS) once per period until Stop is called.
func (t *tickerSource) run(onTick func(elapsedMS uint64)) {
	defer close(t.done)
	defer t.ticker.Stop()
	for {
		select {
		case <-t.ticker.C:
			onTick(t.tickMS)
		case <-t.stop:
			return
		}
	}
}

func (t *tickerSource) Stop() {
	close(t.stop)
	<-t.done
}
