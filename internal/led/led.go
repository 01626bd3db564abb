// Package led implements the LED effects state machine: solid, blink,
// and pulse patterns driven entirely by the scheduler's timer wheel —
// the task handler re-arms its own event rather than busy-waiting.
package led

import (
	"sync"

	bspled "github.com/peos-rtos/st/internal/bsp/led"
	"github.com/peos-rtos/st/internal/constants"
	"github.com/peos-rtos/st/internal/sched"
)

// Effect selects the LED's current pattern.
type Effect int

const (
	EffectOff Effect = iota
	EffectSolid
	EffectBlink
	EffectPulse
)

// Controller is one LED's effects state, registered as a scheduler
// task. It owns no goroutine of its own — state advances only inside
// its Handle method, invoked by the dispatcher when its timer fires.
type Controller struct {
	mu     sync.Mutex
	pin    bspled.Pin
	task   sched.TaskID
	event  sched.EventID
	effect Effect
	period uint32
	on     bool
	sched  *sched.Scheduler
}

// NewController binds a Controller to a GPIO pin and the (task, event)
// pair it will use for its own re-arming timer.
func NewController(pin bspled.Pin, task sched.TaskID, event sched.EventID) *Controller {
	return &Controller{pin: pin, task: task, event: event, effect: EffectOff}
}

// SetEffect changes the active pattern and immediately kicks the
// state machine so the new pattern takes effect on the next dispatch
// pass rather than waiting out whatever timer the old pattern had
// armed.
func (c *Controller) SetEffect(effect Effect, periodMS uint32) {
	c.mu.Lock()
	c.effect = effect
	c.period = periodMS
	s := c.sched
	c.mu.Unlock()

	if s != nil {
		s.TimerDelete(c.task, c.event)
		_ = s.TimerCreate(c.task, c.event, 0)
	}
}

// Init arms the controller's first tick, suitable for use as an
// sched.Entry.Init.
func (c *Controller) Init(s *sched.Scheduler) {
	c.mu.Lock()
	c.sched = s
	c.mu.Unlock()
	c.applyAndRearm(s)
}

// Handle is the controller's sched.Entry.Handler: every firing just
// re-applies the current effect and re-arms for the next step.
func (c *Controller) Handle(s *sched.Scheduler, task sched.TaskID) {
	c.applyAndRearm(s)
}

func (c *Controller) applyAndRearm(s *sched.Scheduler) {
	c.mu.Lock()
	effect := c.effect
	period := c.period
	c.mu.Unlock()

	next := uint32(constants.LEDEffectTick.Milliseconds())
	switch effect {
	case EffectOff:
		c.setPin(false)
	case EffectSolid:
		c.setPin(true)
	case EffectBlink:
		c.mu.Lock()
		c.on = !c.on
		on := c.on
		c.mu.Unlock()
		c.setPin(on)
		if period > 0 {
			next = period
		}
	case EffectPulse:
		// A pulse is modeled as a fast blink: the effects state
		// machine here has no PWM backend, so "pulse" degrades to a
		// quicker on/off toggle than EffectBlink.
		c.mu.Lock()
		c.on = !c.on
		on := c.on
		c.mu.Unlock()
		c.setPin(on)
		if period > 0 {
			next = period / 2
			if next == 0 {
				next = 1
			}
		}
	}

	if effect == EffectOff {
		return
	}
	_ = s.TimerCreate(c.task, c.event, next)
}

func (c *Controller) setPin(on bool) {
	_ = c.pin.SetOn(on)
}
