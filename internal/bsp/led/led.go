// Package led provides the GPIO pin backing the LED effects state
// machine: a real periph.io pin when the named pin resolves on the
// host, falling back to a logging no-op pin otherwise, so the demo
// runs identically on a Pi header and on a laptop.
package led

import (
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var initOnce sync.Once
var initErr error

// Pin is the one operation the LED effects state machine drives: set
// the pin high or low.
type Pin interface {
	SetOn(on bool) error
}

// Open resolves name (e.g. "GPIO17") to a host GPIO pin via periph.io.
// If periph can't initialize the host (not running on a board with
// GPIO, or the pin name doesn't exist), it returns a pin that logs
// transitions instead of failing — the LED effects are cosmetic, so a
// missing board is not fatal.
func Open(name string, logf func(format string, args ...any)) Pin {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	if initErr != nil {
		return &logPin{name: name, logf: logf}
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return &logPin{name: name, logf: logf}
	}
	if err := p.Out(gpio.Low); err != nil {
		return &logPin{name: name, logf: logf}
	}
	return &gpioPin{pin: p}
}

type gpioPin struct {
	pin gpio.PinIO
}

func (g *gpioPin) SetOn(on bool) error {
	level := gpio.Low
	if on {
		level = gpio.High
	}
	return g.pin.Out(level)
}

// logPin is the hardware-absent fallback: it just narrates state
// changes instead of driving a pin.
type logPin struct {
	name string
	logf func(format string, args ...any)
}

func (l *logPin) SetOn(on bool) error {
	if l.logf != nil {
		l.logf("led: %s -> %s (no GPIO backend)", l.name, onOff(on))
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

var _ Pin = (*gpioPin)(nil)
var _ Pin = (*logPin)(nil)
