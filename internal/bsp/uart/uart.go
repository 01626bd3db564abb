// Package uart provides the console transport for the scheduler demo:
// a real serial port when one is configured and present, falling back
// to an in-memory loopback pipe so the demo and its tests run the same
// way on a machine with no UART attached.
package uart

import (
	"io"
	"time"

	serial "github.com/daedaluz/goserial"

	"github.com/peos-rtos/st/internal/constants"
)

// Port is the minimal transport the CLI console needs: byte-stream
// read/write plus Close. *serial.Port and the loopback pipe both
// satisfy it directly.
type Port interface {
	io.ReadWriteCloser
}

// Open tries path as a real serial device, retrying briefly in case
// the device node appears after the process starts (e.g. a USB-serial
// adapter that enumerates a beat after boot). If path is empty, or
// every retry fails, it falls back to an in-memory loopback pipe so
// callers always get a usable Port.
func Open(path string, baud uint32) Port {
	if path == "" {
		return newLoopback()
	}

	opts := serial.NewOptions().SetReadTimeout(0)
	for attempt := 0; attempt < constants.UARTOpenMaxRetries; attempt++ {
		p, err := serial.Open(path, opts)
		if err == nil {
			if err := configure(p, baud); err == nil {
				return p
			}
			p.Close()
		}
		time.Sleep(constants.UARTOpenRetryDelay)
	}
	return newLoopback()
}

// configure puts the port into raw mode at the requested baud rate,
// the standard goserial incantation for a console (no echo, no line
// discipline processing).
func configure(p *serial.Port, baud uint32) error {
	attrs, err := p.GetAttr()
	if err != nil {
		return err
	}
	attrs.MakeRaw()
	attrs.SetSpeed(baudFlag(baud))
	return p.SetAttr(serial.TCSANOW, attrs)
}

func baudFlag(baud uint32) serial.CFlag {
	switch baud {
	case 9600:
		return serial.B9600
	case 19200:
		return serial.B19200
	case 38400:
		return serial.B38400
	case 57600:
		return serial.B57600
	case 115200:
		return serial.B115200
	default:
		return serial.B115200
	}
}

// loopback is the no-hardware fallback: writes are accepted and
// discarded (there is no terminal on the other end to print them),
// and reads block until Close, standing in for a UART that is
// physically present but has nothing connected.
type loopback struct {
	closed chan struct{}
}

func newLoopback() *loopback {
	return &loopback{closed: make(chan struct{})}
}

func (l *loopback) Write(p []byte) (int, error) {
	select {
	case <-l.closed:
		return 0, io.ErrClosedPipe
	default:
		return len(p), nil
	}
}

func (l *loopback) Read(p []byte) (int, error) {
	<-l.closed
	return 0, io.EOF
}

func (l *loopback) Close() error {
	select {
	case <-l.closed:
	default:
		close(l.closed)
	}
	return nil
}
