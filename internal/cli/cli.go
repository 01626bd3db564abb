// Package cli implements the console task: a line-oriented command
// reader over the UART BSP port, dispatched as one scheduler task.
// Command registration is intentionally a stub — see RegisterCommand.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/peos-rtos/st/internal/bsp/uart"
	"github.com/peos-rtos/st/internal/sched"
)

// CommandFunc handles one parsed command line's arguments, writing
// any response to out.
type CommandFunc func(out io.Writer, args []string) error

// Console is the CLI task: it reads newline-terminated input from its
// UART port in its own reader goroutine (the one legitimate
// ISR-context caller this package has — a real UART RX interrupt would
// play the same role) and feeds parsed lines to the dispatcher via its
// own task's message queue.
type Console struct {
	port uart.Port
	task sched.TaskID
}

// NewConsole binds a Console to a UART port and the task the scheduler
// will notify (via the implicit MsgEvent) when input lines arrive.
func NewConsole(port uart.Port, task sched.TaskID) *Console {
	return &Console{port: port, task: task}
}

// RegisterCommand is not implemented: dynamic command registration is
// deferred, and the console always echoes input instead of dispatching
// to user-registered handlers. Call sites should expect this to return
// a non-nil error and treat the command table as fixed at the built-in
// echo behavior for now.
func (c *Console) RegisterCommand(name string, fn CommandFunc) error {
	return sched.ErrNotImplemented
}

// Init starts the background reader goroutine (not the dispatcher —
// reading a byte stream is inherently blocking, which a cooperative
// task handler must never be) and is suitable for use as an
// sched.Entry.Init.
func (c *Console) Init(s *sched.Scheduler) {
	go c.readLoop(s)
}

func (c *Console) readLoop(s *sched.Scheduler) {
	reader := bufio.NewReader(c.port)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			c.deliver(s, line)
		}
		if err != nil {
			return
		}
	}
}

func (c *Console) deliver(s *sched.Scheduler, line string) {
	line = strings.TrimRight(line, "\r\n")
	m := s.MsgAlloc(len(line))
	if m == nil {
		return
	}
	copy(m.Bytes(), line)
	_ = s.MsgSend(c.task, m)
}

// Handle is the Console's sched.Entry.Handler: drain every queued
// input line and echo it back as "CMD:<text>" until RegisterCommand
// grows a real command table.
func (c *Console) Handle(s *sched.Scheduler, task sched.TaskID) {
	for {
		m := s.MsgRecv(task)
		if m == nil {
			return
		}
		line := string(m.Bytes())
		s.MsgFree(m)
		fmt.Fprintf(c.port, "CMD:%s\n", line)
	}
}
