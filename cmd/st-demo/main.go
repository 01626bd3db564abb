// Command st-demo wires up the cooperative scheduler with a blinking
// LED task and a console task — the reference integration for the
// BSP, CLI, and LED-effects collaborators.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peos-rtos/st"
	"github.com/peos-rtos/st/internal/bsp/led"
	"github.com/peos-rtos/st/internal/bsp/uart"
	"github.com/peos-rtos/st/internal/cli"
	ledfx "github.com/peos-rtos/st/internal/led"
	"github.com/peos-rtos/st/internal/logging"
)

const (
	taskLED = st.TaskID(0)
	taskCLI = st.TaskID(1)

	eventLEDTick = st.EventID(1)
)

func main() {
	var (
		ledPin   = flag.String("led-pin", "", "GPIO pin name for the demo LED (e.g. GPIO17); empty logs transitions instead")
		uartPath = flag.String("uart", "", "serial device path for the console (e.g. /dev/ttyUSB0); empty uses an in-memory fallback")
		baud     = flag.Uint("baud", 115200, "console baud rate")
		blinkMS  = flag.Uint("blink-ms", 500, "LED blink half-period in milliseconds")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logConfig := logging.DefaultConfig()
	logConfig.Level = level
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	pin := led.Open(*ledPin, logger.WithComponent("led").Infof)
	controller := ledfx.NewController(pin, taskLED, eventLEDTick)

	port := uart.Open(*uartPath, uint32(*baud))
	defer port.Close()
	console := cli.NewConsole(port, taskCLI)

	entries := []st.Entry{
		{Task: taskLED, Init: controller.Init, Handler: controller.Handle},
		{Task: taskCLI, Init: console.Init, Handler: console.Handle},
	}

	cfg := st.Config{
		TickMS: time.Millisecond,
		Logger: logger.WithComponent("sched"),
	}
	s := st.New(cfg, entries)

	controller.SetEffect(ledfx.EffectBlink, uint32(*blinkMS))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	fmt.Println("st-demo running; Ctrl+C to stop")
	if err := s.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler exited with error", "error", err)
		os.Exit(1)
	}

	snap := s.MetricsSnapshot()
	logger.Info("scheduler stopped",
		"dispatches", snap.Dispatches,
		"timer_fires", snap.TimerFires,
		"msg_sends", snap.MsgSends)
}
