package st

import (
	"time"

	"github.com/peos-rtos/st/internal/constants"
)

// Re-exported build-time tunables, for callers that want the defaults
// without reaching into internal/constants.
const (
	DefaultTaskMax = constants.DefaultTaskMax
	DefaultTickMS  = constants.DefaultTickMS
)

const (
	UARTOpenMaxRetries = constants.UARTOpenMaxRetries
)

var (
	UARTOpenRetryDelay time.Duration = constants.UARTOpenRetryDelay
	LEDEffectTick      time.Duration = constants.LEDEffectTick
)
