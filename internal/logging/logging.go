package logging

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// EnvDebug enables the debug file loggers when set
const EnvDebug = "MEZDISK_DEBUG"

// TimeFormat is used by every logger this package creates
const TimeFormat = "15:04:05.00"

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if MEZDISK_DEBUG environment variable is set
	if os.Getenv(EnvDebug) == "" {
		Debug = New(io.Discard, log.InfoLevel)
		Scanner = New(io.Discard, log.InfoLevel)
		Enabled = false
		return
	}

	Enabled = true

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Debug = newPrefixed(os.Stderr, "debug")
		Scanner = newPrefixed(os.Stderr, "scanner")
		return
	}

	Debug = newPrefixed(debugFile, "debug")
	Scanner = newPrefixed(debugFile, "scanner")
}

// New creates a timestamped logger writing to w at the given level
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
}

func newPrefixed(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           log.DebugLevel,
		Prefix:          prefix,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger attached to ctx, or log.Default() when there is none
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
