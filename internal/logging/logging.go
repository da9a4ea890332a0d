package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// EnvVar enables the debug log file when set
const EnvVar = "DISKMAP_DEBUG"

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Layout  *log.Logger
	Core    *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if DISKMAP_DEBUG environment variable is set
	if os.Getenv(EnvVar) == "" {
		Setup(io.Discard, log.FatalLevel+1)
		Enabled = false
		return
	}

	Enabled = true

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Setup(os.Stderr, log.DebugLevel)
		return
	}
	Setup(debugFile, log.DebugLevel)
}

// Setup points all package loggers at w, filtering below level
func Setup(w io.Writer, level log.Level) {
	base := New(w, level)
	Debug = base
	Scanner = base.WithPrefix("scanner")
	Layout = base.WithPrefix("layout")
	Core = base.WithPrefix("core")
}

// New creates a logger with microsecond timestamps
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMicro,
		Level:           level,
	})
}
