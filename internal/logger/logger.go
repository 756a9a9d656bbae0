// Package logger provides the leveled logging used throughout the core.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"mospfd/internal/assert"
)

type LogLevel int32

const (
	None LogLevel = iota
	Warn
	Info
	Debug
	Trace
)

func (l LogLevel) String() string {
	switch l {
	case None:
		return "NONE"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	case Trace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

const LogLevelEnv = "MOSPFD_LOG_LEVEL"

var level atomic.Int32

func init() {
	envvar, present := os.LookupEnv(LogLevelEnv)
	if !present {
		level.Store(int32(Info))
		return
	}

	parsed, ok := parseLevel(envvar)
	if !ok {
		level.Store(int32(Info))
		Warnf("Unknown log level '%s', defaulting to INFO", envvar)
		return
	}
	level.Store(int32(parsed))
}

func parseLevel(s string) (LogLevel, bool) {
	switch s {
	case "NONE":
		return None, true
	case "WARN":
		return Warn, true
	case "INFO":
		return Info, true
	case "DEBUG":
		return Debug, true
	case "TRACE":
		return Trace, true
	default:
		return None, false
	}
}

// SetLogLevel changes the active log level at runtime.
func SetLogLevel(l LogLevel) {
	level.Store(int32(l))
}

// GetLogLevel returns the currently active log level.
func GetLogLevel() LogLevel {
	return LogLevel(level.Load())
}

// Errorf prints an error message prefixed with "[ERROR] " and stops execution.
// A newline is added to the end of the message.
func Errorf(format string, v ...any) {
	log.Fatalf(fmt.Sprintf("[ERROR] %s", format), v...)
	assert.Never()
}

// Panicf acts similar to [Errorf] but panics instead of exiting.
// All deferred functions will execute and a stack trace is printed.
func Panicf(format string, v ...any) {
	log.Panicf(fmt.Sprintf("[ERROR] %s", format), v...)
	assert.Never()
}

// Warnf prints a message prefixed with "[WARN] ".
func Warnf(format string, v ...any) {
	if GetLogLevel() < Warn {
		return
	}
	log.Printf(fmt.Sprintf("[WARN] %s", format), v...)
}

// Infof prints an informational message prefixed with "[INFO] ".
func Infof(format string, v ...any) {
	if GetLogLevel() < Info {
		return
	}
	log.Printf(fmt.Sprintf("[INFO] %s", format), v...)
}

// Debugf prints a debug message prefixed with "[DEBUG] ".
func Debugf(format string, v ...any) {
	if GetLogLevel() < Debug {
		return
	}
	log.Printf(fmt.Sprintf("[DEBUG] %s", format), v...)
}

// Tracef prints a wire-level trace message prefixed with "[TRACE] ".
func Tracef(format string, v ...any) {
	if GetLogLevel() < Trace {
		return
	}
	log.Printf(fmt.Sprintf("[TRACE] %s", format), v...)
}
