// Package log defines the agent's logger interface. By default it writes
// through the Go logger; callers can swap in their own.
package log

import (
	"fmt"
	"log"
)

// Logger is the logging interface used across the agent.
type Logger interface {
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

var logger Logger = &DefaultLogger{}

// SetLogger replaces the process-wide logger.
func SetLogger(l Logger) { logger = l }

// Default returns the process-wide logger.
func Default() Logger { return logger }

// Errorf logs at error level.
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// Warnf logs at warning level.
func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

// Infof logs at info level.
func Infof(format string, args ...any) { logger.Infof(format, args...) }

// Debugf logs at debug level.
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

// Error logs at error level.
func Error(args ...any) { logger.Error(args...) }

// Warn logs at warning level.
func Warn(args ...any) { logger.Warn(args...) }

// Info logs at info level.
func Info(args ...any) { logger.Info(args...) }

// Debug logs at debug level.
func Debug(args ...any) { logger.Debug(args...) }

// DefaultLogger writes to stderr through the standard Go logger. Debug
// output is dropped unless Verbose is set.
type DefaultLogger struct {
	Verbose bool
}

func (l *DefaultLogger) Errorf(format string, args ...any) { log.Printf("[ERROR] "+format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { log.Printf("[WARN] "+format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { log.Printf("[INFO] "+format, args...) }

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func (l *DefaultLogger) Error(args ...any) { log.Print("[ERROR] " + fmt.Sprint(args...)) }
func (l *DefaultLogger) Warn(args ...any)  { log.Print("[WARN] " + fmt.Sprint(args...)) }
func (l *DefaultLogger) Info(args ...any)  { log.Print("[INFO] " + fmt.Sprint(args...)) }

func (l *DefaultLogger) Debug(args ...any) {
	if l.Verbose {
		log.Print("[DEBUG] " + fmt.Sprint(args...))
	}
}
