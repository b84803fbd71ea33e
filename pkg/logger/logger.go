// Package logger defines the logging contract used across sweepkit so that
// the grid builder and the results analysis never depend on a concrete backend.
package logger

import (
	"fmt"
	"strings"
)

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for per-row detail.
	DebugLevel              // DebugLevel is used for phase and truncation detail.
	InfoLevel               // InfoLevel is used for run summaries.
	WarnLevel               // WarnLevel is used for suspicious but accepted input.
	ErrorLevel              // ErrorLevel is used for failed operations.
	FatalLevel              // FatalLevel logs and exits the program.
)

var levelNames = map[string]Level{
	"disabled": Disabled,
	"trace":    TraceLevel,
	"debug":    DebugLevel,
	"info":     InfoLevel,
	"warn":     WarnLevel,
	"error":    ErrorLevel,
	"fatal":    FatalLevel,
}

// ParseLevel converts a textual level such as "info" into a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Disabled, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

type Logger interface {
	WithField(key string, value any) Logger  // WithField returns a logger carrying the key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger carrying all fields.
	WithError(err error) Logger              // WithError returns a logger carrying err.

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level)
	GetLevel() Level
}
