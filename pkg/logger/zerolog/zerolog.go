package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the zerolog backend.
type Options struct {
	Level      string    // trace, debug, info, warn, error, fatal or disabled
	TimeFormat string    // layout used by the console timestamp column
	Colored    bool      // colour the console columns
	JSON       bool      // emit raw JSON events instead of the console layout
	Out        io.Writer // defaults to os.Stderr so reports on stdout stay clean
}

// New builds a zerolog logger from opts and wraps it in an Adapter.
func New(opts Options) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	if !opts.JSON {
		out = consoleWriter(out, opts.TimeFormat, opts.Colored)
	}

	log := zerolog.New(out).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return NewAdapter(&log), nil
}

func consoleWriter(out io.Writer, timeFormat string, colored bool) zerolog.ConsoleWriter {
	paint := func(color func(string, ...any) string, format string, args ...any) string {
		if !colored {
			return fmt.Sprintf(format, args...)
		}
		return color(format, args...)
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !colored,
		TimeFormat: timeFormat,
		FormatLevel: func(i any) string {
			return formatLevel(i, paint)
		},
		FormatMessage: func(i any) string {
			return paint(term.Whitef, "> %s", padMessage(i))
		},
		FormatCaller: func(i any) string {
			caller := formatCaller(i)
			if caller == "" {
				return ""
			}
			return paint(term.Yellowf, "[%s]", caller)
		},
		FormatTimestamp: func(i any) string {
			return paint(term.Cyanf, "[%s]", formatTimestamp(i, timeFormat))
		},
	}
}

type painter func(color func(string, ...any) string, format string, args ...any) string

func formatLevel(i any, paint painter) string {
	level, _ := i.(string)
	switch level {
	case zerolog.LevelTraceValue:
		return paint(term.Cyanf, "[TRC]")
	case zerolog.LevelDebugValue:
		return paint(term.Cyanf, "[DBG]")
	case zerolog.LevelInfoValue:
		return paint(term.Greenf, "[INF]")
	case zerolog.LevelWarnValue:
		return paint(term.Yellowf, "[WAR]")
	case zerolog.LevelErrorValue:
		return paint(term.Redf, "[ERR]")
	case zerolog.LevelFatalValue:
		return paint(term.Redf, "[FTL]")
	case zerolog.LevelPanicValue:
		return paint(term.Redf, "[PAN]")
	default:
		return paint(term.Whitef, "[UNK]")
	}
}

// padMessage gives every message the same width so fields line up.
func padMessage(i any) string {
	const width = 60

	msg, _ := i.(string)
	if len(msg) > width {
		return msg[:width]
	}
	return msg + strings.Repeat(" ", width-len(msg))
}

func formatCaller(i any) string {
	const (
		fileWidth = 16
		lineWidth = 4
	)

	name, _ := i.(string)
	if name == "" {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(name), ":")
	if !found {
		return file
	}

	if len(file) > fileWidth {
		file = file[:fileWidth]
	}
	if len(line) > lineWidth {
		line = line[len(line)-lineWidth:]
	}

	return fmt.Sprintf("%-*s:%*s", fileWidth, file, lineWidth, line)
}

func formatTimestamp(i any, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return fmt.Sprint(i)
	}

	ts, err := time.ParseInLocation(time.RFC3339, raw, time.Local)
	if err != nil {
		return raw
	}
	return ts.In(time.Local).Format(layout)
}
