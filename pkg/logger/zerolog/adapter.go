package zerolog

import (
	"fmt"

	"github.com/raykavin/sweepkit/pkg/logger"
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog.Logger through logger.Logger.
type Adapter struct {
	*zerolog.Logger
}

func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log}
}

// Discard returns an adapter that drops every event. Handy in tests.
func Discard() *Adapter {
	nop := zerolog.Nop()
	return &Adapter{&nop}
}

// GetLevel reports the effective level: the stricter of the logger's own
// level and the global one.
func (a *Adapter) GetLevel() logger.Level {
	return toLevel(max(a.Logger.GetLevel(), zerolog.GlobalLevel()))
}

// SetLevel changes the global zerolog level, matching how New configures it.
func (a *Adapter) SetLevel(level logger.Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

func (a *Adapter) Trace(args ...any) { a.Logger.Trace().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Debug(args ...any) { a.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Info(args ...any)  { a.Logger.Info().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Warn(args ...any)  { a.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Error(args ...any) { a.Logger.Error().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Fatal(args ...any) { a.Logger.Fatal().Msg(fmt.Sprint(args...)) }

func (a *Adapter) Tracef(format string, args ...any) { a.Logger.Trace().Msgf(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.Logger.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.Logger.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.Logger.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.Logger.Error().Msgf(format, args...) }
func (a *Adapter) Fatalf(format string, args ...any) { a.Logger.Fatal().Msgf(format, args...) }

func (a *Adapter) WithError(err error) logger.Logger {
	child := a.With().Err(err).Logger()
	return &Adapter{&child}
}

func (a *Adapter) WithField(key string, value any) logger.Logger {
	child := a.With().Interface(key, value).Logger()
	return &Adapter{&child}
}

func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	child := a.With().Fields(fields).Logger()
	return &Adapter{&child}
}

var (
	fromZerolog = map[zerolog.Level]logger.Level{
		zerolog.Disabled:   logger.Disabled,
		zerolog.TraceLevel: logger.TraceLevel,
		zerolog.DebugLevel: logger.DebugLevel,
		zerolog.InfoLevel:  logger.InfoLevel,
		zerolog.WarnLevel:  logger.WarnLevel,
		zerolog.ErrorLevel: logger.ErrorLevel,
		zerolog.FatalLevel: logger.FatalLevel,
	}
	toZerolog = map[logger.Level]zerolog.Level{
		logger.Disabled:   zerolog.Disabled,
		logger.TraceLevel: zerolog.TraceLevel,
		logger.DebugLevel: zerolog.DebugLevel,
		logger.InfoLevel:  zerolog.InfoLevel,
		logger.WarnLevel:  zerolog.WarnLevel,
		logger.ErrorLevel: zerolog.ErrorLevel,
		logger.FatalLevel: zerolog.FatalLevel,
	}
)

func toLevel(level zerolog.Level) logger.Level {
	if l, ok := fromZerolog[level]; ok {
		return l
	}
	return logger.InfoLevel
}

func toZerologLevel(level logger.Level) zerolog.Level {
	if l, ok := toZerolog[level]; ok {
		return l
	}
	return zerolog.InfoLevel
}
