package logging

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key-value args are attached as
// fields; a dangling key without a value is logged under "!BADKEY".
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger writes JSON lines to w, or coloured console output when
// pretty is set.
func NewZerologLogger(w io.Writer, level Level, pretty bool) *ZerologLogger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func withFields(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if i+1 >= len(args) {
			e = e.Interface("!BADKEY", key)
			break
		}
		e = e.Interface(key, args[i+1])
	}
	return e
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Debug().Ctx(ctx), args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Info().Ctx(ctx), args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Warn().Ctx(ctx), args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Error().Ctx(ctx), args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for i := 0; i+1 < len(args); i += 2 {
		c = c.Interface(fmt.Sprint(args[i]), args[i+1])
	}
	return &ZerologLogger{l: c.Logger()}
}
