package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	once   sync.Once
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the global logger. Only the first call has any effect.
func Init(level, format string) {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if strings.EqualFold(format, "console") {
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		}
		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		global = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
		log.Logger = global
	})
}

// WithRequest returns a context carrying a child logger tagged with the request id.
func WithRequest(ctx context.Context, requestID string) context.Context {
	l := global.With().Str("requestId", requestID).Logger()
	return l.WithContext(ctx)
}

// From returns the context logger, or the global logger when none is attached.
func From(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		l := zerolog.Ctx(ctx)
		if l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &global
}

func Info(ctx context.Context, msg string) {
	From(ctx).Info().Msg(msg)
}

func Warn(ctx context.Context, err error, msg string) {
	From(ctx).Warn().Err(err).Msg(msg)
}

func Error(ctx context.Context, err error, msg string) {
	From(ctx).Error().Err(err).Msg(msg)
}
