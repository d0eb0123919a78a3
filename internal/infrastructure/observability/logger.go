package observability

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger points the global logger at stderr; stdout is reserved for
// command output.
func InitLogger(serviceName, env, level string) {
	InitLoggerWithWriter(os.Stderr, serviceName, env, level)
}

// InitLoggerWithWriter installs a global logger writing to w. An empty or
// unknown level falls back to info.
func InitLoggerWithWriter(w io.Writer, serviceName, env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = newLogger(w, serviceName, env == "development")
}

func newLogger(w io.Writer, serviceName string, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).With().Timestamp().Str("service", serviceName)
	if !console {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithRequestID returns a context whose logger tags every line with id
func WithRequestID(ctx context.Context, id string) context.Context {
	l := baseLogger(ctx).With().Str("request_id", id).Logger()
	return l.WithContext(ctx)
}

// LoggerFromContext returns the request-scoped logger, or the global one,
// with the active span's trace and span IDs attached.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	l := baseLogger(ctx)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}
	return &l
}

func baseLogger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return log.Logger
}

// GetLogger returns the global logger
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
