// Package observability holds the process-wide logger and Prometheus collectors.
package observability

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldComponent = "component"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// SetupLogger configures the global zerolog logger. Development gets a
// console writer, everything else JSON on stdout.
func SetupLogger(level, env string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}

// ComponentLogger returns a child of the global logger tagged with component={name}.
func ComponentLogger(name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// Ctx returns the request-scoped logger stored by the request-id middleware,
// falling back to the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// Op is shorthand for a context logger event tagged with operation={op}.
func Op(ctx context.Context, op string) zerolog.Logger {
	return Ctx(ctx).With().Str(FieldOperation, op).Logger()
}
