// Package logging holds the zerolog conventions shared across tempbox:
// component sub-loggers and request-scoped context fields.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Attach installs ContextHook on l so events logged with .Ctx(ctx) carry
// the request fields stored in ctx.
func Attach(l zerolog.Logger) zerolog.Logger {
	return l.Hook(ContextHook{})
}
