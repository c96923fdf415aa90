package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field naming the subsystem that wrote a log line.
const ComponentKey = "cmp"

// Component returns the global logger tagged with name.
func Component(name string) zerolog.Logger {
	return With(log.Logger, name)
}

// With tags an injected logger with name. Packages that receive a logger
// through their constructor use this instead of the global.
func With(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(ComponentKey, name).Logger()
}
