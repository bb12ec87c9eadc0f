// Package logx wraps zerolog with the settings shared by every module.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls how Init configures the global logger.
type Options struct {
	Production bool
}

// Init configures the global zerolog logger. Production emits JSON at info
// level; anything else gets a console writer at debug level.
func Init(opts Options) {
	if opts.Production {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).
		With().Timestamp().Caller().Logger().
		Level(zerolog.DebugLevel)
}

// Module returns a child logger tagged with the module name.
func Module(name string) zerolog.Logger {
	return log.Logger.With().Str("module", name).Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
