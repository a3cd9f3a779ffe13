package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// viper keys, bound to flags in cmd.
const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger before flags are parsed, so early
// failures are still readable.
func InitDefault() {
	log.Logger = zerolog.New(consoleWriter(os.Stderr, false)).
		With().Timestamp().Logger()
}

// Init configures the global logger from the bound viper keys.
// Passing a non-nil writer overrides the output (used in tests).
func Init(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	switch viper.GetString(FormatKey) {
	case "json":
		out = w
	default:
		out = consoleWriter(w, viper.GetBool(NoColorKey))
	}

	log.Logger = zerolog.New(out).
		Level(level).
		With().Timestamp().Logger()
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
}
