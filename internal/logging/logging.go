// Package logging configures zerolog for the rueda process.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Setup builds the process logger. format is "console", "json" or "auto";
// auto picks the console writer when w is a terminal.
func Setup(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var writer io.Writer
	switch strings.ToLower(format) {
	case "json":
		writer = w
	case "console":
		writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "", "auto":
		if IsTerminal(w) {
			writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		} else {
			writer = w
		}
	default:
		return zerolog.Nop(), fmt.Errorf("logging format %q: expected auto, console or json", format)
	}

	return zerolog.New(writer).With().Timestamp().Logger().Level(lvl), nil
}

// Component returns a sub-logger tagged with the component name.
func Component(logger zerolog.Logger, name string) *zerolog.Logger {
	l := logger.With().Str("component", name).Logger()
	return &l
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
