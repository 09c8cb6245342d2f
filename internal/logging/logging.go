// Package logging configures the application-wide zerolog logger.
package logging

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Setup builds the root logger from the configured level and format.
// Format "text" renders through the console writer, colored only when
// stderr is a terminal; any other format emits JSON lines. Unknown
// levels fall back to info.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "text" {
		writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			if !isatty.IsTerminal(os.Stderr.Fd()) {
				w.NoColor = true
			}
		})
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
