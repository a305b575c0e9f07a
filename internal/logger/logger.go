package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global zerolog logger at stdout. format "json" writes
// one JSON object per line, anything else uses the human console writer.
// An unknown level falls back to info.
func Setup(level, format string) {
	log.Logger = New(os.Stdout, level, format)
	zerolog.SetGlobalLevel(parseLevel(level))
}

// New builds a logger writing to out without touching the global one.
func New(out io.Writer, level, format string) zerolog.Logger {
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
