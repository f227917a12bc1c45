package common

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/config"
)

// NewLogger builds the process logger. Pretty output goes through a console
// writer; everything else is JSON. A nil out writes to stderr.
func NewLogger(level zerolog.Level, format config.LogFormat, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if format == config.LogFormatPretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// LoggerFromConfig builds a logger for cfg, which must already be valid.
func LoggerFromConfig(cfg config.Config, out io.Writer) zerolog.Logger {
	lvl, err := cfg.Level()
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return NewLogger(lvl, cfg.Format(), out)
}
