// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// Formats accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Format is console (default) or json.
	Format string
	// Out defaults to os.Stderr.
	Out io.Writer
	// Async routes writes through a diode ring buffer so logging never blocks
	// a request. Messages are dropped when the buffer is full.
	Async bool
}

// ParseLevel maps a level name to a zerolog level. Empty selects info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger and returns a function that flushes and releases its
// writer. The caller must invoke it before exit when Async is set.
func New(opts Options) (zerolog.Logger, func(), error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	closer := func() {}
	if opts.Async {
		// Size: 1000, poll interval: 10ms
		wr := diode.NewWriter(out, 1000, 10*time.Millisecond, func(missed int) {
			fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
		})
		out = wr
		closer = func() { _ = wr.Close() }
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.DateTime,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.MessageFieldName,
			},
		}
	case FormatJSON:
	default:
		closer()
		return zerolog.Nop(), func() {}, fmt.Errorf("unknown log format %q", opts.Format)
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}
