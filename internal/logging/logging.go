// ABOUTME: Builds the application's slog.Logger on top of a charmbracelet/log handler
// ABOUTME: Gives leveled, timestamped, human-readable stderr output for refresh warnings and debug tracing

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when the configured level is empty.
const DefaultLevel = "warn"

// New returns a logger writing to w at the named level
// (debug, info, warn, error).
func New(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "feedboard",
	})
	return slog.New(handler), nil
}

// ParseLevel maps a case-insensitive level name to a log.Level. Empty means DefaultLevel.
func ParseLevel(level string) (log.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Verbose returns the debug level name when verbose is set, otherwise level.
func Verbose(level string, verbose bool) string {
	if verbose {
		return "debug"
	}
	return level
}
