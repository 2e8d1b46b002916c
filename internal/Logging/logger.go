// Package logging builds the console's structured logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text slog logger writing to w. Debug mode lowers the level;
// the API client attaches request-scoped fields on top of this.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
