// Package logging builds the application's slog logger and holds common attributes.
package logging

import (
	"io"
	"log/slog"
)

// New creates a logger writing to w. Production gets JSON at info level, everything else human-readable text at
// debug level.
func New(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return NewWithLevel(w, slog.LevelDebug)
}

// NewWithLevel creates a text logger writing to w with the given minimum level.
func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ErrAttr creates a new attribute with the key "err" and the given error value.
func ErrAttr(err error) slog.Attr { return slog.Any("err", err) }

// SessionAttr creates a new attribute with the key "session" for a quiz session ID.
func SessionAttr(id string) slog.Attr { return slog.String("session", id) }
