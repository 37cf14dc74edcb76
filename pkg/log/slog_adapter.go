package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes change events to an slog.Logger. Applied changes are
// logged at Info, refused ones at Warn.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.Session),
		slog.String("source", event.Source.String()),
		slog.String("path", event.Path),
		slog.String("old", event.Old),
		slog.String("new", event.New),
	}

	level := slog.LevelInfo
	msg := "setting changed"
	if !event.Applied() {
		level = slog.LevelWarn
		msg = "setting rejected"
		attrs = append(attrs, slog.String("reason", event.Rejected))
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
