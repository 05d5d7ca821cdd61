// Package obs contains logging and metrics helpers for the HTTP server.
package obs

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger configures a zerolog logger using the provided format and level.
// Output defaults to stdout when w is nil.
func NewLogger(w io.Writer, format, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if w == nil {
		w = os.Stdout
	}
	out := w
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "text":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", "cbglow").
		Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

type requestFieldsKey struct{}

// requestFields is filled in by handlers and read back by the request logger.
type requestFields struct {
	sessionID string
}

func withRequestFields(ctx context.Context) (context.Context, *requestFields) {
	fields := &requestFields{}
	return context.WithValue(ctx, requestFieldsKey{}, fields), fields
}

// SetSessionID records the visitor session id for the request log line.
func SetSessionID(ctx context.Context, sessionID string) {
	if fields, ok := ctx.Value(requestFieldsKey{}).(*requestFields); ok {
		fields.sessionID = sessionID
	}
}
