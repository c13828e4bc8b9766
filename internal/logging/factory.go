package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sirupsen/logrus"
)

// Supported output formats for New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogrus = "logrus"
)

// New builds a Logger writing to w. Format "text" and "json" use slog
// handlers, "logrus" uses a logrus JSON formatter. Level is one of
// debug, info, warn, error.
func New(w io.Writer, format, level string) (Logger, error) {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		if strings.EqualFold(format, FormatJSON) {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil
	case FormatLogrus:
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(lvl)
		l.SetFormatter(&logrus.JSONFormatter{})
		return NewLogrusLogger(l), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
