package app

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/wordlookup/internal/config"
)

// NewLogger builds the process logger on w and installs it as slog's default.
// Format "json" is meant for `serve`; any other format is text with the
// call site attached, for use at a terminal.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if text {
		opts.AddSource = true
		opts.ReplaceAttr = shortSource
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLevel accepts slog level names in any case. Unknown names mean info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// shortSource trims the source file to its base name.
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if src, ok := a.Value.Any().(*slog.Source); ok {
		src.File = filepath.Base(src.File)
	}
	return a
}
