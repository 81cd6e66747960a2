package logging

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a Logger writing JSON lines to a size-rotated file.
// The interactive CLI uses this so recovered errors never clutter the prompt.
func NewFileLogger(path string) *SlogLogger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
}
