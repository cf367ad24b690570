package core

import (
	"fmt"
	"io"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// WriterLogger implements Logger by writing to an io.Writer
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger creates a logger that writes formatted messages to w
func NewWriterLogger(w io.Writer) Logger {
	return &WriterLogger{w: w}
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NopLogger discards all messages
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
