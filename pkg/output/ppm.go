package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
)

// PPMSink streams pixels as a plain-text PPM (P3) image.
// Output is buffered; call Close to flush it.
type PPMSink struct {
	w       *bufio.Writer
	started bool
}

// NewPPMSink creates a PPM sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: bufio.NewWriter(w)}
}

// Begin writes the PPM header
func (s *PPMSink) Begin(width, height int) error {
	s.started = true
	if _, err := fmt.Fprintf(s.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	return nil
}

// WritePixel writes one "r g b" line
func (s *PPMSink) WritePixel(c color.RGBA) error {
	if !s.started {
		return errors.New("PPM sink not started")
	}
	if _, err := fmt.Fprintf(s.w, "%d %d %d\n", c.R, c.G, c.B); err != nil {
		return fmt.Errorf("failed to write PPM pixel: %w", err)
	}
	return nil
}

// Close flushes buffered output. The underlying writer is left open.
func (s *PPMSink) Close() error {
	return s.w.Flush()
}
