package renderer

import (
	"errors"
	"image"
	"image/color"
)

// ErrSinkFull is returned when a sink receives more pixels than it was sized for
var ErrSinkFull = errors.New("pixel sink is full")

// PixelSink receives the rendered image one pixel at a time in raster order,
// left to right and top to bottom
type PixelSink interface {
	// Begin is called once with the image dimensions before any pixel
	Begin(width, height int) error
	// WritePixel receives the next pixel
	WritePixel(c color.RGBA) error
}

// ImageSink collects pixels into an in-memory image
type ImageSink struct {
	Image *image.RGBA
	x, y  int
}

// NewImageSink creates an empty image sink
func NewImageSink() *ImageSink {
	return &ImageSink{}
}

// Begin allocates the image
func (s *ImageSink) Begin(width, height int) error {
	s.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	s.x, s.y = 0, 0
	return nil
}

// WritePixel stores the next pixel
func (s *ImageSink) WritePixel(c color.RGBA) error {
	if s.Image == nil {
		return errors.New("pixel sink not started")
	}
	bounds := s.Image.Bounds()
	if s.y >= bounds.Dy() {
		return ErrSinkFull
	}

	s.Image.SetRGBA(s.x, s.y, c)
	s.x++
	if s.x == bounds.Dx() {
		s.x = 0
		s.y++
	}
	return nil
}
