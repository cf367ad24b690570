package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format identifies an image file encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ErrUnknownFormat is returned for file extensions with no matching encoder
var ErrUnknownFormat = errors.New("unknown image format")

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return encodePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	sink := NewPPMSink(w)
	if err := sink.Begin(bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if err := sink.WritePixel(c); err != nil {
				return err
			}
		}
	}
	return sink.Close()
}

// WriteFile saves img to path, choosing the encoding from the extension
func WriteFile(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
