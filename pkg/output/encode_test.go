package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(40 * x), G: uint8(100 * y), B: 7, A: 255})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, expected *image.RGBA, got image.Image) {
	t.Helper()
	if got.Bounds().Size() != expected.Bounds().Size() {
		t.Fatalf("Expected size %v, got %v", expected.Bounds().Size(), got.Bounds().Size())
	}
	for y := 0; y < expected.Bounds().Dy(); y++ {
		for x := 0; x < expected.Bounds().Dx(); x++ {
			want := expected.RGBAAt(x, y)
			have := color.RGBAModel.Convert(got.At(got.Bounds().Min.X+x, got.Bounds().Min.Y+y)).(color.RGBA)
			if have != want {
				t.Errorf("Pixel (%d,%d) = %v, want %v", x, y, have, want)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"image.ppm", FormatPPM, false},
		{"out/render.PNG", FormatPNG, false},
		{"render.bmp", FormatBMP, false},
		{"render.jpg", "", true},
		{"render", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, format, tt.expected)
			}
		})
	}
}

func TestEncode_PPM(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), FormatPPM); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	expected := strings.Join([]string{
		"P3", "3 2", "255",
		"0 0 7", "40 0 7", "80 0 7",
		"0 100 7", "40 100 7", "80 100 7",
	}, "\n") + "\n"
	if buf.String() != expected {
		t.Errorf("PPM output = %q, want %q", buf.String(), expected)
	}
}

func TestEncode_PNG(t *testing.T) {
	var buf bytes.Buffer
	img := testImage()
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	assertSamePixels(t, img, decoded)
}

func TestEncode_BMP(t *testing.T) {
	var buf bytes.Buffer
	img := testImage()
	if err := Encode(&buf, img, FormatBMP); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	decoded, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode() error: %v", err)
	}
	assertSamePixels(t, img, decoded)
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(), Format("gif"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	for _, name := range []string{"render.ppm", "render.png", "render.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, img); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Expected file to exist: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Expected non-empty file")
			}
		})
	}
}

func TestWriteFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := WriteFile(filepath.Join(dir, "render.gif"), testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "render.gif")); !os.IsNotExist(err) {
		t.Error("Expected no file for an unknown format")
	}

	if err := WriteFile(filepath.Join(dir, "missing", "render.png"), testImage()); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}
