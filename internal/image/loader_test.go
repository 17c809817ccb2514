package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// solidImage creates an in-memory image filled with c.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeFile(t *testing.T, path string, encode func(f *os.File) error) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	img := solidImage(4, 3, red)

	tests := []struct {
		name   string
		file   string
		encode func(f *os.File) error
	}{
		{"png", "red.png", func(f *os.File) error { return png.Encode(f, img) }},
		{"bmp", "red.bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
		{"tiff", "red.tiff", func(f *os.File) error { return tiff.Encode(f, img, nil) }},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.encode)

			raster, err := loader.Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if raster.Width() != 4 || raster.Height() != 3 {
				t.Errorf("Expected 4x3 raster, got %dx%d", raster.Width(), raster.Height())
			}
			if raster.PixelCount() != 12 {
				t.Errorf("Expected 12 pixels, got %d", raster.PixelCount())
			}
			r, g, b := raster.At(11)
			if r != 255 || g != 0 || b != 0 {
				t.Errorf("At(11) = (%d,%d,%d), want (255,0,0)", r, g, b)
			}
		})
	}
}

func TestFileLoaderIgnoresAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translucent.png")
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	writeFile(t, path, func(f *os.File) error { return png.Encode(f, img) })

	raster, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	r, g, b := raster.At(0)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("At(0) = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not really a png"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrNotFound},
		{"missing file", filepath.Join(dir, "missing.png"), ErrNotFound},
		{"directory", dir, ErrDecode},
		{"corrupt file", corrupt, ErrDecode},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"photo.Jpeg", true},
		{"scan.bmp", true},
		{"scan.TIFF", true},
		{"scan.tif", false},
		{"anim.gif", false},
		{"notes.txt", false},
		{"png", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"a.png",
		"b.txt",
		"nested/c.JPG",
		"nested/deeper/d.tiff",
		"nested/deeper/e.gif",
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	got, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "nested/c.JPG"),
		filepath.Join(dir, "nested/deeper/d.tiff"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("ScanDirectoryForImages() = %v, want %v", got, want)
	}
}

func TestScanDirectoryForImagesMissing(t *testing.T) {
	_, err := ScanDirectoryForImages(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(7, 5, color.White)); err != nil {
		t.Fatal(err)
	}
	whole := filepath.Join(dir, "whole.png")
	truncated := filepath.Join(dir, "truncated.png")
	garbage := filepath.Join(dir, "garbage.png")
	for path, data := range map[string][]byte{
		whole:     buf.Bytes(),
		truncated: buf.Bytes()[:40],
		garbage:   []byte("not an image"),
	} {
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		path    string
		want    Header
		wantErr error
	}{
		{name: "complete file", path: whole, want: Header{Format: "png", Width: 7, Height: 5}},
		{name: "truncated pixel data", path: truncated, want: Header{Format: "png", Width: 7, Height: 5}},
		{name: "unrecognised data", path: garbage, wantErr: ErrDecode},
		{name: "missing file", path: filepath.Join(dir, "missing.png"), wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadHeader(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadHeader() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
