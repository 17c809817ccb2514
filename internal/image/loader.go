// Package image provides utilities for loading images into RGB rasters.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

var (
	// ErrNotFound is returned when an image path does not exist.
	ErrNotFound = errors.New("image not found")

	// ErrDecode is returned for every other load failure: unreadable files,
	// directories, corrupt data and unsupported encodings.
	ErrDecode = errors.New("unable to decode image")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (*Raster, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path and converts it to an RGB raster.
// Supported formats: JPEG, PNG, GIF, BMP, TIFF, WebP.
func (l *FileLoader) Load(path string) (*Raster, error) {
	// Validate path.
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}

	// Check if file exists.
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrDecode, path, err)
	}

	// Check if it's a directory.
	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrDecode, path)
	}

	// Open the file.
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrDecode, path, err)
	}
	defer file.Close()

	// Decode the image, applying EXIF orientation.
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	// Normalise to an NRGBA raster.
	return NewRaster(img), nil
}

// SupportedImageExtensions returns the file extensions picked up by directory scans.
func SupportedImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}
}

// IsImageFile checks if a file has a supported image extension.
// Only the suffix is inspected; content is never sniffed.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages walks dirPath recursively and returns every file with a
// supported extension, in lexical walk order. Entries that cannot be read are
// skipped. An empty result is not an error.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	// Check if path exists.
	info, err := os.Stat(dirPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dirPath)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirPath)
	}

	var imageFiles []string
	err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return err
			}
			// Skip entries we can't read (permission issues, races with deletion).
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsImageFile(d.Name()) {
			imageFiles = append(imageFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return imageFiles, nil
}

// Header is the metadata decoded from the start of an image file.
type Header struct {
	Format string
	Width  int
	Height int
}

// ReadHeader decodes only the format header of the image at path. It
// succeeds for files whose pixel data is truncated or corrupt, so callers
// can report what a failed image claimed to be.
func ReadHeader(path string) (Header, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Header{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Header{}, fmt.Errorf("%w: failed to open %s: %w", ErrDecode, path, err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %s header: %w", ErrDecode, path, err)
	}

	return Header{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
