// Package image provides utilities for loading, canonicalising and saving images.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/swatch/internal/security"
)

// ErrDecode is wrapped by every error caused by a missing or undecodable image.
var ErrDecode = errors.New("unreadable image")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	limits security.Limits
}

// NewFileLoader creates a FileLoader with the default input limits.
func NewFileLoader() *FileLoader {
	return NewFileLoaderWithLimits(security.DefaultLimits())
}

// NewFileLoaderWithLimits creates a FileLoader that rejects inputs beyond limits.
func NewFileLoaderWithLimits(limits security.Limits) *FileLoader {
	return &FileLoader{limits: limits}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", ErrDecode)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image file not found: %s", ErrDecode, path)
		}
		return nil, fmt.Errorf("%w: failed to stat image file: %w", ErrDecode, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrDecode, path)
	}
	if err := l.limits.CheckSize(info.Size()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image file: %w", ErrDecode, err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image header: %w", ErrDecode, err)
	}
	if err := l.limits.CheckDimensions(config.Width, config.Height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: failed to rewind image file: %w", ErrDecode, err)
	}

	img, format, err := image.Decode(security.NewLimitedReader(file, l.limits.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image (format: %s): %w", ErrDecode, format, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	return img, nil
}

// SupportedImageExtensions returns a list of supported input image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}
