package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// JPEGQuality is the quality used when writing JPEG output.
const JPEGQuality = 95

// SupportedOutputExtensions returns the file extensions SaveImage can write.
func SupportedOutputExtensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// encoderFor returns an encode function for the extension of path.
func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)",
			filepath.Ext(path), strings.Join(SupportedOutputExtensions(), ", "))
	}
}

// ValidateOutputPath checks that path has a writable image extension and
// that its directory exists.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if _, err := encoderFor(path); err != nil {
		return err
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("output directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory is not a directory: %s", filepath.Dir(path))
	}
	return nil
}

// SaveImage encodes img to path, choosing the format from the extension.
// The image is written to a temporary file in the same directory and renamed
// into place, so an existing file is only replaced by a complete one.
func SaveImage(img image.Image, path string) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { // #nosec G302 - output images need standard read permissions
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set output file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}
