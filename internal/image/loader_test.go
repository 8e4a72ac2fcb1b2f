package image

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/swatch/internal/security"
)

// writePNG encodes img to name inside dir and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// TestFileLoaderLoad tests loading a valid PNG.
func TestFileLoaderLoad(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := writePNG(t, t.TempDir(), "in.png", src)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Load() bounds = %v, want 3x2", img.Bounds())
	}
}

// TestFileLoaderLoadErrors tests that every load failure wraps ErrDecode.
func TestFileLoaderLoadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "corrupt file", path: corrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Load() error = %v, want ErrDecode", err)
			}
		})
	}
}

// TestIsImageFile tests extension matching.
func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"photo.jpg":  true,
		"photo.JPEG": true,
		"art.png":    true,
		"anim.gif":   true,
		"pic.webp":   true,
		"doc.pdf":    false,
		"noext":      false,
	}

	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}

// TestFileLoaderLimits tests that oversized inputs are rejected before decoding.
func TestFileLoaderLimits(t *testing.T) {
	path := writePNG(t, t.TempDir(), "big.png", image.NewNRGBA(image.Rect(0, 0, 20, 10)))

	tests := []struct {
		name    string
		limits  security.Limits
		wantErr bool
	}{
		{name: "defaults", limits: security.DefaultLimits()},
		{name: "pixel limit", limits: security.Limits{MaxPixels: 199}, wantErr: true},
		{name: "byte limit", limits: security.Limits{MaxBytes: 10}, wantErr: true},
		{name: "no limits", limits: security.Limits{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoaderWithLimits(tt.limits).Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && (!errors.Is(err, ErrDecode) || !errors.Is(err, security.ErrLimitExceeded)) {
				t.Errorf("Load() error = %v, want ErrDecode and ErrLimitExceeded", err)
			}
		})
	}
}
