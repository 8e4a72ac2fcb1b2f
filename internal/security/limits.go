// Package security provides input limits applied before images are decoded.
package security

import (
	"errors"
	"fmt"
	"io"
)

// Default limits for a single input image.
const (
	DefaultMaxBytes  int64 = 256 << 20
	DefaultMaxPixels       = 100_000_000
)

// ErrLimitExceeded is wrapped by every error caused by an input limit.
var ErrLimitExceeded = errors.New("input limit exceeded")

// Limits caps the size of an input image. Zero fields disable that check.
type Limits struct {
	MaxBytes  int64
	MaxPixels int
}

// DefaultLimits returns the default input limits.
func DefaultLimits() Limits {
	return Limits{MaxBytes: DefaultMaxBytes, MaxPixels: DefaultMaxPixels}
}

// CheckSize rejects files larger than MaxBytes.
func (l Limits) CheckSize(size int64) error {
	if l.MaxBytes > 0 && size > l.MaxBytes {
		return fmt.Errorf("%w: file is %d bytes, limit is %d", ErrLimitExceeded, size, l.MaxBytes)
	}
	return nil
}

// CheckDimensions rejects images with more than MaxPixels pixels or with
// negative dimensions.
func (l Limits) CheckDimensions(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrLimitExceeded, width, height)
	}
	if l.MaxPixels > 0 && int64(width)*int64(height) > int64(l.MaxPixels) {
		return fmt.Errorf("%w: image is %dx%d, limit is %d pixels", ErrLimitExceeded, width, height, l.MaxPixels)
	}
	return nil
}

// LimitedReader wraps an io.Reader and fails with ErrLimitExceeded once more
// than the allowed number of bytes is available, where io.LimitReader would
// return EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Reading exactly up to the limit is fine; only further data is an error.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n == 0 {
			return 0, err
		}
		return 0, fmt.Errorf("%w: read past size limit", ErrLimitExceeded)
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a LimitedReader. A non-positive maxBytes returns r unchanged.
func NewLimitedReader(r io.Reader, maxBytes int64) io.Reader {
	if maxBytes <= 0 {
		return r
	}
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
