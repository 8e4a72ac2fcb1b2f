// Package seed resolves the random seed used for k-means initialisation,
// so that palette extraction is reproducible unless asked otherwise.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"time"
)

// Mode determines how the seed is derived.
type Mode string

const (
	// ModeContent derives the seed from the image pixels (default).
	ModeContent Mode = "content"
	// ModeFilepath derives the seed from the absolute image path.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a caller-provided value.
	ModeManual Mode = "manual"
	// ModeRandom uses a time-based seed that changes every run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed resolution.
type Config struct {
	Mode  Mode
	Value *int64 // only used with ModeManual
}

// DefaultConfig returns the content-based configuration.
func DefaultConfig() Config {
	return Config{Mode: ModeContent}
}

// Calculate resolves the seed for an image according to config.
// img is required for ModeContent and imagePath for ModeFilepath.
func Calculate(img *image.NRGBA, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent, "":
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return ContentSeed(img), nil
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FilepathSeed(imagePath), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// ContentSeed hashes the image dimensions and a grid of its pixels.
// Identical pixel data gives the same seed regardless of file name.
func ContentSeed(img *image.NRGBA) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are non-negative
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			off := img.PixOffset(x, y)
			hasher.Write(img.Pix[off : off+4])
		}
	}

	return sumToSeed(hasher.Sum(nil))
}

// FilepathSeed hashes the absolute form of imagePath.
func FilepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}
	sum := sha256.Sum256([]byte(absPath))
	return sumToSeed(sum[:])
}

// RandomSeed returns a non-deterministic seed.
func RandomSeed() int64 {
	// #nosec G404 -- seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

func sumToSeed(sum []byte) int64 {
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- wraparound is fine for a seed
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
