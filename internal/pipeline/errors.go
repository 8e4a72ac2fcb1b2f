package pipeline

import (
	"errors"

	swimage "github.com/jmylchreest/swatch/internal/image"
)

// Errors returned by the pipeline. Callers test them with errors.Is; the
// wrapped message carries the detail.
var (
	// ErrInvalidColourCount means NumColours is outside [MinColours, MaxColours].
	ErrInvalidColourCount = errors.New("invalid colour count")

	// ErrInvalidPartitions means Partitions is less than 1.
	ErrInvalidPartitions = errors.New("invalid partitions")

	// ErrUnreadableImage means the input is missing, corrupt or not a raster image.
	ErrUnreadableImage = swimage.ErrDecode

	// ErrDegeneratePalette means the image holds fewer distinct colours than
	// requested. Only returned in strict mode.
	ErrDegeneratePalette = errors.New("degenerate palette")

	// ErrOutputWrite means the composite image could not be written.
	ErrOutputWrite = errors.New("failed to write output")
)
