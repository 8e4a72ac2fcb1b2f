package colour

import (
	"fmt"
	"image"
)

// SampleGrid samples partitions×partitions pixels from img on an evenly
// spaced grid and returns them as 0-255 RGB triples in row-major order.
//
// Grid index (i, j) maps to row ⌊height/partitions·i⌋ and column
// ⌊width/partitions·j⌋. When partitions exceeds the image dimensions the
// same pixel is sampled more than once.
func SampleGrid(img *image.NRGBA, partitions int) ([]Triple, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if partitions < 1 {
		return nil, fmt.Errorf("partitions must be at least 1, got %d", partitions)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	rowStep := float64(height) / float64(partitions)
	colStep := float64(width) / float64(partitions)

	samples := make([]Triple, 0, partitions*partitions)
	for i := range partitions {
		y := bounds.Min.Y + int(rowStep*float64(i))
		for j := range partitions {
			x := bounds.Min.X + int(colStep*float64(j))
			c := img.NRGBAAt(x, y)
			samples = append(samples, Triple{float64(c.R), float64(c.G), float64(c.B)})
		}
	}

	return samples, nil
}
