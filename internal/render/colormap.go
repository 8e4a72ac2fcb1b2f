// Package render draws palette swatches and composites them with the source image.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatch/internal/colour"
)

// SmoothLevels is the lookup table size used for a continuous gradient.
const SmoothLevels = 256

// Colormap is a piecewise-linear colour map with its stops evenly spaced
// over [0, 1], sampled into a fixed-size lookup table.
type Colormap struct {
	lut []color.NRGBA
}

// NewColormap builds a colour map through colours. levels sets the lookup
// table size; levels equal to len(colours) yields one flat block per colour,
// larger values approach a continuous gradient. levels < 1 means len(colours).
func NewColormap(colours []colour.RGB, levels int) (*Colormap, error) {
	if len(colours) == 0 {
		return nil, fmt.Errorf("colour map needs at least one colour")
	}
	if levels < 1 {
		levels = len(colours)
	}

	stops := make([]colorful.Color, len(colours))
	for i, c := range colours {
		stops[i] = colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	}

	lut := make([]color.NRGBA, levels)
	for i := range levels {
		pos := 0.0
		if levels > 1 {
			pos = float64(i) / float64(levels-1)
		}
		r, g, b := interpolate(stops, pos).Clamped().RGB255()
		lut[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	return &Colormap{lut: lut}, nil
}

// interpolate blends linearly between the two stops surrounding pos.
func interpolate(stops []colorful.Color, pos float64) colorful.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	segment := pos * float64(len(stops)-1)
	lo := min(int(math.Floor(segment)), len(stops)-2)
	lo = max(lo, 0)
	return stops[lo].BlendRgb(stops[lo+1], segment-float64(lo))
}

// Levels returns the lookup table size.
func (c *Colormap) Levels() int {
	return len(c.lut)
}

// At returns the colour for x, which is clamped to [0, 1].
func (c *Colormap) At(x float64) color.NRGBA {
	if math.IsNaN(x) || x < 0 {
		x = 0
	}
	idx := min(int(x*float64(len(c.lut))), len(c.lut)-1)
	return c.lut[idx]
}
