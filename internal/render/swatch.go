package render

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/internal/colour"
)

// gradientSamples is the number of columns in the gradient data.
const gradientSamples = 256

// Options configures swatch rendering.
type Options struct {
	// Levels is the colour map lookup table size. Zero uses one level per
	// palette colour.
	Levels int

	// Scaler resizes the swatch to the source width. Nil uses CatmullRom.
	Scaler draw.Scaler
}

// Renderer turns a palette into a swatch and stacks it under the source image.
type Renderer struct {
	levels int
	scaler draw.Scaler
}

// NewRenderer creates a Renderer from opts.
func NewRenderer(opts Options) *Renderer {
	scaler := opts.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}
	return &Renderer{levels: opts.Levels, scaler: scaler}
}

// Render builds the composite image for palette over src.
func (r *Renderer) Render(src *image.NRGBA, palette *colour.Palette) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("source image is empty")
	}
	if palette.Len() == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	levels := r.levels
	if levels < 1 {
		levels = palette.Len()
	}
	cm, err := NewColormap(palette.ToRGBSlice(), levels)
	if err != nil {
		return nil, fmt.Errorf("failed to build colour map: %w", err)
	}

	width := src.Bounds().Dx()
	sw, sh := SwatchSize(width, palette.Len())
	swatch := RenderSwatch(cm, sw, sh)

	return Composite(src, r.Fit(swatch, width)), nil
}

// SwatchSize returns the unscaled swatch dimensions for an image of
// srcWidth pixels and k colours: k·u by u where u = srcWidth/k, at least 1.
func SwatchSize(srcWidth, k int) (width, height int) {
	k = max(k, 1)
	u := max(srcWidth/k, 1)
	return k * u, u
}

// RenderSwatch draws a two-row 0→1 gradient through cm, stretched to
// width×height.
func RenderSwatch(cm *Colormap, width, height int) *image.NRGBA {
	var gradient [2][gradientSamples]float64
	for row := range gradient {
		for col := range gradientSamples {
			gradient[row][col] = float64(col) / float64(gradientSamples-1)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		row := y * len(gradient) / height
		for x := range width {
			col := x * gradientSamples / width
			img.SetNRGBA(x, y, cm.At(gradient[row][col]))
		}
	}
	return img
}

// Fit scales swatch to width pixels, preserving its aspect ratio.
func (r *Renderer) Fit(swatch *image.NRGBA, width int) *image.NRGBA {
	b := swatch.Bounds()
	if b.Dx() == width {
		return swatch
	}
	height := max(int(math.Round(float64(b.Dy())*float64(width)/float64(b.Dx()))), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.scaler.Scale(dst, dst.Bounds(), swatch, b, draw.Src, nil)
	return dst
}

// Composite stacks src on top of swatch. Both must have the same width.
func Composite(src, swatch *image.NRGBA) *image.NRGBA {
	sb := src.Bounds()
	wb := swatch.Bounds()

	out := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()+wb.Dy()))
	draw.Draw(out, image.Rect(0, 0, sb.Dx(), sb.Dy()), src, sb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, sb.Dy(), wb.Dx(), sb.Dy()+wb.Dy()), swatch, wb.Min, draw.Src)
	return out
}
