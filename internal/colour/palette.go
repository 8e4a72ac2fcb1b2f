// Package colour provides colour sampling, clustering and palette selection.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"slices"
)

// Palette represents an ordered collection of colours extracted from an image.
type Palette struct {
	Colors []color.Color
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// PaletteFromTriples builds a palette from 0-255 RGB triples.
// Channels are rounded to the nearest integer and clamped to [0, 255].
func PaletteFromTriples(triples []Triple) *Palette {
	colors := make([]color.Color, len(triples))
	for i, t := range triples {
		colors[i] = RGBToColor(t.RGB())
	}
	return NewPalette(colors)
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Sum returns R+G+B, the brightness key palettes are ordered by.
func (rgb RGB) Sum() int {
	return int(rgb.R) + int(rgb.G) + int(rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	if n, ok := c.(color.NRGBA); ok {
		return RGB{R: n.R, G: n.G, B: n.B}
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBToColor converts an RGB value to an opaque color.NRGBA.
func RGBToColor(rgb RGB) color.Color {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// clampByte rounds v to the nearest integer within [0, 255].
func clampByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// SortByBrightness orders the palette ascending by R+G+B.
// The sort is stable so equal sums keep their relative order.
func (p *Palette) SortByBrightness() {
	slices.SortStableFunc(p.Colors, func(a, b color.Color) int {
		return ToRGB(a).Sum() - ToRGB(b).Sum()
	})
}

// Distinct returns the number of distinct 8-bit colours in the palette.
func (p *Palette) Distinct() int {
	seen := make(map[RGB]struct{}, len(p.Colors))
	for _, c := range p.Colors {
		seen[ToRGB(c)] = struct{}{}
	}
	return len(seen)
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = ToRGB(c).Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex: rgb.Hex(),
			RGB: rgb,
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}, "", "  ")
}
