package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Triple is a single colour with three float channels in one colour space.
// RGB triples use the 0-255 scale unless stated otherwise; HSV triples hold
// hue (fraction of a turn), saturation and value, each in [0, 1].
type Triple [3]float64

// RGB rounds an 0-255 RGB triple to 8-bit channels.
func (t Triple) RGB() RGB {
	return RGB{R: clampByte(t[0]), G: clampByte(t[1]), B: clampByte(t[2])}
}

// Sum returns the sum of the three channels.
func (t Triple) Sum() float64 {
	return t[0] + t[1] + t[2]
}

// Space identifies the colour space clustering runs in.
type Space string

const (
	// SpaceRGB clusters on 0-255 RGB channels.
	SpaceRGB Space = "rgb"
	// SpaceHSV clusters on hue, saturation and value.
	SpaceHSV Space = "hsv"
)

// RGBToHSV converts an RGB triple with channels in [0, 1] to HSV in [0, 1].
func RGBToHSV(t Triple) Triple {
	h, s, v := colorful.Color{R: t[0], G: t[1], B: t[2]}.Hsv()
	return Triple{h / 360.0, s, v}
}

// HSVToRGB converts an HSV triple in [0, 1] to RGB with channels in [0, 1].
func HSVToRGB(t Triple) Triple {
	h := math.Mod(t[0], 1)
	if h < 0 {
		h++
	}
	c := colorful.Hsv(h*360.0, t[1], t[2])
	return Triple{c.R, c.G, c.B}
}

// ToHSV converts 0-255 RGB triples to HSV.
func ToHSV(rgb []Triple) []Triple {
	out := make([]Triple, len(rgb))
	for i, t := range rgb {
		out[i] = RGBToHSV(Triple{t[0] / 255.0, t[1] / 255.0, t[2] / 255.0})
	}
	return out
}

// ToRGB255 converts HSV triples back to 0-255 RGB.
func ToRGB255(hsv []Triple) []Triple {
	out := make([]Triple, len(hsv))
	for i, t := range hsv {
		c := HSVToRGB(t)
		out[i] = Triple{c[0] * 255.0, c[1] * 255.0, c[2] * 255.0}
	}
	return out
}
