package image

import (
	"image"
	"image/color"
	"testing"
)

func TestDetectEncoding(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	tests := []struct {
		name string
		img  image.Image
		want Encoding
		high bool
	}{
		{name: "nrgba", img: image.NewNRGBA(rect), want: EncodingRGB8},
		{name: "rgba", img: image.NewRGBA(rect), want: EncodingRGB8},
		{name: "nrgba64", img: image.NewNRGBA64(rect), want: EncodingRGB16, high: true},
		{name: "gray16", img: image.NewGray16(rect), want: EncodingRGB16, high: true},
		{name: "gray", img: image.NewGray(rect), want: EncodingGray},
		{name: "paletted", img: image.NewPaletted(rect, color.Palette{color.Black}), want: EncodingPaletted},
		{name: "ycbcr", img: image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), want: EncodingYCbCr},
		{name: "cmyk", img: image.NewCMYK(rect), want: EncodingCMYK},
		{name: "alpha", img: image.NewAlpha(rect), want: EncodingOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEncoding(tt.img)
			if got != tt.want {
				t.Errorf("DetectEncoding() = %s, want %s", got, tt.want)
			}
			if got.HighPrecision() != tt.high {
				t.Errorf("HighPrecision() = %v, want %v", got.HighPrecision(), tt.high)
			}
		})
	}
}

func TestCanonicaliseHighPrecision(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0x8080, B: 0, A: 0xffff})
	src.SetNRGBA64(1, 0, color.NRGBA64{R: 0x6464, G: 0x9696, B: 0xc8c8, A: 0xffff})

	got := Canonicalise(src)

	want := []color.NRGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 100, G: 150, B: 200, A: 255},
	}
	for x, w := range want {
		if c := got.NRGBAAt(x, 0); c != w {
			t.Errorf("pixel %d = %+v, want %+v", x, c, w)
		}
	}
}

func TestCanonicaliseDropsAlphaAndRebases(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	src.SetNRGBA(6, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	got := Canonicalise(src)

	if got.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v, want (0,0)-(2,1)", got.Bounds())
	}
	for x := range 2 {
		if a := got.NRGBAAt(x, 0).A; a != 255 {
			t.Errorf("pixel %d alpha = %d, want 255", x, a)
		}
	}
	if c := got.NRGBAAt(1, 0); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel 1 = %+v, want (1, 2, 3)", c)
	}

	got.SetNRGBA(0, 0, color.NRGBA{})
	if src.NRGBAAt(5, 5).R != 10 {
		t.Error("Canonicalise() result aliases the source image")
	}
}

func TestCanonicaliseGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 77})

	if c := Canonicalise(src).NRGBAAt(0, 0); c != (color.NRGBA{R: 77, G: 77, B: 77, A: 255}) {
		t.Errorf("pixel = %+v, want grey 77", c)
	}
}
