package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Encoding describes how a decoded image stores its pixels.
type Encoding string

const (
	EncodingRGB8     Encoding = "rgb8"
	EncodingRGB16    Encoding = "rgb16"
	EncodingGray     Encoding = "gray"
	EncodingPaletted Encoding = "paletted"
	EncodingYCbCr    Encoding = "ycbcr"
	EncodingCMYK     Encoding = "cmyk"
	EncodingOther    Encoding = "other"
)

// DetectEncoding reports the pixel encoding of img.
func DetectEncoding(img image.Image) Encoding {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		return EncodingRGB8
	case *image.NRGBA64, *image.RGBA64, *image.Gray16:
		return EncodingRGB16
	case *image.Gray:
		return EncodingGray
	case *image.Paletted:
		return EncodingPaletted
	case *image.YCbCr, *image.NYCbCrA:
		return EncodingYCbCr
	case *image.CMYK:
		return EncodingCMYK
	default:
		return EncodingOther
	}
}

// HighPrecision reports whether the encoding carries more than 8 bits per
// channel and therefore needs rescaling.
func (e Encoding) HighPrecision() bool {
	return e == EncodingRGB16
}

// Canonicalise converts img to opaque 8-bit non-premultiplied RGB with
// bounds starting at (0, 0). 16-bit channels are rescaled to 8 bits and
// transparency is discarded. The result never aliases img.
func Canonicalise(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
