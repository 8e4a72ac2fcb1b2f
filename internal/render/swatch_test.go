package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func blackWhite() *colour.Palette {
	return colour.NewPalette([]color.Color{
		color.NRGBA{A: 255},
		color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	})
}

func TestSwatchSize(t *testing.T) {
	tests := []struct {
		name         string
		srcWidth, k  int
		wantW, wantH int
	}{
		{name: "divisible", srcWidth: 640, k: 4, wantW: 640, wantH: 160},
		{name: "remainder", srcWidth: 10, k: 3, wantW: 9, wantH: 3},
		{name: "narrower than k", srcWidth: 3, k: 4, wantW: 4, wantH: 1},
		{name: "zero k", srcWidth: 5, k: 0, wantW: 5, wantH: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := SwatchSize(tt.srcWidth, tt.k)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("SwatchSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderSwatchBlocks(t *testing.T) {
	cm, err := NewColormap([]colour.RGB{black, white}, 2)
	if err != nil {
		t.Fatal(err)
	}

	swatch := RenderSwatch(cm, 4, 2)

	want := []color.NRGBA{
		{A: 255}, {A: 255},
		{R: 255, G: 255, B: 255, A: 255}, {R: 255, G: 255, B: 255, A: 255},
	}
	for y := range 2 {
		for x, w := range want {
			if got := swatch.NRGBAAt(x, y); got != w {
				t.Errorf("pixel (%d, %d) = %+v, want %+v", x, y, got, w)
			}
		}
	}
}

func TestRenderCompositeDimensions(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		k              int
		wantSwatchRows int
	}{
		{name: "wide", width: 640, height: 10, k: 2, wantSwatchRows: 320},
		{name: "remainder", width: 10, height: 4, k: 3, wantSwatchRows: 3},
		{name: "narrow", width: 3, height: 5, k: 4, wantSwatchRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colours := make([]color.Color, tt.k)
			for i := range colours {
				v := uint8(i * 20)
				colours[i] = color.NRGBA{R: v, G: v, B: v, A: 255}
			}

			out, err := NewRenderer(Options{}).Render(filled(tt.width, tt.height, color.NRGBA{R: 1, A: 255}), colour.NewPalette(colours))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if out.Bounds().Dx() != tt.width {
				t.Errorf("composite width = %d, want %d", out.Bounds().Dx(), tt.width)
			}
			if out.Bounds().Dy() != tt.height+tt.wantSwatchRows {
				t.Errorf("composite height = %d, want %d", out.Bounds().Dy(), tt.height+tt.wantSwatchRows)
			}
		})
	}
}

func TestRenderPlacesSourceAboveSwatch(t *testing.T) {
	src := filled(8, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := NewRenderer(Options{}).Render(src, blackWhite())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := out.NRGBAAt(4, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("source pixel = %+v, want (10, 20, 30)", got)
	}
	if got := out.NRGBAAt(0, 3); got != (color.NRGBA{A: 255}) {
		t.Errorf("first swatch pixel = %+v, want black", got)
	}
	if got := out.NRGBAAt(7, out.Bounds().Dy()-1); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("last swatch pixel = %+v, want white", got)
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(Options{})

	if _, err := r.Render(nil, blackWhite()); err == nil {
		t.Error("Render(nil) expected error, got nil")
	}
	if _, err := r.Render(filled(2, 2, color.NRGBA{}), colour.NewPalette(nil)); err == nil {
		t.Error("Render() with empty palette expected error, got nil")
	}
}

func TestFitScalesToWidth(t *testing.T) {
	swatch := filled(9, 3, color.NRGBA{R: 50, G: 60, B: 70, A: 255})

	got := NewRenderer(Options{}).Fit(swatch, 10)

	if got.Bounds().Dx() != 10 || got.Bounds().Dy() != 3 {
		t.Errorf("Fit() bounds = %v, want 10x3", got.Bounds())
	}
	if c := got.NRGBAAt(5, 1); c != (color.NRGBA{R: 50, G: 60, B: 70, A: 255}) {
		t.Errorf("Fit() pixel = %+v, want the uniform colour", c)
	}
}
