// Package pipeline extracts a colour palette from an image and writes the
// image with a rendered swatch beneath it.
//
// A run is linear: sample → (RGB→HSV) → cluster → (select) → (HSV→RGB) →
// sort → render. Nothing is shared between runs, so a Pipeline may be used
// from several goroutines.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	swimage "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/render"
	"github.com/jmylchreest/swatch/internal/seed"
)

// Pipeline runs palette extraction with a fixed configuration.
type Pipeline struct {
	cfg      Config
	loader   swimage.Loader
	selector colour.Selector
	renderer *render.Renderer
	logger   hclog.Logger
}

// Extraction is the in-memory result of palette extraction.
type Extraction struct {
	Palette    *colour.Palette
	Hex        []string
	Space      colour.Space
	Samples    int
	Candidates int

	// Seed is the k-means seed used. It is zero for the muesli backend,
	// which seeds itself.
	Seed int64

	// Degenerate is set when the palette holds duplicate colours.
	Degenerate bool
}

// Result is the outcome of a full run.
type Result struct {
	*Extraction

	OutputPath   string
	Width        int
	Height       int
	SwatchHeight int
}

// New creates a Pipeline after validating cfg.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		loader:   swimage.NewFileLoaderWithLimits(cfg.Limits),
		renderer: render.NewRenderer(render.Options{Levels: cfg.SwatchLevels}),
		logger:   cfg.Logger,
	}
	if p.logger == nil {
		p.logger = hclog.NewNullLogger()
	}

	if cfg.SelectDiverse {
		selector, err := colour.NewSelector(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		p.selector = selector
	}

	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run loads inputPath, extracts the palette, writes the composite image to
// outputPath and returns the palette. Nothing is written on failure.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	if err := swimage.ValidateOutputPath(outputPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	img, err := p.loader.Load(inputPath)
	if err != nil {
		return nil, err
	}
	enc := swimage.DetectEncoding(img)
	p.logger.Debug("loaded image", "path", inputPath, "encoding", enc, "high_precision", enc.HighPrecision(),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	canonical := swimage.Canonicalise(img)

	extraction, err := p.extract(ctx, canonical, inputPath)
	if err != nil {
		return nil, err
	}

	composite, err := p.renderer.Render(canonical, extraction.Palette)
	if err != nil {
		return nil, fmt.Errorf("failed to render swatch: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := swimage.SaveImage(composite, outputPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	result := &Result{
		Extraction:   extraction,
		OutputPath:   outputPath,
		Width:        composite.Bounds().Dx(),
		Height:       composite.Bounds().Dy(),
		SwatchHeight: composite.Bounds().Dy() - canonical.Bounds().Dy(),
	}
	p.logger.Info("wrote palette image", "path", outputPath, "width", result.Width, "height", result.Height)

	return result, nil
}

// Extract computes the palette of img without rendering anything.
// imagePath is only used by the filepath seed mode and may be empty otherwise.
func (p *Pipeline) Extract(ctx context.Context, img image.Image, imagePath string) (*Extraction, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrUnreadableImage)
	}
	return p.extract(ctx, swimage.Canonicalise(img), imagePath)
}

func (p *Pipeline) extract(ctx context.Context, img *image.NRGBA, imagePath string) (*Extraction, error) {
	cfg := p.cfg

	samples, err := colour.SampleGrid(img, cfg.Partitions)
	if err != nil {
		return nil, fmt.Errorf("failed to sample image: %w", err)
	}

	var seedValue int64
	if cfg.Algorithm == colour.AlgorithmMuesli {
		p.logger.Warn("muesli backend does not use the seed; results vary between runs")
	} else {
		seedValue, err = seed.Calculate(img, imagePath, cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate seed: %w", err)
		}
	}

	partitioner, err := colour.NewPartitioner(cfg.Algorithm, colour.ExtractorOptions{
		Seed:          &seedValue,
		MaxIterations: cfg.MaxIterations,
		Restarts:      cfg.Restarts,
	})
	if err != nil {
		return nil, err
	}

	points := samples
	if cfg.UseHSV {
		points = colour.ToHSV(samples)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := cfg.CandidateCount()
	p.logger.Debug("clustering", "samples", len(points), "candidates", candidates,
		"space", cfg.Space(), "algorithm", cfg.Algorithm, "seed", seedValue)

	pool, err := colour.NewClusterer(partitioner).Cluster(points, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster colours: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rgb, err := p.finalise(pool)
	if err != nil {
		return nil, err
	}

	palette := colour.PaletteFromTriples(rgb)
	palette.SortByBrightness()

	extraction := &Extraction{
		Palette:    palette,
		Hex:        palette.ToHex(),
		Seed:       seedValue,
		Space:      cfg.Space(),
		Samples:    len(samples),
		Candidates: candidates,
		Degenerate: palette.Distinct() < cfg.NumColours,
	}

	if extraction.Degenerate {
		if cfg.Strict {
			return nil, fmt.Errorf("%w: found %d distinct colours, requested %d",
				ErrDegeneratePalette, palette.Distinct(), cfg.NumColours)
		}
		p.logger.Warn("palette contains duplicate colours", "distinct", palette.Distinct(), "requested", cfg.NumColours)
	}

	p.logger.Debug("extracted palette", "colours", extraction.Hex)
	return extraction, nil
}

// finalise applies candidate selection and returns 0-255 RGB triples.
// Selection always runs on HSV, converting an RGB pool when needed.
func (p *Pipeline) finalise(pool []colour.Triple) ([]colour.Triple, error) {
	cfg := p.cfg

	if !cfg.SelectDiverse {
		if cfg.UseHSV {
			return colour.ToRGB255(pool), nil
		}
		return pool, nil
	}

	hsvPool := pool
	if !cfg.UseHSV {
		hsvPool = colour.ToHSV(pool)
	}

	selected, err := p.selector.Select(hsvPool, cfg.NumColours)
	if err != nil {
		return nil, fmt.Errorf("failed to select colours: %w", err)
	}
	p.logger.Debug("selected candidates", "strategy", cfg.Strategy, "pool", len(hsvPool), "kept", len(selected))

	return colour.ToRGB255(selected), nil
}
