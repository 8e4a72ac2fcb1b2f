package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/pipeline"
	"github.com/jmylchreest/swatch/internal/render"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/seed"
)

// outputFormats lists the palette formats the extract command can print.
var outputFormats = []string{"hex", "rgb", "json", "table"}

// extractOptions holds the extract command flags.
type extractOptions struct {
	colours    int
	output     string
	partitions int
	hsv        bool
	selection  bool
	strategy   string
	algorithm  string
	seedMode   string
	seedValue  int64
	iterations int
	restarts   int
	smooth     bool
	strict     bool
	format     string
	preview    bool
	maxPixels  int
	maxBytes   int64
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}
	defaults := pipeline.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image and write the image with the palette
rendered as a swatch underneath.

Supported input formats: JPEG, PNG, GIF, WebP. The output format follows the
output file extension (.png, .jpg or .jpeg).

Examples:
  # Extract 4 colours (default) and write out_wallpaper.jpg next to the input
  swatch extract wallpaper.jpg

  # Extract 6 colours with a smooth gradient swatch
  swatch extract -c 6 --smooth -o palette.png wallpaper.jpg

  # Cluster in RGB without candidate selection
  swatch extract --hsv=false --select=false wallpaper.png

  # Greedy dispersion selection with a fixed seed, JSON output
  swatch extract --strategy dispersion --seed-value 42 -f json wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.colours, "colours", "c", defaults.NumColours,
		fmt.Sprintf("number of colours to extract (%d-%d)", pipeline.MinColours, pipeline.MaxColours))
	flags.StringVarP(&opts.output, "output", "o", "", "output image path (default: out_<image> next to the input)")
	flags.IntVar(&opts.partitions, "partitions", defaults.Partitions, "sampling grid size; partitions² pixels are sampled")
	flags.BoolVar(&opts.hsv, "hsv", defaults.UseHSV, "cluster in HSV instead of RGB")
	flags.BoolVar(&opts.selection, "select", defaults.SelectDiverse, "over-cluster and keep the most distinctive colours")
	flags.StringVar(&opts.strategy, "strategy", string(defaults.Strategy), "selection strategy (score, dispersion)")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", string(defaults.Algorithm), "k-means backend (kmeans, muesli)")
	flags.StringVar(&opts.seedMode, "seed-mode", string(defaults.Seed.Mode), "k-means seed mode: content, filepath, manual, random")
	flags.Int64Var(&opts.seedValue, "seed-value", 0, "k-means seed value (implies --seed-mode=manual)")
	flags.IntVar(&opts.iterations, "iterations", defaults.MaxIterations, "maximum k-means iterations per restart")
	flags.IntVar(&opts.restarts, "restarts", defaults.Restarts, "number of k-means restarts")
	flags.BoolVar(&opts.smooth, "smooth", false, "render a continuous gradient instead of flat colour blocks")
	flags.BoolVar(&opts.strict, "strict", false, "fail when the image has fewer distinct colours than requested")
	flags.StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json, table)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour previews (default: on when stdout is a terminal)")
	flags.IntVar(&opts.maxPixels, "max-pixels", defaults.Limits.MaxPixels, "reject images with more pixels than this (0 disables)")
	flags.Int64Var(&opts.maxBytes, "max-bytes", defaults.Limits.MaxBytes, "reject image files larger than this many bytes (0 disables)")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, opts *extractOptions, imagePath string) error {
	logger := newLogger(cmd)

	if !slices.Contains(outputFormats, opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(outputFormats, ", "))
	}

	cfg, err := opts.config(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Logger = logger

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !image.IsImageFile(imagePath) {
		logger.Warn("unrecognised image extension, trying to decode anyway", "image", imagePath,
			"supported", strings.Join(image.SupportedImageExtensions(), ", "))
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultOutputPath(imagePath)
	}

	logger.Debug("extracting palette", "image", imagePath, "colours", cfg.NumColours)
	result, err := p.Run(cmd.Context(), imagePath, outputPath)
	if err != nil {
		if errors.Is(err, pipeline.ErrDegeneratePalette) {
			return fmt.Errorf("%w\nthe image may be too simple for %d colours, try again with fewer", err, cfg.NumColours)
		}
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("extracted palette", "seed", result.Seed, "width", result.Width, "height", result.Height,
		"swatch_height", result.SwatchHeight)

	showPreview := opts.preview
	if !cmd.Flags().Changed("preview") {
		showPreview = isTerminal(cmd.OutOrStdout())
	}

	output, err := formatPalette(result.Palette, opts.format, showPreview)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet && opts.format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Palette image written to %s\n", result.OutputPath)
	}

	return nil
}

// config converts the flags into a pipeline configuration.
func (o *extractOptions) config(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	cfg.NumColours = o.colours
	cfg.Partitions = o.partitions
	cfg.UseHSV = o.hsv
	cfg.SelectDiverse = o.selection
	cfg.Strategy = colour.Strategy(o.strategy)
	cfg.Algorithm = colour.Algorithm(o.algorithm)
	cfg.MaxIterations = o.iterations
	cfg.Restarts = o.restarts
	cfg.Strict = o.strict
	cfg.Limits = security.Limits{MaxBytes: o.maxBytes, MaxPixels: o.maxPixels}
	if o.smooth {
		cfg.SwatchLevels = render.SmoothLevels
	}

	mode, err := seed.ParseMode(o.seedMode)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed-value") && !cmd.Flags().Changed("seed-mode") {
		mode = seed.ModeManual
	}
	cfg.Seed = seed.Config{Mode: mode}
	if mode == seed.ModeManual {
		value := o.seedValue
		cfg.Seed.Value = &value
	}

	return cfg, nil
}

// defaultOutputPath returns out_<name> in the input's directory, switching
// to PNG when the input format cannot be written.
func defaultOutputPath(imagePath string) string {
	dir, base := filepath.Split(imagePath)
	ext := strings.ToLower(filepath.Ext(base))
	if !slices.Contains(image.SupportedOutputExtensions(), ext) {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	return filepath.Join(dir, "out_"+base)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return paletteTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(outputFormats, ", "))
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.FormatColourWithPreview(rgb, 8))
		} else {
			sb.WriteString(rgb.Hex())
		}
		sb.WriteString("\n")
	}
	if showPreview {
		sb.WriteString(colour.PaletteStrip(palette, 4) + "\n")
	}
	return sb.String()
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.ColourPreviewWithText(rgb, rgb.Hex(), 9) + "  ")
		}
		sb.WriteString(rgb.String() + "\n")
	}
	return sb.String()
}
