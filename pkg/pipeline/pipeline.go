// Package pipeline runs the payload → matrix → render → encode pipeline for
// qrmosaic.
//
// The CLI and the HTTP server both go through a [Runner], so caching,
// verification, logging and observability hooks behave the same for every
// entry point.
//
// # Stages
//
//  1. Matrix: encode the payload into a module grid (matrix.QRSource)
//  2. Render: draw the grid with the bound strategy (render.Renderer)
//  3. Verify: optionally decode the render and compare payloads (scan)
//  4. Encode: produce the requested output formats (sink)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Payload:  "https://hole.cd",
//	    Formats:  []string{"png"},
//	    StyleKey: key,
//	}
//	result, err := runner.Execute(ctx, opts, strategy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrmosaic/pkg/cache"
	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
	"github.com/matzehuels/qrmosaic/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = sink.FormatPNG

// TTLArtifact is how long encoded artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Payload string

	// Matrix options
	Source matrix.QRSource

	// Render options
	Layout     layout.Config
	Background color.Color
	MaxPixels  int // canvas area limit, 0 for none

	// Output options
	Formats []string
	Quality int // JPEG quality, 0 selects the sink default
	Verify  bool

	// StyleKey fingerprints the bound strategy. Artifacts are cached only
	// when it is set.
	StyleKey string
	Refresh  bool

	Logger *log.Logger

	validated bool
}

// Result holds the outputs of a pipeline run. Grid and Image are nil when
// every artifact came from the cache.
type Result struct {
	Grid      *matrix.Grid
	Image     image.Image
	Artifacts map[string][]byte
	Stats     Stats
	CacheHit  bool
}

// Stats contains timing and size information.
type Stats struct {
	Modules    int
	Cells      int
	MatrixTime time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
	Verified   bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that every format is supported and normalizes
// aliases such as "jpg" in place.
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		norm, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		formats[i] = norm
	}
	return nil
}

// ValidateAndSetDefaults checks the payload and formats and fills in
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePayload(o.Payload); err != nil {
		return err
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Source.Version < 0 || o.Source.Version > matrix.MaxVersion {
		return errors.New(errors.ErrCodeInvalidConfig, "version must be between 1 and %d, got %d", matrix.MaxVersion, o.Source.Version)
	}
	if o.MaxPixels < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pixel limit must not be negative, got %d", o.MaxPixels)
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Quality < 0 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "quality must be between 1 and 100, got %d", o.Quality)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Cacheable reports whether artifacts of this run may be read from or
// written to the cache. Verified runs always render.
func (o *Options) Cacheable() bool {
	return o.StyleKey != "" && !o.Verify
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	level := o.Source.Level
	if level == "" {
		level = matrix.LevelMedium
	}
	opts := cache.ArtifactKeyOpts{
		Level:         string(level),
		Version:       o.Source.Version,
		Border:        o.Source.Border,
		PixelsPerCell: o.Layout.PixelsPerCell,
		SubCells:      o.Layout.SubCells,
		Background:    colorKey(o.Background),
		Style:         o.StyleKey,
		Format:        format,
	}
	if format == sink.FormatJPEG {
		opts.Quality = o.Quality
	}
	return opts
}

func colorKey(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
