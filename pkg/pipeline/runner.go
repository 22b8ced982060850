package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrmosaic/pkg/cache"
	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/observability"
	"github.com/matzehuels/qrmosaic/pkg/render"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
	"github.com/matzehuels/qrmosaic/pkg/render/sink"
	"github.com/matzehuels/qrmosaic/pkg/render/styles"
	"github.com/matzehuels/qrmosaic/pkg/scan"
)

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state. It may be shared by goroutines as long as
// each run binds its own strategy instance.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pipeline for opts with strategy s.
func (r *Runner) Execute(ctx context.Context, opts Options, s styles.Strategy) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "no strategy")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	if opts.Cacheable() && !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, opts); ok {
			logger.Debug("artifacts served from cache", "formats", opts.Formats)
			return &Result{Artifacts: artifacts, CacheHit: true}, nil
		}
	}

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	// Stage 1: Matrix
	matrixStart := time.Now()
	g, err := r.Matrix(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Stats.MatrixTime = time.Since(matrixStart)
	result.Stats.Modules = g.Width * g.Height

	// Stage 2: Render
	renderStart := time.Now()
	img, stats, err := r.Render(ctx, g, opts, s)
	if err != nil {
		return nil, err
	}
	result.Image = img
	result.Stats.Cells = stats.Cells
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered grid",
		"style", s.Name(),
		"cells", stats.Cells,
		"size", img.Bounds().Size(),
		"duration", result.Stats.RenderTime)

	// Stage 3: Verify
	if opts.Verify {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := scan.Verify(img, opts.Payload); err != nil {
			return nil, err
		}
		result.Stats.Verified = true
		logger.Info("verified render", "payload_bytes", len(opts.Payload))
	}

	// Stage 4: Encode
	encodeStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.encode(ctx, g, img, opts, s, format)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	logger.Info("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	if opts.Cacheable() {
		r.store(ctx, opts, result.Artifacts)
	}
	return result, nil
}

// Matrix runs the matrix stage alone.
func (r *Runner) Matrix(ctx context.Context, opts Options) (*matrix.Grid, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnMatrixStart(ctx, len(opts.Payload))

	start := time.Now()
	g, err := opts.Source.Generate(opts.Payload)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnMatrixComplete(ctx, 0, 0, elapsed, err)
		return nil, err
	}
	hooks.OnMatrixComplete(ctx, g.Width, g.Height, elapsed, nil)

	opts.Logger.Info("generated matrix",
		"modules", g.Width,
		"dark", g.Dark(),
		"duration", elapsed)
	return g, nil
}

// Render runs the render stage alone.
func (r *Runner) Render(ctx context.Context, g *matrix.Grid, opts Options, s styles.Strategy) (image.Image, render.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, render.Stats{}, err
	}
	if opts.MaxPixels > 0 {
		w, h := layout.CanvasSize(g, opts.Layout)
		if int64(w)*int64(h) > int64(opts.MaxPixels) {
			return nil, render.Stats{}, errors.New(errors.ErrCodeInvalidInput,
				"canvas %dx%d exceeds the limit of %d pixels", w, h, opts.MaxPixels)
		}
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, s.Name(), g.Width*g.Height*opts.Layout.SubCells*opts.Layout.SubCells)

	start := time.Now()
	rd, err := render.New(s, render.WithBackground(opts.Background))
	if err != nil {
		hooks.OnRenderComplete(ctx, s.Name(), time.Since(start), err)
		return nil, render.Stats{}, err
	}
	surface, stats, err := rd.RenderStats(g, opts.Layout)
	hooks.OnRenderComplete(ctx, s.Name(), time.Since(start), err)
	if err != nil {
		return nil, stats, err
	}
	return surface.Image(), stats, nil
}

func (r *Runner) encode(ctx context.Context, g *matrix.Grid, img image.Image, opts Options, s styles.Strategy, format string) ([]byte, error) {
	start := time.Now()
	var data []byte
	var err error
	if format == sink.FormatJSON {
		data, err = sink.RenderJSON(g, opts.Layout,
			sink.WithJSONPayload(opts.Payload),
			sink.WithJSONStyle(s.Name()),
			sink.WithJSONLevel(string(opts.Source.Level)))
	} else {
		var encOpts []sink.EncodeOption
		if opts.Quality > 0 {
			encOpts = append(encOpts, sink.WithQuality(opts.Quality))
		}
		data, err = sink.Encode(img, format, encOpts...)
	}
	observability.Pipeline().OnEncodeComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

// lookup returns the cached artifacts when every format is present.
func (r *Runner) lookup(ctx context.Context, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if format == sink.FormatJSON {
			return nil, false
		}
		key := r.Keyer.ArtifactKey(opts.Payload, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		if format == sink.FormatJSON {
			continue
		}
		key := r.Keyer.ArtifactKey(opts.Payload, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
