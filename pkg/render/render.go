package render

import (
	"image"
	"image/color"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/canvas"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
	"github.com/matzehuels/qrmosaic/pkg/render/styles"
)

// Stage names used in cell errors.
const (
	StageDecide = "decide"
	StageFill   = "fill"
	StageGlyph  = "glyph"
	StagePaste  = "paste"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackground sets the color the canvas is cleared to before drawing.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) {
		if c != nil {
			r.Background = c
		}
	}
}

// Renderer draws grids with one bound strategy.
type Renderer struct {
	Strategy   styles.Strategy
	Background color.Color
}

// Stats counts the primitives issued during a pass.
type Stats struct {
	Cells  int
	Fills  int
	Glyphs int
	Pastes int
}

// New returns a Renderer bound to s with a white background.
func New(s styles.Strategy, opts ...Option) (*Renderer, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "no strategy bound to renderer")
	}
	r := &Renderer{Strategy: s, Background: color.White}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render allocates a canvas for g and draws every sub-cell on it.
func (r *Renderer) Render(g *matrix.Grid, cfg layout.Config) (*canvas.Surface, error) {
	surface, _, err := r.RenderStats(g, cfg)
	return surface, err
}

// RenderStats is Render plus primitive counts.
func (r *Renderer) RenderStats(g *matrix.Grid, cfg layout.Config) (*canvas.Surface, Stats, error) {
	cells, err := layout.Expand(g, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	w, h := layout.CanvasSize(g, cfg)
	surface, err := canvas.New(w, h, r.Background)
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := r.draw(surface, cells, g, cfg)
	if err != nil {
		return nil, stats, err
	}
	return surface, stats, nil
}

// RenderOn draws g on an existing canvas, which must be at least as large as
// the expanded grid.
func (r *Renderer) RenderOn(c canvas.Canvas, g *matrix.Grid, cfg layout.Config) (Stats, error) {
	if c == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "canvas is nil")
	}
	cells, err := layout.Expand(g, cfg)
	if err != nil {
		return Stats{}, err
	}
	w, h := layout.CanvasSize(g, cfg)
	if need := image.Rect(0, 0, w, h); !need.In(c.Bounds()) {
		return Stats{}, errors.New(errors.ErrCodeInvalidConfig, "canvas %v too small for %v", c.Bounds(), need)
	}
	return r.draw(c, cells, g, cfg)
}

func (r *Renderer) draw(c canvas.Canvas, cells []layout.Cell, g *matrix.Grid, cfg layout.Config) (Stats, error) {
	if r.Strategy == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidStyle, "no strategy bound to renderer")
	}
	if p, ok := r.Strategy.(styles.Preparer); ok {
		if err := p.Prepare(cfg); err != nil {
			return Stats{}, err
		}
	}

	var stats Stats
	for _, cell := range cells {
		content, err := r.Strategy.Decide(cell, g, cfg)
		if err != nil {
			return stats, cellError(StageDecide, cell, err)
		}

		switch content.Kind {
		case styles.KindColor:
			if err := c.FillRect(layout.PixelBox(cell, cfg), content.Color); err != nil {
				return stats, cellError(StageFill, cell, err)
			}
			stats.Fills++
		case styles.KindGlyph:
			if err := c.DrawGlyph(layout.CenterPoint(cell, cfg), content.Glyph, content.Face, content.Color); err != nil {
				return stats, cellError(StageGlyph, cell, err)
			}
			stats.Glyphs++
		case styles.KindImage:
			if err := c.Paste(layout.PixelBox(cell, cfg).Min, content.Image); err != nil {
				return stats, cellError(StagePaste, cell, err)
			}
			stats.Pastes++
		default:
			return stats, cellError(StageDecide, cell,
				errors.New(errors.ErrCodeInternal, "unknown content kind %d", int(content.Kind)))
		}
		stats.Cells++
	}
	return stats, nil
}

func cellError(stage string, c layout.Cell, err error) error {
	return &errors.CellError{Stage: stage, X: c.X, Y: c.Y, DX: c.DX, DY: c.DY, Cause: err}
}
