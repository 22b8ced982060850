// Package styles defines the block rendering strategies.
//
// A [Strategy] decides, for one sub-cell at a time, what is drawn inside the
// sub-cell's pixel box. The renderer binds exactly one strategy per pass and
// dispatches on the returned [Content] kind:
//
//   - [KindColor]: fill the box with Content.Color
//   - [KindGlyph]: draw Content.Glyph with Content.Face, centered in the box
//   - [KindImage]: paste Content.Image at the top-left corner of the box
//
// Three strategies are provided: [Flat], [RepeatingGlyph] and [Overlay].
// Strategies with per-pass work (font scaling, image pre-scaling) also
// implement [Preparer]; the renderer calls Prepare once before the first
// Decide of every pass.
//
// Strategies hold cached per-pass state and must not be shared by passes that
// run concurrently.
package styles

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// Kind tags the variant held by a Content.
type Kind int

const (
	KindColor Kind = iota + 1
	KindGlyph
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindGlyph:
		return "glyph"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Content is what a strategy wants drawn in one sub-cell.
type Content struct {
	Kind  Kind
	Color color.Color // KindColor, KindGlyph
	Glyph string      // KindGlyph
	Face  font.Face   // KindGlyph
	Image image.Image // KindImage
}

// Strategy maps a sub-cell to visual content.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	// Decide returns the content for c.
	Decide(c layout.Cell, g *matrix.Grid, cfg layout.Config) (Content, error)
}

// Preparer is implemented by strategies that precompute resources for a
// given geometry.
type Preparer interface {
	Prepare(cfg layout.Config) error
}

// Default colors.
var (
	Black = color.NRGBA{0, 0, 0, 255}
	White = color.NRGBA{255, 255, 255, 255}
	Gray  = color.NRGBA{220, 220, 220, 255}
)

func pick(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
