package styles

import (
	"image/color"

	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// Flat fills dark sub-cells with Dark and light ones with Light.
type Flat struct {
	Dark  color.Color
	Light color.Color
}

// NewFlat returns a Flat strategy. Nil colors default to black and white.
func NewFlat(dark, light color.Color) *Flat {
	return &Flat{Dark: pick(dark, Black), Light: pick(light, White)}
}

// Name implements Strategy.
func (*Flat) Name() string { return "flat" }

// Decide implements Strategy.
func (f *Flat) Decide(c layout.Cell, _ *matrix.Grid, _ layout.Config) (Content, error) {
	if c.Value {
		return Content{Kind: KindColor, Color: pick(f.Dark, Black)}, nil
	}
	return Content{Kind: KindColor, Color: pick(f.Light, White)}, nil
}
