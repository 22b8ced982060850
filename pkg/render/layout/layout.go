// Package layout expands a module grid into sub-cells and maps each sub-cell
// to its pixel box on the canvas.
//
// # Expansion
//
// Every module of a [matrix.Grid] becomes a SubCells×SubCells block of
// [Cell] values that inherit the module's boolean value. [Expand] emits them
// module-row-major (y, then x) and, inside each module, sub-row-major
// (dy, then dx). Later cells are drawn after earlier ones, so this order is
// part of the contract.
//
// # Geometry
//
// [PixelBox] places the sub-cell at
//
//	x0 = (X*SubCells + DX) * PixelsPerCell
//	y0 = (Y*SubCells + DY) * PixelsPerCell
//
// with a side of PixelsPerCell. Boxes of distinct cells never overlap and
// together cover the whole canvas returned by [CanvasSize].
package layout

import (
	"image"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
)

// Default render settings.
const (
	DefaultPixelsPerCell = 50
	DefaultSubCells      = 2
)

// Config holds the geometry of one render pass.
type Config struct {
	PixelsPerCell int // Side of one sub-cell in pixels
	SubCells      int // Sub-cells per module side
}

// DefaultConfig returns 50 pixels per cell and 2×2 sub-cells per module.
func DefaultConfig() Config {
	return Config{PixelsPerCell: DefaultPixelsPerCell, SubCells: DefaultSubCells}
}

// Validate returns an INVALID_CONFIG error unless both fields are positive.
func (c Config) Validate() error {
	if c.PixelsPerCell <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pixels per cell must be positive, got %d", c.PixelsPerCell)
	}
	if c.SubCells <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sub-cells per module must be positive, got %d", c.SubCells)
	}
	return nil
}

// Cell is one sub-cell of one module.
type Cell struct {
	X, Y   int  // Module coordinates
	DX, DY int  // Offset within the module, in [0, SubCells)
	Value  bool // Inherited module value (true = dark)
}

// Expand returns the sub-cells of g in drawing order.
func Expand(g *matrix.Grid, cfg Config) ([]Cell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	n := cfg.SubCells
	cells := make([]Cell, 0, g.Width*g.Height*n*n)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			for dy := 0; dy < n; dy++ {
				for dx := 0; dx < n; dx++ {
					cells = append(cells, Cell{X: x, Y: y, DX: dx, DY: dy, Value: v})
				}
			}
		}
	}
	return cells, nil
}

// AbsolutePosition returns the cell's column and row in the expanded grid.
func AbsolutePosition(c Cell, cfg Config) (absX, absY int) {
	return c.X*cfg.SubCells + c.DX, c.Y*cfg.SubCells + c.DY
}

// PixelBox returns the canvas rectangle covered by c.
func PixelBox(c Cell, cfg Config) image.Rectangle {
	ax, ay := AbsolutePosition(c, cfg)
	x0, y0 := ax*cfg.PixelsPerCell, ay*cfg.PixelsPerCell
	return image.Rect(x0, y0, x0+cfg.PixelsPerCell, y0+cfg.PixelsPerCell)
}

// CenterPoint returns the anchor used for centered content such as glyphs.
func CenterPoint(c Cell, cfg Config) image.Point {
	box := PixelBox(c, cfg)
	half := cfg.PixelsPerCell / 2
	return image.Pt(box.Min.X+half, box.Min.Y+half)
}

// CanvasSize returns the pixel dimensions needed to draw g.
func CanvasSize(g *matrix.Grid, cfg Config) (w, h int) {
	side := cfg.SubCells * cfg.PixelsPerCell
	return g.Width * side, g.Height * side
}
