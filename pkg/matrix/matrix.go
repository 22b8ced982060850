// Package matrix produces the boolean module grid of a QR symbol.
//
// # Overview
//
// A [Grid] is the logical input of every render pass: one boolean per module,
// stored row-major, with true meaning a dark module. Grids are produced by a
// [Source]; the default source, [QRSource], wraps github.com/skip2/go-qrcode
// and adds a configurable quiet zone.
//
//	src := matrix.QRSource{Level: matrix.LevelMedium, Border: 1}
//	g, err := src.Generate("https://hole.cd")
//
// Grids are immutable once returned. Callers may construct one by hand with
// [NewGrid], which copies and validates the input.
package matrix

import (
	"strings"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// Source generates a module grid from a payload.
type Source interface {
	Generate(payload string) (*Grid, error)
}

// Grid is a rectangular module matrix.
type Grid struct {
	Modules [][]bool // Row-major: Modules[y][x]
	Width   int
	Height  int
}

// NewGrid copies rows into a new grid and validates it.
func NewGrid(rows [][]bool) (*Grid, error) {
	modules := make([][]bool, len(rows))
	for y, row := range rows {
		modules[y] = append([]bool(nil), row...)
	}
	g := &Grid{Modules: modules, Height: len(rows)}
	if len(rows) > 0 {
		g.Width = len(rows[0])
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate rejects nil, empty and non-rectangular grids.
func (g *Grid) Validate() error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidMatrix, "grid is nil")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidMatrix, "grid is empty (%dx%d)", g.Width, g.Height)
	}
	if len(g.Modules) != g.Height {
		return errors.New(errors.ErrCodeInvalidMatrix, "grid has %d rows, want %d", len(g.Modules), g.Height)
	}
	for y, row := range g.Modules {
		if len(row) != g.Width {
			return errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d modules, want %d", y, len(row), g.Width)
		}
	}
	return nil
}

// At returns the module value at column x, row y.
func (g *Grid) At(x, y int) bool {
	return g.Modules[y][x]
}

// Dark counts the dark modules.
func (g *Grid) Dark() int {
	n := 0
	for _, row := range g.Modules {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// String renders the grid with '#' for dark and '.' for light modules.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for _, row := range g.Modules {
		for _, v := range row {
			if v {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
