// Package render draws a module grid onto a raster canvas.
//
// # Overview
//
// A [Renderer] binds one block rendering strategy and drives a single
// synchronous pass:
//
//  1. Validate the layout config
//  2. Expand the grid into sub-cells ([layout.Expand])
//  3. Allocate a canvas sized to the expanded grid
//  4. Prepare the strategy if it implements [styles.Preparer]
//  5. For each sub-cell, in order, ask the strategy what to draw and call the
//     matching canvas primitive
//
// The first failure aborts the pass. Failures are wrapped in an
// [errors.CellError] naming the stage and sub-cell; the original error stays
// reachable through errors.Is and errors.As.
//
//	r, _ := render.New(styles.NewFlat(nil, nil))
//	surface, err := r.Render(grid, layout.DefaultConfig())
//
// Subpackages:
//   - [layout]: sub-cell expansion and pixel geometry
//   - [canvas]: raster surface and image helpers
//   - [styles]: Flat, RepeatingGlyph and Overlay strategies
//   - [assets]: image and font loading
//   - [sink]: image encoding
//
// [layout]: github.com/matzehuels/qrmosaic/pkg/render/layout
// [canvas]: github.com/matzehuels/qrmosaic/pkg/render/canvas
// [styles]: github.com/matzehuels/qrmosaic/pkg/render/styles
// [assets]: github.com/matzehuels/qrmosaic/pkg/render/assets
// [sink]: github.com/matzehuels/qrmosaic/pkg/render/sink
// [errors.CellError]: github.com/matzehuels/qrmosaic/pkg/errors.CellError
package render
