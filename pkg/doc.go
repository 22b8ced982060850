// Package pkg provides the libraries behind qrmosaic.
//
// # Overview
//
// qrmosaic renders QR codes as styled rasters: every module is split into
// sub-cells and each sub-cell is filled by a rendering strategy with a flat
// color, a character from a repeating string, or an image tile. The pkg
// directory is organized into four areas:
//
//  1. Domain: [matrix] builds module grids, [render] and its subpackages
//     lay out, style and rasterize them, [scan] decodes the result.
//  2. Configuration: [config] reads TOML style files and builds strategies.
//  3. Infrastructure: [cache], [errors], [observability], [buildinfo].
//  4. Orchestration: [pipeline] runs matrix, render, verify and encode.
//
// # Pipeline
//
//	payload ─▶ matrix.Grid ─▶ layout.Expand ─▶ Strategy.Decide ─▶ canvas ─▶ sink
//
// Each stage can be used on its own:
//
//	g, _ := matrix.QRSource{Level: matrix.LevelHigh, Border: 1}.Generate("https://hole.cd")
//	r, _ := render.New(styles.NewFlat(nil, nil))
//	surface, _ := r.Render(g, layout.Config{PixelsPerCell: 30, SubCells: 2})
//	data, _ := sink.Encode(surface.Image(), sink.FormatPNG)
//
// [matrix]: github.com/matzehuels/qrmosaic/pkg/matrix
// [render]: github.com/matzehuels/qrmosaic/pkg/render
// [scan]: github.com/matzehuels/qrmosaic/pkg/scan
// [config]: github.com/matzehuels/qrmosaic/pkg/config
// [cache]: github.com/matzehuels/qrmosaic/pkg/cache
// [errors]: github.com/matzehuels/qrmosaic/pkg/errors
// [observability]: github.com/matzehuels/qrmosaic/pkg/observability
// [buildinfo]: github.com/matzehuels/qrmosaic/pkg/buildinfo
// [pipeline]: github.com/matzehuels/qrmosaic/pkg/pipeline
package pkg
