// Package sink writes rendered QR codes to their final output formats.
//
// # Overview
//
// A "sink" turns a finished canvas (or the grid behind it) into bytes:
//
//   - PNG: lossless raster output (default)
//   - JPEG: lossy raster output with configurable quality
//   - BMP and TIFF: via golang.org/x/image
//   - JSON: the module grid and render geometry, for external tools
//
// Basic usage:
//
//	data, err := sink.Encode(surface.Image(), sink.FormatPNG)
//	err = sink.WriteFile(afero.NewOsFs(), "qr.png", data)
//
// [FormatFromPath] picks a format from a file extension, so the CLI can infer
// the format from the output path.
package sink
