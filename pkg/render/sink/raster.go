package sink

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatJSON = "json"
)

// DefaultJPEGQuality is used when no quality is set.
const DefaultJPEGQuality = 92

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatBMP:  true,
	FormatTIFF: true,
	FormatJSON: true,
}

// RasterFormats is the subset of ValidFormats produced by Encode.
var RasterFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatBMP:  true,
	FormatTIFF: true,
}

var aliases = map[string]string{
	"jpg": FormatJPEG,
	"tif": FormatTIFF,
}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
	FormatJSON: "application/json",
}

// FormatNames returns the supported format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// ParseFormat normalizes a format name, accepting "jpg" and "tif".
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if a, ok := aliases[f]; ok {
		f = a
	}
	if err := errors.ValidateFormat(f, ValidFormats); err != nil {
		return "", err
	}
	return f, nil
}

// FormatFromPath infers the format from the file extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Ext returns the canonical file extension for a format, with a leading dot.
func Ext(format string) string {
	if format == FormatJPEG {
		return ".jpg"
	}
	return "." + format
}

// EncodeOption configures raster encoding.
type EncodeOption func(*encoder)

type encoder struct {
	quality int
}

// WithQuality sets the JPEG quality (1-100).
func WithQuality(q int) EncodeOption {
	return func(e *encoder) {
		if q > 0 {
			e.quality = q
		}
	}
}

// Encode encodes img in a raster format.
func Encode(img image.Image, format string, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, img, format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo encodes img to w in a raster format.
func EncodeTo(w io.Writer, img image.Image, format string, opts ...EncodeOption) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	e := encoder{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&e)
	}
	if e.quality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "jpeg quality must be 1-100, got %d", e.quality)
	}

	var err error
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: e.quality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported raster format: %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}

// WriteFile writes data to path on fs, creating parent directories.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
