// Package fonts provides glyph fonts for raster rendering.
//
// The default font is Go Regular from golang.org/x/image/font/gofont, which is
// compiled into the binary and needs no files at runtime. Other TrueType
// fonts are parsed with [Parse].
//
// [Fit] builds a face whose test glyph fills a square of a given pixel size:
//
//	face, size, err := fonts.Fit(fonts.Default(), "%", 50)
package fonts

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// BaseSize is the point size at which test glyphs are measured before scaling.
const BaseSize = 100.0

// DefaultTestChar is the reference glyph used for auto-scaling.
const DefaultTestChar = "%"

// FamilyName is the name of the embedded default font.
const FamilyName = "Go Regular"

var (
	defaultFont     *truetype.Font
	defaultFontOnce sync.Once
)

// Default returns the parsed embedded font. The result is shared and must be
// treated as read-only.
func Default() *truetype.Font {
	defaultFontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic("fonts: embedded font is invalid: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Parse decodes TrueType font data.
func Parse(data []byte) (*truetype.Font, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "font data is empty")
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "parse font")
	}
	return f, nil
}

// NewFace returns an unhinted face of f at size points (72 DPI, so one point
// is one pixel).
func NewFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measure returns the ink width and height of s drawn with face, in pixels.
func Measure(face font.Face, s string) (w, h float64) {
	b, _ := font.BoundString(face, s)
	return float64(b.Max.X-b.Min.X) / 64, float64(b.Max.Y-b.Min.Y) / 64
}

// Fit returns a face of f in which testChar's larger ink dimension equals px,
// together with the point size used.
func Fit(f *truetype.Font, testChar string, px int) (font.Face, float64, error) {
	if f == nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "font is nil")
	}
	if px <= 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidConfig, "target size must be positive, got %d", px)
	}
	if testChar == "" {
		testChar = DefaultTestChar
	}

	base := NewFace(f, BaseSize)
	w, h := Measure(base, testChar)
	_ = base.Close()
	extent := math.Max(w, h)
	if extent <= 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidStyle, "test glyph %q has no ink", testChar)
	}

	size := BaseSize * float64(px) / extent
	return NewFace(f, size), size, nil
}
