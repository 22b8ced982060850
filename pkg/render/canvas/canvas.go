// Package canvas provides the raster surface a render pass draws on.
//
// # Primitives
//
// A [Canvas] exposes the three drawing primitives the renderer needs:
//
//   - [Canvas.FillRect] paints a rectangle with a solid color
//   - [Canvas.DrawGlyph] draws one glyph with its ink centered on a point
//   - [Canvas.Paste] copies an image with its top-left corner at a point
//
// Every primitive checks its target against the surface bounds first and
// returns an error without touching any pixel when the check fails.
//
// [Surface] is the default implementation, backed by a github.com/fogleman/gg
// context over an RGBA buffer. A Surface is not safe for concurrent writers.
//
// # Image helpers
//
// [ScaleCrop] and [Tint] prepare overlay images before a pass. Both return
// new images and never modify their input.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Canvas

// Canvas is a mutable drawing surface.
type Canvas interface {
	// Bounds returns the drawable area.
	Bounds() image.Rectangle

	// FillRect paints box with c.
	FillRect(box image.Rectangle, c color.Color) error

	// DrawGlyph draws glyph with face so that its ink box is centered on center.
	DrawGlyph(center image.Point, glyph string, face font.Face, c color.Color) error

	// Paste copies img onto the surface with its top-left corner at at. The
	// covered pixels are replaced, alpha included.
	Paste(at image.Point, img image.Image) error

	// Image returns the current pixels.
	Image() image.Image
}

// Surface is a Canvas backed by a gg context.
type Surface struct {
	dc *gg.Context
}

var _ Canvas = (*Surface)(nil)

// New allocates a w×h surface filled with background.
func New(w, h int, background color.Color) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive, got %dx%d", w, h)
	}
	if background == nil {
		background = color.White
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(background)
	dc.Clear()
	return &Surface{dc: dc}, nil
}

// Bounds implements Canvas.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.dc.Height() }

// FillRect implements Canvas.
func (s *Surface) FillRect(box image.Rectangle, c color.Color) error {
	if err := s.check(box); err != nil {
		return err
	}
	if c == nil {
		return errors.New(errors.ErrCodeInvalidColor, "fill color is nil")
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
	s.dc.Fill()
	return nil
}

// DrawGlyph implements Canvas.
func (s *Surface) DrawGlyph(center image.Point, glyph string, face font.Face, c color.Color) error {
	if glyph == "" {
		return errors.New(errors.ErrCodeInvalidInput, "glyph is empty")
	}
	if face == nil {
		return errors.New(errors.ErrCodeInvalidInput, "font face is nil")
	}
	if c == nil {
		return errors.New(errors.ErrCodeInvalidColor, "glyph color is nil")
	}
	if !center.In(s.Bounds()) {
		return errors.New(errors.ErrCodeDrawFailed, "glyph center %v outside canvas %v", center, s.Bounds())
	}

	ink, _ := font.BoundString(face, glyph)
	ox := float64(center.X) - fixedToFloat(ink.Min.X+ink.Max.X)/2
	oy := float64(center.Y) - fixedToFloat(ink.Min.Y+ink.Max.Y)/2

	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawString(glyph, ox, oy)
	return nil
}

// Paste implements Canvas.
func (s *Surface) Paste(at image.Point, img image.Image) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	src := img.Bounds()
	box := image.Rectangle{Min: at, Max: at.Add(src.Size())}
	if err := s.check(box); err != nil {
		return err
	}
	dst, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "unexpected surface buffer %T", s.dc.Image())
	}
	draw.Draw(dst, box, img, src.Min, draw.Src)
	return nil
}

// Image implements Canvas.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) check(box image.Rectangle) error {
	if box.Empty() {
		return errors.New(errors.ErrCodeDrawFailed, "empty box %v", box)
	}
	if !box.In(s.Bounds()) {
		return errors.New(errors.ErrCodeDrawFailed, "box %v outside canvas %v", box, s.Bounds())
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
