package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// ScaleCrop fits img into a size×size square.
//
// The image is resized with Lanczos resampling so that its shorter side
// equals size, keeping the aspect ratio (the longer side is truncated to an
// integer), and then cropped around its center. An image that is already
// size×size is returned as an unmodified copy.
func ScaleCrop(img image.Image, size int) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "target size must be positive, got %d", size)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "image is empty (%dx%d)", w, h)
	}
	if w == size && h == size {
		return imaging.Clone(img), nil
	}

	newW, newH := size, size
	if w > h {
		newW = size * w / h
	} else if h > w {
		newH = size * h / w
	}
	scaled := imaging.Resize(img, newW, newH, imaging.Lanczos)
	return imaging.CropCenter(scaled, size, size), nil
}

// Tint blends img with a solid color layer.
//
// For opaque pixels each channel becomes base*(1-intensity) + tint*intensity.
func Tint(img image.Image, tint color.Color, intensity float64) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	if tint == nil {
		return nil, errors.New(errors.ErrCodeInvalidColor, "tint color is nil")
	}
	if intensity < 0 || intensity > 1 {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "tint intensity must be in [0, 1], got %g", intensity)
	}
	if intensity == 0 {
		return imaging.Clone(img), nil
	}
	b := img.Bounds()
	layer := imaging.New(b.Dx(), b.Dy(), tint)
	return imaging.Overlay(imaging.Clone(img), layer, image.Pt(0, 0), intensity), nil
}
