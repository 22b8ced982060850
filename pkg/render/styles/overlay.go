package styles

import (
	"image"
	"image/color"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/canvas"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// Tint is a solid color blended over an image.
type Tint struct {
	Color     color.Color
	Intensity float64 // In [0, 1]
}

// Preset tints darken the base image for dark modules and lighten it for
// light ones.
var (
	DefaultOnTint  = Tint{Color: Black, Intensity: 0.75}
	DefaultOffTint = Tint{Color: White, Intensity: 0.70}
)

func (t *Tint) validate(name string) error {
	if t.Color == nil {
		return errors.New(errors.ErrCodeInvalidStyle, "%s tint has no color", name)
	}
	if t.Intensity < 0 || t.Intensity > 1 {
		return errors.New(errors.ErrCodeInvalidStyle, "%s tint intensity must be in [0, 1], got %g", name, t.Intensity)
	}
	return nil
}

// OverlayOptions selects one of two modes:
//
//   - two-image: On and Off are set
//   - tinted: Base, OnTint and OffTint are set
//
// Setting fields of both modes, or of neither, is an error.
type OverlayOptions struct {
	On, Off         image.Image
	Base            image.Image
	OnTint, OffTint *Tint
}

// TintedOptions returns tinted-mode options with the preset tints.
func TintedOptions(base image.Image) OverlayOptions {
	on, off := DefaultOnTint, DefaultOffTint
	return OverlayOptions{Base: base, OnTint: &on, OffTint: &off}
}

// Overlay pastes a pre-scaled image into every sub-cell: the on image for
// dark modules and the off image for light ones.
type Overlay struct {
	opts OverlayOptions

	on, off image.Image
	ppc     int
}

// NewOverlay validates opts and returns the strategy.
func NewOverlay(opts OverlayOptions) (*Overlay, error) {
	pair := opts.On != nil || opts.Off != nil
	tinted := opts.Base != nil || opts.OnTint != nil || opts.OffTint != nil

	switch {
	case pair && tinted:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "set either on/off images or a base image with tints, not both")
	case !pair && !tinted:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "set either on/off images or a base image with tints")
	case pair:
		if opts.On == nil || opts.Off == nil {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "both on and off images are required")
		}
	default:
		if opts.Base == nil {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "tints require a base image")
		}
		if opts.OnTint == nil || opts.OffTint == nil {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "both on and off tints are required")
		}
		if err := opts.OnTint.validate("on"); err != nil {
			return nil, err
		}
		if err := opts.OffTint.validate("off"); err != nil {
			return nil, err
		}
	}
	return &Overlay{opts: opts}, nil
}

// Name implements Strategy.
func (o *Overlay) Name() string {
	if o.Tinted() {
		return "tinted-image"
	}
	return "two-image"
}

// Tinted reports whether the strategy derives its images from one base image.
func (o *Overlay) Tinted() bool { return o.opts.Base != nil }

// Prepare scales the source images to one sub-cell and applies the tints.
// The work is redone only when PixelsPerCell changes.
func (o *Overlay) Prepare(cfg layout.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.on != nil && o.ppc == cfg.PixelsPerCell {
		return nil
	}

	size := cfg.PixelsPerCell
	var on, off image.Image
	if o.Tinted() {
		base, err := canvas.ScaleCrop(o.opts.Base, size)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAsset, err, "scale base image")
		}
		if on, err = canvas.Tint(base, o.opts.OnTint.Color, o.opts.OnTint.Intensity); err != nil {
			return err
		}
		if off, err = canvas.Tint(base, o.opts.OffTint.Color, o.opts.OffTint.Intensity); err != nil {
			return err
		}
	} else {
		var err error
		if on, err = canvas.ScaleCrop(o.opts.On, size); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAsset, err, "scale on image")
		}
		if off, err = canvas.ScaleCrop(o.opts.Off, size); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAsset, err, "scale off image")
		}
	}
	o.on, o.off, o.ppc = on, off, size
	return nil
}

// Decide implements Strategy.
func (o *Overlay) Decide(c layout.Cell, _ *matrix.Grid, cfg layout.Config) (Content, error) {
	if o.on == nil || o.ppc != cfg.PixelsPerCell {
		return Content{}, errors.New(errors.ErrCodeInternal, "overlay strategy not prepared for %d pixels per cell", cfg.PixelsPerCell)
	}
	if c.Value {
		return Content{Kind: KindImage, Image: o.on}, nil
	}
	return Content{Kind: KindImage, Image: o.off}, nil
}
