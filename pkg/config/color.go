package config

import (
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/render/styles"
)

var namedColors = map[string]color.NRGBA{
	"black":       styles.Black,
	"white":       styles.White,
	"gray":        styles.Gray,
	"grey":        styles.Gray,
	"transparent": {},
}

// ParseColor parses a named color or a hex triplet. The leading '#' is
// optional; "rgb", "rrggbb" and "rrggbbaa" forms are accepted.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")

	alpha := uint8(255)
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// ParseTint parses "COLOR:INTENSITY", e.g. "#000000:0.75". The intensity
// must lie in [0, 1].
func ParseTint(s string) (styles.Tint, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return styles.Tint{}, errors.New(errors.ErrCodeInvalidStyle, "tint %q must be COLOR:INTENSITY", s)
	}
	c, err := ParseColor(s[:i])
	if err != nil {
		return styles.Tint{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil {
		return styles.Tint{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid tint intensity in %q", s)
	}
	if v < 0 || v > 1 {
		return styles.Tint{}, errors.New(errors.ErrCodeInvalidStyle, "tint intensity must be in [0,1], got %g", v)
	}
	return styles.Tint{Color: c, Intensity: v}, nil
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	hex := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}.Hex()
	if n.A == 255 {
		return hex
	}
	return hex + strconv.FormatUint(uint64(n.A)|0x100, 16)[1:]
}
