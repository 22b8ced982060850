package styles

import (
	"image/color"
	"unicode"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/fonts"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// GlyphOptions configures a RepeatingGlyph strategy.
type GlyphOptions struct {
	Text     string         // Characters to repeat; must not be empty
	Overwrap bool           // Walk Text across the whole grid instead of per row
	Light    color.Color    // Light module color (default 220,220,220)
	Dark     color.Color    // Dark module color (default black)
	Offset   int            // Added to every index
	Shift    int            // Added once per sub-cell row
	Font     *truetype.Font // Default: fonts.Default()
	TestChar string         // Reference glyph for scaling (default "%")
}

// RepeatingGlyph draws one character of a repeating string per sub-cell.
//
// With Overwrap unset the string restarts on every row, so each column shows
// the same character. With Overwrap set the string continues from one row to
// the next. Shift skews every row by a further Shift characters.
type RepeatingGlyph struct {
	text     []rune
	overwrap bool
	light    color.Color
	dark     color.Color
	offset   int
	shift    int
	font     *truetype.Font
	testChar string

	face     font.Face
	faceSize float64
	facePPC  int
}

// NewRepeatingGlyph validates opts and returns the strategy.
func NewRepeatingGlyph(opts GlyphOptions) (*RepeatingGlyph, error) {
	text := []rune(opts.Text)
	if len(text) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "glyph text cannot be empty")
	}
	for i, r := range text {
		if unicode.IsControl(r) {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "glyph text contains a control character at %d", i)
		}
	}
	f := opts.Font
	if f == nil {
		f = fonts.Default()
	}
	testChar := opts.TestChar
	if testChar == "" {
		testChar = fonts.DefaultTestChar
	}
	return &RepeatingGlyph{
		text:     text,
		overwrap: opts.Overwrap,
		light:    pick(opts.Light, Gray),
		dark:     pick(opts.Dark, Black),
		offset:   opts.Offset,
		shift:    opts.Shift,
		font:     f,
		testChar: testChar,
	}, nil
}

// Name implements Strategy.
func (*RepeatingGlyph) Name() string { return "glyph" }

// Prepare scales the font so the test glyph fills one sub-cell. The face is
// rebuilt only when PixelsPerCell changes.
func (s *RepeatingGlyph) Prepare(cfg layout.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.face != nil && s.facePPC == cfg.PixelsPerCell {
		return nil
	}
	face, size, err := fonts.Fit(s.font, s.testChar, cfg.PixelsPerCell)
	if err != nil {
		return err
	}
	if s.face != nil {
		_ = s.face.Close()
	}
	s.face, s.faceSize, s.facePPC = face, size, cfg.PixelsPerCell
	return nil
}

// FontSize returns the point size chosen by the last Prepare.
func (s *RepeatingGlyph) FontSize() float64 { return s.faceSize }

// Index returns the position in the text used for c.
func (s *RepeatingGlyph) Index(c layout.Cell, g *matrix.Grid, cfg layout.Config) int {
	absX, absY := layout.AbsolutePosition(c, cfg)
	rowShift := s.shift * absY
	i := absX
	if s.overwrap {
		i = absY*(g.Width*cfg.SubCells) + absX
	}
	return mod(i+s.offset+rowShift, len(s.text))
}

// GlyphAt returns the character drawn in c.
func (s *RepeatingGlyph) GlyphAt(c layout.Cell, g *matrix.Grid, cfg layout.Config) string {
	return string(s.text[s.Index(c, g, cfg)])
}

// ColorOf returns the glyph color for a module value.
func (s *RepeatingGlyph) ColorOf(dark bool) color.Color {
	if dark {
		return s.dark
	}
	return s.light
}

// Decide implements Strategy.
func (s *RepeatingGlyph) Decide(c layout.Cell, g *matrix.Grid, cfg layout.Config) (Content, error) {
	if s.face == nil || s.facePPC != cfg.PixelsPerCell {
		return Content{}, errors.New(errors.ErrCodeInternal, "glyph strategy not prepared for %d pixels per cell", cfg.PixelsPerCell)
	}
	return Content{
		Kind:  KindGlyph,
		Glyph: s.GlyphAt(c, g, cfg),
		Color: s.ColorOf(c.Value),
		Face:  s.face,
	}, nil
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
