package styles

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

func grid(t *testing.T, w, h int) *matrix.Grid {
	t.Helper()
	rows := make([][]bool, h)
	for y := range rows {
		rows[y] = make([]bool, w)
		for x := range rows[y] {
			rows[y][x] = (x+y)%2 == 0
		}
	}
	g, err := matrix.NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFlatDecide(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	tests := []struct {
		name  string
		flat  *Flat
		value bool
		want  color.Color
	}{
		{"default dark", NewFlat(nil, nil), true, Black},
		{"default light", NewFlat(nil, nil), false, White},
		{"custom dark", NewFlat(red, nil), true, red},
		{"custom light", NewFlat(nil, red), false, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flat.Decide(layout.Cell{Value: tt.value}, nil, layout.DefaultConfig())
			if err != nil {
				t.Fatalf("Decide() error = %v", err)
			}
			if got.Kind != KindColor {
				t.Errorf("Decide() kind = %v, want %v", got.Kind, KindColor)
			}
			if got.Color != tt.want {
				t.Errorf("Decide() color = %v, want %v", got.Color, tt.want)
			}
		})
	}
}

func TestRepeatingGlyphIndexNoOverwrap(t *testing.T) {
	s, err := NewRepeatingGlyph(GlyphOptions{Text: "HOLE"})
	if err != nil {
		t.Fatalf("NewRepeatingGlyph() error = %v", err)
	}
	cfg := layout.Config{PixelsPerCell: 10, SubCells: 1}
	g := grid(t, 8, 2)

	want := "HOLEHOLE"
	for y := 0; y < 2; y++ {
		var got strings.Builder
		for x := 0; x < 8; x++ {
			got.WriteString(s.GlyphAt(layout.Cell{X: x, Y: y}, g, cfg))
		}
		if got.String() != want {
			t.Errorf("row %d = %q, want %q", y, got.String(), want)
		}
	}
}

func TestRepeatingGlyphIndexOverwrap(t *testing.T) {
	s, err := NewRepeatingGlyph(GlyphOptions{Text: "HOLE", Overwrap: true})
	if err != nil {
		t.Fatalf("NewRepeatingGlyph() error = %v", err)
	}
	cfg := layout.Config{PixelsPerCell: 10, SubCells: 1}
	g := grid(t, 4, 2)

	if got := s.GlyphAt(layout.Cell{X: 0, Y: 1}, g, cfg); got != "H" {
		t.Errorf("GlyphAt(0,1) = %q, want %q", got, "H")
	}

	// Width 3 so rows do not line up with the text length.
	g3 := grid(t, 3, 2)
	var got strings.Builder
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got.WriteString(s.GlyphAt(layout.Cell{X: x, Y: y}, g3, cfg))
		}
	}
	if got.String() != "HOLEHO" {
		t.Errorf("overwrap walk = %q, want %q", got.String(), "HOLEHO")
	}
}

func TestRepeatingGlyphIndexWithSubCells(t *testing.T) {
	s, err := NewRepeatingGlyph(GlyphOptions{Text: "HOLE", Overwrap: true})
	if err != nil {
		t.Fatalf("NewRepeatingGlyph() error = %v", err)
	}
	cfg := layout.Config{PixelsPerCell: 10, SubCells: 2}
	g := grid(t, 3, 3)

	// absX = 1*2+1 = 3, absY = 0*2+1 = 1, absIndex = 1*6+3 = 9 -> 9 % 4 = 1.
	c := layout.Cell{X: 1, Y: 0, DX: 1, DY: 1}
	if got := s.Index(c, g, cfg); got != 1 {
		t.Errorf("Index() = %d, want 1", got)
	}
}

func TestRepeatingGlyphOffsetAndShift(t *testing.T) {
	cfg := layout.Config{PixelsPerCell: 10, SubCells: 1}
	g := grid(t, 4, 3)

	tests := []struct {
		name string
		opts GlyphOptions
		cell layout.Cell
		want string
	}{
		{"offset", GlyphOptions{Text: "HOLE", Offset: 1}, layout.Cell{X: 0, Y: 0}, "O"},
		{"negative offset", GlyphOptions{Text: "HOLE", Offset: -1}, layout.Cell{X: 0, Y: 0}, "E"},
		{"shift row 2", GlyphOptions{Text: "HOLE", Shift: 1}, layout.Cell{X: 0, Y: 2}, "L"},
		{"negative shift", GlyphOptions{Text: "HOLE", Shift: -1}, layout.Cell{X: 0, Y: 1}, "E"},
		{"large offset", GlyphOptions{Text: "HOLE", Offset: 4001}, layout.Cell{X: 0, Y: 0}, "O"},
		{"multibyte", GlyphOptions{Text: "日本語"}, layout.Cell{X: 2, Y: 0}, "語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRepeatingGlyph(tt.opts)
			if err != nil {
				t.Fatalf("NewRepeatingGlyph() error = %v", err)
			}
			if got := s.GlyphAt(tt.cell, g, cfg); got != tt.want {
				t.Errorf("GlyphAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRepeatingGlyphErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"control", "A\nB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepeatingGlyph(GlyphOptions{Text: tt.text})
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("NewRepeatingGlyph() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestRepeatingGlyphDecide(t *testing.T) {
	s, err := NewRepeatingGlyph(GlyphOptions{Text: "QR"})
	if err != nil {
		t.Fatalf("NewRepeatingGlyph() error = %v", err)
	}
	cfg := layout.Config{PixelsPerCell: 20, SubCells: 1}
	g := grid(t, 2, 2)

	if _, err := s.Decide(layout.Cell{}, g, cfg); err == nil {
		t.Fatal("Decide() before Prepare should fail")
	}
	if err := s.Prepare(cfg); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	size := s.FontSize()

	dark, err := s.Decide(layout.Cell{X: 1, Value: true}, g, cfg)
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if dark.Kind != KindGlyph || dark.Glyph != "R" || dark.Color != Black || dark.Face == nil {
		t.Errorf("Decide(dark) = %+v", dark)
	}
	light, err := s.Decide(layout.Cell{Value: false}, g, cfg)
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if light.Color != Gray {
		t.Errorf("Decide(light) color = %v, want %v", light.Color, Gray)
	}

	// A new geometry needs a new Prepare and yields a different face size.
	bigger := layout.Config{PixelsPerCell: 40, SubCells: 1}
	if _, err := s.Decide(layout.Cell{}, g, bigger); err == nil {
		t.Error("Decide() with stale preparation should fail")
	}
	if err := s.Prepare(bigger); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if s.FontSize() <= size {
		t.Errorf("FontSize() = %v after growing cells, want > %v", s.FontSize(), size)
	}
}

func TestNewOverlayValidation(t *testing.T) {
	img := solid(4, 4, color.NRGBA{10, 20, 30, 255})
	on, off := DefaultOnTint, DefaultOffTint
	bad := Tint{Color: Black, Intensity: 1.5}

	tests := []struct {
		name    string
		opts    OverlayOptions
		wantErr bool
	}{
		{"image pair", OverlayOptions{On: img, Off: img}, false},
		{"tinted", OverlayOptions{Base: img, OnTint: &on, OffTint: &off}, false},
		{"tinted presets", TintedOptions(img), false},
		{"both modes", OverlayOptions{On: img, Off: img, Base: img, OnTint: &on, OffTint: &off}, true},
		{"neither mode", OverlayOptions{}, true},
		{"half pair", OverlayOptions{On: img}, true},
		{"tints without base", OverlayOptions{OnTint: &on, OffTint: &off}, true},
		{"base without tints", OverlayOptions{Base: img}, true},
		{"intensity out of range", OverlayOptions{Base: img, OnTint: &bad, OffTint: &off}, true},
		{"tint without color", OverlayOptions{Base: img, OnTint: &Tint{Intensity: 0.5}, OffTint: &off}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOverlay(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewOverlay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("NewOverlay() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestOverlayImagePair(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	o, err := NewOverlay(OverlayOptions{On: solid(30, 20, red), Off: solid(8, 8, blue)})
	if err != nil {
		t.Fatalf("NewOverlay() error = %v", err)
	}
	if o.Name() != "two-image" {
		t.Errorf("Name() = %q, want %q", o.Name(), "two-image")
	}

	cfg := layout.Config{PixelsPerCell: 10, SubCells: 1}
	if err := o.Prepare(cfg); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	tests := []struct {
		value bool
		want  color.NRGBA
	}{
		{true, red},
		{false, blue},
	}
	for _, tt := range tests {
		got, err := o.Decide(layout.Cell{Value: tt.value}, nil, cfg)
		if err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
		if got.Kind != KindImage {
			t.Fatalf("Decide() kind = %v, want %v", got.Kind, KindImage)
		}
		if b := got.Image.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
			t.Errorf("Decide(%v) image size = %v, want 10x10", tt.value, b.Size())
		}
		c := color.NRGBAModel.Convert(got.Image.At(5, 5)).(color.NRGBA)
		if c != tt.want {
			t.Errorf("Decide(%v) center = %v, want %v", tt.value, c, tt.want)
		}
	}
}

func TestOverlayTintedPreparesOncePerGeometry(t *testing.T) {
	base := solid(12, 12, color.NRGBA{200, 100, 0, 255})
	o, err := NewOverlay(TintedOptions(base))
	if err != nil {
		t.Fatalf("NewOverlay() error = %v", err)
	}
	if !o.Tinted() || o.Name() != "tinted-image" {
		t.Errorf("Tinted() = %v, Name() = %q", o.Tinted(), o.Name())
	}

	cfg := layout.Config{PixelsPerCell: 12, SubCells: 2}
	if err := o.Prepare(cfg); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	first, _ := o.Decide(layout.Cell{Value: true}, nil, cfg)
	if err := o.Prepare(cfg); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	second, _ := o.Decide(layout.Cell{Value: true}, nil, cfg)
	if first.Image != second.Image {
		t.Error("Prepare() with unchanged geometry should reuse the scaled images")
	}

	on := color.NRGBAModel.Convert(first.Image.At(0, 0)).(color.NRGBA)
	if on.R > 51 || on.R < 49 {
		t.Errorf("on pixel R = %d, want 50 ±1 (black at 0.75)", on.R)
	}
	offContent, _ := o.Decide(layout.Cell{Value: false}, nil, cfg)
	off := color.NRGBAModel.Convert(offContent.Image.At(0, 0)).(color.NRGBA)
	// 200*0.3 + 255*0.7 = 238.5
	if off.R < 237 || off.R > 239 {
		t.Errorf("off pixel R = %d, want 238 ±1 (white at 0.70)", off.R)
	}

	smaller := layout.Config{PixelsPerCell: 6, SubCells: 2}
	if err := o.Prepare(smaller); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	got, err := o.Decide(layout.Cell{Value: true}, nil, smaller)
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if got.Image.Bounds().Dx() != 6 {
		t.Errorf("rescaled image width = %d, want 6", got.Image.Bounds().Dx())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindColor, "color"},
		{KindGlyph, "glyph"},
		{KindImage, "image"},
		{Kind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
