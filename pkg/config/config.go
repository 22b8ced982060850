// Package config reads render settings and style definitions from TOML.
//
// A style file fixes everything about a render except the payload:
//
//	pixels_per_cell = 50
//	sub_cells = 2
//	border = 1
//	level = "medium"
//	background = "#ffffff"
//
//	[style]
//	kind = "glyph"
//
//	[style.glyph]
//	text = "HOLE"
//	shift = 2
//
// [File.Strategy] turns the [style] table into a bound strategy, loading any
// referenced fonts or images through an [assets.Loader].
package config

import (
	"bytes"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/matzehuels/qrmosaic/pkg/cache"
	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/assets"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
	"github.com/matzehuels/qrmosaic/pkg/render/styles"
)

// Style kinds.
const (
	KindFlat  = "flat"
	KindGlyph = "glyph"
	KindImage = "image"
)

// ValidKinds is the set of supported style kinds.
var ValidKinds = map[string]bool{
	KindFlat:  true,
	KindGlyph: true,
	KindImage: true,
}

// File is the decoded form of a style file.
type File struct {
	PixelsPerCell int    `toml:"pixels_per_cell"`
	SubCells      int    `toml:"sub_cells"`
	Border        *int   `toml:"border,omitempty"`
	Level         string `toml:"level,omitempty"`
	Version       int    `toml:"version,omitempty"`
	Background    string `toml:"background,omitempty"`
	Style         Style  `toml:"style"`
}

// Style selects and configures one strategy.
type Style struct {
	Kind  string     `toml:"kind"`
	Flat  FlatStyle  `toml:"flat,omitempty"`
	Glyph GlyphStyle `toml:"glyph,omitempty"`
	Image ImageStyle `toml:"image,omitempty"`
}

// FlatStyle configures the flat strategy.
type FlatStyle struct {
	Dark  string `toml:"dark,omitempty"`
	Light string `toml:"light,omitempty"`
}

// GlyphStyle configures the repeating glyph strategy.
type GlyphStyle struct {
	Text     string `toml:"text,omitempty"`
	Overwrap bool   `toml:"overwrap,omitempty"`
	Offset   int    `toml:"offset,omitempty"`
	Shift    int    `toml:"shift,omitempty"`
	Font     string `toml:"font,omitempty"`
	TestChar string `toml:"test_char,omitempty"`
	Light    string `toml:"light,omitempty"`
	Dark     string `toml:"dark,omitempty"`
}

// ImageStyle configures the overlay strategy.
type ImageStyle struct {
	Base    string    `toml:"base,omitempty"`
	On      string    `toml:"on,omitempty"`
	Off     string    `toml:"off,omitempty"`
	OnTint  *TintSpec `toml:"on_tint,omitempty"`
	OffTint *TintSpec `toml:"off_tint,omitempty"`
}

// TintSpec is a tint color and intensity.
type TintSpec struct {
	Color     string  `toml:"color"`
	Intensity float64 `toml:"intensity"`
}

// Default returns the built-in settings: 50 pixels per cell, 2×2 sub-cells,
// a one-module border, medium error correction and the flat style.
func Default() File {
	border := matrix.DefaultBorder
	return File{
		PixelsPerCell: layout.DefaultPixelsPerCell,
		SubCells:      layout.DefaultSubCells,
		Border:        &border,
		Level:         string(matrix.LevelMedium),
		Background:    "#ffffff",
		Style:         Style{Kind: KindFlat},
	}
}

// Load reads a style file from fs. Unset values keep their defaults.
func Load(fs afero.Fs, path string) (File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return File{}, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a style file. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Encode writes f as TOML.
func (f File) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Key fingerprints the effective settings for artifact caching. Asset files
// referenced by the style are identified by the digest of their contents as
// read through l, so the same relative path in two directories, or an edited
// file, yields a different key. A nil l uses assets.OS().
func (f File) Key(l *assets.Loader) (string, error) {
	data, err := f.Encode()
	if err != nil {
		return "", err
	}
	paths := f.Style.assetPaths()
	if len(paths) > 0 {
		if l == nil {
			l = assets.OS()
		}
		for _, p := range paths {
			digest, err := l.Digest(p)
			if err != nil {
				return "", err
			}
			data = append(data, "\n"+p+"="+digest...)
		}
	}
	return strings.ToLower(f.Style.Kind) + ":" + cache.Hash(data), nil
}

// assetPaths lists the files the active style kind loads, in a fixed order.
func (s Style) assetPaths() []string {
	var candidates []string
	switch strings.ToLower(s.Kind) {
	case KindGlyph:
		candidates = []string{s.Glyph.Font}
	case KindImage:
		candidates = []string{s.Image.Base, s.Image.On, s.Image.Off}
	}
	paths := candidates[:0]
	for _, p := range candidates {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Validate checks geometry, matrix settings and the style kind.
func (f File) Validate() error {
	if err := f.Layout().Validate(); err != nil {
		return err
	}
	if _, err := f.Source(); err != nil {
		return err
	}
	if _, err := f.BackgroundColor(); err != nil {
		return err
	}
	if !ValidKinds[strings.ToLower(f.Style.Kind)] {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style kind %q (flat, glyph, image)", f.Style.Kind)
	}
	return nil
}

// Layout returns the render geometry.
func (f File) Layout() layout.Config {
	return layout.Config{PixelsPerCell: f.PixelsPerCell, SubCells: f.SubCells}
}

// Source returns the matrix source described by f.
func (f File) Source() (matrix.QRSource, error) {
	level, err := matrix.ParseLevel(f.Level)
	if err != nil {
		return matrix.QRSource{}, err
	}
	border := matrix.DefaultBorder
	if f.Border != nil {
		border = *f.Border
	}
	if border < 0 {
		return matrix.QRSource{}, errors.New(errors.ErrCodeInvalidConfig, "border must not be negative, got %d", border)
	}
	if f.Version < 0 || f.Version > matrix.MaxVersion {
		return matrix.QRSource{}, errors.New(errors.ErrCodeInvalidConfig, "version must be between 1 and %d, got %d", matrix.MaxVersion, f.Version)
	}
	return matrix.QRSource{Level: level, Version: f.Version, Border: border}, nil
}

// BackgroundColor parses the background color, defaulting to white.
func (f File) BackgroundColor() (color.Color, error) {
	if f.Background == "" {
		return styles.White, nil
	}
	return ParseColor(f.Background)
}

// Strategy builds the configured strategy, loading assets through l.
func (f File) Strategy(l *assets.Loader) (styles.Strategy, error) {
	switch strings.ToLower(f.Style.Kind) {
	case KindFlat, "":
		return f.Style.Flat.build()
	case KindGlyph:
		return f.Style.Glyph.build(l)
	case KindImage:
		return f.Style.Image.build(l)
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style kind %q", f.Style.Kind)
	}
}

func (s FlatStyle) build() (styles.Strategy, error) {
	dark, err := optionalColor(s.Dark)
	if err != nil {
		return nil, err
	}
	light, err := optionalColor(s.Light)
	if err != nil {
		return nil, err
	}
	return styles.NewFlat(dark, light), nil
}

func (s GlyphStyle) build(l *assets.Loader) (styles.Strategy, error) {
	opts := styles.GlyphOptions{
		Text:     s.Text,
		Overwrap: s.Overwrap,
		Offset:   s.Offset,
		Shift:    s.Shift,
		TestChar: s.TestChar,
	}
	var err error
	if opts.Dark, err = optionalColor(s.Dark); err != nil {
		return nil, err
	}
	if opts.Light, err = optionalColor(s.Light); err != nil {
		return nil, err
	}
	if s.Font != "" {
		if l == nil {
			l = assets.OS()
		}
		if opts.Font, err = l.Font(s.Font); err != nil {
			return nil, err
		}
	}
	g, err := styles.NewRepeatingGlyph(opts)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s ImageStyle) build(l *assets.Loader) (styles.Strategy, error) {
	if l == nil {
		l = assets.OS()
	}
	var opts styles.OverlayOptions
	var err error

	if s.On != "" {
		if opts.On, err = l.Image(s.On); err != nil {
			return nil, err
		}
	}
	if s.Off != "" {
		if opts.Off, err = l.Image(s.Off); err != nil {
			return nil, err
		}
	}
	if s.Base != "" {
		if opts.Base, err = l.Image(s.Base); err != nil {
			return nil, err
		}
		// A base image without explicit tints uses the presets.
		on, off := styles.DefaultOnTint, styles.DefaultOffTint
		opts.OnTint, opts.OffTint = &on, &off
	}
	if s.OnTint != nil {
		if opts.OnTint, err = s.OnTint.build(); err != nil {
			return nil, err
		}
	}
	if s.OffTint != nil {
		if opts.OffTint, err = s.OffTint.build(); err != nil {
			return nil, err
		}
	}
	o, err := styles.NewOverlay(opts)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (t TintSpec) build() (*styles.Tint, error) {
	c, err := ParseColor(t.Color)
	if err != nil {
		return nil, err
	}
	return &styles.Tint{Color: c, Intensity: t.Intensity}, nil
}

func optionalColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	return ParseColor(s)
}
