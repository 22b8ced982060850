package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/qrmosaic/pkg/config"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// styleFlags holds the settings shared by render, preview and serve. Values
// only override the config file when the flag was set explicitly.
type styleFlags struct {
	configPath string

	ppc        int
	sub        int
	border     int
	level      string
	version    int
	background string

	style string
	dark  string
	light string

	text     string
	overwrap bool
	offset   int
	shift    int
	font     string
	testChar string

	base    string
	on      string
	off     string
	onTint  string
	offTint string
}

func (f *styleFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML style file")

	fs.IntVar(&f.ppc, "ppc", layout.DefaultPixelsPerCell, "pixels per sub-cell")
	fs.IntVar(&f.sub, "sub", layout.DefaultSubCells, "sub-cells per module side")
	fs.IntVar(&f.border, "border", matrix.DefaultBorder, "quiet zone width in modules")
	fs.StringVar(&f.level, "level", string(matrix.LevelMedium), "error correction: low, medium, high, highest")
	fs.IntVar(&f.version, "qr-version", 0, "force a QR version (1-40, 0 = smallest)")
	fs.StringVar(&f.background, "background", "", "canvas background color")

	fs.StringVarP(&f.style, "style", "s", "", "style: flat (default), glyph, image")
	fs.StringVar(&f.dark, "dark", "", "dark module color")
	fs.StringVar(&f.light, "light", "", "light module color")

	fs.StringVar(&f.text, "text", "", "characters repeated by the glyph style")
	fs.BoolVar(&f.overwrap, "overwrap", false, "continue the text across rows")
	fs.IntVar(&f.offset, "offset", 0, "glyph index offset")
	fs.IntVar(&f.shift, "shift", 0, "glyph index shift per row")
	fs.StringVar(&f.font, "font", "", "TrueType font for the glyph style")
	fs.StringVar(&f.testChar, "test-char", "", "reference glyph for font scaling")

	fs.StringVar(&f.base, "base", "", "base image for the tinted image style")
	fs.StringVar(&f.on, "on", "", "image for dark modules")
	fs.StringVar(&f.off, "off", "", "image for light modules")
	fs.StringVar(&f.onTint, "on-tint", "", "tint for dark modules as COLOR:INTENSITY")
	fs.StringVar(&f.offTint, "off-tint", "", "tint for light modules as COLOR:INTENSITY")
}

// resolve loads the config file, if any, and applies explicitly set flags.
func (f *styleFlags) resolve(cmd *cobra.Command, fs afero.Fs) (config.File, error) {
	file := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(fs, f.configPath)
		if err != nil {
			return config.File{}, err
		}
		file = loaded
	}

	set := cmd.Flags().Changed
	if set("ppc") {
		file.PixelsPerCell = f.ppc
	}
	if set("sub") {
		file.SubCells = f.sub
	}
	if set("border") {
		border := f.border
		file.Border = &border
	}
	if set("level") {
		file.Level = f.level
	}
	if set("qr-version") {
		file.Version = f.version
	}
	if set("background") {
		file.Background = f.background
	}
	if set("style") {
		file.Style.Kind = f.style
	} else if file.Style.Kind == config.KindFlat {
		// Style-specific flags select their style when none is named.
		switch {
		case set("text"):
			file.Style.Kind = config.KindGlyph
		case set("base") || set("on"):
			file.Style.Kind = config.KindImage
		}
	}

	if set("dark") {
		file.Style.Flat.Dark = f.dark
		file.Style.Glyph.Dark = f.dark
	}
	if set("light") {
		file.Style.Flat.Light = f.light
		file.Style.Glyph.Light = f.light
	}

	g := &file.Style.Glyph
	if set("text") {
		g.Text = f.text
	}
	if set("overwrap") {
		g.Overwrap = f.overwrap
	}
	if set("offset") {
		g.Offset = f.offset
	}
	if set("shift") {
		g.Shift = f.shift
	}
	if set("font") {
		g.Font = f.font
	}
	if set("test-char") {
		g.TestChar = f.testChar
	}

	img := &file.Style.Image
	if set("base") {
		img.Base = f.base
	}
	if set("on") {
		img.On = f.on
	}
	if set("off") {
		img.Off = f.off
	}
	if set("on-tint") {
		spec, err := tintSpec(f.onTint)
		if err != nil {
			return config.File{}, err
		}
		img.OnTint = spec
	}
	if set("off-tint") {
		spec, err := tintSpec(f.offTint)
		if err != nil {
			return config.File{}, err
		}
		img.OffTint = spec
	}

	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

func tintSpec(s string) (*config.TintSpec, error) {
	t, err := config.ParseTint(s)
	if err != nil {
		return nil, err
	}
	return &config.TintSpec{Color: config.FormatColor(t.Color), Intensity: t.Intensity}, nil
}
