package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/qrmosaic/pkg/config"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
)

func previewFile(sub, border int, text string) config.File {
	f := config.Default()
	f.SubCells = sub
	f.Border = &border
	f.Version = 1
	if text != "" {
		f.Style.Kind = config.KindGlyph
		f.Style.Glyph.Text = text
	}
	return f
}

func TestPreviewBlocks(t *testing.T) {
	out, err := preview("https://hole", previewFile(1, 0, ""), false)
	if err != nil {
		t.Fatalf("preview() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 21 {
		t.Fatalf("preview() lines = %d, want 21", len(lines))
	}

	g, _ := matrix.QRSource{Level: matrix.LevelMedium, Version: 1}.Generate("https://hole")
	for y, line := range lines {
		if n := utf8.RuneCountInString(line); n != 42 {
			t.Fatalf("line %d has %d runes, want 42", y, n)
		}
		runes := []rune(line)
		for x := 0; x < 21; x++ {
			if dark := runes[2*x] == '█'; dark != g.At(x, y) {
				t.Errorf("preview (%d,%d) dark = %v, want %v", x, y, dark, g.At(x, y))
			}
		}
	}
}

func TestPreviewGlyph(t *testing.T) {
	out, err := preview("https://hole", previewFile(2, 1, "HOLE"), false)
	if err != nil {
		t.Fatalf("preview() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// 21 modules plus a border module each side, two sub-cells per module.
	if len(lines) != 46 {
		t.Fatalf("preview() lines = %d, want 46", len(lines))
	}
	// Without overwrap every row restarts the text.
	for _, line := range []string{lines[0], lines[17]} {
		if !strings.HasPrefix(line, "HOLEHOLEHOLE") {
			t.Errorf("row = %q, want HOLE repeated", line)
		}
	}
}
