package cli

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrmosaic/pkg/config"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
	"github.com/matzehuels/qrmosaic/pkg/render/styles"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	styleFlags
	plain bool // disable colors
}

// previewCommand creates the preview command, which prints the sub-cell grid
// to the terminal instead of rasterizing it.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <payload>",
		Short: "Print the module grid to the terminal",
		Long: `Print the module grid to the terminal.

With --text every sub-cell shows the character the glyph style would draw
there, colored dark or light. Without it dark modules are drawn as blocks.`,
		Example: `  qrmosaic preview https://hole.cd
  qrmosaic preview https://hole.cd --text HOLE --sub 1 --overwrap`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := opts.resolve(cmd, c.Fs)
			if err != nil {
				return err
			}
			out, err := preview(args[0], file, !opts.plain)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print without colors")
	return cmd
}

// preview renders the grid for payload as text, one line per sub-cell row.
func preview(payload string, file config.File, colored bool) (string, error) {
	src, err := file.Source()
	if err != nil {
		return "", err
	}
	g, err := src.Generate(payload)
	if err != nil {
		return "", err
	}
	// One terminal cell per sub-cell; pixel size does not matter here.
	cfg := layout.Config{PixelsPerCell: 1, SubCells: file.SubCells}
	cells, err := layout.Expand(g, cfg)
	if err != nil {
		return "", err
	}

	var glyph *styles.RepeatingGlyph
	if file.Style.Glyph.Text != "" {
		s, err := file.Strategy(nil)
		if err != nil {
			return "", err
		}
		glyph, _ = s.(*styles.RepeatingGlyph)
	}

	darkStyle, lightStyle := lipgloss.NewStyle(), lipgloss.NewStyle()
	if colored && glyph != nil {
		darkStyle = darkStyle.Foreground(lipgloss.Color(config.FormatColor(opaque(glyph.ColorOf(true)))))
		lightStyle = lightStyle.Foreground(lipgloss.Color(config.FormatColor(opaque(glyph.ColorOf(false)))))
	}

	// Cells come module by module; place them by absolute sub-cell position.
	rows := make([][]string, g.Height*cfg.SubCells)
	for i := range rows {
		rows[i] = make([]string, g.Width*cfg.SubCells)
	}
	for _, cell := range cells {
		x, y := layout.AbsolutePosition(cell, cfg)
		rows[y][x] = previewCell(cell, g, cfg, glyph, darkStyle, lightStyle)
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ""))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func previewCell(c layout.Cell, g *matrix.Grid, cfg layout.Config, glyph *styles.RepeatingGlyph, dark, light lipgloss.Style) string {
	if glyph == nil {
		if c.Value {
			return iconDark
		}
		return iconLight
	}
	ch := glyph.GlyphAt(c, g, cfg)
	if c.Value {
		return dark.Render(ch)
	}
	return light.Render(ch)
}

func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
