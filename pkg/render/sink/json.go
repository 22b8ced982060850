package sink

import (
	"encoding/json"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	payload string
	style   string
	level   string
}

// WithJSONPayload records the encoded payload in the output.
func WithJSONPayload(p string) JSONOption { return func(r *jsonRenderer) { r.payload = p } }

// WithJSONStyle records the strategy name (e.g. "flat", "glyph").
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONLevel records the error correction level.
func WithJSONLevel(l string) JSONOption { return func(r *jsonRenderer) { r.level = l } }

type jsonOutput struct {
	Payload       string   `json:"payload,omitempty"`
	Style         string   `json:"style,omitempty"`
	Level         string   `json:"level,omitempty"`
	Modules       int      `json:"modules"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	PixelsPerCell int      `json:"pixels_per_cell"`
	SubCells      int      `json:"sub_cells"`
	CanvasWidth   int      `json:"canvas_width"`
	CanvasHeight  int      `json:"canvas_height"`
	Dark          int      `json:"dark"`
	Rows          []string `json:"rows"`
}

// RenderJSON describes g and its geometry under cfg. Rows use '#' for dark
// and '.' for light modules.
func RenderJSON(g *matrix.Grid, cfg layout.Config, opts ...JSONOption) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	cw, ch := layout.CanvasSize(g, cfg)
	out := jsonOutput{
		Payload:       r.payload,
		Style:         r.style,
		Level:         r.level,
		Modules:       g.Width * g.Height,
		Width:         g.Width,
		Height:        g.Height,
		PixelsPerCell: cfg.PixelsPerCell,
		SubCells:      cfg.SubCells,
		CanvasWidth:   cw,
		CanvasHeight:  ch,
		Dark:          g.Dark(),
		Rows:          make([]string, g.Height),
	}
	for y, row := range g.Modules {
		b := make([]byte, len(row))
		for x, v := range row {
			b[x] = '.'
			if v {
				b[x] = '#'
			}
		}
		out.Rows[y] = string(b)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json")
	}
	return append(data, '\n'), nil
}
