package layout

import (
	"image"
	"testing"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
)

func mustGrid(t *testing.T, rows [][]bool) *matrix.Grid {
	t.Helper()
	g, err := matrix.NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

func checker(w, h int) [][]bool {
	rows := make([][]bool, h)
	for y := range rows {
		rows[y] = make([]bool, w)
		for x := range rows[y] {
			rows[y][x] = (x+y)%2 == 0
		}
	}
	return rows
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"degenerate sub-cells", Config{PixelsPerCell: 1, SubCells: 1}, false},
		{"zero pixels", Config{PixelsPerCell: 0, SubCells: 2}, true},
		{"negative pixels", Config{PixelsPerCell: -5, SubCells: 2}, true},
		{"zero sub-cells", Config{PixelsPerCell: 10, SubCells: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestExpandOrder(t *testing.T) {
	g := mustGrid(t, [][]bool{{true, false}})
	cells, err := Expand(g, Config{PixelsPerCell: 10, SubCells: 2})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []Cell{
		{X: 0, Y: 0, DX: 0, DY: 0, Value: true},
		{X: 0, Y: 0, DX: 1, DY: 0, Value: true},
		{X: 0, Y: 0, DX: 0, DY: 1, Value: true},
		{X: 0, Y: 0, DX: 1, DY: 1, Value: true},
		{X: 1, Y: 0, DX: 0, DY: 0, Value: false},
		{X: 1, Y: 0, DX: 1, DY: 0, Value: false},
		{X: 1, Y: 0, DX: 0, DY: 1, Value: false},
		{X: 1, Y: 0, DX: 1, DY: 1, Value: false},
	}
	if len(cells) != len(want) {
		t.Fatalf("Expand() len = %d, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("Expand()[%d] = %+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestExpandLength(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		sub  int
	}{
		{"3x3 sub 2", 3, 3, 2},
		{"5x2 sub 3", 5, 2, 3},
		{"4x4 sub 1", 4, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, checker(tt.w, tt.h))
			cells, err := Expand(g, Config{PixelsPerCell: 7, SubCells: tt.sub})
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if want := tt.w * tt.h * tt.sub * tt.sub; len(cells) != want {
				t.Errorf("Expand() len = %d, want %d", len(cells), want)
			}
			for _, c := range cells {
				if c.Value != g.At(c.X, c.Y) {
					t.Fatalf("cell %+v does not inherit module value", c)
				}
			}
		})
	}
}

func TestExpandRejectsInvalidInput(t *testing.T) {
	g := mustGrid(t, checker(2, 2))
	if _, err := Expand(g, Config{PixelsPerCell: 0, SubCells: 2}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Expand() with bad config code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
	ragged := &matrix.Grid{Modules: [][]bool{{true}, {true, false}}, Width: 1, Height: 2}
	if _, err := Expand(ragged, DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("Expand() with ragged grid code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidMatrix)
	}
}

func TestPixelBox(t *testing.T) {
	cfg := Config{PixelsPerCell: 50, SubCells: 2}
	tests := []struct {
		name string
		cell Cell
		want image.Rectangle
	}{
		{"origin", Cell{}, image.Rect(0, 0, 50, 50)},
		{"sub x", Cell{DX: 1}, image.Rect(50, 0, 100, 50)},
		{"sub y uses dy", Cell{DY: 1}, image.Rect(0, 50, 50, 100)},
		{"module offset", Cell{X: 2, Y: 1, DX: 1, DY: 0}, image.Rect(250, 100, 300, 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelBox(tt.cell, cfg); got != tt.want {
				t.Errorf("PixelBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCenterPoint(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		cfg  Config
		want image.Point
	}{
		{"even", Cell{X: 1, DY: 1}, Config{PixelsPerCell: 50, SubCells: 2}, image.Pt(125, 75)},
		{"odd", Cell{}, Config{PixelsPerCell: 7, SubCells: 1}, image.Pt(3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterPoint(tt.cell, tt.cfg); got != tt.want {
				t.Errorf("CenterPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAbsolutePosition(t *testing.T) {
	x, y := AbsolutePosition(Cell{X: 3, Y: 2, DX: 1, DY: 2}, Config{PixelsPerCell: 1, SubCells: 3})
	if x != 10 || y != 8 {
		t.Errorf("AbsolutePosition() = (%d, %d), want (10, 8)", x, y)
	}
}

// TestTiling checks that pixel boxes are pairwise disjoint and cover the
// canvas exactly, by counting how often each pixel is claimed.
func TestTiling(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		cfg  Config
	}{
		{"3x3 sub 2", 3, 3, Config{PixelsPerCell: 4, SubCells: 2}},
		{"3x3 sub 1", 3, 3, Config{PixelsPerCell: 5, SubCells: 1}},
		{"4x2 sub 3", 4, 2, Config{PixelsPerCell: 3, SubCells: 3}},
		{"1x1 ppc 1", 1, 1, Config{PixelsPerCell: 1, SubCells: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, checker(tt.w, tt.h))
			cells, err := Expand(g, tt.cfg)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}

			cw, ch := CanvasSize(g, tt.cfg)
			canvas := image.Rect(0, 0, cw, ch)
			hits := make([]int, cw*ch)
			for _, c := range cells {
				box := PixelBox(c, tt.cfg)
				if !box.In(canvas) {
					t.Fatalf("PixelBox(%+v) = %v outside canvas %v", c, box, canvas)
				}
				for y := box.Min.Y; y < box.Max.Y; y++ {
					for x := box.Min.X; x < box.Max.X; x++ {
						hits[y*cw+x]++
					}
				}
			}
			for i, n := range hits {
				if n != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times, want 1", i%cw, i/cw, n)
				}
			}
		})
	}
}

func TestCanvasSize(t *testing.T) {
	g := mustGrid(t, checker(5, 3))
	w, h := CanvasSize(g, Config{PixelsPerCell: 50, SubCells: 2})
	if w != 500 || h != 300 {
		t.Errorf("CanvasSize() = (%d, %d), want (500, 300)", w, h)
	}
}
