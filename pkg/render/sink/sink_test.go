package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/matrix"
	"github.com/matzehuels/qrmosaic/pkg/render/layout"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestEncodeFormats(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte) (image.Image, error)
	}{
		{FormatPNG, func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) }},
		{FormatJPEG, func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) }},
		{FormatBMP, func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) }},
		{FormatTIFF, func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Encode(testImage(), tt.format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			img, err := tt.decode(data)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(12, 8) {
				t.Errorf("decoded size = %v, want (12,8)", got)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(nil, FormatPNG); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Encode(nil) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if _, err := Encode(testImage(), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(json) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
	if _, err := Encode(testImage(), FormatJPEG, WithQuality(101)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Encode(quality 101) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"tif", FormatTIFF, false},
		{"json", FormatJSON, false},
		{"svg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"qr.png", FormatPNG, false},
		{"out/qr.JPG", FormatJPEG, false},
		{"qr.tiff", FormatTIFF, false},
		{"qr", "", true},
		{"qr.gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestContentTypeAndExt(t *testing.T) {
	if got := ContentType(FormatJPEG); got != "image/jpeg" {
		t.Errorf("ContentType(jpeg) = %q", got)
	}
	if got := ContentType("nope"); got != "application/octet-stream" {
		t.Errorf("ContentType(nope) = %q", got)
	}
	if got := Ext(FormatJPEG); got != ".jpg" {
		t.Errorf("Ext(jpeg) = %q, want .jpg", got)
	}
	if got := Ext(FormatPNG); got != ".png" {
		t.Errorf("Ext(png) = %q, want .png", got)
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteFile(fs, "out/nested/qr.png", []byte("data")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := afero.ReadFile(fs, "out/nested/qr.png")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "data" {
		t.Errorf("file content = %q, want %q", got, "data")
	}
	if err := WriteFile(fs, "", nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteFile(\"\") code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestRenderJSON(t *testing.T) {
	g, err := matrix.NewGrid([][]bool{{true, false}, {false, false}})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	data, err := RenderJSON(g, layout.Config{PixelsPerCell: 10, SubCells: 2},
		WithJSONPayload("hi"), WithJSONStyle("flat"), WithJSONLevel("medium"))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Payload != "hi" || out.Style != "flat" || out.Level != "medium" {
		t.Errorf("metadata = %q %q %q", out.Payload, out.Style, out.Level)
	}
	if out.CanvasWidth != 40 || out.CanvasHeight != 40 {
		t.Errorf("canvas = %dx%d, want 40x40", out.CanvasWidth, out.CanvasHeight)
	}
	if out.Dark != 1 || out.Modules != 4 {
		t.Errorf("dark = %d, modules = %d, want 1, 4", out.Dark, out.Modules)
	}
	if len(out.Rows) != 2 || out.Rows[0] != "#." || out.Rows[1] != ".." {
		t.Errorf("rows = %q", out.Rows)
	}

	if _, err := RenderJSON(g, layout.Config{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("RenderJSON(bad config) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestFormatNames(t *testing.T) {
	got := FormatNames()
	want := []string{"bmp", "jpeg", "json", "png", "tiff"}
	if len(got) != len(want) {
		t.Fatalf("FormatNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FormatNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
