package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 11), uint8((x + y) * 3), 255})
		}
	}
	return img
}

func TestScaleCropIdentity(t *testing.T) {
	src := gradient(16, 16)
	got, err := ScaleCrop(src, 16)
	if err != nil {
		t.Fatalf("ScaleCrop() error = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("ScaleCrop() bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("ScaleCrop() changed pixel data at byte %d: %d != %d", i, got.Pix[i], src.Pix[i])
		}
	}
	if &got.Pix[0] == &src.Pix[0] {
		t.Error("ScaleCrop() should return a copy")
	}
}

func TestScaleCropSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		size int
	}{
		{"landscape", 40, 20, 10},
		{"portrait", 15, 45, 12},
		{"upscale", 5, 3, 20},
		{"odd aspect", 33, 17, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleCrop(gradient(tt.w, tt.h), tt.size)
			if err != nil {
				t.Fatalf("ScaleCrop() error = %v", err)
			}
			if want := image.Rect(0, 0, tt.size, tt.size); got.Bounds() != want {
				t.Errorf("ScaleCrop() bounds = %v, want %v", got.Bounds(), want)
			}
		})
	}
}

func TestScaleCropKeepsCenter(t *testing.T) {
	// Left third red, middle third green, right third blue.
	src := image.NewNRGBA(image.Rect(0, 0, 30, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 30; x++ {
			c := color.NRGBA{A: 255}
			switch {
			case x < 10:
				c.R = 255
			case x < 20:
				c.G = 255
			default:
				c.B = 255
			}
			src.SetNRGBA(x, y, c)
		}
	}
	got, err := ScaleCrop(src, 10)
	if err != nil {
		t.Fatalf("ScaleCrop() error = %v", err)
	}
	if c := got.NRGBAAt(5, 5); c.G < 200 || c.R > 50 || c.B > 50 {
		t.Errorf("center pixel = %v, want green", c)
	}
}

func TestScaleCropErrors(t *testing.T) {
	if _, err := ScaleCrop(nil, 10); err == nil {
		t.Error("ScaleCrop(nil) should fail")
	}
	if _, err := ScaleCrop(gradient(4, 4), 0); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ScaleCrop(size 0) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
	if _, err := ScaleCrop(image.NewNRGBA(image.Rect(0, 0, 0, 5)), 4); !errors.Is(err, errors.ErrCodeInvalidAsset) {
		t.Errorf("ScaleCrop(empty) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidAsset)
	}
}

func TestTint(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(base.Pix); i += 4 {
		copy(base.Pix[i:], []uint8{200, 100, 0, 255})
	}

	tests := []struct {
		name      string
		tint      color.Color
		intensity float64
		want      color.NRGBA
	}{
		{"zero intensity keeps base", color.Black, 0, color.NRGBA{200, 100, 0, 255}},
		{"full intensity is tint", color.White, 1, color.NRGBA{255, 255, 255, 255}},
		{"black at 0.75", color.Black, 0.75, color.NRGBA{50, 25, 0, 255}},
		{"white at 0.5", color.White, 0.5, color.NRGBA{227, 177, 127, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tint(base, tt.tint, tt.intensity)
			if err != nil {
				t.Fatalf("Tint() error = %v", err)
			}
			c := got.NRGBAAt(1, 1)
			if !near(c.R, tt.want.R) || !near(c.G, tt.want.G) || !near(c.B, tt.want.B) || c.A != tt.want.A {
				t.Errorf("Tint() = %v, want %v (±1)", c, tt.want)
			}
		})
	}

	if base.Pix[0] != 200 {
		t.Error("Tint() modified its input")
	}
}

func TestTintRejectsBadIntensity(t *testing.T) {
	for _, v := range []float64{-0.1, 1.5} {
		if _, err := Tint(gradient(2, 2), color.Black, v); !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("Tint(intensity %v) code = %v, want %v", v, errors.GetCode(err), errors.ErrCodeInvalidStyle)
		}
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}
