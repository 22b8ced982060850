package fonts

import (
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

func TestDefault(t *testing.T) {
	f := Default()
	if f == nil {
		t.Fatal("Default() = nil")
	}
	if Default() != f {
		t.Error("Default() should return the same font on every call")
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(gomono.TTF); err != nil {
		t.Errorf("Parse(gomono) error = %v", err)
	}
	if _, err := Parse(nil); !errors.Is(err, errors.ErrCodeInvalidAsset) {
		t.Errorf("Parse(nil) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidAsset)
	}
	if _, err := Parse([]byte("not a font")); !errors.Is(err, errors.ErrCodeInvalidAsset) {
		t.Errorf("Parse(garbage) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidAsset)
	}
}

func TestFitRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		testChar string
		px       int
	}{
		{"percent 50", "%", 50},
		{"percent 12", "%", 12},
		{"default char", "", 30},
		{"wide glyph", "W", 40},
		{"tall glyph", "|", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face, size, err := Fit(Default(), tt.testChar, tt.px)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if size <= 0 {
				t.Errorf("Fit() size = %v, want > 0", size)
			}
			char := tt.testChar
			if char == "" {
				char = DefaultTestChar
			}
			w, h := Measure(face, char)
			got := math.Max(w, h)
			if math.Abs(got-float64(tt.px)) > 1 {
				t.Errorf("measured extent = %.2f, want %d ±1", got, tt.px)
			}
		})
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name     string
		testChar string
		px       int
		code     errors.Code
	}{
		{"blank glyph", " ", 20, errors.ErrCodeInvalidStyle},
		{"zero size", "%", 0, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Fit(Default(), tt.testChar, tt.px)
			if !errors.Is(err, tt.code) {
				t.Errorf("Fit() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}

	if _, _, err := Fit(nil, "%", 10); err == nil {
		t.Error("Fit(nil font) should fail")
	}
}
