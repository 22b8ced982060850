package matrix

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// Level is the error correction level of the generated symbol.
type Level string

const (
	LevelLow     Level = "low"     // ~7% recovery
	LevelMedium  Level = "medium"  // ~15% recovery
	LevelHigh    Level = "high"    // ~25% recovery
	LevelHighest Level = "highest" // ~30% recovery
)

// DefaultBorder is the quiet zone width in modules used when none is set.
const DefaultBorder = 1

// MaxVersion is the largest QR symbol version.
const MaxVersion = 40

// ParseLevel parses a level name. The empty string maps to LevelMedium.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LevelMedium, nil
	case LevelLow, LevelMedium, LevelHigh, LevelHighest:
		return l, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown error correction level %q (low, medium, high, highest)", s)
	}
}

func (l Level) recovery() (qrcode.RecoveryLevel, error) {
	switch l {
	case LevelLow:
		return qrcode.Low, nil
	case LevelMedium, "":
		return qrcode.Medium, nil
	case LevelHigh:
		return qrcode.High, nil
	case LevelHighest:
		return qrcode.Highest, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown error correction level %q", string(l))
	}
}

// QRSource generates grids with github.com/skip2/go-qrcode.
//
// The encoder's own four-module quiet zone is disabled and replaced by
// Border light modules on every side.
type QRSource struct {
	Level   Level
	Version int // 0 selects the smallest version that fits
	Border  int // Quiet zone in modules
}

// DefaultSource returns a QRSource with medium error correction and the
// default one-module border.
func DefaultSource() QRSource {
	return QRSource{Level: LevelMedium, Border: DefaultBorder}
}

// Generate encodes payload and returns its module grid.
func (s QRSource) Generate(payload string) (*Grid, error) {
	if err := errors.ValidatePayload(payload); err != nil {
		return nil, err
	}
	level, err := s.Level.recovery()
	if err != nil {
		return nil, err
	}
	if s.Version < 0 || s.Version > MaxVersion {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "version must be between 1 and %d, got %d", MaxVersion, s.Version)
	}
	if s.Border < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "border must not be negative, got %d", s.Border)
	}

	var q *qrcode.QRCode
	if s.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(payload, s.Version, level)
	} else {
		q, err = qrcode.New(payload, level)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode payload")
	}
	q.DisableBorder = true

	return pad(q.Bitmap(), s.Border)
}

// pad surrounds bitmap with border light modules and validates the result.
func pad(bitmap [][]bool, border int) (*Grid, error) {
	if len(bitmap) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "encoder returned an empty bitmap")
	}
	h := len(bitmap) + 2*border
	w := len(bitmap[0]) + 2*border
	modules := make([][]bool, h)
	for y := range modules {
		modules[y] = make([]bool, w)
	}
	for y, row := range bitmap {
		copy(modules[y+border][border:], row)
	}
	g := &Grid{Modules: modules, Width: w, Height: h}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
