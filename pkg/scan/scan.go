// Package scan reads QR codes back from rendered images.
//
// Styled renders trade contrast for looks; [Verify] checks that a render is
// still readable by decoding it with github.com/liyue201/goqr and comparing
// the payload.
package scan

import (
	stderrors "errors"
	"image"

	"github.com/disintegration/imaging"
	"github.com/liyue201/goqr"

	"github.com/matzehuels/qrmosaic/pkg/errors"
)

// MaxSide is the largest image side handed to the decoder. Larger images are
// downscaled first.
const MaxSide = 1600

// Decode returns the payloads of all QR codes found in img.
func Decode(img image.Image) ([]string, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	b := img.Bounds()
	if b.Dx() > MaxSide || b.Dy() > MaxSide {
		img = imaging.Fit(img, MaxSide, MaxSide, imaging.Box)
	}

	codes, err := goqr.Recognize(img)
	if err != nil {
		if stderrors.Is(err, goqr.ErrNoQRCode) {
			return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "no QR code found")
		}
		return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "recognize")
	}

	payloads := make([]string, 0, len(codes))
	for _, c := range codes {
		buf := make([]byte, 0, len(c.Payload))
		for _, v := range c.Payload {
			buf = append(buf, byte(v))
		}
		payloads = append(payloads, string(buf))
	}
	if len(payloads) == 0 {
		return nil, errors.New(errors.ErrCodeScanFailed, "no QR code found")
	}
	return payloads, nil
}

// Verify decodes img and checks that one of the codes carries payload.
func Verify(img image.Image, payload string) error {
	got, err := Decode(img)
	if err != nil {
		return err
	}
	for _, p := range got {
		if p == payload {
			return nil
		}
	}
	return errors.New(errors.ErrCodeScanFailed, "decoded %q, want %q", got[0], payload)
}
