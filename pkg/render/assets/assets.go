// Package assets loads overlay images and fonts from a filesystem.
//
// Assets are read through an [afero.Fs], so the CLI reads from the OS while
// tests and the HTTP server can use in-memory or sandboxed filesystems.
//
// Supported image formats are PNG, JPEG, GIF, BMP, TIFF and WebP (decoded via
// image.Decode) and SVG, which is rasterized with github.com/srwiley/oksvg.
// Fonts are TrueType files.
package assets

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	// Raster formats accepted for overlay images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/golang/freetype/truetype"
	"github.com/spf13/afero"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/fonts"
)

// DefaultSVGSize is the length in pixels of the shorter side of a rasterized
// SVG. Images are scaled down to the sub-cell size afterwards.
const DefaultSVGSize = 512

// MaxAssetBytes bounds the size of a single asset file.
const MaxAssetBytes = 32 << 20

// Loader reads assets from Fs, resolving relative paths against Root.
type Loader struct {
	Fs      afero.Fs
	Root    string
	SVGSize int
	// Sandboxed rejects absolute paths and ".." so assets cannot escape Root.
	Sandboxed bool

	memo *sync.Map // resolved path keyed results, set by Memoized
}

// NewLoader returns a loader over fs rooted at root.
func NewLoader(fs afero.Fs, root string) *Loader {
	return &Loader{Fs: fs, Root: root, SVGSize: DefaultSVGSize}
}

// OS returns a loader over the operating system filesystem, resolving
// relative paths against the working directory.
func OS() *Loader {
	return NewLoader(afero.NewOsFs(), "")
}

// Memoized returns a copy of l that decodes each asset once and serves later
// loads from memory. Decoded images and fonts are shared and must be treated
// as read-only. Changes to the files after the first load are not seen.
func (l *Loader) Memoized() *Loader {
	c := *l
	c.memo = &sync.Map{}
	return &c
}

// Resolve validates path and returns the path the loader opens for it.
func (l *Loader) Resolve(path string) (string, error) {
	validate := errors.ValidatePath
	if l.Sandboxed {
		validate = errors.ValidateRelativePath
	}
	if err := validate(path); err != nil {
		return "", err
	}
	if l.Root != "" && !filepath.IsAbs(path) {
		return filepath.Join(l.Root, path), nil
	}
	return path, nil
}

// Image loads and decodes an image.
func (l *Loader) Image(path string) (image.Image, error) {
	v, err := l.load("image", path, func(data []byte, resolved string) (any, error) {
		if strings.EqualFold(filepath.Ext(resolved), ".svg") {
			return l.rasterizeSVG(bytes.NewReader(data), resolved)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "decode image %s", path)
		}
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Font loads and parses a TrueType font.
func (l *Loader) Font(path string) (*truetype.Font, error) {
	v, err := l.load("font", path, func(data []byte, _ string) (any, error) {
		f, err := fonts.Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "load font %s", path)
		}
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*truetype.Font), nil
}

// Digest returns the hex SHA-256 of the asset's contents. Two paths that
// resolve to files with the same bytes have the same digest.
func (l *Loader) Digest(path string) (string, error) {
	v, err := l.load("digest", path, func(data []byte, _ string) (any, error) {
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// load reads path and converts its bytes, consulting the memo when set.
func (l *Loader) load(kind, path string, convert func(data []byte, resolved string) (any, error)) (any, error) {
	resolved, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	key := kind + ":" + resolved
	if l.memo != nil {
		if v, ok := l.memo.Load(key); ok {
			return v, nil
		}
	}
	data, err := l.read(path, resolved)
	if err != nil {
		return nil, err
	}
	v, err := convert(data, resolved)
	if err != nil {
		return nil, err
	}
	if l.memo != nil {
		v, _ = l.memo.LoadOrStore(key, v)
	}
	return v, nil
}

func (l *Loader) read(path, resolved string) ([]byte, error) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "asset not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "open %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxAssetBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "read %s", path)
	}
	if len(data) > MaxAssetBytes {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "asset %s exceeds %d bytes", path, MaxAssetBytes)
	}
	return data, nil
}

func (l *Loader) rasterizeSVG(r io.Reader, path string) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "parse svg %s", path)
	}

	size := l.SVGSize
	if size <= 0 {
		size = DefaultSVGSize
	}
	w, h := size, size
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw > 0 && vh > 0 {
		if vw > vh {
			w = int(float64(size) * vw / vh)
		} else {
			h = int(float64(size) * vh / vw)
		}
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
