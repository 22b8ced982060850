// Package cache stores encoded renders keyed by everything that affects
// their bytes.
//
// Rendering large styled codes is slow relative to serving bytes, so the
// pipeline looks up finished artifacts before generating anything. Two
// backends are provided: [FileCache] over an [afero.Fs] and [NullCache].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys for render artifacts.
type Keyer interface {
	ArtifactKey(payload string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs besides the payload that change an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Level         string `json:"level"`
	Version       int    `json:"version"`
	Border        int    `json:"border"`
	PixelsPerCell int    `json:"ppc"`
	SubCells      int    `json:"sub"`
	Background    string `json:"bg"`
	Style         string `json:"style"`
	Format        string `json:"format"`
	Quality       int    `json:"quality,omitempty"`
}

// DefaultKeyer hashes the payload together with its options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(payload string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", payload, opts)
}
