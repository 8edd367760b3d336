// Package cache provides artifact caching for the synthesis pipeline.
//
// Rendering a section is deterministic, so rendered artifacts are cached
// keyed on the profile content hash plus the render options. Three backends
// are provided:
//   - file: directory-based storage for CLI usage
//   - redis: shared storage for server deployments
//   - null: no-op cache for testing or --no-cache runs
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLArtifact is the lifetime of rendered artifacts. Artifacts derive
	// deterministically from their key, so the TTL only bounds disk usage.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that shape an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Standing   bool    `json:"standing"`
	Sightlines bool    `json:"sightlines"`
	PxPerMeter float64 `json:"px_per_meter"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a rendered artifact, scoped by the
	// profile content hash.
	ArtifactKey(profileHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(profileHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", profileHash, opts)
}
