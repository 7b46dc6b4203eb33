// Package cache provides content-addressed caching of rendered artifacts.
//
// Exporting a drawing is deterministic: the same strokes, symmetry
// configuration, and render options always produce the same bytes. The
// export command and the share server exploit that by caching rendered
// SVG/PNG/PDF output under a key derived from a hash of the inputs —
// re-rendering an unchanged drawing becomes a file read.
//
// Two backends exist: [FileCache] for persistent on-disk caching and
// [NullCache] to disable caching entirely. Backends store opaque byte
// slices; key construction lives in [ArtifactKey].
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts as opaque bytes under string keys.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact.
// contentHash is [Hash] over the serialized drawing state; format is the
// output format ("svg", "png", "pdf"); opts captures any render options
// that change the output bytes.
func ArtifactKey(contentHash, format string, opts ...any) string {
	parts := append([]any{contentHash, format}, opts...)
	return hashKey("artifact", parts...)
}
