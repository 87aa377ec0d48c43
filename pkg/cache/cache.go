// Package cache stores rendered menu artifacts.
//
// Rendering a frame is cheap, but PNG and PDF output shells out to
// rsvg-convert and Graphviz output spins up a WebAssembly runtime, so the CLI
// and server cache artifacts keyed by the frame content and render options.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server, or CLI with FABMENU_REDIS_ADDR)
//   - [NullCache]: stores nothing
//
// Wrap any backend with [NewInstrumented] to report hits, misses and sets
// to the observability cache hooks.
//
// # Keys
//
// A [Keyer] turns a frame hash and render options into a key. Keys never
// contain the frame itself; use [Hash] on its JSON encoding.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired entries count as absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
