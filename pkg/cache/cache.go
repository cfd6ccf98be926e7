// Package cache provides caching for fetched scores and derived artifacts.
//
// Entries are raw bytes addressed by keys from a Keyer: fetched score
// documents under source/reference keys, processed layouts and exported
// artifacts (MIDI files, timemaps) under content-hash keys. Several
// backends implement the same Cache interface:
//
//   - FileCache: on-disk storage, the CLI default
//   - MemoryCache: in-process storage for tests and short-lived embedding
//   - RedisCache, MongoCache: shared storage for server deployments
//   - NullCache: caching disabled
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// TTLs per entry class. Fetched scores expire quickly because the source
// may change under the same reference; layout and artifact entries are
// content-addressed, so their TTLs only bound storage growth.
const (
	TTLScore    = 15 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Stats summarizes a backend's contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// Inspector is implemented by backends that own their full keyspace and can
// enumerate it. Shared backends (redis, mongo) do not implement it.
type Inspector interface {
	Stats(ctx context.Context) (Stats, error)
	Clear(ctx context.Context) error
}
