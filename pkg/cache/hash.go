package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 content hash of data as a 64-character hex
// string. Score fingerprints and file cache paths are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a cache key of the form prefix:hash(parts). Parts are
// JSON-encoded before hashing so that any comparable option struct can
// participate in the key; the full 256-bit digest is kept to rule out
// collisions between scores.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
