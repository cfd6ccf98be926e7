package cache

import "fmt"

// Keyer builds cache keys for the entry classes the engine stores.
//
// Fetched scores are keyed by source and reference so repeated loads of the
// same document hit the cache. Layouts and artifacts are keyed by the
// content hash of the score plus the options that shaped the output: a
// change to either produces a fresh key, so stale entries are never served.
type Keyer interface {
	// ScoreKey generates a key for a fetched score document.
	ScoreKey(source, ref string) string

	// LayoutKey generates a key for processed layout state.
	LayoutKey(scoreHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for an exported artifact.
	ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change layout output.
type LayoutKeyOpts struct {
	Unit             float64
	SpacingLinear    float64
	SpacingNonLinear float64
	SkipCancellation bool
	CastOffUnit      float64
}

// ArtifactKeyOpts holds the options that change an exported artifact.
type ArtifactKeyOpts struct {
	Format string // "layout", "midi", or "timemap"
	Tempo  float64
	PPQ    int
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ScoreKey generates a key for a fetched score document.
func (k *DefaultKeyer) ScoreKey(source, ref string) string {
	return fmt.Sprintf("score:%s:%s", source, ref)
}

// LayoutKey generates a key for processed layout state.
func (k *DefaultKeyer) LayoutKey(scoreHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scoreHash, opts)
}

// ArtifactKey generates a key for an exported artifact.
func (k *DefaultKeyer) ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scoreHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
