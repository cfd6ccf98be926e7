// Package pipeline provides the core processing pipeline for Verovio.
//
// This package implements the complete process → derive pipeline that can be
// used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Process: Run the pass sequence over the document, rebuilding all
//     derived state (context, onsets, alignment) from the authored content
//  2. Derive: Generate output artifacts from the derived state (layout
//     JSON, timemap JSON, standard MIDI file)
//
// Each stage can be run independently or as part of the complete pipeline.
// Artifacts are cached under content-hash keys, so repeating a run with the
// same score and options serves bytes without touching the document.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"layout", "midi"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := result.Artifacts["layout"]
//
// Run individual stages:
//
//	// Process only
//	err := pipeline.Process(ctx, doc, &opts)
//
//	// Derive one artifact, consulting the cache first
//	data, err := runner.Layout(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
	"github.com/fernandoherreradelasheras/verovio/pkg/score/pass"
)

// Format constants for output artifacts.
const (
	FormatLayout  = "layout"
	FormatTimemap = "timemap"
	FormatMIDI    = "midi"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatLayout:  true,
	FormatTimemap: true,
	FormatMIDI:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the processing pipeline. The
// engraving and playback options are embedded from [pass.Options], so the
// struct serializes flat for API requests.
type Options struct {
	pass.Options

	// Formats lists the artifacts to derive.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks field ranges and applies defaults. This
// method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Options.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatLayout}
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns the cache key options covering every field that
// changes processing output.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Unit:             o.Unit,
		SpacingLinear:    o.SpacingLinear,
		SpacingNonLinear: o.SpacingNonLinear,
		SkipCancellation: o.SkipCancellation,
		CastOffUnit:      o.CastOffUnit,
	}
}

// ArtifactKeyOpts returns the cache key options for one derived artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Tempo:  o.Tempo,
		PPQ:    o.PPQ,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Doc is the input document. It carries derived state only when
	// Stats.Processed is true; a run served entirely from cache leaves
	// the document untouched.
	Doc *score.Doc

	// ScoreHash is the content hash of the authored score.
	ScoreHash string

	// Artifacts contains derived outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MeasureCount int
	Processed    bool // Whether the pass sequence ran
	ProcessTime  time.Duration
	ArtifactTime time.Duration
}

// CacheInfo tracks cache hits per artifact format.
type CacheInfo struct {
	LayoutHit  bool
	TimemapHit bool
	MIDIHit    bool
}

// Hit reports whether the given format was served from cache.
func (ci CacheInfo) Hit(format string) bool {
	switch format {
	case FormatLayout:
		return ci.LayoutHit
	case FormatTimemap:
		return ci.TimemapHit
	case FormatMIDI:
		return ci.MIDIHit
	}
	return false
}

func (ci *CacheInfo) setHit(format string) {
	switch format {
	case FormatLayout:
		ci.LayoutHit = true
	case FormatTimemap:
		ci.TimemapHit = true
	case FormatMIDI:
		ci.MIDIHit = true
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: layout, timemap, midi)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
