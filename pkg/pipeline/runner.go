package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/observability"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner for distinct documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ScoreHash computes the content hash of the authored score. Hash before
// processing: the pass sequence folds mid-score definition changes into the
// working staff definitions, and the export drifts with them.
func ScoreHash(d *score.Doc) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(&buf, d); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Execute runs the complete process → derive pipeline with caching.
//
// Every requested artifact is looked up in the cache first; the pass
// sequence only runs when at least one artifact has to be recomputed. The
// document must be in authored state (freshly decoded or built), since the
// cache keys hash its authored content.
func (r *Runner) Execute(ctx context.Context, d *score.Doc, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Doc:       d,
		Artifacts: make(map[string][]byte),
	}

	scoreHash, err := ScoreHash(d)
	if err != nil {
		return nil, fmt.Errorf("hash score: %w", err)
	}
	result.ScoreHash = scoreHash

	// The layout fingerprint keys the layout artifact itself and parents
	// the playback artifact keys, so every option that changes processing
	// output is part of every key.
	fingerprint := r.Keyer.LayoutKey(scoreHash, opts.LayoutKeyOpts())

	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		keys[format] = r.artifactKey(fingerprint, format, &opts)
		if data, ok := r.cacheGet(ctx, keys[format], format, &opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.setHit(format)
			continue
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		r.Logger.Info("served artifacts from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Process
	processStart := time.Now()
	if err := Process(ctx, d, &opts); err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	result.Stats.Processed = true
	result.Stats.ProcessTime = time.Since(processStart)
	result.Stats.MeasureCount = len(d.Measures())

	r.Logger.Info("processed document",
		"measures", result.Stats.MeasureCount,
		"duration", result.Stats.ProcessTime)

	// Stage 2: Derive the missing artifacts
	artifactStart := time.Now()
	for _, format := range missing {
		data, err := r.deriveArtifact(ctx, d, format, &opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		r.cacheSet(ctx, keys[format], format, data)
	}
	result.Stats.ArtifactTime = time.Since(artifactStart)

	r.Logger.Info("derived artifacts",
		"formats", missing,
		"duration", result.Stats.ArtifactTime)

	return result, nil
}

// LayoutWithCacheInfo derives the layout artifact with caching and returns
// cache hit info. On a miss the document is processed in place.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *score.Doc, opts Options) ([]byte, bool, error) {
	return r.artifactWithCacheInfo(ctx, d, FormatLayout, opts)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d *score.Doc, opts Options) ([]byte, error) {
	data, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return data, err
}

// TimemapWithCacheInfo derives the timemap artifact with caching and returns
// cache hit info. On a miss the document is processed in place.
func (r *Runner) TimemapWithCacheInfo(ctx context.Context, d *score.Doc, opts Options) ([]byte, bool, error) {
	return r.artifactWithCacheInfo(ctx, d, FormatTimemap, opts)
}

// Timemap is a convenience wrapper that calls TimemapWithCacheInfo and discards the cache hit info.
func (r *Runner) Timemap(ctx context.Context, d *score.Doc, opts Options) ([]byte, error) {
	data, _, err := r.TimemapWithCacheInfo(ctx, d, opts)
	return data, err
}

// MIDIWithCacheInfo derives the MIDI artifact with caching and returns
// cache hit info. On a miss the document is processed in place.
func (r *Runner) MIDIWithCacheInfo(ctx context.Context, d *score.Doc, opts Options) ([]byte, bool, error) {
	return r.artifactWithCacheInfo(ctx, d, FormatMIDI, opts)
}

// MIDI is a convenience wrapper that calls MIDIWithCacheInfo and discards the cache hit info.
func (r *Runner) MIDI(ctx context.Context, d *score.Doc, opts Options) ([]byte, error) {
	data, _, err := r.MIDIWithCacheInfo(ctx, d, opts)
	return data, err
}

func (r *Runner) artifactWithCacheInfo(ctx context.Context, d *score.Doc, format string, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	scoreHash, err := ScoreHash(d)
	if err != nil {
		return nil, false, fmt.Errorf("hash score: %w", err)
	}
	fingerprint := r.Keyer.LayoutKey(scoreHash, opts.LayoutKeyOpts())
	key := r.artifactKey(fingerprint, format, &opts)

	if data, ok := r.cacheGet(ctx, key, format, &opts); ok {
		return data, true, nil
	}

	if err := Process(ctx, d, &opts); err != nil {
		return nil, false, fmt.Errorf("process: %w", err)
	}
	data, err := r.deriveArtifact(ctx, d, format, &opts)
	if err != nil {
		return nil, false, err
	}
	r.cacheSet(ctx, key, format, data)
	return data, false, nil
}

// artifactKey resolves the cache key for one format. The layout bytes are
// keyed by the fingerprint itself; playback artifacts add their own options
// on top of it.
func (r *Runner) artifactKey(fingerprint, format string, opts *Options) string {
	if format == FormatLayout {
		return fingerprint
	}
	return r.Keyer.ArtifactKey(fingerprint, opts.ArtifactKeyOpts(format))
}

// cacheGet reads one artifact from the cache, reporting to the cache hooks.
// Read failures degrade to recompute.
func (r *Runner) cacheGet(ctx context.Context, key, format string, opts *Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.Cache().OnCacheError(ctx, format, err)
		return nil, false
	case hit:
		observability.Cache().OnCacheHit(ctx, format)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, format)
	return nil, false
}

// cacheSet writes one artifact back, reporting to the cache hooks. Write
// failures are dropped; the caller already holds the bytes.
func (r *Runner) cacheSet(ctx context.Context, key, format string, data []byte) {
	ttl := cache.TTLArtifact
	if format == FormatLayout {
		ttl = cache.TTLLayout
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, format, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// deriveArtifact renders one artifact from the processed document, wrapped
// in the artifact hooks.
func (r *Runner) deriveArtifact(ctx context.Context, d *score.Doc, format string, opts *Options) ([]byte, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnArtifactStart(ctx, format)

	data, err := RenderArtifact(d, format, opts)
	hooks.OnArtifactDone(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
