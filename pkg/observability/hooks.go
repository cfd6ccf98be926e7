// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation stays optional: the engine emits events through hook
// interfaces registered at startup, and ships no-op defaults so library
// code never checks for nil. Hooks are registered by main, never by
// libraries, which keeps the core packages free of backend imports and
// leaves the choice of backend (OpenTelemetry, Prometheus, plain logs)
// to the embedding application.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnPassStart(ctx, "process", measureCount)
//	// ... run the pass sequence ...
//	observability.Pipeline().OnPassDone(ctx, "process", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from the engraving pipeline.
type PipelineHooks interface {
	// Pass events (one stage of the pass sequence over a document)
	OnPassStart(ctx context.Context, stage string, measureCount int)
	OnPassDone(ctx context.Context, stage string, duration time.Duration, err error)

	// Artifact events (layout, MIDI, timemap exports)
	OnArtifactStart(ctx context.Context, format string)
	OnArtifactDone(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError records a backend failure (the pipeline recomputes on these).
	OnCacheError(ctx context.Context, keyType string, err error)
}

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming API request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed API response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPassStart(context.Context, string, int)                 {}
func (NoopPipelineHooks) OnPassDone(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnArtifactStart(context.Context, string)                  {}
func (NoopPipelineHooks) OnArtifactDone(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// registry guards one hook implementation. Reads vastly outnumber the
// one-time registration, hence the read-write lock.
type registry[T any] struct {
	mu sync.RWMutex
	v  T
}

func (r *registry[T]) get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.v
}

func (r *registry[T]) set(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v = v
}

var (
	pipelineHooks = &registry[PipelineHooks]{v: NoopPipelineHooks{}}
	cacheHooks    = &registry[CacheHooks]{v: NoopCacheHooks{}}
	apiHooks      = &registry[APIHooks]{v: NoopAPIHooks{}}
)

// SetPipelineHooks registers pipeline hooks. Call once at startup,
// before the first document is processed; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks registers cache hooks. Call once at startup, before the
// first cache operation; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetAPIHooks registers API hooks. Call once at startup, before the
// server starts; nil is ignored.
func SetAPIHooks(h APIHooks) {
	if h != nil {
		apiHooks.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// API returns the registered API hooks.
func API() APIHooks { return apiHooks.get() }

// Reset restores the no-op defaults. Tests use it to isolate hook state.
func Reset() {
	pipelineHooks.set(NoopPipelineHooks{})
	cacheHooks.set(NoopCacheHooks{})
	apiHooks.set(NoopAPIHooks{})
}
