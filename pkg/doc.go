// Package pkg provides the core libraries for the Verovio score processor.
//
// # Overview
//
// Verovio turns symbolic music documents into layout, timemap, and MIDI
// artifacts. A score arrives as a JSON document, is processed through a
// fixed sequence of passes that derive onsets and horizontal alignment,
// and leaves as one or more serialized artifacts. The pkg directory is
// organized into four main areas:
//
//  1. [score] - Domain model (documents, measures, layers, elements, passes)
//  2. [io] - Score import/export and remote fetching
//  3. [pipeline] - Orchestration (import → process → render) with caching
//  4. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through Verovio:
//
//	JSON score document
//	         ↓
//	    [io] package (decode + schema validation)
//	         ↓
//	    [score/pass] package (cast-off, score defs, onsets, alignment)
//	         ↓
//	    [pipeline] package (artifact rendering + cache)
//	         ↓
//	    layout JSON / timemap JSON / Standard MIDI File output
//
// # Quick Start
//
// Import a score, process it, and render the layout artifact:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/fernandoherreradelasheras/verovio/pkg/io"
//	    "github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
//	)
//
//	// 1. Import the document
//	d, _ := io.ImportJSON("score.json")
//
//	// 2. Run the processing passes
//	opts := pipeline.Options{Formats: []string{pipeline.FormatLayout}}
//	_ = pipeline.Process(context.Background(), d, &opts)
//
//	// 3. Render the artifact
//	layout, _ := pipeline.RenderArtifact(d, pipeline.FormatLayout, &opts)
//	os.WriteFile("score.layout.json", layout, 0o644)
//
// # Main Packages
//
// ## Domain Model
//
// [score] - The document tree: Doc → System → Measure → Staff → Layer →
// elements (notes, rests, chords, clefs, signatures, bar lines). Layers
// track the signature context in effect at every element, and the
// generic [score.Walk] traversal drives all processing passes.
//
// [score/pass] - The processing passes in their fixed order: derived-state
// reset, articulation markup conversion, mensural cast-off, score
// definition propagation, onset computation, and horizontal alignment.
// [pass.Runner.Process] runs the complete sequence.
//
// ## Input and Output
//
// [io] - JSON score decoding with schema validation, document export,
// layout serialization, and a cache-backed [io.Fetcher] that loads
// documents from local paths or HTTP URLs.
//
// ## Artifacts
//
// [timemap] - Score-time to real-time mapping. Entries carry onsets in
// score time (quarter units) and milliseconds under the effective tempo.
//
// [midi] - MIDI event sequences and Standard MIDI File (format 1)
// encoding.
//
// [render] - Visual debug output: Graphviz document tree diagrams (in
// [render/doctree]) and SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - The complete processing pipeline used by CLI and API.
// [pipeline.Process] runs the passes, [pipeline.RenderArtifact] encodes
// one artifact, and [pipeline.Runner] adds content-addressed caching on
// top with any [cache.Cache] backend.
//
// [cache] - Artifact cache backends: file (CLI), memory and null
// (testing), Redis (fast shared index), and MongoDB (durable store).
// [cache.Keyer] derives cache keys from score fingerprints and the
// option values that affect each artifact.
//
// [errors] - Coded errors shared by CLI and API. Codes map to HTTP
// status codes at the API boundary and to user-facing messages in the
// CLI.
//
// [observability] - Process-wide hook registry for request and pipeline
// instrumentation.
//
// [buildinfo] - Version, commit, and build date injected at link time.
//
// # Common Workflows
//
// Process with caching across runs:
//
//	store, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(store, nil, logger)
//	defer runner.Close()
//	layout, hit, _ := runner.LayoutWithCacheInfo(ctx, d, opts)
//
// Generate a timemap and MIDI from one processed document:
//
//	opts := pipeline.Options{Formats: []string{pipeline.FormatTimemap, pipeline.FormatMIDI}}
//	result, _ := runner.Execute(ctx, d, opts)
//	tm := result.Artifacts[pipeline.FormatTimemap]
//	smf := result.Artifacts[pipeline.FormatMIDI]
//
// Render a document tree diagram:
//
//	dot := doctree.ToDOT(d, doctree.Options{Detailed: true})
//	svg, _ := doctree.RenderSVG(dot)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/score/pass/... # Specific package
//
// [score]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/score
// [score/pass]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/score/pass
// [io]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/cache
// [timemap]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/timemap
// [midi]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/midi
// [render]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/render
// [render/doctree]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/render/doctree
// [errors]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/errors
// [observability]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/buildinfo
//
// [pass.Runner.Process]: https://pkg.go.dev/github.com/fernandoherreradelasheras/verovio/pkg/score/pass#Runner.Process
package pkg
