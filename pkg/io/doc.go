// Package io provides JSON import and export for score documents.
//
// # Overview
//
// This package serializes scores to and from a simple JSON format. The
// format is designed for:
//
//   - Authoring small scores by hand or from external tools
//   - Caching of fetched documents for faster re-processing
//   - Round-trip preservation: import, export, and re-import identically
//
// # JSON Format
//
// A document is an object with an optional score definition and a list of
// systems holding measures:
//
//	{
//	  "id": "example",
//	  "score_def": {
//	    "staves": [
//	      {"n": 1, "clef": {"shape": "G", "line": 2}, "meter_sig": {"count": 4, "unit": 4}}
//	    ]
//	  },
//	  "systems": [
//	    {"measures": [
//	      {"n": 1, "staves": [
//	        {"n": 1, "layers": [
//	          {"n": 1, "elements": [
//	            {"type": "note", "pname": "c", "oct": 4, "dur": "4"}
//	          ]}
//	        ]}
//	      ]}
//	    ]}
//	  ]
//	}
//
// # Element Fields
//
// Every element object carries a "type" discriminator (note, rest, chord,
// space, barLine, mRpt, custos, clef, keySig, meterSig, meterSigGrp,
// mensur) and an optional "id". Omitted ids are generated on import.
// Other fields depend on the type:
//
//   - note, custos: pname (c..b), oct, accid (s/f/n)
//   - note, rest, chord, space: dur (1/2/4/... or maxima/longa/brevis/...), dots
//   - note: artic (combined markup such as "stacc-ten", split by the pipeline)
//   - chord: notes (member note objects; dur defaults to the chord's)
//   - clef: shape (G/F/C/GG/perc), line, dis (8/15), dis_below
//   - keySig: count, accid
//   - meterSig: count, unit, sym (common/cut)
//   - meterSigGrp: func, sigs
//   - mensur: sign (C/O), dot, prolatio, tempus
//   - barLine: form (dbl/end; omitted means single)
//
// The shared facets cue, hidden, tag, and facs_x apply to all types.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	d, err := io.ImportJSON("score.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the schema constraints (no duplicate staff or
// layer numbers, no empty measures). Errors are wrapped with context about
// which measure, staff, or element caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write
// to any io.Writer. The export captures the document's current score
// definition and authored content; export before processing when the file
// is meant for archival, since the pass sequence folds mid-score definition
// changes into the working definition.
//
// # Layout Export
//
// This package exports the logical score structure only. For tools that
// need computed positions, [WriteLayoutJSON] dumps the derived layout of a
// processed document: measure origins and widths, alignment slots with
// their times and positions, and per-element coordinates.
//
// # Remote Loading
//
// [Fetcher.Load] reads a score from a local path or an http(s) URL. Remote
// fetches are cached (see [cache.TTLScore]) and retried with exponential
// backoff on transient failures.
//
// [cache.TTLScore]: github.com/fernandoherreradelasheras/verovio/pkg/cache.TTLScore
package io
