// Package render provides visual output helpers for score documents.
//
// # Overview
//
// This package contains the rendering helpers that turn documents into
// visual debug outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Document tree diagrams (in [doctree] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := doctree.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Document Tree Diagrams
//
// The [doctree] subpackage renders the containment hierarchy of a document
// (systems, measures, staves, layers, elements) as a Graphviz diagram. It
// is a debugging aid, not an engraving surface: the layout pipeline's
// positional output lives in the layout JSON artifact.
//
//	dot := doctree.ToDOT(d, doctree.Options{})
//	svg, err := doctree.RenderSVG(dot)
//
// [doctree]: github.com/fernandoherreradelasheras/verovio/pkg/render/doctree
package render
