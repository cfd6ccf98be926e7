// Package doctree renders score documents as containment-tree diagrams.
//
// # Overview
//
// This package draws the document hierarchy (systems, measures, staves,
// layers, elements) as a Graphviz directed graph, each node a box linked
// to its parent. It exists for debugging the structure the layout
// pipeline walks, not for engraving.
//
// # Usage
//
// [ToDOT] turns a document into Graphviz DOT source; the Render
// functions turn DOT into images:
//
//	dot := doctree.ToDOT(d, doctree.Options{Detailed: false})
//	svg, err := doctree.RenderSVG(dot)
//	pdf, err := doctree.RenderPDF(dot)
//	png, err := doctree.RenderPNG(dot, 2.0)  // 2x scale
//
// The DOT source is plain text, so it can also be saved and fed to
// external Graphviz tooling directly.
//
// # Options
//
//   - Detailed: element labels include musical content (pitch,
//     duration, onset) instead of just the element kind.
//   - MaxElements: caps the element nodes drawn per layer; the rest
//     collapse into one summary node. Zero draws everything.
//
// # Output
//
// Diagrams lay out top to bottom (rankdir=TB) with rounded box nodes.
// Signature elements (clefs, key signatures, mensuration and meter
// signs) are filled grey; hidden layers and elements are dashed.
//
// SVG renders in process through [github.com/goccy/go-graphviz]; PDF
// and PNG conversion shells out to rsvg-convert (librsvg).
package doctree
