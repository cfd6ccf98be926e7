// Package score defines the in-memory music-notation document model and the
// layout core that operates on it.
//
// # Overview
//
// A document is a tree: [Doc] → [System] → [Measure] → [Staff] → [Layer] →
// [Element]. A layer holds the ordered notational content of one voice on one
// staff; elements are notes, rests, chords, clefs, key signatures,
// mensuration and meter signs, and a few structural markers. Order inside a
// layer always equals document order, left to right.
//
// The layer is the heart of the package. It provides:
//
//   - the ordered-content container: positional insertion and lookup
//     ([Layer.Insert], [Layer.AtPos], [Layer.Previous])
//   - the context resolver: "what clef/key/mensuration/meter is active at
//     this point" ([Layer.Clef], [Layer.ClefLocOffset], [Layer.CurrentClef])
//   - the staff-definition propagator: which context symbols must be drawn
//     at the start of the layer, for normal and cautionary contexts
//     ([Layer.SetDrawingStaffDefValues], [Layer.SetDrawingCautionValues])
//   - the time-span query engine: which voices sound during an interval,
//     including cross-staff voices ([Layer.LayersInTimeSpan],
//     [Layer.ElementsInTimeSpan])
//
// # Traversal
//
// Layout computations run as passes over the tree. A pass implements
// [Visitor] and is driven by [Walk] in document order (depth-first, children
// in structural order). Visit methods return a [Code] to continue, skip a
// subtree, or stop the traversal. The concrete passes live in the pass
// subpackage; this package only defines the contract and the derived state
// the passes read and write (onsets, alignments, drawing positions,
// staff-definition snapshots).
//
// # Ownership and derived state
//
// Every element has exactly one owning layer at a time; moving content
// between layers is an explicit detach and append, never a copy. Derived
// state (onsets, alignments, drawing coordinates, staff-definition
// snapshots, stem directions, cross-staff flags) is recomputed by the passes
// and valid only until the next reset. Staff-definition snapshots never own
// the objects they reference; those belong to the staff definitions.
//
// Documents are not safe for concurrent traversal. One pass runs at a time
// over one document; callers that need parallelism operate on independent
// documents.
package score
