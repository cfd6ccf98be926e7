// Package pass implements the document passes that turn an authored score
// tree into drawable and playable state. Each pass is either a
// [score.Visitor] walked over the whole document or a driver function that
// needs its own sequencing across measures.
//
// # Pass order
//
// The [Runner] applies the passes in a fixed order; a pass reading derived
// state always runs after the pass producing it:
//
//  1. Reset of all derived state ([ResetData])
//  2. Articulation markup conversion ([ConvertMarkupArtic])
//  3. Mensural cast-off for unmeasured content ([CastOffMensural])
//  4. Score-definition reset and propagation ([UnsetCurrentScoreDef],
//     [SetCurrentScoreDef])
//  5. Processing lists: stem directions and cross-staff flags
//     ([InitProcessingLists])
//  6. Repeat-mark preparation ([PrepareRepeats])
//  7. Onset and offset times ([InitOnsets])
//  8. Horizontal alignment ([CalcAlignment], [FinalizeAlignment])
//
// MIDI and timemap generation ([GenerateMIDI], [GenerateTimemap]) run on
// demand after a [Runner.Process] and read the onset data it produced.
//
// Running the sequence twice over the same document yields identical
// derived state: every pass starts from the reset performed in step 1.
package pass
