package score

import "github.com/google/uuid"

// Kind identifies the notational kind of an element. The kind decides which
// layers accept the element, how it participates in horizontal alignment,
// and whether it carries a duration.
type Kind int

const (
	// KindClef is a clef change.
	KindClef Kind = iota
	// KindKeySig is a key-signature change.
	KindKeySig
	// KindMensur is a mensuration sign (mensural notation).
	KindMensur
	// KindMeterSig is a meter signature.
	KindMeterSig
	// KindMeterSigGrp is a group of alternating or interchanging meter signatures.
	KindMeterSigGrp
	// KindNote is a single note.
	KindNote
	// KindRest is a rest.
	KindRest
	// KindChord is a chord holding two or more notes of equal duration.
	KindChord
	// KindSpace is an invisible filler with a duration.
	KindSpace
	// KindBarLine is a bar line drawn inside a layer.
	KindBarLine
	// KindMRpt is a whole-measure repeat sign.
	KindMRpt
	// KindCustos is a custos, the end-of-line guide symbol of mensural sources.
	KindCustos
)

var kindNames = map[Kind]string{
	KindClef:        "clef",
	KindKeySig:      "keySig",
	KindMensur:      "mensur",
	KindMeterSig:    "meterSig",
	KindMeterSigGrp: "meterSigGrp",
	KindNote:        "note",
	KindRest:        "rest",
	KindChord:       "chord",
	KindSpace:       "space",
	KindBarLine:     "barLine",
	KindMRpt:        "mRpt",
	KindCustos:      "custos",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsContext reports whether the kind changes the notational context
// (clef, key signature, mensuration, meter). Context kinds have no duration
// and are the targets of the backward context resolution.
func (k Kind) IsContext() bool {
	switch k {
	case KindClef, KindKeySig, KindMensur, KindMeterSig, KindMeterSigGrp:
		return true
	}
	return false
}

// IsDurational reports whether the kind occupies score time.
func (k Kind) IsDurational() bool {
	switch k {
	case KindNote, KindRest, KindChord, KindSpace, KindMRpt:
		return true
	}
	return false
}

// Element is a notational symbol or event inside a layer. Concrete types
// (Note, Rest, Clef, ...) embed [ElementBase], which carries identity,
// ownership, and the derived layout state shared by all kinds.
type Element interface {
	// Kind reports the notational kind of the element.
	Kind() Kind
	// Base returns the shared identity and layout state. It is never nil.
	Base() *ElementBase
}

// Unset marks a drawing or facsimile coordinate that has not been computed
// or supplied. Coordinates are never negative once set.
const Unset = -1.0

// ElementBase carries the state common to all element kinds: identity,
// the owning layer, facets (cue, visibility, type tag), and the derived
// values written by the layout passes.
//
// The zero value is not usable; elements are created through their
// constructors, which initialize identity and visibility.
type ElementBase struct {
	id    string
	layer *Layer

	cue     bool
	visible bool
	typ     string

	facsX float64 // source-image position, Unset when the source has none

	// Derived state, recomputed per pass.
	drawingX  float64
	onset     float64
	offset    float64
	alignment *Alignment
	cross     *Staff // staff the element is drawn on, nil when its own
}

func newElementBase() ElementBase {
	return ElementBase{
		id:       uuid.NewString(),
		visible:  true,
		facsX:    Unset,
		drawingX: Unset,
	}
}

// ID returns the element's stable identifier.
func (b *ElementBase) ID() string { return b.id }

// SetID replaces the generated identifier, typically with one carried by an
// imported document.
func (b *ElementBase) SetID(id string) {
	if id != "" {
		b.id = id
	}
}

// Layer returns the owning layer, or nil for an element that has not been
// inserted anywhere.
func (b *ElementBase) Layer() *Layer { return b.layer }

// IsCue reports the cue facet.
func (b *ElementBase) IsCue() bool { return b.cue }

// SetCue sets the cue facet.
func (b *ElementBase) SetCue(cue bool) { b.cue = cue }

// IsVisible reports the visibility facet.
func (b *ElementBase) IsVisible() bool { return b.visible }

// SetVisible sets the visibility facet.
func (b *ElementBase) SetVisible(visible bool) { b.visible = visible }

// Type returns the free-form type tag.
func (b *ElementBase) Type() string { return b.typ }

// SetType sets the free-form type tag.
func (b *ElementBase) SetType(typ string) { b.typ = typ }

// FacsX returns the facsimile (source-image) position, or Unset.
func (b *ElementBase) FacsX() float64 { return b.facsX }

// SetFacsX sets the facsimile position.
func (b *ElementBase) SetFacsX(x float64) { b.facsX = x }

// DrawingX returns the computed horizontal position, or Unset before the
// alignment passes have run.
func (b *ElementBase) DrawingX() float64 { return b.drawingX }

// SetDrawingX sets the horizontal position.
func (b *ElementBase) SetDrawingX(x float64) { b.drawingX = x }

// Onset returns the score-time onset in quarter-note units from the start of
// the document. Valid only after onset initialization.
func (b *ElementBase) Onset() float64 { return b.onset }

// SetOnset sets the score-time onset.
func (b *ElementBase) SetOnset(t float64) { b.onset = t }

// Offset returns the score-time offset. Equals the onset for elements
// without a duration.
func (b *ElementBase) Offset() float64 { return b.offset }

// SetOffset sets the score-time offset.
func (b *ElementBase) SetOffset(t float64) { b.offset = t }

// Alignment returns the alignment slot the element was assigned to, or nil
// before the alignment pass.
func (b *ElementBase) Alignment() *Alignment { return b.alignment }

// SetAlignment assigns the alignment slot.
func (b *ElementBase) SetAlignment(a *Alignment) { b.alignment = a }

// CrossStaff returns the staff the element is drawn on when it differs from
// the staff of its owning layer, or nil.
func (b *ElementBase) CrossStaff() *Staff { return b.cross }

// SetCrossStaff marks the element as drawn on the given staff.
func (b *ElementBase) SetCrossStaff(staff *Staff) { b.cross = staff }

// ResetDerived clears all pass-computed state: onset and offset times and
// the alignment reference. The position coordinate stays; it is authored
// content until the alignment finalize overwrites it.
func (b *ElementBase) ResetDerived() {
	b.onset = 0
	b.offset = 0
	b.alignment = nil
}
