package score

import "github.com/google/uuid"

// StemDirection is the drawing stem direction of a layer.
type StemDirection int

const (
	// StemNone leaves the direction to the element's own rules.
	StemNone StemDirection = iota
	// StemUp forces stems up.
	StemUp
	// StemDown forces stems down.
	StemDown
)

func (d StemDirection) String() string {
	switch d {
	case StemUp:
		return "up"
	case StemDown:
		return "down"
	}
	return "none"
}

// staffDefSnapshot holds the context symbols a layer must draw at its
// start, populated once per pass by the staff-definition propagation. The
// references are non-owning; the symbols belong to the staff definition.
type staffDefSnapshot struct {
	clef         *Clef
	keySig       *KeySig
	mensur       *Mensur
	meterSig     *MeterSig
	meterSigGrp  *MeterSigGrp // current snapshot only
	cancelKeySig bool
}

func (s *staffDefSnapshot) has() bool {
	return s.clef != nil || s.keySig != nil || s.mensur != nil ||
		s.meterSig != nil || s.meterSigGrp != nil
}

// Layer holds the ordered notational content of one voice on one staff
// within one measure. Content order always equals document order, left to
// right.
type Layer struct {
	id    string
	n     int
	staff *Staff

	cue     bool
	visible bool
	typ     string

	elements []Element

	// Derived state, recomputed per pass.
	stemDir        StemDirection
	crossFromAbove bool
	crossFromBelow bool

	current staffDefSnapshot
	caution staffDefSnapshot

	// Content fingerprints of what the snapshots last stored, used to keep
	// repeated propagation of identical definitions quiet within one pass.
	drawn        staffDefContent
	drawnCaution staffDefContent
}

// NewLayer creates an empty layer with the given layer number.
func NewLayer(n int) *Layer {
	return &Layer{id: uuid.NewString(), n: n, visible: true}
}

// ID returns the layer identifier.
func (l *Layer) ID() string { return l.id }

// SetID replaces the generated identifier.
func (l *Layer) SetID(id string) {
	if id != "" {
		l.id = id
	}
}

// N returns the layer number. A negative number marks a cross-staff echo
// layer.
func (l *Layer) N() int { return l.n }

// SetN sets the layer number.
func (l *Layer) SetN(n int) { l.n = n }

// Idx returns the 0-based position of the layer among its staff's layers,
// or -1 for a detached layer.
func (l *Layer) Idx() int {
	if l.staff == nil {
		return -1
	}
	return l.staff.layerIndex(l)
}

// Staff returns the owning staff, or nil.
func (l *Layer) Staff() *Staff { return l.staff }

// IsCue reports the cue facet.
func (l *Layer) IsCue() bool { return l.cue }

// SetCue sets the cue facet.
func (l *Layer) SetCue(cue bool) { l.cue = cue }

// IsVisible reports the visibility facet.
func (l *Layer) IsVisible() bool { return l.visible }

// SetVisible sets the visibility facet.
func (l *Layer) SetVisible(visible bool) { l.visible = visible }

// Type returns the free-form type tag.
func (l *Layer) Type() string { return l.typ }

// SetType sets the free-form type tag.
func (l *Layer) SetType(typ string) { l.typ = typ }

// ============================================================================
// Ordered content container
// ============================================================================

// Elements returns the content in document order. The slice is the layer's
// own storage; callers must not modify it.
func (l *Layer) Elements() []Element { return l.elements }

// Len returns the number of elements.
func (l *Layer) Len() int { return len(l.elements) }

// Accepts reports whether the element's kind belongs to the layer schema.
// Callers check this before structural mutation; the container never
// panics on schema violations.
func (l *Layer) Accepts(e Element) bool {
	if e == nil {
		return false
	}
	switch e.Kind() {
	case KindClef, KindKeySig, KindMensur, KindMeterSig, KindMeterSigGrp,
		KindNote, KindRest, KindChord, KindSpace, KindBarLine, KindMRpt,
		KindCustos:
		return true
	}
	return false
}

// Append adds the element at the end of the layer. It returns false when
// the element is nil, fails the schema check, or is owned by a layer
// already; ownership transfer must be explicit via [Layer.Remove].
func (l *Layer) Append(e Element) bool {
	if !l.Accepts(e) {
		return false
	}
	b := e.Base()
	if b.layer != nil {
		return false
	}
	b.layer = l
	l.elements = append(l.elements, e)
	return true
}

// Insert places the element so that it follows all elements with position
// at or before x and precedes all with a greater position. Equal positions
// keep their existing relative order. The element's drawing position is set
// to x. Insert is a no-op returning the element unchanged when it is
// already owned by a layer. Callers check [Layer.Accepts] first.
func (l *Layer) Insert(e Element, x float64) Element {
	if e == nil {
		return nil
	}
	b := e.Base()
	if b.layer != nil {
		return e
	}
	b.drawingX = x

	idx := len(l.elements)
	for i, cur := range l.elements {
		if cur.Base().drawingX > x {
			idx = i
			break
		}
	}

	b.layer = l
	l.elements = append(l.elements, nil)
	copy(l.elements[idx+1:], l.elements[idx:])
	l.elements[idx] = e
	return e
}

// Remove detaches the element from the layer. It returns false when the
// element is not part of this layer.
func (l *Layer) Remove(e Element) bool {
	if e == nil {
		return false
	}
	for i, cur := range l.elements {
		if cur == e {
			l.elements = append(l.elements[:i], l.elements[i+1:]...)
			e.Base().layer = nil
			return true
		}
	}
	return false
}

// Previous returns the element immediately preceding e in document order,
// or nil when e is first or not part of this layer.
func (l *Layer) Previous(e Element) Element {
	idx := l.indexOf(e)
	if idx <= 0 {
		return nil
	}
	return l.elements[idx-1]
}

// AtPos returns the element whose position is closest at or before x among
// the already-placed elements, or nil when every placed element lies after
// x.
func (l *Layer) AtPos(x float64) Element {
	var last Element
	for _, cur := range l.elements {
		pos := cur.Base().drawingX
		if pos == Unset {
			continue
		}
		if pos > x {
			break
		}
		last = cur
	}
	return last
}

func (l *Layer) indexOf(e Element) int {
	if e == nil {
		return -1
	}
	for i, cur := range l.elements {
		if cur == e {
			return i
		}
	}
	return -1
}

// ============================================================================
// Context resolver
// ============================================================================

// Clef scans backward from test (exclusive) and returns the nearest
// preceding clef element, or nil when no clef precedes test in this layer.
// Callers fall back to [Layer.CurrentClef] for the staff-definition clef.
func (l *Layer) Clef(test Element) *Clef {
	idx := l.indexOf(test)
	if idx < 0 {
		return nil
	}
	for i := idx - 1; i >= 0; i-- {
		if clef, ok := l.elements[i].(*Clef); ok {
			return clef
		}
	}
	return nil
}

// ClefFacs returns the clef nearest before test in facsimile order: among
// the clefs with a facsimile position strictly before test's, the one with
// the greatest position. It returns nil when test has no facsimile position
// or no such clef exists.
func (l *Layer) ClefFacs(test Element) *Clef {
	if test == nil || test.Base().facsX == Unset {
		return nil
	}
	tx := test.Base().facsX

	var best *Clef
	for _, cur := range l.elements {
		clef, ok := cur.(*Clef)
		if !ok || clef.facsX == Unset || clef.facsX >= tx {
			continue
		}
		if best == nil || clef.facsX > best.facsX {
			best = clef
		}
	}
	return best
}

// ClefLocOffset returns the diatonic-step offset of the clef governing
// test: the nearest preceding clef element, else the current
// staff-definition clef, else 0.
func (l *Layer) ClefLocOffset(test Element) int {
	clef := l.Clef(test)
	if clef == nil {
		clef = l.CurrentClef()
	}
	if clef == nil {
		return 0
	}
	return clef.LocOffset()
}

// clefAtPos returns the clef governing position x: the last clef element
// placed at or before x, else the current staff-definition clef.
func (l *Layer) clefAtPos(x float64) *Clef {
	var found *Clef
	for _, cur := range l.elements {
		pos := cur.Base().drawingX
		if pos == Unset {
			continue
		}
		if pos > x {
			break
		}
		if clef, ok := cur.(*Clef); ok {
			found = clef
		}
	}
	if found == nil {
		found = l.CurrentClef()
	}
	return found
}

// CrossStaffClefLocOffset re-derives the clef offset for an element that is
// part of a cross-staff relation: the active clef of the other staff at the
// element's position wins. Without a cross-staff relation, or when the
// other staff has no clef there, locOffset is returned unchanged.
func (l *Layer) CrossStaffClefLocOffset(e Element, locOffset int) int {
	if e == nil || l.staff == nil || l.staff.measure == nil {
		return locOffset
	}

	var other *Staff
	switch {
	case e.Base().cross != nil:
		other = e.Base().cross
	case l.crossFromAbove:
		other = l.staff.measure.StaffAbove(l.staff)
	case l.crossFromBelow:
		other = l.staff.measure.StaffBelow(l.staff)
	default:
		return locOffset
	}
	if other == nil || other == l.staff {
		return locOffset
	}

	top := other.topLayer()
	if top == nil {
		return locOffset
	}
	if clef := top.clefAtPos(e.Base().drawingX); clef != nil {
		return clef.LocOffset()
	}
	return locOffset
}

// CurrentClef returns the clef of the current staff-definition snapshot,
// or nil.
func (l *Layer) CurrentClef() *Clef { return l.current.clef }

// CurrentKeySig returns the key signature of the current snapshot, or nil.
func (l *Layer) CurrentKeySig() *KeySig { return l.current.keySig }

// CurrentMensur returns the mensuration sign of the current snapshot, or
// nil.
func (l *Layer) CurrentMensur() *Mensur { return l.current.mensur }

// CurrentMeterSig returns the meter signature of the current snapshot, or
// nil.
func (l *Layer) CurrentMeterSig() *MeterSig { return l.current.meterSig }

// CurrentMeterSigGrp returns the meter-signature group of the current
// snapshot, or nil.
func (l *Layer) CurrentMeterSigGrp() *MeterSigGrp { return l.current.meterSigGrp }

// CautionClef returns the clef of the cautionary snapshot, or nil.
func (l *Layer) CautionClef() *Clef { return l.caution.clef }

// CautionKeySig returns the key signature of the cautionary snapshot, or
// nil.
func (l *Layer) CautionKeySig() *KeySig { return l.caution.keySig }

// CautionMensur returns the mensuration sign of the cautionary snapshot,
// or nil.
func (l *Layer) CautionMensur() *Mensur { return l.caution.mensur }

// CautionMeterSig returns the meter signature of the cautionary snapshot,
// or nil.
func (l *Layer) CautionMeterSig() *MeterSig { return l.caution.meterSig }

// ============================================================================
// Staff-definition propagator
// ============================================================================

// SetDrawingStaffDefValues populates the current snapshot from an
// ancestor-supplied staff definition. A context symbol is stored only when
// the definition requests its redraw and its content differs from what this
// layer last stored; repeating the call with an identical definition leaves
// the snapshot empty. cancellations enables the key-signature cancellation
// flag: it is set when the new signature has fewer accidentals than the
// definition's previous one or differs in accidental type.
func (l *Layer) SetDrawingStaffDefValues(staffDef *StaffDef, cancellations bool) {
	l.current = staffDefSnapshot{}
	if staffDef == nil {
		return
	}

	if c := staffDef.Clef(); c != nil && staffDef.Redraw(KindClef) && !c.ContentEquals(l.drawn.clef) {
		l.current.clef = c
		l.drawn.clef = c.cloneContent()
	}
	if k := staffDef.KeySig(); k != nil && staffDef.Redraw(KindKeySig) && !k.ContentEquals(l.drawn.keySig) {
		l.current.keySig = k
		l.drawn.keySig = k.cloneContent()
	}
	if m := staffDef.Mensur(); m != nil && staffDef.Redraw(KindMensur) && !m.ContentEquals(l.drawn.mensur) {
		l.current.mensur = m
		l.drawn.mensur = m.cloneContent()
	}
	if m := staffDef.MeterSig(); m != nil && staffDef.Redraw(KindMeterSig) && !m.ContentEquals(l.drawn.meterSig) {
		l.current.meterSig = m
		l.drawn.meterSig = m.cloneContent()
	}
	if g := staffDef.MeterSigGrp(); g != nil && staffDef.Redraw(KindMeterSigGrp) && !g.ContentEquals(l.drawn.meterSigGrp) {
		l.current.meterSigGrp = g
		l.drawn.meterSigGrp = g.cloneContent()
	}

	if l.current.keySig != nil {
		l.current.cancelKeySig = cancellations && needsCancellation(l.current.keySig, staffDef.PrevKeySig())
	}
}

// SetDrawingCautionValues populates the cautionary snapshot from the staff
// definition that takes effect at the next structural boundary. The rules
// mirror [Layer.SetDrawingStaffDefValues]; the cautionary snapshot has no
// meter-group slot.
func (l *Layer) SetDrawingCautionValues(staffDef *StaffDef, cancellations bool) {
	l.caution = staffDefSnapshot{}
	if staffDef == nil {
		return
	}

	if c := staffDef.Clef(); c != nil && staffDef.Redraw(KindClef) && !c.ContentEquals(l.drawnCaution.clef) {
		l.caution.clef = c
		l.drawnCaution.clef = c.cloneContent()
	}
	if k := staffDef.KeySig(); k != nil && staffDef.Redraw(KindKeySig) && !k.ContentEquals(l.drawnCaution.keySig) {
		l.caution.keySig = k
		l.drawnCaution.keySig = k.cloneContent()
	}
	if m := staffDef.Mensur(); m != nil && staffDef.Redraw(KindMensur) && !m.ContentEquals(l.drawnCaution.mensur) {
		l.caution.mensur = m
		l.drawnCaution.mensur = m.cloneContent()
	}
	if m := staffDef.MeterSig(); m != nil && staffDef.Redraw(KindMeterSig) && !m.ContentEquals(l.drawnCaution.meterSig) {
		l.caution.meterSig = m
		l.drawnCaution.meterSig = m.cloneContent()
	}

	if l.caution.keySig != nil {
		l.caution.cancelKeySig = cancellations && needsCancellation(l.caution.keySig, staffDef.PrevKeySig())
	}
}

// needsCancellation reports whether replacing prev with next warrants
// drawing naturals: fewer accidentals than before, or a different
// accidental type.
func needsCancellation(next, prev *KeySig) bool {
	if prev == nil {
		return false
	}
	return next.AccidCount() < prev.AccidCount() || next.AccidType() != prev.AccidType()
}

// ResetStaffDefObjects clears both snapshots, both cancellation flags, and
// the content fingerprints. It is idempotent and runs once per layer at the
// start of each fresh layout pass.
func (l *Layer) ResetStaffDefObjects() {
	l.current = staffDefSnapshot{}
	l.caution = staffDefSnapshot{}
	l.drawn = staffDefContent{}
	l.drawnCaution = staffDefContent{}
}

// HasStaffDef reports whether the current snapshot holds at least one
// context symbol to draw.
func (l *Layer) HasStaffDef() bool { return l.current.has() }

// HasCautionStaffDef reports whether the cautionary snapshot holds at least
// one context symbol to draw.
func (l *Layer) HasCautionStaffDef() bool { return l.caution.has() }

// DrawKeySigCancellation reports whether the current snapshot's key
// signature must be preceded by cancellation naturals.
func (l *Layer) DrawKeySigCancellation() bool { return l.current.cancelKeySig }

// DrawCautionKeySigCancellation reports whether the cautionary snapshot's
// key signature must be preceded by cancellation naturals.
func (l *Layer) DrawCautionKeySigCancellation() bool { return l.caution.cancelKeySig }

// ============================================================================
// Stem direction and cross-staff flags
// ============================================================================

// DrawingStemDir returns the layer's assigned stem direction.
func (l *Layer) DrawingStemDir() StemDirection { return l.stemDir }

// SetDrawingStemDir assigns the layer's stem direction.
func (l *Layer) SetDrawingStemDir(dir StemDirection) { l.stemDir = dir }

// DrawingStemDirFor returns the stem direction in force for one element:
// the layer's assigned direction, except that an element during whose time
// span no other layer sounds keeps its stems free.
func (l *Layer) DrawingStemDirFor(e Element) StemDirection {
	if l.stemDir == StemNone {
		return StemNone
	}
	if l.LayerCountForTimeSpanOf(e) < 2 {
		return StemNone
	}
	return l.stemDir
}

// HasCrossStaffFromAbove reports whether the layer's staff receives
// cross-staff content from the staff above.
func (l *Layer) HasCrossStaffFromAbove() bool { return l.crossFromAbove }

// SetCrossStaffFromAbove sets the cross-staff-from-above flag.
func (l *Layer) SetCrossStaffFromAbove(v bool) { l.crossFromAbove = v }

// HasCrossStaffFromBelow reports whether the layer's staff receives
// cross-staff content from the staff below.
func (l *Layer) HasCrossStaffFromBelow() bool { return l.crossFromBelow }

// SetCrossStaffFromBelow sets the cross-staff-from-below flag.
func (l *Layer) SetCrossStaffFromBelow(v bool) { l.crossFromBelow = v }

// ResetDerived clears the layer's derived state: stem direction,
// cross-staff flags, and the staff-definition snapshots.
func (l *Layer) ResetDerived() {
	l.stemDir = StemNone
	l.crossFromAbove = false
	l.crossFromBelow = false
	l.ResetStaffDefObjects()
}
