package score

import "fmt"

// ScoreDef bundles the staff definitions in force for a score or, attached
// to a measure via [Measure.SetScoreDefChange], a mid-score change of some
// of them.
type ScoreDef struct {
	staffDefs []*StaffDef
}

// NewScoreDef creates an empty score definition.
func NewScoreDef() *ScoreDef {
	return &ScoreDef{}
}

// StaffDefs returns the staff definitions in staff order.
func (sd *ScoreDef) StaffDefs() []*StaffDef { return sd.staffDefs }

// StaffDef returns the definition for the given staff number, or nil.
func (sd *ScoreDef) StaffDef(n int) *StaffDef {
	for _, def := range sd.staffDefs {
		if def.n == n {
			return def
		}
	}
	return nil
}

// AddStaffDef appends a staff definition and seals its load-time content as
// the state the definition returns to on [ScoreDef.Reset].
func (sd *ScoreDef) AddStaffDef(def *StaffDef) error {
	if def == nil {
		return ErrNilChild
	}
	if existing := sd.StaffDef(def.n); existing != nil {
		return fmt.Errorf("staff %d: %w", def.n, ErrDuplicateStaffN)
	}
	def.seal()
	sd.staffDefs = append(sd.staffDefs, def)
	return nil
}

// Reset restores every staff definition to its sealed load-time content and
// clears redraw requests and retained previous values. Running the
// propagation passes again from this state reproduces the same results.
func (sd *ScoreDef) Reset() {
	for _, def := range sd.staffDefs {
		def.reset()
	}
}

// staffDefContent is the sealable content of a staff definition.
type staffDefContent struct {
	clef        *Clef
	keySig      *KeySig
	mensur      *Mensur
	meterSig    *MeterSig
	meterSigGrp *MeterSigGrp
}

func (c staffDefContent) clone() staffDefContent {
	return staffDefContent{
		clef:        c.clef.cloneContent(),
		keySig:      c.keySig.cloneContent(),
		mensur:      c.mensur.cloneContent(),
		meterSig:    c.meterSig.cloneContent(),
		meterSigGrp: c.meterSigGrp.cloneContent(),
	}
}

// StaffDef is the per-staff bundle of context symbols (clef, key signature,
// mensuration, meter) in force at a structural boundary, plus the redraw
// requests computed by the score-definition propagation and the previous
// key signature retained for cancellation decisions.
type StaffDef struct {
	n     int
	lines int

	content  staffDefContent
	pristine staffDefContent
	sealed   bool

	prevKeySig *KeySig
	redraw     map[Kind]bool
}

// NewStaffDef creates a staff definition for the given staff number with
// five lines and no context symbols.
func NewStaffDef(n int) *StaffDef {
	return &StaffDef{n: n, lines: 5}
}

// N returns the staff number.
func (sd *StaffDef) N() int { return sd.n }

// Lines returns the number of staff lines.
func (sd *StaffDef) Lines() int { return sd.lines }

// SetLines sets the number of staff lines.
func (sd *StaffDef) SetLines(lines int) {
	if lines > 0 {
		sd.lines = lines
	}
}

// Clef returns the clef in force, or nil.
func (sd *StaffDef) Clef() *Clef { return sd.content.clef }

// SetClef replaces the clef in force.
func (sd *StaffDef) SetClef(c *Clef) { sd.content.clef = c }

// KeySig returns the key signature in force, or nil.
func (sd *StaffDef) KeySig() *KeySig { return sd.content.keySig }

// SetKeySig replaces the key signature in force. When the new signature
// differs in content from the current one, the current one is retained and
// stays available through [StaffDef.PrevKeySig] for cancellation decisions.
func (sd *StaffDef) SetKeySig(k *KeySig) {
	if sd.content.keySig != nil && !sd.content.keySig.ContentEquals(k) {
		sd.prevKeySig = sd.content.keySig
	}
	sd.content.keySig = k
}

// Mensur returns the mensuration sign in force, or nil.
func (sd *StaffDef) Mensur() *Mensur { return sd.content.mensur }

// SetMensur replaces the mensuration sign in force.
func (sd *StaffDef) SetMensur(m *Mensur) { sd.content.mensur = m }

// MeterSig returns the meter signature in force, or nil.
func (sd *StaffDef) MeterSig() *MeterSig { return sd.content.meterSig }

// SetMeterSig replaces the meter signature in force.
func (sd *StaffDef) SetMeterSig(m *MeterSig) { sd.content.meterSig = m }

// MeterSigGrp returns the meter-signature group in force, or nil.
func (sd *StaffDef) MeterSigGrp() *MeterSigGrp { return sd.content.meterSigGrp }

// SetMeterSigGrp replaces the meter-signature group in force.
func (sd *StaffDef) SetMeterSigGrp(g *MeterSigGrp) { sd.content.meterSigGrp = g }

// PrevKeySig returns the key signature that was in force before the last
// content-changing [StaffDef.SetKeySig], or nil.
func (sd *StaffDef) PrevKeySig() *KeySig { return sd.prevKeySig }

// SetRedraw requests (or clears) the redraw of one context kind at the next
// propagation into the layers.
func (sd *StaffDef) SetRedraw(k Kind, redraw bool) {
	if sd.redraw == nil {
		sd.redraw = make(map[Kind]bool)
	}
	sd.redraw[k] = redraw
}

// Redraw reports whether the given context kind is requested for redraw.
func (sd *StaffDef) Redraw(k Kind) bool { return sd.redraw[k] }

// ClearRedraw drops all redraw requests, typically after the propagation
// consumed them.
func (sd *StaffDef) ClearRedraw() { sd.redraw = nil }

// ApplyFrom copies the non-nil context symbols of a mid-score change into
// this definition. Only symbols whose content differs replace the current
// ones; each replacement requests a redraw. Reports whether anything
// changed. Applying the same change twice is a no-op the second time.
func (sd *StaffDef) ApplyFrom(change *StaffDef) bool {
	if change == nil {
		return false
	}
	changed := false

	if c := change.content.clef; c != nil && !c.ContentEquals(sd.content.clef) {
		sd.content.clef = c.cloneContent()
		sd.SetRedraw(KindClef, true)
		changed = true
	}
	if k := change.content.keySig; k != nil && !k.ContentEquals(sd.content.keySig) {
		sd.SetKeySig(k.cloneContent())
		sd.SetRedraw(KindKeySig, true)
		changed = true
	}
	if m := change.content.mensur; m != nil && !m.ContentEquals(sd.content.mensur) {
		sd.content.mensur = m.cloneContent()
		sd.SetRedraw(KindMensur, true)
		changed = true
	}
	if m := change.content.meterSig; m != nil && !m.ContentEquals(sd.content.meterSig) {
		sd.content.meterSig = m.cloneContent()
		sd.SetRedraw(KindMeterSig, true)
		changed = true
	}
	if g := change.content.meterSigGrp; g != nil && !g.ContentEquals(sd.content.meterSigGrp) {
		sd.content.meterSigGrp = g.cloneContent()
		sd.SetRedraw(KindMeterSigGrp, true)
		changed = true
	}
	return changed
}

// Clone returns an independent copy of the definition's content. Redraw
// requests, the previous key signature, and the sealed reset state are not
// carried over.
func (sd *StaffDef) Clone() *StaffDef {
	out := NewStaffDef(sd.n)
	out.lines = sd.lines
	out.content = sd.content.clone()
	return out
}

// seal captures the current content as the reset state.
func (sd *StaffDef) seal() {
	sd.pristine = sd.content.clone()
	sd.sealed = true
}

// reset restores the sealed content and clears derived state.
func (sd *StaffDef) reset() {
	if sd.sealed {
		sd.content = sd.pristine.clone()
	}
	sd.prevKeySig = nil
	sd.redraw = nil
}
