package score

// MeterSym is an optional meter symbol replacing the numeric signature.
type MeterSym int

const (
	// MeterSymNone draws the numeric signature.
	MeterSymNone MeterSym = iota
	// MeterSymCommon draws the common-time symbol.
	MeterSymCommon
	// MeterSymCut draws the cut-time symbol.
	MeterSymCut
)

// MeterSig is a meter signature.
type MeterSig struct {
	ElementBase

	count int
	unit  int
	sym   MeterSym
}

// NewMeterSig creates a count/unit meter signature.
func NewMeterSig(count, unit int) *MeterSig {
	return &MeterSig{ElementBase: newElementBase(), count: count, unit: unit}
}

// Kind implements [Element].
func (m *MeterSig) Kind() Kind { return KindMeterSig }

// Base implements [Element].
func (m *MeterSig) Base() *ElementBase { return &m.ElementBase }

// Count returns the beat count.
func (m *MeterSig) Count() int { return m.count }

// Unit returns the beat unit (4 = quarter).
func (m *MeterSig) Unit() int { return m.unit }

// Sym returns the meter symbol.
func (m *MeterSig) Sym() MeterSym { return m.sym }

// SetSym sets the meter symbol.
func (m *MeterSig) SetSym(sym MeterSym) { m.sym = sym }

// MeasureDuration returns the nominal measure length in quarter-note units,
// or 0 when count or unit is missing.
func (m *MeterSig) MeasureDuration() float64 {
	if m == nil || m.count <= 0 || m.unit <= 0 {
		return 0
	}
	return float64(m.count) * 4 / float64(m.unit)
}

// ContentEquals reports whether two signatures define the same meter,
// ignoring identity and layout state.
func (m *MeterSig) ContentEquals(other *MeterSig) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.count == other.count && m.unit == other.unit && m.sym == other.sym
}

// cloneContent copies the meter content into a fresh element.
func (m *MeterSig) cloneContent() *MeterSig {
	if m == nil {
		return nil
	}
	clone := NewMeterSig(m.count, m.unit)
	clone.sym = m.sym
	return clone
}

// MeterSigGrp is an ordered group of meter signatures, used for alternating
// or interchanging meters. The group function is a free-form tag
// ("alternating", "interchanging", ...).
type MeterSigGrp struct {
	ElementBase

	fn   string
	sigs []*MeterSig
}

// NewMeterSigGrp creates a meter-signature group.
func NewMeterSigGrp(fn string, sigs ...*MeterSig) *MeterSigGrp {
	return &MeterSigGrp{ElementBase: newElementBase(), fn: fn, sigs: sigs}
}

// Kind implements [Element].
func (g *MeterSigGrp) Kind() Kind { return KindMeterSigGrp }

// Base implements [Element].
func (g *MeterSigGrp) Base() *ElementBase { return &g.ElementBase }

// Func returns the group function tag.
func (g *MeterSigGrp) Func() string { return g.fn }

// Sigs returns the grouped signatures in order.
func (g *MeterSigGrp) Sigs() []*MeterSig { return g.sigs }

// ContentEquals reports whether two groups carry the same signatures in the
// same order with the same function.
func (g *MeterSigGrp) ContentEquals(other *MeterSigGrp) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.fn != other.fn || len(g.sigs) != len(other.sigs) {
		return false
	}
	for i, sig := range g.sigs {
		if !sig.ContentEquals(other.sigs[i]) {
			return false
		}
	}
	return true
}

// cloneContent copies the group content into a fresh element.
func (g *MeterSigGrp) cloneContent() *MeterSigGrp {
	if g == nil {
		return nil
	}
	sigs := make([]*MeterSig, len(g.sigs))
	for i, sig := range g.sigs {
		sigs[i] = sig.cloneContent()
	}
	return NewMeterSigGrp(g.fn, sigs...)
}
