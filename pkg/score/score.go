package score

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNilChild is returned by the Add methods when the child is nil.
	ErrNilChild = errors.New("child must not be nil")

	// ErrAlreadyAttached is returned by the Add methods when the child is
	// already part of a document. Moving structural nodes requires building
	// a new document; only layer elements support detach and re-append.
	ErrAlreadyAttached = errors.New("child is already attached")

	// ErrDuplicateStaffN is returned by [Doc.Validate] and
	// [ScoreDef.AddStaffDef] when two staves or staff definitions share a
	// staff number.
	ErrDuplicateStaffN = errors.New("duplicate staff number")

	// ErrDuplicateLayerN is returned by [Doc.Validate] when two layers of
	// one staff share a layer number.
	ErrDuplicateLayerN = errors.New("duplicate layer number")

	// ErrEmptyMeasure is returned by [Doc.Validate] for a measure without
	// staves.
	ErrEmptyMeasure = errors.New("measure has no staves")

	// ErrDetachedElement is returned by [Doc.Validate] when an element's
	// owner link does not match the layer that lists it.
	ErrDetachedElement = errors.New("element owner does not match its layer")
)

// Doc is the root of a notation document.
type Doc struct {
	id       string
	scoreDef *ScoreDef
	systems  []*System
}

// NewDoc creates an empty document with an empty score definition.
func NewDoc() *Doc {
	return &Doc{id: uuid.NewString(), scoreDef: NewScoreDef()}
}

// ID returns the document identifier.
func (d *Doc) ID() string { return d.id }

// SetID replaces the generated identifier.
func (d *Doc) SetID(id string) {
	if id != "" {
		d.id = id
	}
}

// ScoreDef returns the document's score definition. Never nil.
func (d *Doc) ScoreDef() *ScoreDef { return d.scoreDef }

// SetScoreDef replaces the score definition.
func (d *Doc) SetScoreDef(sd *ScoreDef) {
	if sd != nil {
		d.scoreDef = sd
	}
}

// Systems returns the systems in document order.
func (d *Doc) Systems() []*System { return d.systems }

// AddSystem appends a system to the document.
func (d *Doc) AddSystem(s *System) error {
	if s == nil {
		return ErrNilChild
	}
	if s.doc != nil {
		return ErrAlreadyAttached
	}
	s.doc = d
	d.systems = append(d.systems, s)
	return nil
}

// Measures returns all measures of all systems in document order.
func (d *Doc) Measures() []*Measure {
	var measures []*Measure
	for _, s := range d.systems {
		measures = append(measures, s.measures...)
	}
	return measures
}

// IsMensural reports whether any measure of the document holds unmeasured
// mensural content, the input form of the cast-off conversion.
func (d *Doc) IsMensural() bool {
	for _, m := range d.Measures() {
		if m.unmeasured {
			return true
		}
	}
	return false
}

// FindElement returns the element with the given identifier, or nil.
func (d *Doc) FindElement(id string) Element {
	var found Element
	Walk(d, &elementFinder{id: id, found: &found})
	return found
}

// Validate checks the structural invariants of the document: measures have
// staves, staff and layer numbers are unique within their parent, and every
// element's owner link matches the layer listing it.
func (d *Doc) Validate() error {
	for _, m := range d.Measures() {
		if len(m.staves) == 0 {
			return fmt.Errorf("measure %d: %w", m.n, ErrEmptyMeasure)
		}
		staffNs := make(map[int]bool, len(m.staves))
		for _, st := range m.staves {
			if staffNs[st.n] {
				return fmt.Errorf("measure %d staff %d: %w", m.n, st.n, ErrDuplicateStaffN)
			}
			staffNs[st.n] = true

			layerNs := make(map[int]bool, len(st.layers))
			for _, l := range st.layers {
				if layerNs[l.n] {
					return fmt.Errorf("measure %d staff %d layer %d: %w", m.n, st.n, l.n, ErrDuplicateLayerN)
				}
				layerNs[l.n] = true

				for _, e := range l.elements {
					if e.Base().layer != l {
						return fmt.Errorf("measure %d staff %d layer %d element %s: %w",
							m.n, st.n, l.n, e.Base().ID(), ErrDetachedElement)
					}
				}
			}
		}
	}
	return nil
}

// System is one line of music holding consecutive measures.
type System struct {
	id       string
	doc      *Doc
	measures []*Measure
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{id: uuid.NewString()}
}

// ID returns the system identifier.
func (s *System) ID() string { return s.id }

// SetID replaces the generated identifier.
func (s *System) SetID(id string) {
	if id != "" {
		s.id = id
	}
}

// Doc returns the owning document, or nil.
func (s *System) Doc() *Doc { return s.doc }

// Measures returns the measures in order.
func (s *System) Measures() []*Measure { return s.measures }

// ReplaceMeasures swaps the system's measure list, detaching the measures
// no longer listed. New measures must be detached or belong to this system
// already.
func (s *System) ReplaceMeasures(measures []*Measure) error {
	for _, m := range measures {
		if m == nil {
			return ErrNilChild
		}
		if m.system != nil && m.system != s {
			return ErrAlreadyAttached
		}
	}

	keep := make(map[*Measure]bool, len(measures))
	for _, m := range measures {
		keep[m] = true
	}
	for _, old := range s.measures {
		if !keep[old] {
			old.system = nil
		}
	}
	for _, m := range measures {
		m.system = s
	}
	s.measures = measures
	return nil
}

// AddMeasure appends a measure to the system.
func (s *System) AddMeasure(m *Measure) error {
	if m == nil {
		return ErrNilChild
	}
	if m.system != nil {
		return ErrAlreadyAttached
	}
	m.system = s
	s.measures = append(s.measures, m)
	return nil
}

// Measure is one measure across all staves.
type Measure struct {
	id         string
	n          int
	unmeasured bool
	system     *System
	staves     []*Staff

	scoreDefChange *ScoreDef

	// Derived state, recomputed per pass.
	aligner        *Aligner
	scoreTimeOnset float64
	drawingX       float64
	width          float64
}

// NewMeasure creates a measure with the given number.
func NewMeasure(n int) *Measure {
	return &Measure{id: uuid.NewString(), n: n, drawingX: Unset}
}

// ID returns the measure identifier.
func (m *Measure) ID() string { return m.id }

// SetID replaces the generated identifier.
func (m *Measure) SetID(id string) {
	if id != "" {
		m.id = id
	}
}

// N returns the measure number.
func (m *Measure) N() int { return m.n }

// SetN renumbers the measure.
func (m *Measure) SetN(n int) { m.n = n }

// IsUnmeasured reports whether the measure holds unmeasured mensural
// content, to be split by the cast-off conversion.
func (m *Measure) IsUnmeasured() bool { return m.unmeasured }

// SetUnmeasured marks the measure as unmeasured mensural content.
func (m *Measure) SetUnmeasured(unmeasured bool) { m.unmeasured = unmeasured }

// System returns the owning system, or nil.
func (m *Measure) System() *System { return m.system }

// Staves returns the staves in top-to-bottom order.
func (m *Measure) Staves() []*Staff { return m.staves }

// Staff returns the staff with the given number, or nil.
func (m *Measure) Staff(n int) *Staff {
	for _, st := range m.staves {
		if st.n == n {
			return st
		}
	}
	return nil
}

// AddStaff appends a staff to the measure.
func (m *Measure) AddStaff(st *Staff) error {
	if st == nil {
		return ErrNilChild
	}
	if st.measure != nil {
		return ErrAlreadyAttached
	}
	st.measure = m
	m.staves = append(m.staves, st)
	return nil
}

// StaffAbove returns the staff directly above the given one in this
// measure, or nil.
func (m *Measure) StaffAbove(st *Staff) *Staff {
	for i, cur := range m.staves {
		if cur == st && i > 0 {
			return m.staves[i-1]
		}
	}
	return nil
}

// StaffBelow returns the staff directly below the given one in this
// measure, or nil.
func (m *Measure) StaffBelow(st *Staff) *Staff {
	for i, cur := range m.staves {
		if cur == st && i+1 < len(m.staves) {
			return m.staves[i+1]
		}
	}
	return nil
}

// ScoreDefChange returns the mid-score definition change taking effect at
// this measure, or nil.
func (m *Measure) ScoreDefChange() *ScoreDef { return m.scoreDefChange }

// SetScoreDefChange schedules a mid-score definition change at this measure.
func (m *Measure) SetScoreDefChange(sd *ScoreDef) { m.scoreDefChange = sd }

// Aligner returns the measure's alignment collection, creating it when
// needed.
func (m *Measure) Aligner() *Aligner {
	if m.aligner == nil {
		m.aligner = &Aligner{}
	}
	return m.aligner
}

// ResetAligner drops all alignment slots.
func (m *Measure) ResetAligner() { m.aligner = nil }

// ScoreTimeOnset returns the measure's score-time onset in quarter-note
// units from the start of the document.
func (m *Measure) ScoreTimeOnset() float64 { return m.scoreTimeOnset }

// SetScoreTimeOnset sets the measure's score-time onset.
func (m *Measure) SetScoreTimeOnset(t float64) { m.scoreTimeOnset = t }

// DrawingX returns the measure's horizontal origin within its system, or
// Unset before layout.
func (m *Measure) DrawingX() float64 { return m.drawingX }

// SetDrawingX sets the measure's horizontal origin.
func (m *Measure) SetDrawingX(x float64) { m.drawingX = x }

// Width returns the measure's computed width.
func (m *Measure) Width() float64 { return m.width }

// SetWidth sets the measure's computed width.
func (m *Measure) SetWidth(w float64) { m.width = w }

// Staff holds the layers of one staff within one measure.
type Staff struct {
	id      string
	n       int
	lines   int
	measure *Measure
	layers  []*Layer
}

// NewStaff creates a staff with the given number and five lines.
func NewStaff(n int) *Staff {
	return &Staff{id: uuid.NewString(), n: n, lines: 5}
}

// ID returns the staff identifier.
func (st *Staff) ID() string { return st.id }

// SetID replaces the generated identifier.
func (st *Staff) SetID(id string) {
	if id != "" {
		st.id = id
	}
}

// N returns the staff number.
func (st *Staff) N() int { return st.n }

// Lines returns the number of staff lines.
func (st *Staff) Lines() int { return st.lines }

// SetLines sets the number of staff lines.
func (st *Staff) SetLines(lines int) {
	if lines > 0 {
		st.lines = lines
	}
}

// Measure returns the owning measure, or nil.
func (st *Staff) Measure() *Measure { return st.measure }

// Layers returns the layers in order.
func (st *Staff) Layers() []*Layer { return st.layers }

// Layer returns the layer with the given number, or nil.
func (st *Staff) Layer(n int) *Layer {
	for _, l := range st.layers {
		if l.n == n {
			return l
		}
	}
	return nil
}

// AddLayer appends a layer to the staff.
func (st *Staff) AddLayer(l *Layer) error {
	if l == nil {
		return ErrNilChild
	}
	if l.staff != nil {
		return ErrAlreadyAttached
	}
	l.staff = st
	st.layers = append(st.layers, l)
	return nil
}

// layerIndex returns the 0-based position of the layer among its siblings,
// or -1.
func (st *Staff) layerIndex(l *Layer) int {
	for i, cur := range st.layers {
		if cur == l {
			return i
		}
	}
	return -1
}

// topLayer returns the first layer, or nil for an empty staff.
func (st *Staff) topLayer() *Layer {
	if len(st.layers) == 0 {
		return nil
	}
	return st.layers[0]
}
