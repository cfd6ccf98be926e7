package score

// PitchName is a diatonic pitch letter.
type PitchName int

const (
	// PitchC is the pitch letter C.
	PitchC PitchName = iota
	// PitchD is the pitch letter D.
	PitchD
	// PitchE is the pitch letter E.
	PitchE
	// PitchF is the pitch letter F.
	PitchF
	// PitchG is the pitch letter G.
	PitchG
	// PitchA is the pitch letter A.
	PitchA
	// PitchB is the pitch letter B.
	PitchB
)

var pitchNames = [...]string{"c", "d", "e", "f", "g", "a", "b"}

func (p PitchName) String() string {
	if p < PitchC || p > PitchB {
		return "?"
	}
	return pitchNames[p]
}

// semitones above C within one octave, per pitch letter.
var pitchSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// Articulation is a single articulation mark on a note or chord.
type Articulation string

const (
	// ArticStaccato is a staccato dot.
	ArticStaccato Articulation = "stacc"
	// ArticStaccatissimo is a staccatissimo wedge.
	ArticStaccatissimo Articulation = "stacciss"
	// ArticTenuto is a tenuto line.
	ArticTenuto Articulation = "ten"
	// ArticAccent is an accent.
	ArticAccent Articulation = "acc"
	// ArticMarcato is a marcato.
	ArticMarcato Articulation = "marc"
)

// ParseArticulation maps a markup token to a known articulation.
func ParseArticulation(s string) (Articulation, bool) {
	switch a := Articulation(s); a {
	case ArticStaccato, ArticStaccatissimo, ArticTenuto, ArticAccent, ArticMarcato:
		return a, true
	}
	return "", false
}

// Note is a single pitched note.
type Note struct {
	ElementBase

	pname PitchName
	oct   int
	accid Accidental
	dur   Duration
	dots  int

	artics      []Articulation
	articMarkup string // combined markup ("stacc-ten"), split by the markup pass
}

// NewNote creates a note with the given pitch and duration.
func NewNote(pname PitchName, oct int, dur Duration) *Note {
	return &Note{ElementBase: newElementBase(), pname: pname, oct: oct, dur: dur}
}

// Kind implements [Element].
func (n *Note) Kind() Kind { return KindNote }

// Base implements [Element].
func (n *Note) Base() *ElementBase { return &n.ElementBase }

// Pname returns the pitch letter.
func (n *Note) Pname() PitchName { return n.pname }

// Oct returns the octave (4 holds middle C).
func (n *Note) Oct() int { return n.oct }

// Accid returns the accidental.
func (n *Note) Accid() Accidental { return n.accid }

// SetAccid sets the accidental.
func (n *Note) SetAccid(a Accidental) { n.accid = a }

// Dur returns the notated duration kind.
func (n *Note) Dur() Duration { return n.dur }

// Dots returns the augmentation dots.
func (n *Note) Dots() int { return n.dots }

// SetDots sets the augmentation dots.
func (n *Note) SetDots(dots int) { n.dots = dots }

// ScoreDuration returns the note length in quarter-note units under the
// given mensuration (nil for common notation).
func (n *Note) ScoreDuration(mensur *Mensur) float64 {
	return n.dur.ScoreDuration(n.dots, mensur)
}

// MIDIKey returns the MIDI key number of the note (middle C = 60).
func (n *Note) MIDIKey() int {
	return (n.oct+1)*12 + pitchSemitones[n.pname] + n.accid.chromatic()
}

// Artics returns the individual articulation marks.
func (n *Note) Artics() []Articulation { return n.artics }

// SetArtics replaces the individual articulation marks.
func (n *Note) SetArtics(artics []Articulation) { n.artics = artics }

// ArticMarkup returns the unconverted combined articulation markup, empty
// once the markup conversion has run.
func (n *Note) ArticMarkup() string { return n.articMarkup }

// SetArticMarkup sets combined articulation markup to be split later.
func (n *Note) SetArticMarkup(markup string) { n.articMarkup = markup }

// Rest is a silence with a duration.
type Rest struct {
	ElementBase

	dur  Duration
	dots int
}

// NewRest creates a rest with the given duration.
func NewRest(dur Duration) *Rest {
	return &Rest{ElementBase: newElementBase(), dur: dur}
}

// Kind implements [Element].
func (r *Rest) Kind() Kind { return KindRest }

// Base implements [Element].
func (r *Rest) Base() *ElementBase { return &r.ElementBase }

// Dur returns the notated duration kind.
func (r *Rest) Dur() Duration { return r.dur }

// Dots returns the augmentation dots.
func (r *Rest) Dots() int { return r.dots }

// SetDots sets the augmentation dots.
func (r *Rest) SetDots(dots int) { r.dots = dots }

// ScoreDuration returns the rest length in quarter-note units.
func (r *Rest) ScoreDuration(mensur *Mensur) float64 {
	return r.dur.ScoreDuration(r.dots, mensur)
}

// Chord is two or more notes sounding together with one shared duration.
// The member notes are payload of the chord, not layer children; their
// pitch data feeds derived outputs while the chord is what gets aligned.
type Chord struct {
	ElementBase

	dur   Duration
	dots  int
	notes []*Note
}

// NewChord creates a chord with the given duration and member notes.
func NewChord(dur Duration, notes ...*Note) *Chord {
	return &Chord{ElementBase: newElementBase(), dur: dur, notes: notes}
}

// Kind implements [Element].
func (c *Chord) Kind() Kind { return KindChord }

// Base implements [Element].
func (c *Chord) Base() *ElementBase { return &c.ElementBase }

// Dur returns the notated duration kind.
func (c *Chord) Dur() Duration { return c.dur }

// Dots returns the augmentation dots.
func (c *Chord) Dots() int { return c.dots }

// SetDots sets the augmentation dots.
func (c *Chord) SetDots(dots int) { c.dots = dots }

// Notes returns the member notes in order.
func (c *Chord) Notes() []*Note { return c.notes }

// ScoreDuration returns the chord length in quarter-note units.
func (c *Chord) ScoreDuration(mensur *Mensur) float64 {
	return c.dur.ScoreDuration(c.dots, mensur)
}

// Space is an invisible filler occupying score time.
type Space struct {
	ElementBase

	dur  Duration
	dots int
}

// NewSpace creates a space with the given duration.
func NewSpace(dur Duration) *Space {
	return &Space{ElementBase: newElementBase(), dur: dur}
}

// Kind implements [Element].
func (s *Space) Kind() Kind { return KindSpace }

// Base implements [Element].
func (s *Space) Base() *ElementBase { return &s.ElementBase }

// Dur returns the notated duration kind.
func (s *Space) Dur() Duration { return s.dur }

// Dots returns the augmentation dots.
func (s *Space) Dots() int { return s.dots }

// ScoreDuration returns the space length in quarter-note units.
func (s *Space) ScoreDuration(mensur *Mensur) float64 {
	return s.dur.ScoreDuration(s.dots, mensur)
}

// BarForm is the visual form of a bar line.
type BarForm int

const (
	// BarSingle is a single bar line.
	BarSingle BarForm = iota
	// BarDouble is a double bar line.
	BarDouble
	// BarEnd is a final bar line.
	BarEnd
)

// BarLine is a bar line appearing inside a layer, used in mensural content
// before cast-off and for mid-measure divisions.
type BarLine struct {
	ElementBase

	form BarForm
}

// NewBarLine creates a bar line.
func NewBarLine(form BarForm) *BarLine {
	return &BarLine{ElementBase: newElementBase(), form: form}
}

// Kind implements [Element].
func (b *BarLine) Kind() Kind { return KindBarLine }

// Base implements [Element].
func (b *BarLine) Base() *ElementBase { return &b.ElementBase }

// Form returns the bar-line form.
func (b *BarLine) Form() BarForm { return b.form }

// MRpt is a whole-measure repeat sign. Its display number (the count of
// consecutive repeats) is derived by the repeat-mark pass.
type MRpt struct {
	ElementBase

	num int
}

// NewMRpt creates a measure-repeat sign.
func NewMRpt() *MRpt {
	return &MRpt{ElementBase: newElementBase()}
}

// Kind implements [Element].
func (m *MRpt) Kind() Kind { return KindMRpt }

// Base implements [Element].
func (m *MRpt) Base() *ElementBase { return &m.ElementBase }

// Num returns the derived 1-based repeat count, 0 before the repeat pass.
func (m *MRpt) Num() int { return m.num }

// SetNum sets the derived repeat count.
func (m *MRpt) SetNum(num int) { m.num = num }

// ScoreDuration returns the repeated measure's length, which the onset pass
// resolves from the measure context; the sign itself reports zero.
func (m *MRpt) ScoreDuration(*Mensur) float64 { return 0 }

// Custos is the end-of-line guide symbol of mensural sources, pointing at
// the first pitch of the next line.
type Custos struct {
	ElementBase

	pname PitchName
	oct   int
}

// NewCustos creates a custos pointing at the given pitch.
func NewCustos(pname PitchName, oct int) *Custos {
	return &Custos{ElementBase: newElementBase(), pname: pname, oct: oct}
}

// Kind implements [Element].
func (c *Custos) Kind() Kind { return KindCustos }

// Base implements [Element].
func (c *Custos) Base() *ElementBase { return &c.ElementBase }

// Pname returns the pitch letter the custos points at.
func (c *Custos) Pname() PitchName { return c.pname }

// Oct returns the octave the custos points at.
func (c *Custos) Oct() int { return c.oct }

// Durational is implemented by elements that occupy score time.
type Durational interface {
	Element
	// ScoreDuration returns the length in quarter-note units under the given
	// mensuration (nil for common notation).
	ScoreDuration(mensur *Mensur) float64
}
