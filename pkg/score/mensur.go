package score

// MensurSign is the base symbol of a mensuration sign.
type MensurSign int

const (
	// MensurSignC is the semicircle (imperfect tempus).
	MensurSignC MensurSign = iota
	// MensurSignO is the circle (perfect tempus).
	MensurSignO
)

func (s MensurSign) String() string {
	if s == MensurSignO {
		return "O"
	}
	return "C"
}

// Mensur is a mensuration sign. Its prolation and tempus define how the
// mensural durations subdivide: minims per semibreve and semibreves per
// breve, each either 2 or 3.
type Mensur struct {
	ElementBase

	sign     MensurSign
	dot      bool
	prolatio int // minims per semibreve: 2 or 3
	tempus   int // semibreves per breve: 2 or 3
}

// NewMensur creates a mensuration sign. Prolation and tempus values outside
// {2, 3} are clamped to 2.
func NewMensur(sign MensurSign, dot bool, prolatio, tempus int) *Mensur {
	if prolatio != 3 {
		prolatio = 2
	}
	if tempus != 3 {
		tempus = 2
	}
	return &Mensur{
		ElementBase: newElementBase(),
		sign:        sign,
		dot:         dot,
		prolatio:    prolatio,
		tempus:      tempus,
	}
}

// Kind implements [Element].
func (m *Mensur) Kind() Kind { return KindMensur }

// Base implements [Element].
func (m *Mensur) Base() *ElementBase { return &m.ElementBase }

// Sign returns the base symbol.
func (m *Mensur) Sign() MensurSign { return m.sign }

// HasDot reports whether the sign carries a prolation dot.
func (m *Mensur) HasDot() bool { return m.dot }

// Prolatio returns the minims per semibreve (2 or 3).
func (m *Mensur) Prolatio() int { return m.prolatio }

// Tempus returns the semibreves per breve (2 or 3).
func (m *Mensur) Tempus() int { return m.tempus }

// ContentEquals reports whether two signs define the same mensuration,
// ignoring identity and layout state.
func (m *Mensur) ContentEquals(other *Mensur) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.sign == other.sign && m.dot == other.dot &&
		m.prolatio == other.prolatio && m.tempus == other.tempus
}

// cloneContent copies the mensuration content into a fresh element.
func (m *Mensur) cloneContent() *Mensur {
	if m == nil {
		return nil
	}
	return NewMensur(m.sign, m.dot, m.prolatio, m.tempus)
}
