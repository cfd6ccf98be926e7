package score

// ClefShape identifies the clef symbol.
type ClefShape int

const (
	// ClefG is the G clef.
	ClefG ClefShape = iota
	// ClefF is the F clef.
	ClefF
	// ClefC is the C clef.
	ClefC
	// ClefGG is the double G clef, sounding an octave below the G clef.
	ClefGG
	// ClefPerc is the percussion clef.
	ClefPerc
)

var clefShapeNames = map[ClefShape]string{
	ClefG:    "G",
	ClefF:    "F",
	ClefC:    "C",
	ClefGG:   "GG",
	ClefPerc: "perc",
}

func (s ClefShape) String() string {
	if n, ok := clefShapeNames[s]; ok {
		return n
	}
	return "unknown"
}

// clefShapeOffsets gives the diatonic-step offset of each shape on its
// reference line. Line and octave displacement are added on top.
var clefShapeOffsets = map[ClefShape]int{
	ClefG:    -4,
	ClefF:    4,
	ClefC:    0,
	ClefGG:   3,
	ClefPerc: 0,
}

// Clef fixes the pitch-to-line mapping of a staff from its position onward.
// A clef is both a layer element (a mid-staff clef change) and a member of a
// staff definition (the clef in force at a structural boundary).
type Clef struct {
	ElementBase

	shape    ClefShape
	line     int
	dis      int  // octave displacement: 0, 8, 15 or 22
	disBelow bool // displacement below the clef rather than above
}

// NewClef creates a clef with the given shape and staff line (1 = bottom
// line).
func NewClef(shape ClefShape, line int) *Clef {
	return &Clef{ElementBase: newElementBase(), shape: shape, line: line}
}

// Kind implements [Element].
func (c *Clef) Kind() Kind { return KindClef }

// Base implements [Element].
func (c *Clef) Base() *ElementBase { return &c.ElementBase }

// Shape returns the clef shape.
func (c *Clef) Shape() ClefShape { return c.shape }

// Line returns the staff line the clef sits on, 1-based from the bottom.
func (c *Clef) Line() int { return c.line }

// Dis returns the octave displacement (0, 8, 15 or 22).
func (c *Clef) Dis() int { return c.dis }

// DisBelow reports whether the displacement is below the clef.
func (c *Clef) DisBelow() bool { return c.disBelow }

// SetDis sets the octave displacement and its placement.
func (c *Clef) SetDis(dis int, below bool) {
	c.dis = dis
	c.disBelow = below
}

// LocOffset returns the diatonic-step offset applied when mapping pitches to
// staff positions after this clef. The offset combines the shape's reference
// value, the line the clef sits on, and any octave displacement.
func (c *Clef) LocOffset() int {
	offset := clefShapeOffsets[c.shape]
	offset += (c.line - 1) * 2

	if c.dis != 0 {
		// 8 -> one octave, 15 -> two, 22 -> three.
		octaves := (c.dis - 1) / 7
		if c.disBelow {
			offset += 7 * octaves
		} else {
			offset -= 7 * octaves
		}
	}
	return offset
}

// ContentEquals reports whether two clefs are the same symbol at the same
// place, ignoring identity and layout state.
func (c *Clef) ContentEquals(other *Clef) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.shape == other.shape && c.line == other.line &&
		c.dis == other.dis && c.disBelow == other.disBelow
}

// cloneContent copies the notational content into a fresh clef with its own
// identity. Derived state is not carried over.
func (c *Clef) cloneContent() *Clef {
	if c == nil {
		return nil
	}
	clone := NewClef(c.shape, c.line)
	clone.dis = c.dis
	clone.disBelow = c.disBelow
	return clone
}
