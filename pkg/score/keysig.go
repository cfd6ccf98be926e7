package score

// Accidental is a pitch alteration.
type Accidental int

const (
	// AccidNone marks an unaltered pitch.
	AccidNone Accidental = iota
	// AccidSharp raises by a semitone.
	AccidSharp
	// AccidFlat lowers by a semitone.
	AccidFlat
	// AccidNatural cancels a previous alteration.
	AccidNatural
)

var accidentalNames = map[Accidental]string{
	AccidNone:    "",
	AccidSharp:   "s",
	AccidFlat:    "f",
	AccidNatural: "n",
}

func (a Accidental) String() string { return accidentalNames[a] }

// chromatic returns the semitone adjustment of the accidental.
func (a Accidental) chromatic() int {
	switch a {
	case AccidSharp:
		return 1
	case AccidFlat:
		return -1
	}
	return 0
}

// KeySig is a key signature: a count of accidentals of one type. Like a
// clef it appears both as a layer element and as a staff-definition member.
type KeySig struct {
	ElementBase

	count int
	accid Accidental // AccidSharp or AccidFlat; AccidNone with count 0
}

// NewKeySig creates a key signature with count accidentals of the given
// type. A count of zero with AccidNone is the open key (C major / A minor).
func NewKeySig(count int, accid Accidental) *KeySig {
	return &KeySig{ElementBase: newElementBase(), count: count, accid: accid}
}

// Kind implements [Element].
func (k *KeySig) Kind() Kind { return KindKeySig }

// Base implements [Element].
func (k *KeySig) Base() *ElementBase { return &k.ElementBase }

// AccidCount returns the number of accidentals in the signature.
func (k *KeySig) AccidCount() int { return k.count }

// AccidType returns the accidental type of the signature.
func (k *KeySig) AccidType() Accidental { return k.accid }

// ContentEquals reports whether two signatures carry the same accidentals,
// ignoring identity and layout state.
func (k *KeySig) ContentEquals(other *KeySig) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.count == other.count && k.accid == other.accid
}

// cloneContent copies the signature content into a fresh element.
func (k *KeySig) cloneContent() *KeySig {
	if k == nil {
		return nil
	}
	return NewKeySig(k.count, k.accid)
}
