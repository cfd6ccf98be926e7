package score

// Duration is a notated duration kind. Mensural kinds (maxima through
// semifusa) resolve to score time through the active mensuration; common
// notation kinds (whole through 128th) have fixed values.
type Duration int

const (
	// DurMaxima is a mensural maxima.
	DurMaxima Duration = iota
	// DurLonga is a mensural longa.
	DurLonga
	// DurBrevis is a mensural brevis.
	DurBrevis
	// DurSemibrevis is a mensural semibrevis.
	DurSemibrevis
	// DurMinima is a mensural minima.
	DurMinima
	// DurSemiminima is a mensural semiminima.
	DurSemiminima
	// DurFusa is a mensural fusa.
	DurFusa
	// DurSemifusa is a mensural semifusa.
	DurSemifusa
	// DurWhole is a whole note.
	DurWhole
	// DurHalf is a half note.
	DurHalf
	// DurQuarter is a quarter note.
	DurQuarter
	// DurEighth is an eighth note.
	DurEighth
	// Dur16th is a sixteenth note.
	Dur16th
	// Dur32nd is a thirty-second note.
	Dur32nd
	// Dur64th is a sixty-fourth note.
	Dur64th
	// Dur128th is a hundred-twenty-eighth note.
	Dur128th
)

var durNames = map[Duration]string{
	DurMaxima:     "maxima",
	DurLonga:      "longa",
	DurBrevis:     "brevis",
	DurSemibrevis: "semibrevis",
	DurMinima:     "minima",
	DurSemiminima: "semiminima",
	DurFusa:       "fusa",
	DurSemifusa:   "semifusa",
	DurWhole:      "1",
	DurHalf:       "2",
	DurQuarter:    "4",
	DurEighth:     "8",
	Dur16th:       "16",
	Dur32nd:       "32",
	Dur64th:       "64",
	Dur128th:      "128",
}

func (d Duration) String() string {
	if s, ok := durNames[d]; ok {
		return s
	}
	return "unknown"
}

// IsMensural reports whether the duration kind belongs to mensural notation.
func (d Duration) IsMensural() bool { return d <= DurSemifusa }

// cmnQuarters maps common-notation kinds to quarter-note units.
var cmnQuarters = map[Duration]float64{
	DurWhole:   4,
	DurHalf:    2,
	DurQuarter: 1,
	DurEighth:  0.5,
	Dur16th:    0.25,
	Dur32nd:    0.125,
	Dur64th:    0.0625,
	Dur128th:   0.03125,
}

// ScoreDuration returns the duration in quarter-note units.
//
// Dots extend the value in the usual way (one dot adds a half, two dots add
// three quarters, and so on). For mensural kinds the subdivision of the
// brevis and the semibrevis follows the given mensuration; a nil mensuration
// means imperfect tempus and minor prolation throughout. The minima is fixed
// at half a quarter unit so that mensural and common content share one time
// base.
func (d Duration) ScoreDuration(dots int, mensur *Mensur) float64 {
	base := d.baseQuarters(mensur)
	if dots > 0 {
		factor := 2.0 - 1.0/float64(uint(1)<<uint(dots))
		base *= factor
	}
	return base
}

func (d Duration) baseQuarters(mensur *Mensur) float64 {
	if !d.IsMensural() {
		return cmnQuarters[d]
	}

	prolatio, tempus := 2.0, 2.0
	if mensur != nil {
		prolatio = float64(mensur.Prolatio())
		tempus = float64(mensur.Tempus())
	}

	const minima = 0.5
	semibrevis := prolatio * minima
	brevis := tempus * semibrevis

	switch d {
	case DurMaxima:
		return 4 * brevis
	case DurLonga:
		return 2 * brevis
	case DurBrevis:
		return brevis
	case DurSemibrevis:
		return semibrevis
	case DurMinima:
		return minima
	case DurSemiminima:
		return minima / 2
	case DurFusa:
		return minima / 4
	case DurSemifusa:
		return minima / 8
	}
	return 0
}
