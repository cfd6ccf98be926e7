package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

var durFromString = map[string]score.Duration{
	"maxima":     score.DurMaxima,
	"longa":      score.DurLonga,
	"brevis":     score.DurBrevis,
	"semibrevis": score.DurSemibrevis,
	"minima":     score.DurMinima,
	"semiminima": score.DurSemiminima,
	"fusa":       score.DurFusa,
	"semifusa":   score.DurSemifusa,
	"1":          score.DurWhole,
	"2":          score.DurHalf,
	"4":          score.DurQuarter,
	"8":          score.DurEighth,
	"16":         score.Dur16th,
	"32":         score.Dur32nd,
	"64":         score.Dur64th,
	"128":        score.Dur128th,
}

var pnameFromString = map[string]score.PitchName{
	"c": score.PitchC,
	"d": score.PitchD,
	"e": score.PitchE,
	"f": score.PitchF,
	"g": score.PitchG,
	"a": score.PitchA,
	"b": score.PitchB,
}

var accidFromString = map[string]score.Accidental{
	"s": score.AccidSharp,
	"f": score.AccidFlat,
	"n": score.AccidNatural,
}

var clefShapeFromString = map[string]score.ClefShape{
	"G":    score.ClefG,
	"F":    score.ClefF,
	"C":    score.ClefC,
	"GG":   score.ClefGG,
	"perc": score.ClefPerc,
}

var barFormFromString = map[string]score.BarForm{
	"dbl": score.BarDouble,
	"end": score.BarEnd,
}

var meterSymFromString = map[string]score.MeterSym{
	"common": score.MeterSymCommon,
	"cut":    score.MeterSymCut,
}

var mensurSignFromString = map[string]score.MensurSign{
	"C": score.MensurSignC,
	"O": score.MensurSignO,
}

// ReadJSON decodes a JSON score from r into a document.
//
// The input must be a JSON object with a "systems" array; see the package
// documentation for the full format.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - An element has an unknown type, pitch, or duration
//   - The document violates schema constraints (duplicate staff or layer
//     numbers, empty measures, detached elements)
//
// Errors are wrapped with context describing which measure, staff, layer,
// or element caused the problem.
//
// The returned document is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*score.Doc, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	d := score.NewDoc()
	d.SetID(data.ID)
	if data.ScoreDef != nil {
		sd, err := decodeScoreDef(data.ScoreDef)
		if err != nil {
			return nil, err
		}
		d.SetScoreDef(sd)
	}

	for i, sysd := range data.Systems {
		sys := score.NewSystem()
		sys.SetID(sysd.ID)
		if err := d.AddSystem(sys); err != nil {
			return nil, fmt.Errorf("system %d: %w", i+1, err)
		}
		for _, md := range sysd.Measures {
			m, err := decodeMeasure(md)
			if err != nil {
				return nil, err
			}
			if err := sys.AddMeasure(m); err != nil {
				return nil, fmt.Errorf("measure %d: %w", md.N, err)
			}
		}
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return d, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
func ImportJSON(path string) (*score.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func decodeMeasure(md measure) (*score.Measure, error) {
	m := score.NewMeasure(md.N)
	m.SetID(md.ID)
	m.SetUnmeasured(md.Unmeasured)
	if md.ScoreDefChange != nil {
		sd, err := decodeScoreDef(md.ScoreDefChange)
		if err != nil {
			return nil, fmt.Errorf("measure %d: %w", md.N, err)
		}
		m.SetScoreDefChange(sd)
	}

	for _, sd := range md.Staves {
		st := score.NewStaff(sd.N)
		st.SetID(sd.ID)
		if sd.Lines != 0 {
			st.SetLines(sd.Lines)
		}
		if err := m.AddStaff(st); err != nil {
			return nil, fmt.Errorf("measure %d staff %d: %w", md.N, sd.N, err)
		}
		for _, ld := range sd.Layers {
			l := score.NewLayer(ld.N)
			l.SetID(ld.ID)
			l.SetCue(ld.Cue)
			l.SetVisible(!ld.Hidden)
			l.SetType(ld.Tag)
			if err := st.AddLayer(l); err != nil {
				return nil, fmt.Errorf("measure %d staff %d layer %d: %w", md.N, sd.N, ld.N, err)
			}
			for k, ed := range ld.Elements {
				e, err := decodeElement(ed)
				if err != nil {
					return nil, fmt.Errorf("measure %d staff %d layer %d element %d: %w",
						md.N, sd.N, ld.N, k+1, err)
				}
				if !l.Append(e) {
					return nil, fmt.Errorf("measure %d staff %d layer %d element %d: not accepted",
						md.N, sd.N, ld.N, k+1)
				}
			}
		}
	}
	return m, nil
}

// decodeScoreDef builds a score definition. Staff-definition content is set
// before AddStaffDef so the added definition captures it as authored state.
func decodeScoreDef(sdd *scoreDef) (*score.ScoreDef, error) {
	sd := score.NewScoreDef()
	for _, dd := range sdd.Staves {
		def := score.NewStaffDef(dd.N)
		if dd.Lines != 0 {
			def.SetLines(dd.Lines)
		}
		if dd.Clef != nil {
			c, err := decodeClef(dd.Clef)
			if err != nil {
				return nil, fmt.Errorf("staff def %d: %w", dd.N, err)
			}
			def.SetClef(c)
		}
		if dd.KeySig != nil {
			k, err := decodeKeySig(dd.KeySig)
			if err != nil {
				return nil, fmt.Errorf("staff def %d: %w", dd.N, err)
			}
			def.SetKeySig(k)
		}
		if dd.Mensur != nil {
			def.SetMensur(decodeMensur(dd.Mensur))
		}
		if dd.MeterSig != nil {
			def.SetMeterSig(decodeMeterSig(dd.MeterSig))
		}
		if dd.MeterSigGrp != nil {
			def.SetMeterSigGrp(decodeMeterSigGrp(dd.MeterSigGrp))
		}
		if err := sd.AddStaffDef(def); err != nil {
			return nil, fmt.Errorf("staff def %d: %w", dd.N, err)
		}
	}
	return sd, nil
}

func decodeElement(ed element) (score.Element, error) {
	switch ed.Type {
	case "note":
		return decodeNote(ed, ed.Dur)
	case "rest":
		dur, err := parseDur(ed.Dur)
		if err != nil {
			return nil, err
		}
		r := score.NewRest(dur)
		r.SetDots(ed.Dots)
		applyBase(r, ed)
		return r, nil
	case "chord":
		dur, err := parseDur(ed.Dur)
		if err != nil {
			return nil, err
		}
		notes := make([]*score.Note, len(ed.Notes))
		for i, nd := range ed.Notes {
			noteDur := nd.Dur
			if noteDur == "" {
				noteDur = ed.Dur
			}
			n, err := decodeNote(nd, noteDur)
			if err != nil {
				return nil, fmt.Errorf("chord note %d: %w", i+1, err)
			}
			notes[i] = n
		}
		c := score.NewChord(dur, notes...)
		c.SetDots(ed.Dots)
		applyBase(c, ed)
		return c, nil
	case "space":
		dur, err := parseDur(ed.Dur)
		if err != nil {
			return nil, err
		}
		s := score.NewSpace(dur)
		applyBase(s, ed)
		return s, nil
	case "barLine":
		b := score.NewBarLine(barFormFromString[ed.Form])
		applyBase(b, ed)
		return b, nil
	case "mRpt":
		r := score.NewMRpt()
		applyBase(r, ed)
		return r, nil
	case "custos":
		pname, err := parsePname(ed.Pname)
		if err != nil {
			return nil, err
		}
		c := score.NewCustos(pname, ed.Oct)
		applyBase(c, ed)
		return c, nil
	case "clef":
		return decodeClef(&ed)
	case "keySig":
		return decodeKeySig(&ed)
	case "meterSig":
		return decodeMeterSig(&ed), nil
	case "meterSigGrp":
		return decodeMeterSigGrp(&ed), nil
	case "mensur":
		return decodeMensur(&ed), nil
	}
	return nil, fmt.Errorf("unknown element type %q", ed.Type)
}

func decodeNote(ed element, dur string) (*score.Note, error) {
	pname, err := parsePname(ed.Pname)
	if err != nil {
		return nil, err
	}
	d, err := parseDur(dur)
	if err != nil {
		return nil, err
	}
	n := score.NewNote(pname, ed.Oct, d)
	if ed.Accid != "" {
		a, ok := accidFromString[ed.Accid]
		if !ok {
			return nil, fmt.Errorf("unknown accid %q", ed.Accid)
		}
		n.SetAccid(a)
	}
	n.SetDots(ed.Dots)
	n.SetArticMarkup(ed.Artic)
	applyBase(n, ed)
	return n, nil
}

func decodeClef(ed *element) (*score.Clef, error) {
	shape, ok := clefShapeFromString[ed.Shape]
	if !ok {
		return nil, fmt.Errorf("unknown clef shape %q", ed.Shape)
	}
	c := score.NewClef(shape, ed.Line)
	if ed.Dis != 0 {
		c.SetDis(ed.Dis, ed.DisBelow)
	}
	applyBase(c, *ed)
	return c, nil
}

func decodeKeySig(ed *element) (*score.KeySig, error) {
	accid := score.AccidNone
	if ed.Accid != "" {
		a, ok := accidFromString[ed.Accid]
		if !ok {
			return nil, fmt.Errorf("unknown accid %q", ed.Accid)
		}
		accid = a
	}
	k := score.NewKeySig(ed.Count, accid)
	applyBase(k, *ed)
	return k, nil
}

func decodeMeterSig(ed *element) *score.MeterSig {
	m := score.NewMeterSig(ed.Count, ed.Unit)
	if sym, ok := meterSymFromString[ed.Sym]; ok {
		m.SetSym(sym)
	}
	applyBase(m, *ed)
	return m
}

func decodeMeterSigGrp(ed *element) *score.MeterSigGrp {
	sigs := make([]*score.MeterSig, len(ed.Sigs))
	for i := range ed.Sigs {
		sigs[i] = decodeMeterSig(&ed.Sigs[i])
	}
	g := score.NewMeterSigGrp(ed.Func, sigs...)
	applyBase(g, *ed)
	return g
}

func decodeMensur(ed *element) *score.Mensur {
	sign := score.MensurSignC
	if s, ok := mensurSignFromString[ed.Sign]; ok {
		sign = s
	}
	m := score.NewMensur(sign, ed.Dot, ed.Prolatio, ed.Tempus)
	applyBase(m, *ed)
	return m
}

func applyBase(e score.Element, ed element) {
	b := e.Base()
	b.SetID(ed.ID)
	b.SetCue(ed.Cue)
	b.SetVisible(!ed.Hidden)
	b.SetType(ed.Tag)
	if ed.FacsX != nil {
		b.SetFacsX(*ed.FacsX)
	}
}

func parsePname(s string) (score.PitchName, error) {
	if s == "" {
		return 0, fmt.Errorf("missing pname")
	}
	p, ok := pnameFromString[s]
	if !ok {
		return 0, fmt.Errorf("unknown pname %q", s)
	}
	return p, nil
}

func parseDur(s string) (score.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("missing dur")
	}
	d, ok := durFromString[s]
	if !ok {
		return 0, fmt.Errorf("unknown dur %q", s)
	}
	return d, nil
}
