package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

type document struct {
	ID       string    `json:"id,omitempty"`
	ScoreDef *scoreDef `json:"score_def,omitempty"`
	Systems  []system  `json:"systems"`
}

type system struct {
	ID       string    `json:"id,omitempty"`
	Measures []measure `json:"measures"`
}

type measure struct {
	ID             string    `json:"id,omitempty"`
	N              int       `json:"n"`
	Unmeasured     bool      `json:"unmeasured,omitempty"`
	ScoreDefChange *scoreDef `json:"score_def_change,omitempty"`
	Staves         []staff   `json:"staves"`
}

type staff struct {
	ID     string  `json:"id,omitempty"`
	N      int     `json:"n"`
	Lines  int     `json:"lines,omitempty"`
	Layers []layer `json:"layers"`
}

type layer struct {
	ID       string    `json:"id,omitempty"`
	N        int       `json:"n"`
	Cue      bool      `json:"cue,omitempty"`
	Hidden   bool      `json:"hidden,omitempty"`
	Tag      string    `json:"tag,omitempty"`
	Elements []element `json:"elements"`
}

type scoreDef struct {
	Staves []staffDef `json:"staves"`
}

type staffDef struct {
	N           int      `json:"n"`
	Lines       int      `json:"lines,omitempty"`
	Clef        *element `json:"clef,omitempty"`
	KeySig      *element `json:"key_sig,omitempty"`
	Mensur      *element `json:"mensur,omitempty"`
	MeterSig    *element `json:"meter_sig,omitempty"`
	MeterSigGrp *element `json:"meter_sig_grp,omitempty"`
}

// element is the wire form of all layer element kinds. The type field
// discriminates; the rest of the fields apply per kind (see the package
// documentation). Inside a staff definition the kind is implied by the
// field, so type stays empty there.
type element struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`

	// Shared facets
	Cue    bool     `json:"cue,omitempty"`
	Hidden bool     `json:"hidden,omitempty"`
	Tag    string   `json:"tag,omitempty"`
	FacsX  *float64 `json:"facs_x,omitempty"`

	// Pitch (note, custos)
	Pname string `json:"pname,omitempty"`
	Oct   int    `json:"oct,omitempty"`
	Accid string `json:"accid,omitempty"`

	// Duration (note, rest, chord, space)
	Dur  string `json:"dur,omitempty"`
	Dots int    `json:"dots,omitempty"`

	// Note articulation markup
	Artic string `json:"artic,omitempty"`

	// Chord members
	Notes []element `json:"notes,omitempty"`

	// Clef
	Shape    string `json:"shape,omitempty"`
	Line     int    `json:"line,omitempty"`
	Dis      int    `json:"dis,omitempty"`
	DisBelow bool   `json:"dis_below,omitempty"`

	// Key and meter signatures
	Count int    `json:"count,omitempty"`
	Unit  int    `json:"unit,omitempty"`
	Sym   string `json:"sym,omitempty"`

	// Meter signature groups
	Func string    `json:"func,omitempty"`
	Sigs []element `json:"sigs,omitempty"`

	// Mensuration
	Sign     string `json:"sign,omitempty"`
	Dot      bool   `json:"dot,omitempty"`
	Prolatio int    `json:"prolatio,omitempty"`
	Tempus   int    `json:"tempus,omitempty"`

	// Bar lines
	Form string `json:"form,omitempty"`
}

var barFormToString = map[score.BarForm]string{
	score.BarDouble: "dbl",
	score.BarEnd:    "end",
}

var meterSymToString = map[score.MeterSym]string{
	score.MeterSymCommon: "common",
	score.MeterSymCut:    "cut",
}

// WriteJSON encodes a document as JSON and writes it to w.
// The output includes the score definition, all systems and measures, and
// the full element content. It can be re-imported with [ReadJSON] for
// round-trip processing.
func WriteJSON(w io.Writer, d *score.Doc) error {
	out := document{ID: d.ID(), Systems: make([]system, len(d.Systems()))}
	out.ScoreDef = encodeScoreDef(d.ScoreDef())

	for i, s := range d.Systems() {
		sys := system{ID: s.ID(), Measures: make([]measure, len(s.Measures()))}
		for j, m := range s.Measures() {
			sys.Measures[j] = encodeMeasure(m)
		}
		out.Systems[i] = sys
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *score.Doc, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, d)
}

func encodeMeasure(m *score.Measure) measure {
	md := measure{
		ID:         m.ID(),
		N:          m.N(),
		Unmeasured: m.IsUnmeasured(),
		Staves:     make([]staff, len(m.Staves())),
	}
	md.ScoreDefChange = encodeScoreDef(m.ScoreDefChange())

	for i, st := range m.Staves() {
		sd := staff{ID: st.ID(), N: st.N(), Layers: make([]layer, len(st.Layers()))}
		if st.Lines() != 5 {
			sd.Lines = st.Lines()
		}
		for j, l := range st.Layers() {
			ld := layer{ID: l.ID(), N: l.N(), Elements: make([]element, 0, l.Len())}
			if l.IsCue() {
				ld.Cue = true
			}
			if !l.IsVisible() {
				ld.Hidden = true
			}
			if l.Type() != "" {
				ld.Tag = l.Type()
			}
			for _, e := range l.Elements() {
				ld.Elements = append(ld.Elements, encodeElement(e))
			}
			sd.Layers[j] = ld
		}
		md.Staves[i] = sd
	}
	return md
}

// encodeScoreDef returns nil for an empty or absent definition so that
// omitempty drops the field.
func encodeScoreDef(sd *score.ScoreDef) *scoreDef {
	if sd == nil || len(sd.StaffDefs()) == 0 {
		return nil
	}
	out := &scoreDef{Staves: make([]staffDef, len(sd.StaffDefs()))}
	for i, def := range sd.StaffDefs() {
		dd := staffDef{N: def.N()}
		if def.Lines() != 5 {
			dd.Lines = def.Lines()
		}
		if c := def.Clef(); c != nil {
			el := encodeClef(c)
			dd.Clef = &el
		}
		if k := def.KeySig(); k != nil {
			el := encodeKeySig(k)
			dd.KeySig = &el
		}
		if m := def.Mensur(); m != nil {
			el := encodeMensur(m)
			dd.Mensur = &el
		}
		if ms := def.MeterSig(); ms != nil {
			el := encodeMeterSig(ms)
			dd.MeterSig = &el
		}
		if g := def.MeterSigGrp(); g != nil {
			el := encodeMeterSigGrp(g)
			dd.MeterSigGrp = &el
		}
		out.Staves[i] = dd
	}
	return out
}

func encodeElement(e score.Element) element {
	var el element
	switch v := e.(type) {
	case *score.Note:
		el = encodeNote(v)
	case *score.Rest:
		el = element{Dur: v.Dur().String(), Dots: v.Dots()}
		encodeBase(&el, v.Base())
	case *score.Chord:
		el = element{Dur: v.Dur().String(), Dots: v.Dots(), Notes: make([]element, len(v.Notes()))}
		for i, n := range v.Notes() {
			el.Notes[i] = encodeNote(n)
		}
		encodeBase(&el, v.Base())
	case *score.Space:
		el = element{Dur: v.Dur().String(), Dots: v.Dots()}
		encodeBase(&el, v.Base())
	case *score.BarLine:
		el = element{Form: barFormToString[v.Form()]}
		encodeBase(&el, v.Base())
	case *score.Custos:
		el = element{Pname: v.Pname().String(), Oct: v.Oct()}
		encodeBase(&el, v.Base())
	case *score.Clef:
		el = encodeClef(v)
	case *score.KeySig:
		el = encodeKeySig(v)
	case *score.MeterSig:
		el = encodeMeterSig(v)
	case *score.MeterSigGrp:
		el = encodeMeterSigGrp(v)
	case *score.Mensur:
		el = encodeMensur(v)
	}
	el.Type = e.Kind().String()
	return el
}

func encodeNote(n *score.Note) element {
	el := element{Pname: n.Pname().String(), Oct: n.Oct(), Dur: n.Dur().String()}
	if n.Accid() != score.AccidNone {
		el.Accid = n.Accid().String()
	}
	el.Dots = n.Dots()
	if markup := n.ArticMarkup(); markup != "" {
		el.Artic = markup
	} else if artics := n.Artics(); len(artics) > 0 {
		parts := make([]string, len(artics))
		for i, a := range artics {
			parts[i] = string(a)
		}
		el.Artic = strings.Join(parts, "-")
	}
	encodeBase(&el, n.Base())
	return el
}

func encodeClef(c *score.Clef) element {
	el := element{Shape: c.Shape().String(), Line: c.Line()}
	if c.Dis() != 0 {
		el.Dis = c.Dis()
		el.DisBelow = c.DisBelow()
	}
	encodeBase(&el, c.Base())
	return el
}

func encodeKeySig(k *score.KeySig) element {
	el := element{Count: k.AccidCount()}
	if k.AccidType() != score.AccidNone {
		el.Accid = k.AccidType().String()
	}
	encodeBase(&el, k.Base())
	return el
}

func encodeMeterSig(m *score.MeterSig) element {
	el := element{Count: m.Count(), Unit: m.Unit(), Sym: meterSymToString[m.Sym()]}
	encodeBase(&el, m.Base())
	return el
}

func encodeMeterSigGrp(g *score.MeterSigGrp) element {
	el := element{Func: g.Func(), Sigs: make([]element, len(g.Sigs()))}
	for i, s := range g.Sigs() {
		el.Sigs[i] = encodeMeterSig(s)
	}
	encodeBase(&el, g.Base())
	return el
}

func encodeMensur(m *score.Mensur) element {
	el := element{
		Sign:     m.Sign().String(),
		Dot:      m.HasDot(),
		Prolatio: m.Prolatio(),
		Tempus:   m.Tempus(),
	}
	encodeBase(&el, m.Base())
	return el
}

func encodeBase(el *element, b *score.ElementBase) {
	el.ID = b.ID()
	if b.IsCue() {
		el.Cue = true
	}
	if !b.IsVisible() {
		el.Hidden = true
	}
	if b.Type() != "" {
		el.Tag = b.Type()
	}
	if x := b.FacsX(); x != score.Unset {
		v := x
		el.FacsX = &v
	}
}
