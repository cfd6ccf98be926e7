package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func buildTestDoc(t *testing.T) *score.Doc {
	t.Helper()

	d := score.NewDoc()
	d.SetID("doc-1")

	sd := score.NewScoreDef()
	def := score.NewStaffDef(1)
	def.SetClef(score.NewClef(score.ClefG, 2))
	def.SetKeySig(score.NewKeySig(1, score.AccidSharp))
	meter := score.NewMeterSig(2, 2)
	meter.SetSym(score.MeterSymCut)
	def.SetMeterSig(meter)
	if err := sd.AddStaffDef(def); err != nil {
		t.Fatalf("AddStaffDef() error: %v", err)
	}
	d.SetScoreDef(sd)

	sys := score.NewSystem()
	if err := d.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem() error: %v", err)
	}
	m := score.NewMeasure(1)
	if err := sys.AddMeasure(m); err != nil {
		t.Fatalf("AddMeasure() error: %v", err)
	}
	st := score.NewStaff(1)
	if err := m.AddStaff(st); err != nil {
		t.Fatalf("AddStaff() error: %v", err)
	}
	l := score.NewLayer(1)
	if err := st.AddLayer(l); err != nil {
		t.Fatalf("AddLayer() error: %v", err)
	}

	n := score.NewNote(score.PitchC, 4, score.DurHalf)
	n.SetAccid(score.AccidSharp)
	n.SetDots(1)
	chord := score.NewChord(score.DurQuarter,
		score.NewNote(score.PitchE, 4, score.DurQuarter),
		score.NewNote(score.PitchG, 4, score.DurQuarter),
	)
	rest := score.NewRest(score.DurQuarter)
	bar := score.NewBarLine(score.BarEnd)
	for _, e := range []score.Element{n, chord, rest, bar} {
		if !l.Append(e) {
			t.Fatalf("Append(%v) rejected", e.Kind())
		}
	}
	return d
}

func TestWriteReadRoundTrip(t *testing.T) {
	d := buildTestDoc(t)

	var first bytes.Buffer
	if err := WriteJSON(&first, d); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	decoded, err := ReadJSON(&first)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	var second bytes.Buffer
	if err := WriteJSON(&second, decoded); err != nil {
		t.Fatalf("WriteJSON() after read error: %v", err)
	}

	// Rewrite first because ReadJSON consumed it.
	var again bytes.Buffer
	if err := WriteJSON(&again, d); err != nil {
		t.Fatalf("WriteJSON() rewrite error: %v", err)
	}
	if !bytes.Equal(again.Bytes(), second.Bytes()) {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", again.String(), second.String())
	}
}

func TestReadJSONPreservesStructure(t *testing.T) {
	d := buildTestDoc(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	decoded, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if decoded.ID() != "doc-1" {
		t.Errorf("ID = %q, want %q", decoded.ID(), "doc-1")
	}
	if len(decoded.Systems()) != 1 {
		t.Fatalf("systems = %d, want 1", len(decoded.Systems()))
	}
	measures := decoded.Measures()
	if len(measures) != 1 {
		t.Fatalf("measures = %d, want 1", len(measures))
	}

	def := decoded.ScoreDef().StaffDef(1)
	if def == nil {
		t.Fatal("staff def 1 missing after decode")
	}
	if def.Clef() == nil || def.Clef().Shape() != score.ClefG || def.Clef().Line() != 2 {
		t.Errorf("clef = %+v, want G2", def.Clef())
	}
	if def.KeySig() == nil || def.KeySig().AccidCount() != 1 || def.KeySig().AccidType() != score.AccidSharp {
		t.Errorf("key sig = %+v, want 1 sharp", def.KeySig())
	}
	if def.MeterSig() == nil || def.MeterSig().Sym() != score.MeterSymCut {
		t.Errorf("meter sig = %+v, want cut symbol", def.MeterSig())
	}

	l := measures[0].Staff(1).Layer(1)
	if l == nil {
		t.Fatal("layer 1 missing after decode")
	}
	if len(l.Elements()) != 4 {
		t.Fatalf("elements = %d, want 4", len(l.Elements()))
	}

	n, ok := l.Elements()[0].(*score.Note)
	if !ok {
		t.Fatalf("element 0 = %T, want *score.Note", l.Elements()[0])
	}
	if n.Pname() != score.PitchC || n.Oct() != 4 || n.Accid() != score.AccidSharp || n.Dots() != 1 {
		t.Errorf("note = c%d accid %v dots %d, want c4 sharp 1 dot", n.Oct(), n.Accid(), n.Dots())
	}

	c, ok := l.Elements()[1].(*score.Chord)
	if !ok {
		t.Fatalf("element 1 = %T, want *score.Chord", l.Elements()[1])
	}
	if len(c.Notes()) != 2 {
		t.Errorf("chord notes = %d, want 2", len(c.Notes()))
	}

	b, ok := l.Elements()[3].(*score.BarLine)
	if !ok {
		t.Fatalf("element 3 = %T, want *score.BarLine", l.Elements()[3])
	}
	if b.Form() != score.BarEnd {
		t.Errorf("bar form = %v, want BarEnd", b.Form())
	}
}

func TestReadJSONElementFacets(t *testing.T) {
	input := `{
		"systems": [{
			"measures": [{
				"n": 1,
				"staves": [{
					"n": 1,
					"layers": [{
						"n": 1,
						"elements": [
							{"type": "note", "id": "n1", "pname": "a", "oct": 3, "dur": "4",
							 "cue": true, "hidden": true, "tag": "editorial", "facs_x": 421.5}
						]
					}]
				}]
			}]
		}]
	}`

	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	e := d.FindElement("n1")
	if e == nil {
		t.Fatal("element n1 not found")
	}
	b := e.Base()
	if !b.IsCue() {
		t.Error("cue not carried")
	}
	if b.IsVisible() {
		t.Error("hidden not carried")
	}
	if b.Type() != "editorial" {
		t.Errorf("tag = %q, want %q", b.Type(), "editorial")
	}
	if b.FacsX() != 421.5 {
		t.Errorf("facs_x = %v, want 421.5", b.FacsX())
	}
}

func TestReadJSONErrors(t *testing.T) {
	valid := func(elements string) string {
		return `{"systems": [{"measures": [{"n": 1, "staves": [{"n": 1, "layers": [{"n": 1,
			"elements": [` + elements + `]}]}]}]}]}`
	}

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "malformed json",
			input:   `{"systems": [`,
			wantErr: "decode",
		},
		{
			name:    "unknown element type",
			input:   valid(`{"type": "wobble"}`),
			wantErr: `unknown element type "wobble"`,
		},
		{
			name:    "note missing dur",
			input:   valid(`{"type": "note", "pname": "c", "oct": 4}`),
			wantErr: "missing dur",
		},
		{
			name:    "note missing pname",
			input:   valid(`{"type": "note", "oct": 4, "dur": "4"}`),
			wantErr: "missing pname",
		},
		{
			name:    "unknown dur",
			input:   valid(`{"type": "note", "pname": "c", "oct": 4, "dur": "3"}`),
			wantErr: `unknown dur "3"`,
		},
		{
			name:    "unknown pname",
			input:   valid(`{"type": "note", "pname": "x", "oct": 4, "dur": "4"}`),
			wantErr: `unknown pname "x"`,
		},
		{
			name:    "unknown accid",
			input:   valid(`{"type": "note", "pname": "c", "oct": 4, "dur": "4", "accid": "ss"}`),
			wantErr: `unknown accid "ss"`,
		},
		{
			name:    "unknown clef shape",
			input:   valid(`{"type": "clef", "shape": "Q", "line": 2}`),
			wantErr: `unknown clef shape "Q"`,
		},
		{
			name:    "chord note bad dur",
			input:   valid(`{"type": "chord", "dur": "4", "notes": [{"pname": "c", "oct": 4, "dur": "bogus"}]}`),
			wantErr: "chord note 1",
		},
		{
			name:    "empty measure",
			input:   `{"systems": [{"measures": [{"n": 1}]}]}`,
			wantErr: "validate",
		},
		{
			name:    "duplicate staff numbers",
			input:   `{"systems": [{"measures": [{"n": 1, "staves": [{"n": 1}, {"n": 1}]}]}]}`,
			wantErr: "validate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadJSONErrorContext(t *testing.T) {
	input := `{"systems": [{"measures": [{"n": 7, "staves": [{"n": 2, "layers": [{"n": 3,
		"elements": [{"type": "note", "pname": "c", "oct": 4, "dur": "4"},
		             {"type": "note", "oct": 4, "dur": "4"}]}]}]}]}]}`

	_, err := ReadJSON(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadJSON() should return error")
	}
	want := "measure 7 staff 2 layer 3 element 2"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error = %v, want substring %q", err, want)
	}
}

func TestExportImportJSON(t *testing.T) {
	d := buildTestDoc(t)
	path := filepath.Join(t.TempDir(), "score.json")

	if err := ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	decoded, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if decoded.ID() != d.ID() {
		t.Errorf("ID = %q, want %q", decoded.ID(), d.ID())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("ImportJSON() should return error for missing file")
	}
	if !strings.Contains(err.Error(), "open") {
		t.Errorf("error = %v, want open context", err)
	}
}

func TestReadJSONScoreDefChange(t *testing.T) {
	input := `{
		"score_def": {"staves": [{"n": 1, "clef": {"shape": "G", "line": 2}}]},
		"systems": [{
			"measures": [
				{"n": 1, "staves": [{"n": 1}]},
				{"n": 2,
				 "score_def_change": {"staves": [{"n": 1, "clef": {"shape": "F", "line": 4}}]},
				 "staves": [{"n": 1}]}
			]
		}]
	}`

	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	m2 := d.Measures()[1]
	change := m2.ScoreDefChange()
	if change == nil {
		t.Fatal("score def change missing after decode")
	}
	clef := change.StaffDef(1).Clef()
	if clef == nil || clef.Shape() != score.ClefF || clef.Line() != 4 {
		t.Errorf("changed clef = %+v, want F4", clef)
	}
}

func TestWriteLayoutJSON(t *testing.T) {
	d := buildTestDoc(t)
	m := d.Measures()[0]
	m.SetScoreTimeOnset(0)
	m.SetDrawingX(10)
	m.SetWidth(480)

	l := m.Staff(1).Layer(1)
	n := l.Elements()[0]
	a := m.Aligner().Align(n, 0)
	a.SetX(60)
	n.Base().SetDrawingX(70)
	n.Base().SetOnset(0)
	n.Base().SetOffset(3)

	var buf bytes.Buffer
	if err := WriteLayoutJSON(&buf, d); err != nil {
		t.Fatalf("WriteLayoutJSON() error: %v", err)
	}

	var out struct {
		ScoreID string `json:"score_id"`
		Systems []struct {
			Measures []struct {
				N     int     `json:"n"`
				X     float64 `json:"x"`
				Width float64 `json:"width"`
				Slots []struct {
					Time     float64 `json:"time"`
					Rank     string  `json:"rank"`
					X        float64 `json:"x"`
					Elements []struct {
						ID     string  `json:"id"`
						Kind   string  `json:"kind"`
						Staff  int     `json:"staff"`
						Layer  int     `json:"layer"`
						X      float64 `json:"x"`
						Offset float64 `json:"offset"`
					} `json:"elements"`
				} `json:"slots"`
			} `json:"measures"`
		} `json:"systems"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("layout output not valid JSON: %v", err)
	}

	if out.ScoreID != "doc-1" {
		t.Errorf("score_id = %q, want %q", out.ScoreID, "doc-1")
	}
	if len(out.Systems) != 1 || len(out.Systems[0].Measures) != 1 {
		t.Fatalf("systems/measures shape wrong: %+v", out.Systems)
	}
	om := out.Systems[0].Measures[0]
	if om.X != 10 || om.Width != 480 {
		t.Errorf("measure x/width = %v/%v, want 10/480", om.X, om.Width)
	}
	if len(om.Slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(om.Slots))
	}
	slot := om.Slots[0]
	if slot.Rank != "event" || slot.X != 60 {
		t.Errorf("slot = %+v, want rank event at x 60", slot)
	}
	if len(slot.Elements) != 1 {
		t.Fatalf("slot elements = %d, want 1", len(slot.Elements))
	}
	oe := slot.Elements[0]
	if oe.Kind != "note" || oe.Staff != 1 || oe.Layer != 1 || oe.X != 70 || oe.Offset != 3 {
		t.Errorf("element = %+v, want note staff 1 layer 1 x 70 offset 3", oe)
	}
}

func TestExportLayoutJSON(t *testing.T) {
	d := buildTestDoc(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := ExportLayoutJSON(path, d); err != nil {
		t.Fatalf("ExportLayoutJSON() error: %v", err)
	}
	if _, err := ImportJSON(path); err == nil {
		t.Error("layout file should not decode as a score")
	}
}

func TestReadJSONInlineSignatureElements(t *testing.T) {
	// Clefs, key signatures, and mensuration signs can appear mid-layer,
	// not just in staff definitions.
	input := `{"systems": [{"measures": [{"n": 1, "staves": [{"n": 1, "layers": [{"n": 1,
		"elements": [
			{"type": "mRpt"},
			{"type": "clef", "shape": "C", "line": 3},
			{"type": "mensur", "sign": "O", "prolatio": 2, "tempus": 3},
			{"type": "custos", "pname": "f", "oct": 3}
		]}]}]}]}]}`

	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	elements := d.Measures()[0].Staff(1).Layer(1).Elements()
	if len(elements) != 4 {
		t.Fatalf("elements = %d, want 4", len(elements))
	}
	if _, ok := elements[0].(*score.MRpt); !ok {
		t.Errorf("element 0 = %T, want *score.MRpt", elements[0])
	}
	clef, ok := elements[1].(*score.Clef)
	if !ok || clef.Shape() != score.ClefC || clef.Line() != 3 {
		t.Errorf("element 1 = %T %+v, want C3 clef", elements[1], elements[1])
	}
	mensur, ok := elements[2].(*score.Mensur)
	if !ok || mensur.Sign() != score.MensurSignO || mensur.Tempus() != 3 {
		t.Errorf("element 2 = %T, want O mensur with tempus 3", elements[2])
	}
	custos, ok := elements[3].(*score.Custos)
	if !ok || custos.Pname() != score.PitchF || custos.Oct() != 3 {
		t.Errorf("element 3 = %T, want f3 custos", elements[3])
	}
}

func TestReadJSONUnknownDurInRest(t *testing.T) {
	input := `{"systems": [{"measures": [{"n": 1, "staves": [{"n": 1, "layers": [{"n": 1,
		"elements": [{"type": "rest"}]}]}]}]}]}`

	_, err := ReadJSON(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadJSON() should reject rest without dur")
	}
	if !strings.Contains(err.Error(), "missing dur") {
		t.Errorf("error = %v, want missing dur", err)
	}
}
