package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// layoutDocument is the JSON shape of an exported layout. Unlike the score
// format it carries derived state only: positions, times, and alignment
// slots, keyed back to the score by element identifiers.
type layoutDocument struct {
	ScoreID string         `json:"score_id,omitempty"`
	Systems []layoutSystem `json:"systems"`
}

type layoutSystem struct {
	ID       string          `json:"id"`
	Measures []layoutMeasure `json:"measures"`
}

type layoutMeasure struct {
	ID    string       `json:"id"`
	N     int          `json:"n"`
	Onset float64      `json:"onset"`
	X     float64      `json:"x"`
	Width float64      `json:"width"`
	Slots []layoutSlot `json:"slots,omitempty"`
}

type layoutSlot struct {
	Time     float64         `json:"time"`
	Rank     string          `json:"rank"`
	X        float64         `json:"x"`
	Elements []layoutElement `json:"elements"`
}

type layoutElement struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Staff  int     `json:"staff"`
	Layer  int     `json:"layer"`
	X      float64 `json:"x"`
	Onset  float64 `json:"onset"`
	Offset float64 `json:"offset"`
}

var rankNames = map[score.AlignmentRank]string{
	score.RankClef:     "clef",
	score.RankKeySig:   "keySig",
	score.RankMensur:   "mensur",
	score.RankMeterSig: "meterSig",
	score.RankEvent:    "event",
	score.RankBarLine:  "barLine",
}

// WriteLayoutJSON writes the document's computed layout to w as indented
// JSON. Run the pass sequence first; an unprocessed document has no
// alignment slots and carries unset positions.
func WriteLayoutJSON(w io.Writer, d *score.Doc) error {
	data := layoutDocument{ScoreID: d.ID()}
	for _, sys := range d.Systems() {
		sysd := layoutSystem{ID: sys.ID()}
		for _, m := range sys.Measures() {
			sysd.Measures = append(sysd.Measures, encodeLayoutMeasure(m))
		}
		data.Systems = append(data.Systems, sysd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayoutJSON writes the document's computed layout to a file at path.
func ExportLayoutJSON(path string, d *score.Doc) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayoutJSON(f, d)
}

func encodeLayoutMeasure(m *score.Measure) layoutMeasure {
	md := layoutMeasure{
		ID:    m.ID(),
		N:     m.N(),
		Onset: m.ScoreTimeOnset(),
		X:     m.DrawingX(),
		Width: m.Width(),
	}
	for _, a := range m.Aligner().Alignments() {
		slot := layoutSlot{
			Time: a.Time(),
			Rank: rankNames[a.Rank()],
			X:    a.X(),
		}
		for _, e := range a.Elements() {
			b := e.Base()
			slot.Elements = append(slot.Elements, layoutElement{
				ID:     b.ID(),
				Kind:   e.Kind().String(),
				Staff:  b.Layer().Staff().N(),
				Layer:  b.Layer().N(),
				X:      b.DrawingX(),
				Onset:  b.Onset(),
				Offset: b.Offset(),
			})
		}
		md.Slots = append(md.Slots, slot)
	}
	return md
}
