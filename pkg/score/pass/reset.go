package pass

import "github.com/fernandoherreradelasheras/verovio/pkg/score"

// ResetData clears every derived value of the document: staff-definition
// working state, alignment slots, measure layout, layer snapshots, and
// element timing. Authored content is untouched. Running it twice is the
// same as running it once.
type ResetData struct {
	score.NoopVisitor
}

func (ResetData) VisitDoc(d *score.Doc) score.Code {
	d.ScoreDef().Reset()
	return score.Continue
}

func (ResetData) VisitMeasure(m *score.Measure) score.Code {
	m.ResetAligner()
	m.SetScoreTimeOnset(0)
	m.SetDrawingX(score.Unset)
	m.SetWidth(0)
	return score.Continue
}

func (ResetData) VisitLayer(l *score.Layer) score.Code {
	l.ResetDerived()
	return score.Continue
}

func (ResetData) VisitElement(e score.Element) score.Code {
	e.Base().ResetDerived()
	if c, ok := e.(*score.Chord); ok {
		for _, n := range c.Notes() {
			n.Base().ResetDerived()
		}
	}
	return score.Continue
}
