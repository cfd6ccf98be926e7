package pass

import "github.com/fernandoherreradelasheras/verovio/pkg/score"

// InitOnsets stamps every element with its onset and offset in quarter-note
// units relative to its measure, and every measure with its absolute onset.
// Durations follow the active mensuration sign of the layer; a measure
// advances by its longest layer, or by the active meter when it has no
// sounding content. Measure-repeat marks take one full meter.
type InitOnsets struct {
	score.NoopVisitor

	docTime   float64
	maxCursor float64
	cursor    float64
	staffN    int
	mensur    *score.Mensur

	// activeMeter tracks the meter in force per staff number across
	// measures, fed by propagated staff definitions and inline changes.
	activeMeter map[int]*score.MeterSig
}

// NewInitOnsets creates the pass.
func NewInitOnsets() *InitOnsets {
	return &InitOnsets{activeMeter: make(map[int]*score.MeterSig)}
}

func (p *InitOnsets) VisitMeasure(m *score.Measure) score.Code {
	m.SetScoreTimeOnset(p.docTime)
	p.maxCursor = 0
	return score.Continue
}

func (p *InitOnsets) VisitStaff(st *score.Staff) score.Code {
	p.staffN = st.N()
	return score.Continue
}

func (p *InitOnsets) VisitLayer(l *score.Layer) score.Code {
	p.cursor = 0
	p.mensur = l.CurrentMensur()
	if ms := l.CurrentMeterSig(); ms != nil {
		p.activeMeter[p.staffN] = ms
	}
	return score.Continue
}

func (p *InitOnsets) VisitElement(e score.Element) score.Code {
	var dur float64
	switch el := e.(type) {
	case *score.Mensur:
		p.mensur = el
	case *score.MeterSig:
		p.activeMeter[p.staffN] = el
	case *score.MRpt:
		if ms := p.activeMeter[p.staffN]; ms != nil {
			dur = ms.MeasureDuration()
		}
	default:
		if d, ok := e.(score.Durational); ok {
			dur = d.ScoreDuration(p.mensur)
		}
	}

	b := e.Base()
	b.SetOnset(p.cursor)
	b.SetOffset(p.cursor + dur)
	if c, ok := e.(*score.Chord); ok {
		for _, n := range c.Notes() {
			n.SetOnset(p.cursor)
			n.SetOffset(p.cursor + dur)
		}
	}
	p.cursor += dur
	return score.Continue
}

func (p *InitOnsets) VisitLayerEnd(*score.Layer) score.Code {
	if p.cursor > p.maxCursor {
		p.maxCursor = p.cursor
	}
	return score.Continue
}

func (p *InitOnsets) VisitMeasureEnd(*score.Measure) score.Code {
	adv := p.maxCursor
	if adv == 0 {
		if ms := p.activeMeter[p.staffN]; ms != nil {
			adv = ms.MeasureDuration()
		}
	}
	p.docTime += adv
	return score.Continue
}
