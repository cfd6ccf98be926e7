package pass

import (
	"math"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// CalcAlignment rebuilds each measure's alignment from the elements' onset
// times. Simultaneous elements of the same rank share one slot across all
// staves of the measure.
type CalcAlignment struct {
	score.NoopVisitor

	aligner *score.Aligner
}

func (p *CalcAlignment) VisitMeasure(m *score.Measure) score.Code {
	m.ResetAligner()
	p.aligner = m.Aligner()
	return score.Continue
}

func (p *CalcAlignment) VisitElement(e score.Element) score.Code {
	p.aligner.Align(e, e.Base().Onset())
	return score.Continue
}

// FinalizeAlignment turns alignment slots into horizontal positions. Within
// a measure the cursor advances by a fixed amount for context symbols and
// by a duration-scaled amount for events; measures line up left to right
// within their system. Every aligned element adopts its slot's position.
func FinalizeAlignment(d *score.Doc, opts *Options) {
	for _, sys := range d.Systems() {
		x := 0.0
		for _, m := range sys.Measures() {
			w := finalizeMeasure(m, opts)
			m.SetDrawingX(x)
			m.SetWidth(w)
			x += w
		}
	}
}

func finalizeMeasure(m *score.Measure, opts *Options) float64 {
	slots := m.Aligner().Alignments()
	cursor := opts.Unit
	for i, slot := range slots {
		slot.SetX(cursor)
		for _, e := range slot.Elements() {
			e.Base().SetDrawingX(cursor)
			if c, ok := e.(*score.Chord); ok {
				for _, n := range c.Notes() {
					n.SetDrawingX(cursor)
				}
			}
		}
		cursor += slotAdvance(slots, i, opts)
	}
	return cursor + opts.Unit
}

// slotAdvance returns the width a slot occupies before the next one.
// Events scale with the time until the next slot; the last event of a
// measure falls back to its own longest duration.
func slotAdvance(slots []*score.Alignment, i int, opts *Options) float64 {
	slot := slots[i]
	switch slot.Rank() {
	case score.RankBarLine:
		return opts.Unit
	case score.RankEvent:
	default:
		return 3 * opts.Unit
	}

	delta := 0.0
	if i+1 < len(slots) {
		delta = slots[i+1].Time() - slot.Time()
	}
	if delta <= 0 {
		for _, e := range slot.Elements() {
			if d := e.Base().Offset() - e.Base().Onset(); d > delta {
				delta = d
			}
		}
	}
	if delta <= 0 {
		return opts.Unit
	}
	return opts.Unit + 10*opts.Unit*opts.SpacingLinear*math.Pow(delta, opts.SpacingNonLinear)
}
