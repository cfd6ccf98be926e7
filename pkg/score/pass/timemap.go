package pass

import (
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
	"github.com/fernandoherreradelasheras/verovio/pkg/timemap"
)

// GenerateTimemap builds the score-time to real-time map of the document:
// one entry per distinct score time, carrying measure starts and the
// identifiers of the notes starting and ending there. Real times assume
// the fixed tempo of [Options.Tempo]. Measure repeats re-reference the
// previous measure's notes at their shifted times.
func GenerateTimemap(d *score.Doc, opts *Options) *timemap.Timemap {
	tm := timemap.New()
	toMS := func(q float64) float64 { return q * 60000 / opts.Tempo }

	type relMark struct {
		q  float64
		on bool
		id string
	}
	prev := map[[2]int][]relMark{}

	for _, m := range d.Measures() {
		base := m.ScoreTimeOnset()
		tm.MarkMeasure(base, toMS(base), m.ID())
		for _, st := range m.Staves() {
			for _, l := range st.Layers() {
				key := [2]int{st.N(), l.N()}
				var cur []relMark

				note := func(id string, onset, offset float64) {
					cur = append(cur,
						relMark{q: onset, on: true, id: id},
						relMark{q: offset, id: id},
					)
				}

				for _, e := range l.Elements() {
					switch el := e.(type) {
					case *score.Note:
						note(el.ID(), el.Base().Onset(), el.Base().Offset())
					case *score.Chord:
						for _, n := range el.Notes() {
							note(n.ID(), el.Base().Onset(), el.Base().Offset())
						}
					case *score.MRpt:
						cur = append(cur, prev[key]...)
					}
				}

				for _, mk := range cur {
					q := base + mk.q
					if mk.on {
						tm.AddOn(q, toMS(q), mk.id)
					} else {
						tm.AddOff(q, toMS(q), mk.id)
					}
				}
				prev[key] = cur
			}
		}
	}
	return tm
}
