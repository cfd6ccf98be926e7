package pass

import (
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// CastOffMensural splits unmeasured mensural content into segments of
// [Options.CastOffUnit] quarter-note units. Elements move whole: each one
// lands in the segment its cumulative onset falls into, so an event
// starting just before a boundary stretches its segment instead of being
// cut. Measures are renumbered consecutively afterwards.
func CastOffMensural(d *score.Doc, opts *Options) error {
	for _, sys := range d.Systems() {
		var out []*score.Measure
		for _, m := range sys.Measures() {
			if !m.IsUnmeasured() {
				out = append(out, m)
				continue
			}
			segments, err := castOffMeasure(d, m, opts.CastOffUnit)
			if err != nil {
				return err
			}
			out = append(out, segments...)
		}
		if err := sys.ReplaceMeasures(out); err != nil {
			return err
		}
	}
	renumberMeasures(d)
	return nil
}

// castOffMeasure distributes one unmeasured measure's content over new
// segment measures mirroring its staff and layer structure.
func castOffMeasure(d *score.Doc, m *score.Measure, unit float64) ([]*score.Measure, error) {
	type stream struct {
		staff    *score.Staff
		layer    *score.Layer
		elements []score.Element
		segments []int
	}

	var streams []stream
	last := 0
	for _, st := range m.Staves() {
		def := d.ScoreDef().StaffDef(st.N())
		for _, l := range st.Layers() {
			s := stream{staff: st, layer: l}
			s.elements = append([]score.Element(nil), l.Elements()...)

			var mensur *score.Mensur
			if def != nil {
				mensur = def.Mensur()
			}
			cursor := 0.0
			for _, e := range s.elements {
				idx := int(cursor / unit)
				s.segments = append(s.segments, idx)
				if idx > last {
					last = idx
				}
				if men, ok := e.(*score.Mensur); ok {
					mensur = men
				}
				if dur, ok := e.(score.Durational); ok {
					cursor += dur.ScoreDuration(mensur)
				}
			}
			streams = append(streams, s)
		}
	}

	segments := make([]*score.Measure, last+1)
	for i := range segments {
		seg := score.NewMeasure(0)
		for _, st := range m.Staves() {
			ns := score.NewStaff(st.N())
			ns.SetLines(st.Lines())
			if err := seg.AddStaff(ns); err != nil {
				return nil, err
			}
			for _, l := range st.Layers() {
				nl := score.NewLayer(l.N())
				nl.SetCue(l.IsCue())
				nl.SetVisible(l.IsVisible())
				nl.SetType(l.Type())
				if err := ns.AddLayer(nl); err != nil {
					return nil, err
				}
			}
		}
		segments[i] = seg
	}
	segments[0].SetScoreDefChange(m.ScoreDefChange())

	for _, s := range streams {
		for i, e := range s.elements {
			s.layer.Remove(e)
			segments[s.segments[i]].Staff(s.staff.N()).Layer(s.layer.N()).Append(e)
		}
	}
	return segments, nil
}

// UnCastOffMensural reverses the cast-off conversion: each system's
// measures merge back into a single unmeasured measure, concatenating
// every staff and layer stream in document order.
func UnCastOffMensural(d *score.Doc) error {
	for _, sys := range d.Systems() {
		ms := sys.Measures()
		if len(ms) == 0 {
			continue
		}

		merged := score.NewMeasure(ms[0].N())
		merged.SetUnmeasured(true)
		merged.SetScoreDefChange(ms[0].ScoreDefChange())
		for _, m := range ms {
			for _, st := range m.Staves() {
				target := merged.Staff(st.N())
				if target == nil {
					target = score.NewStaff(st.N())
					target.SetLines(st.Lines())
					if err := merged.AddStaff(target); err != nil {
						return err
					}
				}
				for _, l := range st.Layers() {
					tl := target.Layer(l.N())
					if tl == nil {
						tl = score.NewLayer(l.N())
						tl.SetCue(l.IsCue())
						tl.SetVisible(l.IsVisible())
						tl.SetType(l.Type())
						if err := target.AddLayer(tl); err != nil {
							return err
						}
					}
					for _, e := range append([]score.Element(nil), l.Elements()...) {
						l.Remove(e)
						tl.Append(e)
					}
				}
			}
		}
		if err := sys.ReplaceMeasures([]*score.Measure{merged}); err != nil {
			return err
		}
	}
	renumberMeasures(d)
	return nil
}

func renumberMeasures(d *score.Doc) {
	n := 1
	for _, m := range d.Measures() {
		m.SetN(n)
		n++
	}
}
