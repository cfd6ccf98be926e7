package pass

import "github.com/fernandoherreradelasheras/verovio/pkg/score"

// UnsetCurrentScoreDef restores the document's score definition to its
// authored content and clears every layer's staff-definition snapshots. It
// must run before [SetCurrentScoreDef].
type UnsetCurrentScoreDef struct {
	score.NoopVisitor
}

func (UnsetCurrentScoreDef) VisitDoc(d *score.Doc) score.Code {
	d.ScoreDef().Reset()
	return score.Continue
}

func (UnsetCurrentScoreDef) VisitLayer(l *score.Layer) score.Code {
	l.ResetStaffDefObjects()
	return score.Continue
}

// SetCurrentScoreDef walks the measures in order, folds mid-score
// definition changes into the working score definition, and propagates the
// result into every layer. Redraw requests are issued at the document
// start for all context symbols, at system starts for clef and key
// signature, and wherever a change replaces a symbol. A measure directly
// before a change additionally receives cautionary values previewing it.
func SetCurrentScoreDef(d *score.Doc, opts *Options) {
	working := d.ScoreDef()
	measures := d.Measures()
	cancellations := !opts.SkipCancellation

	systemStart := make(map[*score.Measure]bool)
	for _, sys := range d.Systems() {
		if ms := sys.Measures(); len(ms) > 0 {
			systemStart[ms[0]] = true
		}
	}

	for i, m := range measures {
		if change := m.ScoreDefChange(); change != nil {
			for _, cd := range change.StaffDefs() {
				if wd := working.StaffDef(cd.N()); wd != nil {
					wd.ApplyFrom(cd)
				}
			}
		}

		switch {
		case i == 0:
			for _, wd := range working.StaffDefs() {
				requestFullRedraw(wd)
			}
		case systemStart[m]:
			for _, wd := range working.StaffDefs() {
				wd.SetRedraw(score.KindClef, true)
				wd.SetRedraw(score.KindKeySig, true)
			}
		}

		for _, st := range m.Staves() {
			wd := working.StaffDef(st.N())
			if wd == nil {
				continue
			}
			for _, l := range st.Layers() {
				l.SetDrawingStaffDefValues(wd, cancellations)
			}
		}
		for _, wd := range working.StaffDefs() {
			wd.ClearRedraw()
		}

		if i+1 < len(measures) {
			setCautionValues(working, m, measures[i+1], cancellations)
		}
	}
}

// setCautionValues previews the definition change arriving with next on the
// layers of the measure before it.
func setCautionValues(working *score.ScoreDef, m, next *score.Measure, cancellations bool) {
	change := next.ScoreDefChange()
	if change == nil {
		return
	}
	for _, cd := range change.StaffDefs() {
		wd := working.StaffDef(cd.N())
		if wd == nil {
			continue
		}
		preview := wd.Clone()
		preview.ApplyFrom(cd)

		st := m.Staff(cd.N())
		if st == nil {
			continue
		}
		for _, l := range st.Layers() {
			l.SetDrawingCautionValues(preview, cancellations)
		}
	}
}

func requestFullRedraw(sd *score.StaffDef) {
	sd.SetRedraw(score.KindClef, true)
	sd.SetRedraw(score.KindKeySig, true)
	sd.SetRedraw(score.KindMensur, true)
	sd.SetRedraw(score.KindMeterSig, true)
	sd.SetRedraw(score.KindMeterSigGrp, true)
}
