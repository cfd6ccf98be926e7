package pass

import "github.com/fernandoherreradelasheras/verovio/pkg/score"

// InitProcessingLists assigns the per-layer auxiliary state later passes
// and queries read: stem directions and cross-staff receive flags. A staff
// with one layer keeps free stems; with several, the first layer stems up,
// the last stems down, and middle layers stay free.
type InitProcessingLists struct {
	score.NoopVisitor
}

func (p *InitProcessingLists) VisitStaff(st *score.Staff) score.Code {
	layers := st.Layers()
	if len(layers) < 2 {
		for _, l := range layers {
			l.SetDrawingStemDir(score.StemNone)
		}
		return score.Continue
	}
	for i, l := range layers {
		switch i {
		case 0:
			l.SetDrawingStemDir(score.StemUp)
		case len(layers) - 1:
			l.SetDrawingStemDir(score.StemDown)
		default:
			l.SetDrawingStemDir(score.StemNone)
		}
	}
	return score.Continue
}

func (p *InitProcessingLists) VisitElement(e score.Element) score.Code {
	target := e.Base().CrossStaff()
	if target == nil {
		return score.Continue
	}
	owner := e.Base().Layer()
	if owner == nil || owner.Staff() == nil {
		return score.Continue
	}
	home := owner.Staff()
	if home == target || home.Measure() != target.Measure() {
		return score.Continue
	}

	fromAbove := staffIndex(home) < staffIndex(target)
	for _, l := range target.Layers() {
		if fromAbove {
			l.SetCrossStaffFromAbove(true)
		} else {
			l.SetCrossStaffFromBelow(true)
		}
	}
	return score.Continue
}

func staffIndex(st *score.Staff) int {
	m := st.Measure()
	if m == nil {
		return -1
	}
	for i, cur := range m.Staves() {
		if cur == st {
			return i
		}
	}
	return -1
}
