package score

import "sort"

// overlapsSpan reports whether the element's sounding interval intersects
// the half-open query interval [start, end). Zero-duration elements count
// only when their onset falls inside the interval; an interval ending
// exactly at an onset never includes it.
func overlapsSpan(e Element, start, end float64) bool {
	b := e.Base()
	if b.offset > b.onset {
		return b.onset < end && b.offset > start
	}
	return b.onset >= start && b.onset < end
}

// effectiveStaff returns the staff the element sounds on: its cross-staff
// target when set, otherwise its owning layer's staff.
func effectiveStaff(e Element) *Staff {
	if e == nil {
		return nil
	}
	if cross := e.Base().cross; cross != nil {
		return cross
	}
	if owner := e.Base().layer; owner != nil {
		return owner.staff
	}
	return nil
}

// LayersInTimeSpan returns the sorted set of layer numbers active on the
// given staff of the measure during the half-open interval
// [start, start+duration). A layer counts when at least one of its elements
// sounding on that staff overlaps the interval. Content crossing in from
// another staff contributes its owning layer's number negated.
func (l *Layer) LayersInTimeSpan(start, duration float64, m *Measure, staffN int) []int {
	if m == nil {
		return nil
	}
	end := start + duration

	set := make(map[int]struct{})
	for _, staff := range m.Staves() {
		for _, layer := range staff.Layers() {
			for _, e := range layer.Elements() {
				if !overlapsSpan(e, start, end) {
					continue
				}
				target := effectiveStaff(e)
				if target == nil || target.N() != staffN {
					continue
				}
				if staff.N() == staffN {
					set[layer.N()] = struct{}{}
				} else {
					set[-layer.N()] = struct{}{}
				}
			}
		}
	}

	ns := make([]int, 0, len(set))
	for n := range set {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}

// LayerCountInTimeSpan returns the number of layers active on the given
// staff during the interval, without building the set.
func (l *Layer) LayerCountInTimeSpan(start, duration float64, m *Measure, staffN int) int {
	return len(l.LayersInTimeSpan(start, duration, m, staffN))
}

// LayersForTimeSpanOf returns the layer numbers active during the sounding
// interval of e, on the staff e sounds on.
func (l *Layer) LayersForTimeSpanOf(e Element) []int {
	start, duration, m, staffN, ok := timeSpanOf(e)
	if !ok {
		return nil
	}
	return l.LayersInTimeSpan(start, duration, m, staffN)
}

// LayerCountForTimeSpanOf returns the number of layers active during the
// sounding interval of e, on the staff e sounds on.
func (l *Layer) LayerCountForTimeSpanOf(e Element) int {
	return len(l.LayersForTimeSpanOf(e))
}

// ElementsInTimeSpan returns, in document order, every element sounding on
// the given staff that overlaps the half-open interval
// [start, start+duration). With excludeCurrent, elements owned by this
// layer are omitted, which yields the other voices sounding at the same
// time.
func (l *Layer) ElementsInTimeSpan(start, duration float64, m *Measure, staffN int, excludeCurrent bool) []Element {
	if m == nil {
		return nil
	}
	end := start + duration

	var out []Element
	for _, staff := range m.Staves() {
		for _, layer := range staff.Layers() {
			if excludeCurrent && layer == l {
				continue
			}
			for _, e := range layer.Elements() {
				if !overlapsSpan(e, start, end) {
					continue
				}
				if target := effectiveStaff(e); target == nil || target.N() != staffN {
					continue
				}
				out = append(out, e)
			}
		}
	}
	return out
}

// ElementsForTimeSpanOf returns the elements overlapping the sounding
// interval of e on the staff e sounds on, optionally excluding this layer's
// own content.
func (l *Layer) ElementsForTimeSpanOf(e Element, excludeCurrent bool) []Element {
	start, duration, m, staffN, ok := timeSpanOf(e)
	if !ok {
		return nil
	}
	return l.ElementsInTimeSpan(start, duration, m, staffN, excludeCurrent)
}

// timeSpanOf derives the query parameters from a reference element: its
// onset and sounding duration, the measure it belongs to, and the number of
// the staff it sounds on.
func timeSpanOf(e Element) (start, duration float64, m *Measure, staffN int, ok bool) {
	if e == nil {
		return 0, 0, nil, 0, false
	}
	target := effectiveStaff(e)
	if target == nil || target.Measure() == nil {
		return 0, 0, nil, 0, false
	}
	b := e.Base()
	return b.onset, b.offset - b.onset, target.Measure(), target.N(), true
}
