package score

import "sort"

// AlignmentRank orders alignment slots that share the same score time.
// Context symbols precede durational events, bar lines close the measure.
type AlignmentRank int

const (
	// RankClef places clefs first at a time position.
	RankClef AlignmentRank = iota
	// RankKeySig places key signatures after clefs.
	RankKeySig
	// RankMensur places mensuration signs after key signatures.
	RankMensur
	// RankMeterSig places meter signatures after mensuration signs.
	RankMeterSig
	// RankEvent places durational events.
	RankEvent
	// RankBarLine places bar lines last.
	RankBarLine
)

// RankFor returns the alignment rank of an element kind.
func RankFor(k Kind) AlignmentRank {
	switch k {
	case KindClef:
		return RankClef
	case KindKeySig:
		return RankKeySig
	case KindMensur:
		return RankMensur
	case KindMeterSig, KindMeterSigGrp:
		return RankMeterSig
	case KindBarLine:
		return RankBarLine
	}
	return RankEvent
}

// Alignment is one vertical alignment slot inside a measure: all elements
// of all layers that share a score time and a rank. The horizontal position
// is assigned when the alignment pass finalizes the measure.
type Alignment struct {
	time     float64
	rank     AlignmentRank
	x        float64
	elements []Element
}

// Time returns the slot's score time relative to the measure start.
func (a *Alignment) Time() float64 { return a.time }

// Rank returns the slot's rank.
func (a *Alignment) Rank() AlignmentRank { return a.rank }

// X returns the slot's horizontal position relative to the measure origin.
func (a *Alignment) X() float64 { return a.x }

// SetX assigns the slot's horizontal position.
func (a *Alignment) SetX(x float64) { a.x = x }

// Elements returns the elements assigned to the slot in assignment order.
func (a *Alignment) Elements() []Element { return a.elements }

func (a *Alignment) add(e Element) { a.elements = append(a.elements, e) }

// Aligner collects the alignment slots of one measure, kept sorted by
// (time, rank).
type Aligner struct {
	alignments []*Alignment
}

// At returns the slot for the given time and rank, creating it in sorted
// position when absent.
func (al *Aligner) At(time float64, rank AlignmentRank) *Alignment {
	i := sort.Search(len(al.alignments), func(i int) bool {
		a := al.alignments[i]
		if a.time != time {
			return a.time >= time
		}
		return a.rank >= rank
	})
	if i < len(al.alignments) && al.alignments[i].time == time && al.alignments[i].rank == rank {
		return al.alignments[i]
	}

	a := &Alignment{time: time, rank: rank}
	al.alignments = append(al.alignments, nil)
	copy(al.alignments[i+1:], al.alignments[i:])
	al.alignments[i] = a
	return a
}

// Align assigns the element to the slot matching its time and kind and
// records the assignment on the element.
func (al *Aligner) Align(e Element, time float64) *Alignment {
	a := al.At(time, RankFor(e.Kind()))
	a.add(e)
	e.Base().SetAlignment(a)
	return a
}

// Alignments returns the slots in (time, rank) order.
func (al *Aligner) Alignments() []*Alignment { return al.alignments }

// Len returns the number of slots.
func (al *Aligner) Len() int { return len(al.alignments) }
