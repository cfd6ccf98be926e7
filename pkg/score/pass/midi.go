package pass

import (
	"fmt"
	"math"

	"github.com/fernandoherreradelasheras/verovio/pkg/midi"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

const (
	midiVelocity    = 90
	midiCueVelocity = 60
)

// GenerateMIDI renders the document as a MIDI sequence: one tempo track
// plus one track per staff, events timed from the onsets computed by
// [Runner.Process]. Measure repeats replay the previous measure's events
// of their staff and layer, so chained repeats carry the music forward.
func GenerateMIDI(d *score.Doc, opts *Options) *midi.Sequence {
	seq := midi.NewSequence(opts.PPQ)
	ppq := float64(opts.PPQ)

	tempo := seq.AddTrack("tempo")
	tempo.Add(midi.Event{Type: midi.TempoChange, USecPerQuarter: int(math.Round(60e6 / opts.Tempo))})

	tracks := map[int]*midi.Track{}
	channels := map[int]uint8{}
	trackFor := func(staffN int) *midi.Track {
		if t, ok := tracks[staffN]; ok {
			return t
		}
		t := seq.AddTrack(fmt.Sprintf("staff %d", staffN))
		channels[staffN] = uint8(len(channels) % 16)
		tracks[staffN] = t
		return t
	}

	// Events of the previously processed measure per staff and layer,
	// ticks relative to their measure start. Measure repeats replay them.
	type relEvent struct {
		tick int
		typ  midi.EventType
		key  uint8
		vel  uint8
	}
	prev := map[[2]int][]relEvent{}

	for _, m := range d.Measures() {
		measureTick := int(math.Round(m.ScoreTimeOnset() * ppq))
		for _, st := range m.Staves() {
			track := trackFor(st.N())
			ch := channels[st.N()]
			for _, l := range st.Layers() {
				key := [2]int{st.N(), l.N()}
				var cur []relEvent

				emit := func(n *score.Note, onset, offset float64, cue bool) {
					on := int(math.Round((m.ScoreTimeOnset()+onset)*ppq)) - measureTick
					off := int(math.Round((m.ScoreTimeOnset()+offset)*ppq)) - measureTick
					vel := uint8(midiVelocity)
					if cue {
						vel = midiCueVelocity
					}
					cur = append(cur,
						relEvent{tick: on, typ: midi.NoteOn, key: uint8(n.MIDIKey()), vel: vel},
						relEvent{tick: off, typ: midi.NoteOff, key: uint8(n.MIDIKey())},
					)
				}

				for _, e := range l.Elements() {
					switch el := e.(type) {
					case *score.Note:
						emit(el, el.Base().Onset(), el.Base().Offset(), el.Base().IsCue() || l.IsCue())
					case *score.Chord:
						for _, n := range el.Notes() {
							emit(n, el.Base().Onset(), el.Base().Offset(),
								el.Base().IsCue() || n.Base().IsCue() || l.IsCue())
						}
					case *score.MRpt:
						cur = append(cur, prev[key]...)
					}
				}

				for _, re := range cur {
					track.Add(midi.Event{
						Tick:     measureTick + re.tick,
						Type:     re.typ,
						Channel:  ch,
						Key:      re.key,
						Velocity: re.vel,
					})
				}
				prev[key] = cur
			}
		}
	}

	seq.Finalize()
	return seq
}
