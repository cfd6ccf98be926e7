// Package midi holds the performance data derived from a score and writes
// it out as a standard MIDI file. The MIDI generation pass fills a
// [Sequence] with one track per staff; [Sequence.Finalize] establishes the
// event order players expect.
package midi

import "sort"

// EventType identifies a sequence event.
type EventType int

const (
	// NoteOff ends a sounding key.
	NoteOff EventType = iota
	// NoteOn starts a key.
	NoteOn
	// TempoChange sets the microseconds per quarter note from its tick
	// onward.
	TempoChange
)

func (t EventType) String() string {
	switch t {
	case NoteOff:
		return "noteOff"
	case NoteOn:
		return "noteOn"
	case TempoChange:
		return "tempo"
	}
	return "unknown"
}

// Event is one timed entry of a track. Tick is in pulses per quarter note
// from the start of the sequence.
type Event struct {
	Tick     int
	Type     EventType
	Channel  uint8
	Key      uint8
	Velocity uint8

	// USecPerQuarter is set for TempoChange events only.
	USecPerQuarter int
}

// Track is one voice stream of the sequence.
type Track struct {
	Name   string
	Events []Event
}

// Add appends an event to the track.
func (t *Track) Add(ev Event) { t.Events = append(t.Events, ev) }

// Sequence is a complete multi-track performance.
type Sequence struct {
	PPQ    int
	Tracks []*Track
}

// NewSequence creates an empty sequence with the given resolution in
// pulses per quarter note.
func NewSequence(ppq int) *Sequence {
	return &Sequence{PPQ: ppq}
}

// AddTrack appends a named empty track and returns it.
func (s *Sequence) AddTrack(name string) *Track {
	t := &Track{Name: name}
	s.Tracks = append(s.Tracks, t)
	return t
}

// Duration returns the last tick of the sequence.
func (s *Sequence) Duration() int {
	last := 0
	for _, t := range s.Tracks {
		for _, ev := range t.Events {
			if ev.Tick > last {
				last = ev.Tick
			}
		}
	}
	return last
}

// Finalize sorts every track by tick. At equal ticks tempo changes come
// first, then note-offs, then note-ons, so repeated pitches retrigger
// instead of cancelling each other.
func (s *Sequence) Finalize() {
	for _, t := range s.Tracks {
		sort.SliceStable(t.Events, func(i, j int) bool {
			a, b := t.Events[i], t.Events[j]
			if a.Tick != b.Tick {
				return a.Tick < b.Tick
			}
			return eventOrder(a.Type) < eventOrder(b.Type)
		})
	}
}

func eventOrder(t EventType) int {
	switch t {
	case TempoChange:
		return 0
	case NoteOff:
		return 1
	}
	return 2
}
