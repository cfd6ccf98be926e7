package pass

import (
	"testing"

	"github.com/fernandoherreradelasheras/verovio/pkg/midi"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func processed(t *testing.T, d *score.Doc) *Options {
	t.Helper()
	opts := &Options{}
	if err := quietRunner().Process(d, opts); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return opts
}

func TestGenerateMIDI(t *testing.T) {
	d := buildDoc(t, []score.Element{quarter(score.PitchC), quarter(score.PitchD)})
	opts := processed(t, d)

	seq := GenerateMIDI(d, opts)
	if seq.PPQ != DefaultPPQ {
		t.Errorf("PPQ = %d, want %d", seq.PPQ, DefaultPPQ)
	}
	if len(seq.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want tempo and one staff", len(seq.Tracks))
	}

	tempo := seq.Tracks[0]
	if tempo.Name != "tempo" || len(tempo.Events) != 1 {
		t.Fatalf("tempo track = %q with %d events, want 1 event", tempo.Name, len(tempo.Events))
	}
	if got := tempo.Events[0].USecPerQuarter; got != 500000 {
		t.Errorf("USecPerQuarter = %d, want 500000 at tempo 120", got)
	}

	staff := seq.Tracks[1]
	if staff.Name != "staff 1" {
		t.Errorf("staff track Name = %q, want %q", staff.Name, "staff 1")
	}
	want := []midi.Event{
		{Tick: 0, Type: midi.NoteOn, Key: 60, Velocity: 90},
		{Tick: 480, Type: midi.NoteOff, Key: 60},
		{Tick: 480, Type: midi.NoteOn, Key: 62, Velocity: 90},
		{Tick: 960, Type: midi.NoteOff, Key: 62},
	}
	if len(staff.Events) != len(want) {
		t.Fatalf("len(Events) = %d, want %d", len(staff.Events), len(want))
	}
	for i, w := range want {
		got := staff.Events[i]
		if got.Tick != w.Tick || got.Type != w.Type || got.Key != w.Key || got.Velocity != w.Velocity {
			t.Errorf("event %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestGenerateMIDI_RepeatReplays(t *testing.T) {
	d := buildDoc(t,
		[]score.Element{score.NewNote(score.PitchC, 4, score.DurHalf), score.NewNote(score.PitchD, 4, score.DurHalf)},
		[]score.Element{score.NewMRpt()},
	)
	opts := processed(t, d)

	seq := GenerateMIDI(d, opts)
	staff := seq.Tracks[1]
	if len(staff.Events) != 8 {
		t.Fatalf("len(Events) = %d, want the two measures' 8 events", len(staff.Events))
	}
	replayed := staff.Events[4]
	if replayed.Tick != 1920 || replayed.Type != midi.NoteOn || replayed.Key != 60 {
		t.Errorf("first replayed event = %+v, want note 60 on at tick 1920", replayed)
	}
	if got := seq.Duration(); got != 3840 {
		t.Errorf("Duration() = %d, want 3840", got)
	}
}

func TestGenerateMIDI_CueVelocity(t *testing.T) {
	d := buildDoc(t, []score.Element{quarter(score.PitchC)})
	d.Measures()[0].Staff(1).Layer(1).SetCue(true)
	opts := processed(t, d)

	seq := GenerateMIDI(d, opts)
	on := seq.Tracks[1].Events[0]
	if on.Type != midi.NoteOn || on.Velocity != midiCueVelocity {
		t.Errorf("cue note event = %+v, want velocity %d", on, midiCueVelocity)
	}
}

func TestGenerateMIDI_ChordNotes(t *testing.T) {
	chord := score.NewChord(score.DurQuarter,
		score.NewNote(score.PitchC, 4, score.DurQuarter),
		score.NewNote(score.PitchE, 4, score.DurQuarter),
		score.NewNote(score.PitchG, 4, score.DurQuarter),
	)
	d := buildDoc(t, []score.Element{chord})
	opts := processed(t, d)

	seq := GenerateMIDI(d, opts)
	staff := seq.Tracks[1]
	if len(staff.Events) != 6 {
		t.Fatalf("len(Events) = %d, want 6 for a three-note chord", len(staff.Events))
	}
	keys := map[uint8]bool{}
	for _, ev := range staff.Events {
		if ev.Type == midi.NoteOn {
			if ev.Tick != 0 {
				t.Errorf("chord note on at tick %d, want 0", ev.Tick)
			}
			keys[ev.Key] = true
		}
	}
	for _, want := range []uint8{60, 64, 67} {
		if !keys[want] {
			t.Errorf("missing note on for key %d", want)
		}
	}
}
