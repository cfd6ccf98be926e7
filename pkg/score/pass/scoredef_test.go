package pass

import (
	"testing"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func validOptions(t *testing.T, opts *Options) *Options {
	t.Helper()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	return opts
}

func TestSetCurrentScoreDef_OpeningMeasure(t *testing.T) {
	d := buildDoc(t,
		[]score.Element{quarter(score.PitchC)},
		[]score.Element{quarter(score.PitchD)},
	)
	score.Walk(d, UnsetCurrentScoreDef{})
	SetCurrentScoreDef(d, validOptions(t, &Options{}))

	first := d.Measures()[0].Staff(1).Layer(1)
	if !first.HasStaffDef() {
		t.Fatal("HasStaffDef() = false for the opening measure, want true")
	}
	if first.CurrentClef() == nil {
		t.Error("CurrentClef() = nil, want the definition clef")
	}
	if first.CurrentMeterSig() == nil {
		t.Error("CurrentMeterSig() = nil, want the definition meter")
	}

	if second := d.Measures()[1].Staff(1).Layer(1); second.HasStaffDef() {
		t.Error("HasStaffDef() = true for an unchanged measure, want false")
	}
}

func TestSetCurrentScoreDef_SystemStart(t *testing.T) {
	d := buildDoc(t, []score.Element{quarter(score.PitchC)})
	sys2 := score.NewSystem()
	if err := d.AddSystem(sys2); err != nil {
		t.Fatalf("AddSystem() error = %v", err)
	}
	addMeasure(t, sys2, 2, quarter(score.PitchD))

	score.Walk(d, UnsetCurrentScoreDef{})
	SetCurrentScoreDef(d, validOptions(t, &Options{}))

	l := d.Measures()[1].Staff(1).Layer(1)
	if l.CurrentClef() == nil {
		t.Error("CurrentClef() = nil at a system start, want the definition clef")
	}
	// The meter repeats only where it changed, not at system breaks.
	if l.CurrentMeterSig() != nil {
		t.Errorf("CurrentMeterSig() = %v at a system start, want nil", l.CurrentMeterSig())
	}
}

// buildKeyedDoc creates two measures under a definition carrying three
// sharps, with a change to one sharp scheduled at the second measure.
func buildKeyedDoc(t *testing.T) *score.Doc {
	t.Helper()
	d := score.NewDoc()
	def := score.NewStaffDef(1)
	def.SetClef(score.NewClef(score.ClefG, 2))
	def.SetKeySig(score.NewKeySig(3, score.AccidSharp))
	def.SetMeterSig(score.NewMeterSig(4, 4))
	if err := d.ScoreDef().AddStaffDef(def); err != nil {
		t.Fatalf("AddStaffDef() error = %v", err)
	}
	sys := score.NewSystem()
	if err := d.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem() error = %v", err)
	}
	addMeasure(t, sys, 1, quarter(score.PitchC))
	addMeasure(t, sys, 2, quarter(score.PitchD))

	change := score.NewScoreDef()
	cd := score.NewStaffDef(1)
	cd.SetKeySig(score.NewKeySig(1, score.AccidSharp))
	if err := change.AddStaffDef(cd); err != nil {
		t.Fatalf("AddStaffDef() error = %v", err)
	}
	d.Measures()[1].SetScoreDefChange(change)
	return d
}

func TestSetCurrentScoreDef_MidScoreKeyChange(t *testing.T) {
	d := buildKeyedDoc(t)

	score.Walk(d, UnsetCurrentScoreDef{})
	SetCurrentScoreDef(d, validOptions(t, &Options{}))

	second := d.Measures()[1].Staff(1).Layer(1)
	if got := second.CurrentKeySig(); got == nil || got.AccidCount() != 1 {
		t.Fatalf("CurrentKeySig() = %v, want the one-sharp change", got)
	}
	if !second.DrawKeySigCancellation() {
		t.Error("DrawKeySigCancellation() = false after dropping accidentals, want true")
	}

	first := d.Measures()[0].Staff(1).Layer(1)
	if !first.HasCautionStaffDef() {
		t.Fatal("HasCautionStaffDef() = false before the change, want true")
	}
	if got := first.CautionKeySig(); got == nil || got.AccidCount() != 1 {
		t.Errorf("CautionKeySig() = %v, want the one-sharp change", got)
	}
	if !first.DrawCautionKeySigCancellation() {
		t.Error("DrawCautionKeySigCancellation() = false, want true")
	}
}

func TestSetCurrentScoreDef_SkipCancellation(t *testing.T) {
	d := buildKeyedDoc(t)

	score.Walk(d, UnsetCurrentScoreDef{})
	SetCurrentScoreDef(d, validOptions(t, &Options{SkipCancellation: true}))

	second := d.Measures()[1].Staff(1).Layer(1)
	if second.CurrentKeySig() == nil {
		t.Fatal("CurrentKeySig() = nil, want the changed signature")
	}
	if second.DrawKeySigCancellation() {
		t.Error("DrawKeySigCancellation() = true with cancellation disabled, want false")
	}
}

func TestSetCurrentScoreDef_RerunIsStable(t *testing.T) {
	d := buildDoc(t,
		[]score.Element{quarter(score.PitchC)},
		[]score.Element{quarter(score.PitchD)},
	)
	opts := validOptions(t, &Options{})

	for run := 1; run <= 2; run++ {
		score.Walk(d, UnsetCurrentScoreDef{})
		SetCurrentScoreDef(d, opts)

		if l := d.Measures()[0].Staff(1).Layer(1); !l.HasStaffDef() {
			t.Errorf("run %d: HasStaffDef() = false for the opening measure, want true", run)
		}
		if l := d.Measures()[1].Staff(1).Layer(1); l.HasStaffDef() {
			t.Errorf("run %d: HasStaffDef() = true for an unchanged measure, want false", run)
		}
	}
}
