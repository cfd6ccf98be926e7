package score

import "testing"

func TestStaffDef_ApplyFrom(t *testing.T) {
	sd := NewStaffDef(1)
	sd.SetClef(NewClef(ClefG, 2))
	sd.SetKeySig(NewKeySig(2, AccidSharp))

	change := NewStaffDef(1)
	change.SetKeySig(NewKeySig(4, AccidSharp))

	if !sd.ApplyFrom(change) {
		t.Fatal("ApplyFrom = false, want true for a key change")
	}
	if got := sd.KeySig().AccidCount(); got != 4 {
		t.Errorf("AccidCount = %d, want 4", got)
	}
	if sd.PrevKeySig() == nil || sd.PrevKeySig().AccidCount() != 2 {
		t.Error("previous key signature not retained")
	}
	if !sd.Redraw(KindKeySig) {
		t.Error("Redraw(KindKeySig) = false, want true")
	}
	if sd.Redraw(KindClef) {
		t.Error("Redraw(KindClef) = true, want false (clef untouched)")
	}
}

func TestStaffDef_ApplyFrom_IdenticalIsQuiet(t *testing.T) {
	sd := NewStaffDef(1)
	sd.SetClef(NewClef(ClefG, 2))

	change := NewStaffDef(1)
	change.SetClef(NewClef(ClefG, 2))

	if sd.ApplyFrom(change) {
		t.Error("ApplyFrom = true for identical content, want false")
	}
	if sd.Redraw(KindClef) {
		t.Error("Redraw(KindClef) = true for identical content, want false")
	}
}

func TestScoreDef_Reset(t *testing.T) {
	scoreDef := NewScoreDef()
	sd := NewStaffDef(1)
	sd.SetClef(NewClef(ClefG, 2))
	sd.SetKeySig(NewKeySig(2, AccidSharp))
	if err := scoreDef.AddStaffDef(sd); err != nil {
		t.Fatal(err)
	}

	change := NewStaffDef(1)
	change.SetKeySig(NewKeySig(1, AccidFlat))
	sd.ApplyFrom(change)

	scoreDef.Reset()

	if got := sd.KeySig().AccidCount(); got != 2 {
		t.Errorf("AccidCount after reset = %d, want the sealed 2", got)
	}
	if got := sd.KeySig().AccidType(); got != AccidSharp {
		t.Errorf("AccidType after reset = %v, want sharp", got)
	}
	if sd.PrevKeySig() != nil {
		t.Error("PrevKeySig survived reset")
	}
	if sd.Redraw(KindKeySig) {
		t.Error("redraw flag survived reset")
	}

	// The same change after a reset behaves exactly like the first run.
	if !sd.ApplyFrom(change) {
		t.Error("ApplyFrom after reset = false, want true")
	}
	if sd.PrevKeySig() == nil || sd.PrevKeySig().AccidCount() != 2 {
		t.Error("previous key signature after reset not retained")
	}
}

func TestScoreDef_AddStaffDef(t *testing.T) {
	scoreDef := NewScoreDef()
	if err := scoreDef.AddStaffDef(NewStaffDef(1)); err != nil {
		t.Fatal(err)
	}
	if err := scoreDef.AddStaffDef(NewStaffDef(1)); err == nil {
		t.Error("AddStaffDef with duplicate number = nil, want error")
	}
	if err := scoreDef.AddStaffDef(nil); err == nil {
		t.Error("AddStaffDef(nil) = nil, want error")
	}
	if got := scoreDef.StaffDef(1); got == nil {
		t.Error("StaffDef(1) = nil, want the added definition")
	}
	if got := scoreDef.StaffDef(9); got != nil {
		t.Errorf("StaffDef(9) = %v, want nil", got)
	}
}
