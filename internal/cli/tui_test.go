package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func TestClefLabel(t *testing.T) {
	if got := clefLabel(nil); got != "—" {
		t.Errorf("clefLabel(nil) = %q, want —", got)
	}
	if got := clefLabel(score.NewClef(score.ClefG, 2)); got != "G2" {
		t.Errorf("clefLabel() = %q, want G2", got)
	}

	c := score.NewClef(score.ClefG, 2)
	c.SetDis(8, true)
	got := clefLabel(c)
	if !strings.Contains(got, "8vb") {
		t.Errorf("clefLabel() = %q, want octave displacement below", got)
	}
}

func TestKeyLabel(t *testing.T) {
	if got := keyLabel(nil); got != "—" {
		t.Errorf("keyLabel(nil) = %q, want —", got)
	}
	if got := keyLabel(score.NewKeySig(0, score.AccidNone)); got != "0" {
		t.Errorf("keyLabel() = %q, want 0", got)
	}
	if got := keyLabel(score.NewKeySig(3, score.AccidFlat)); got != "3f" {
		t.Errorf("keyLabel() = %q, want 3f", got)
	}
}

func TestMeterSigLabel(t *testing.T) {
	if got := meterSigLabel(score.NewMeterSig(6, 8)); got != "6/8" {
		t.Errorf("meterSigLabel() = %q, want 6/8", got)
	}

	cut := score.NewMeterSig(2, 2)
	cut.SetSym(score.MeterSymCut)
	if got := meterSigLabel(cut); got != "C|" {
		t.Errorf("meterSigLabel() = %q, want C|", got)
	}
}

func TestMeasureListLabel(t *testing.T) {
	m := score.NewMeasure(3)
	if got := measureListLabel(m); got != "measure 3" {
		t.Errorf("measureListLabel() = %q, want %q", got, "measure 3")
	}

	u := score.NewMeasure(1)
	u.SetUnmeasured(true)
	if got := measureListLabel(u); !strings.Contains(got, "unmeasured") {
		t.Errorf("measureListLabel() = %q, want unmeasured marker", got)
	}
}

func TestInspectModelNavigation(t *testing.T) {
	d := score.NewDoc()
	sys := score.NewSystem()
	if err := d.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem() error: %v", err)
	}
	for n := 1; n <= 3; n++ {
		if err := sys.AddMeasure(score.NewMeasure(n)); err != nil {
			t.Fatalf("AddMeasure() error: %v", err)
		}
	}

	m := NewInspectModel(d)
	if m.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0", m.Cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(InspectModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(InspectModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after up = %d, want 0", m.Cursor)
	}

	// Never moves above the first measure.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(InspectModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor clamped = %d, want 0", m.Cursor)
	}

	view := m.View()
	if !strings.Contains(view, "measure 1") {
		t.Error("View() should list the measures")
	}
}
