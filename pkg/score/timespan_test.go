package score

import (
	"reflect"
	"testing"
)

// spanNote places a note on the layer sounding over [onset, offset).
func spanNote(t *testing.T, l *Layer, x, onset, offset float64) *Note {
	t.Helper()
	n := NewNote(PitchC, 4, DurQuarter)
	if l.Insert(n, x) == nil {
		t.Fatal("Insert failed")
	}
	n.SetOnset(onset)
	n.SetOffset(offset)
	return n
}

// twoLayerStaff builds one measure with a single staff carrying two layers.
func twoLayerStaff(t *testing.T) (*Measure, *Layer, *Layer) {
	t.Helper()
	m := NewMeasure(1)
	st := NewStaff(1)
	if err := m.AddStaff(st); err != nil {
		t.Fatal(err)
	}
	l1 := NewLayer(1)
	l2 := NewLayer(2)
	if err := st.AddLayer(l1); err != nil {
		t.Fatal(err)
	}
	if err := st.AddLayer(l2); err != nil {
		t.Fatal(err)
	}
	return m, l1, l2
}

func TestLayer_LayersInTimeSpan_HalfOpen(t *testing.T) {
	m, l1, l2 := twoLayerStaff(t)
	spanNote(t, l1, 0, 0, 5)
	spanNote(t, l2, 5, 5, 6)

	// [2,5) touches the first note only; the note starting exactly at the
	// interval end stays out.
	got := l1.LayersInTimeSpan(2, 3, m, 1)
	if want := []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("LayersInTimeSpan(2, 3) = %v, want %v", got, want)
	}

	got = l1.LayersInTimeSpan(2, 3.5, m, 1)
	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("LayersInTimeSpan(2, 3.5) = %v, want %v", got, want)
	}
}

func TestLayer_LayersInTimeSpan_ZeroDuration(t *testing.T) {
	m, l1, _ := twoLayerStaff(t)
	n := spanNote(t, l1, 2, 2, 2)

	if got := l1.LayersInTimeSpan(2, 3, m, 1); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("onset at interval start: got %v, want [1]", got)
	}
	if got := l1.LayersInTimeSpan(0, 2, m, 1); len(got) != 0 {
		t.Errorf("interval ending at onset: got %v, want empty", got)
	}
	if got := l1.LayersInTimeSpan(1, 2, m, 1); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("onset strictly inside: got %v, want [1]", got)
	}
	_ = n
}

func TestLayer_LayersInTimeSpan_CrossStaff(t *testing.T) {
	m := NewMeasure(1)
	upper := NewStaff(1)
	lower := NewStaff(2)
	if err := m.AddStaff(upper); err != nil {
		t.Fatal(err)
	}
	if err := m.AddStaff(lower); err != nil {
		t.Fatal(err)
	}
	upperLayer := NewLayer(1)
	lowerLayer := NewLayer(1)
	if err := upper.AddLayer(upperLayer); err != nil {
		t.Fatal(err)
	}
	if err := lower.AddLayer(lowerLayer); err != nil {
		t.Fatal(err)
	}

	spanNote(t, upperLayer, 0, 0, 4)
	crossed := spanNote(t, lowerLayer, 0, 0, 4)
	crossed.SetCrossStaff(upper)

	// The lower layer's note sounds on the upper staff, flagged negative.
	got := upperLayer.LayersInTimeSpan(0, 4, m, 1)
	if want := []int{-1, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("staff 1 layers = %v, want %v", got, want)
	}

	// Its home staff no longer sounds.
	if got := lowerLayer.LayersInTimeSpan(0, 4, m, 2); len(got) != 0 {
		t.Errorf("staff 2 layers = %v, want empty", got)
	}

	if got := upperLayer.LayerCountInTimeSpan(0, 4, m, 1); got != 2 {
		t.Errorf("LayerCountInTimeSpan = %d, want 2", got)
	}
}

func TestLayer_LayersForTimeSpanOf(t *testing.T) {
	m, l1, l2 := twoLayerStaff(t)
	n := spanNote(t, l1, 0, 0, 2)
	spanNote(t, l2, 0, 1, 3)
	_ = m

	got := l1.LayersForTimeSpanOf(n)
	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("LayersForTimeSpanOf = %v, want %v", got, want)
	}
	if got := l1.LayerCountForTimeSpanOf(n); got != 2 {
		t.Errorf("LayerCountForTimeSpanOf = %d, want 2", got)
	}

	if got := l1.LayersForTimeSpanOf(nil); got != nil {
		t.Errorf("LayersForTimeSpanOf(nil) = %v, want nil", got)
	}
	if got := l1.LayersForTimeSpanOf(NewNote(PitchC, 4, DurQuarter)); got != nil {
		t.Errorf("LayersForTimeSpanOf(detached) = %v, want nil", got)
	}
}

func TestLayer_ElementsInTimeSpan(t *testing.T) {
	m, l1, l2 := twoLayerStaff(t)
	a := spanNote(t, l1, 0, 0, 2)
	b := spanNote(t, l2, 0, 0, 2)
	late := spanNote(t, l2, 2, 2, 4)

	got := l1.ElementsInTimeSpan(0, 2, m, 1, false)
	if want := []Element{a, b}; !reflect.DeepEqual(got, want) {
		t.Errorf("ElementsInTimeSpan = %v, want both voices", got)
	}

	got = l1.ElementsInTimeSpan(0, 2, m, 1, true)
	if want := []Element{b}; !reflect.DeepEqual(got, want) {
		t.Errorf("excludeCurrent: got %v, want the other voice only", got)
	}
	_ = late
}

func TestLayer_ElementsForTimeSpanOf(t *testing.T) {
	m, l1, l2 := twoLayerStaff(t)
	a := spanNote(t, l1, 0, 0, 2)
	b := spanNote(t, l2, 0, 1, 3)
	_ = m

	got := l1.ElementsForTimeSpanOf(a, true)
	if want := []Element{b}; !reflect.DeepEqual(got, want) {
		t.Errorf("ElementsForTimeSpanOf = %v, want the overlapping other voice", got)
	}
}

func TestLayer_DrawingStemDirFor(t *testing.T) {
	m, l1, l2 := twoLayerStaff(t)
	solo := spanNote(t, l1, 0, 0, 2)
	_ = m

	// One sounding layer keeps stems free even when a direction is set.
	l1.SetDrawingStemDir(StemUp)
	if got := l1.DrawingStemDirFor(solo); got != StemNone {
		t.Errorf("single voice: got %v, want none", got)
	}

	// A second voice in the same span forces the assigned direction.
	spanNote(t, l2, 0, 0, 2)
	if got := l1.DrawingStemDirFor(solo); got != StemUp {
		t.Errorf("two voices: got %v, want up", got)
	}

	l1.SetDrawingStemDir(StemNone)
	if got := l1.DrawingStemDirFor(solo); got != StemNone {
		t.Errorf("unassigned: got %v, want none", got)
	}
}
