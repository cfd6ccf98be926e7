package score_test

import (
	"fmt"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func ExampleLayer_Insert() {
	// Build one voice: a clef change lands between the two notes.
	l := score.NewLayer(1)
	l.Insert(score.NewNote(score.PitchC, 4, score.DurQuarter), 0)
	l.Insert(score.NewNote(score.PitchE, 4, score.DurQuarter), 10)
	l.Insert(score.NewClef(score.ClefF, 4), 5)

	for _, e := range l.Elements() {
		fmt.Println(e.Kind(), e.Base().DrawingX())
	}
	// Output:
	// note 0
	// clef 5
	// note 10
}

func ExampleLayer_Clef() {
	l := score.NewLayer(1)
	first := score.NewNote(score.PitchC, 4, score.DurQuarter)
	second := score.NewNote(score.PitchE, 4, score.DurQuarter)
	l.Insert(first, 0)
	l.Insert(second, 10)
	l.Insert(score.NewClef(score.ClefG, 2), 0)

	// The note at 0 precedes the clef, the note at 10 follows it.
	fmt.Println(l.Clef(first) == nil)
	fmt.Println(l.Clef(second).Shape())
	// Output:
	// true
	// G
}

func ExampleLayer_SetDrawingStaffDefValues() {
	sd := score.NewStaffDef(1)
	sd.SetClef(score.NewClef(score.ClefG, 2))
	sd.SetKeySig(score.NewKeySig(2, score.AccidSharp))
	sd.SetRedraw(score.KindClef, true)
	sd.SetRedraw(score.KindKeySig, true)

	l := score.NewLayer(1)
	l.SetDrawingStaffDefValues(sd, false)
	fmt.Println("first:", l.HasStaffDef())

	// Propagating the identical definition again draws nothing.
	l.SetDrawingStaffDefValues(sd, false)
	fmt.Println("repeat:", l.HasStaffDef())
	// Output:
	// first: true
	// repeat: false
}
