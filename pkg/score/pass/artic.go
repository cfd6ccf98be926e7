package pass

import (
	"strings"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// ConvertMarkupArtic splits combined articulation markup ("stacc-ten") into
// individual articulations on the carrying note, then clears the markup
// form. Unknown tokens are dropped. Converted counts how many notes were
// rewritten.
type ConvertMarkupArtic struct {
	score.NoopVisitor

	Converted int
}

func (p *ConvertMarkupArtic) VisitElement(e score.Element) score.Code {
	switch el := e.(type) {
	case *score.Note:
		p.convert(el)
	case *score.Chord:
		for _, n := range el.Notes() {
			p.convert(n)
		}
	}
	return score.Continue
}

func (p *ConvertMarkupArtic) convert(n *score.Note) {
	markup := n.ArticMarkup()
	if markup == "" {
		return
	}

	artics := n.Artics()
	for _, tok := range strings.Split(markup, "-") {
		if a, ok := score.ParseArticulation(tok); ok {
			artics = append(artics, a)
		}
	}
	n.SetArtics(artics)
	n.SetArticMarkup("")
	p.Converted++
}
