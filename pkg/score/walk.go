package score

// Code is the status a visitor returns from each hook to steer the
// traversal.
type Code int

const (
	// Continue proceeds with the walk.
	Continue Code = iota
	// SkipChildren skips the current node's children but still runs its
	// end hook.
	SkipChildren
	// Stop aborts the walk immediately.
	Stop
)

// Visitor receives the nodes of a document walk. Each level has a begin and
// an end hook; containers run their end hook after their children unless
// the walk was stopped. Passes implement Visitor, usually by embedding
// [NoopVisitor] and overriding the hooks they need.
type Visitor interface {
	VisitDoc(d *Doc) Code
	VisitDocEnd(d *Doc) Code
	VisitSystem(s *System) Code
	VisitSystemEnd(s *System) Code
	VisitMeasure(m *Measure) Code
	VisitMeasureEnd(m *Measure) Code
	VisitStaff(s *Staff) Code
	VisitStaffEnd(s *Staff) Code
	VisitLayer(l *Layer) Code
	VisitLayerEnd(l *Layer) Code
	VisitElement(e Element) Code
	VisitElementEnd(e Element) Code
}

// NoopVisitor continues at every hook. Embed it to implement only the hooks
// a pass needs.
type NoopVisitor struct{}

func (NoopVisitor) VisitDoc(*Doc) Code            { return Continue }
func (NoopVisitor) VisitDocEnd(*Doc) Code         { return Continue }
func (NoopVisitor) VisitSystem(*System) Code      { return Continue }
func (NoopVisitor) VisitSystemEnd(*System) Code   { return Continue }
func (NoopVisitor) VisitMeasure(*Measure) Code    { return Continue }
func (NoopVisitor) VisitMeasureEnd(*Measure) Code { return Continue }
func (NoopVisitor) VisitStaff(*Staff) Code        { return Continue }
func (NoopVisitor) VisitStaffEnd(*Staff) Code     { return Continue }
func (NoopVisitor) VisitLayer(*Layer) Code        { return Continue }
func (NoopVisitor) VisitLayerEnd(*Layer) Code     { return Continue }
func (NoopVisitor) VisitElement(Element) Code     { return Continue }
func (NoopVisitor) VisitElementEnd(Element) Code  { return Continue }

// Walk runs a depth-first traversal of the document in structural order:
// systems, measures, staves, layers, elements, each in child-index order.
// It returns Stop when the visitor aborted the walk and Continue otherwise.
func Walk(d *Doc, v Visitor) Code {
	if d == nil {
		return Continue
	}
	code := v.VisitDoc(d)
	if code == Stop {
		return Stop
	}
	if code != SkipChildren {
		for _, s := range d.systems {
			if walkSystem(s, v) == Stop {
				return Stop
			}
		}
	}
	if v.VisitDocEnd(d) == Stop {
		return Stop
	}
	return Continue
}

func walkSystem(s *System, v Visitor) Code {
	code := v.VisitSystem(s)
	if code == Stop {
		return Stop
	}
	if code != SkipChildren {
		for _, m := range s.measures {
			if walkMeasure(m, v) == Stop {
				return Stop
			}
		}
	}
	return v.VisitSystemEnd(s)
}

func walkMeasure(m *Measure, v Visitor) Code {
	code := v.VisitMeasure(m)
	if code == Stop {
		return Stop
	}
	if code != SkipChildren {
		for _, s := range m.staves {
			if walkStaff(s, v) == Stop {
				return Stop
			}
		}
	}
	return v.VisitMeasureEnd(m)
}

func walkStaff(s *Staff, v Visitor) Code {
	code := v.VisitStaff(s)
	if code == Stop {
		return Stop
	}
	if code != SkipChildren {
		for _, l := range s.layers {
			if walkLayer(l, v) == Stop {
				return Stop
			}
		}
	}
	return v.VisitStaffEnd(s)
}

func walkLayer(l *Layer, v Visitor) Code {
	code := v.VisitLayer(l)
	if code == Stop {
		return Stop
	}
	if code != SkipChildren {
		for _, e := range l.elements {
			ec := v.VisitElement(e)
			if ec == Stop {
				return Stop
			}
			if v.VisitElementEnd(e) == Stop {
				return Stop
			}
		}
	}
	return v.VisitLayerEnd(l)
}

// elementFinder locates an element by identifier during a walk.
type elementFinder struct {
	NoopVisitor
	id    string
	found *Element
}

func (f *elementFinder) VisitElement(e Element) Code {
	if e.Base().ID() == f.id {
		*f.found = e
		return Stop
	}
	return Continue
}
