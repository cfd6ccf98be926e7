package doctree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/fernandoherreradelasheras/verovio/pkg/render"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// Options configures document tree rendering.
type Options struct {
	// Detailed includes musical content in element labels: pitches,
	// durations, onsets. When false, only the element kind is shown.
	Detailed bool

	// MaxElements caps the element nodes drawn per layer; further
	// elements collapse into a single summary node. Zero draws all.
	MaxElements int
}

// ToDOT converts a document's containment hierarchy to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
//
// Signature elements (clefs, key signatures, mensuration and meter signs)
// are filled grey to set them apart from durational events; hidden layers
// and elements are rendered with dashed outlines.
func ToDOT(d *score.Doc, opts Options) string {
	b := &builder{}

	docID := d.ID()
	b.node(docID, docLabel(d, opts.Detailed), nil)

	if sd := d.ScoreDef(); sd != nil && len(sd.StaffDefs()) > 0 {
		b.scoreDef(docID, docID+"-scoredef", "score def", sd)
	}

	for i, sys := range d.Systems() {
		b.node(sys.ID(), fmt.Sprintf("system %d", i+1), nil)
		b.edge(docID, sys.ID())
		for _, m := range sys.Measures() {
			b.measure(sys.ID(), m, opts)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph score {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	for _, n := range b.nodes {
		buf.WriteString(n)
	}
	buf.WriteString("\n")
	for _, e := range b.edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// builder accumulates node and edge statements during the document walk.
type builder struct {
	nodes []string
	edges []string
}

func (b *builder) node(id, label string, extra []string) {
	attrs := append([]string{fmt.Sprintf("label=%q", label)}, extra...)
	b.nodes = append(b.nodes, fmt.Sprintf("  %q [%s];\n", id, strings.Join(attrs, ", ")))
}

func (b *builder) edge(from, to string) {
	b.edges = append(b.edges, fmt.Sprintf("  %q -> %q;\n", from, to))
}

var greyAttrs = []string{"fillcolor=lightgrey"}
var dashedAttrs = []string{"style=\"rounded,filled,dashed\""}
var collapsedAttrs = []string{"style=\"rounded,filled,dashed\"", "fillcolor=lightgrey"}

// scoreDef draws a grey branch summarizing the staff definitions.
func (b *builder) scoreDef(parent, id, label string, sd *score.ScoreDef) {
	b.node(id, label, greyAttrs)
	b.edge(parent, id)
	for _, def := range sd.StaffDefs() {
		defID := fmt.Sprintf("%s-staff%d", id, def.N())
		b.node(defID, staffDefLabel(def), greyAttrs)
		b.edge(id, defID)
	}
}

func (b *builder) measure(parent string, m *score.Measure, opts Options) {
	b.node(m.ID(), measureLabel(m, opts.Detailed), nil)
	b.edge(parent, m.ID())

	if change := m.ScoreDefChange(); change != nil {
		b.scoreDef(m.ID(), m.ID()+"-scoredef", "score def change", change)
	}

	for _, st := range m.Staves() {
		b.node(st.ID(), staffLabel(st), nil)
		b.edge(m.ID(), st.ID())
		for _, l := range st.Layers() {
			b.layer(st.ID(), l, opts)
		}
	}
}

func (b *builder) layer(parent string, l *score.Layer, opts Options) {
	var extra []string
	if !l.IsVisible() {
		extra = dashedAttrs
	}
	b.node(l.ID(), layerLabel(l), extra)
	b.edge(parent, l.ID())

	els := l.Elements()
	shown := els
	if opts.MaxElements > 0 && len(els) > opts.MaxElements {
		shown = els[:opts.MaxElements]
	}
	for _, e := range shown {
		b.node(e.Base().ID(), elementLabel(e, opts.Detailed), elementAttrs(e))
		b.edge(l.ID(), e.Base().ID())
	}
	if rest := len(els) - len(shown); rest > 0 {
		id := l.ID() + "-more"
		b.node(id, fmt.Sprintf("... %d more", rest), collapsedAttrs)
		b.edge(l.ID(), id)
	}
}

func docLabel(d *score.Doc, detailed bool) string {
	if !detailed {
		return "score"
	}
	parts := []string{"score", "id: " + d.ID()}
	if d.IsMensural() {
		parts = append(parts, "mensural")
	}
	return strings.Join(parts, "\n")
}

func measureLabel(m *score.Measure, detailed bool) string {
	label := fmt.Sprintf("measure %d", m.N())
	if m.IsUnmeasured() {
		label += " (unmeasured)"
	}
	if !detailed {
		return label
	}
	parts := []string{label, fmt.Sprintf("onset: %g", m.ScoreTimeOnset())}
	if m.Width() > 0 {
		parts = append(parts, fmt.Sprintf("width: %g", m.Width()))
	}
	return strings.Join(parts, "\n")
}

func staffLabel(st *score.Staff) string {
	if st.Lines() != 5 {
		return fmt.Sprintf("staff %d (%d lines)", st.N(), st.Lines())
	}
	return fmt.Sprintf("staff %d", st.N())
}

func layerLabel(l *score.Layer) string {
	label := fmt.Sprintf("layer %d", l.N())
	if l.IsCue() {
		label += " (cue)"
	}
	return label
}

// staffDefLabel summarizes one staff definition on a single line,
// e.g. "staff 1: G2 1s 2/2".
func staffDefLabel(def *score.StaffDef) string {
	parts := []string{fmt.Sprintf("staff %d:", def.N())}
	if c := def.Clef(); c != nil {
		parts = append(parts, clefText(c))
	}
	if k := def.KeySig(); k != nil {
		parts = append(parts, keySigText(k))
	}
	if m := def.Mensur(); m != nil {
		parts = append(parts, mensurText(m))
	}
	if ms := def.MeterSig(); ms != nil {
		parts = append(parts, meterSigText(ms))
	}
	if g := def.MeterSigGrp(); g != nil {
		sigs := make([]string, len(g.Sigs()))
		for i, s := range g.Sigs() {
			sigs[i] = meterSigText(s)
		}
		parts = append(parts, strings.Join(sigs, "|"))
	}
	return strings.Join(parts, " ")
}

func elementLabel(e score.Element, detailed bool) string {
	kind := e.Kind().String()
	if !detailed {
		return kind
	}
	parts := append([]string{kind}, elementDetail(e)...)
	return strings.Join(parts, "\n")
}

func elementAttrs(e score.Element) []string {
	var attrs []string
	if score.RankFor(e.Kind()) < score.RankEvent {
		attrs = append(attrs, greyAttrs...)
	}
	if !e.Base().IsVisible() {
		attrs = append(attrs, dashedAttrs...)
	}
	return attrs
}

// elementDetail returns the extra label lines of the detailed mode.
func elementDetail(e score.Element) []string {
	switch v := e.(type) {
	case *score.Note:
		return append([]string{pitchText(v.Pname(), v.Accid(), v.Oct()), "dur: " + durText(v.Dur(), v.Dots())}, onsetText(e)...)
	case *score.Rest:
		return append([]string{"dur: " + durText(v.Dur(), v.Dots())}, onsetText(e)...)
	case *score.Space:
		return append([]string{"dur: " + durText(v.Dur(), v.Dots())}, onsetText(e)...)
	case *score.Chord:
		notes := make([]string, len(v.Notes()))
		for i, n := range v.Notes() {
			notes[i] = pitchText(n.Pname(), n.Accid(), n.Oct())
		}
		return append([]string{strings.Join(notes, " "), "dur: " + durText(v.Dur(), v.Dots())}, onsetText(e)...)
	case *score.BarLine:
		return []string{"form: " + barFormText(v.Form())}
	case *score.Clef:
		return clefDetail(v)
	case *score.KeySig:
		return []string{keySigText(v)}
	case *score.MeterSig:
		return []string{meterSigText(v)}
	case *score.MeterSigGrp:
		sigs := make([]string, len(v.Sigs()))
		for i, s := range v.Sigs() {
			sigs[i] = meterSigText(s)
		}
		return []string{v.Func() + ": " + strings.Join(sigs, "|")}
	case *score.Mensur:
		return []string{mensurText(v)}
	case *score.Custos:
		return []string{pitchText(v.Pname(), score.AccidNone, v.Oct())}
	}
	return nil
}

func onsetText(e score.Element) []string {
	b := e.Base()
	return []string{fmt.Sprintf("onset: %g", b.Onset())}
}

func pitchText(p score.PitchName, a score.Accidental, oct int) string {
	return fmt.Sprintf("%s%s%d", p, a, oct)
}

func durText(d score.Duration, dots int) string {
	return d.String() + strings.Repeat(".", dots)
}

func clefText(c *score.Clef) string {
	return fmt.Sprintf("%s%d", c.Shape(), c.Line())
}

func clefDetail(c *score.Clef) []string {
	parts := []string{clefText(c)}
	if c.Dis() != 0 {
		dir := "above"
		if c.DisBelow() {
			dir = "below"
		}
		parts = append(parts, fmt.Sprintf("dis: %d %s", c.Dis(), dir))
	}
	return parts
}

func keySigText(k *score.KeySig) string {
	if k.AccidCount() == 0 {
		return "0"
	}
	return fmt.Sprintf("%d%s", k.AccidCount(), k.AccidType())
}

func meterSigText(m *score.MeterSig) string {
	switch m.Sym() {
	case score.MeterSymCommon:
		return "C"
	case score.MeterSymCut:
		return "C|"
	}
	return fmt.Sprintf("%d/%d", m.Count(), m.Unit())
}

func mensurText(m *score.Mensur) string {
	s := m.Sign().String()
	if m.HasDot() {
		s += "."
	}
	return s
}

func barFormText(f score.BarForm) string {
	switch f {
	case score.BarDouble:
		return "dbl"
	case score.BarEnd:
		return "end"
	}
	return "single"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the view box starts at the
// origin and the pixel size matches it, which keeps browser zoom sane.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
