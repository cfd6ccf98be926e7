package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive context browser
// =============================================================================

// InspectModel is the bubbletea model for browsing resolved layer context.
// One measure is selected at a time; the table below the list shows the
// clef/key/meter state each layer carries there after context propagation.
type InspectModel struct {
	Doc      *score.Doc
	Measures []*score.Measure
	Cursor   int
	Height   int
	Offset   int
}

// NewInspectModel creates an inspect model over a processed document.
func NewInspectModel(d *score.Doc) InspectModel {
	return InspectModel{
		Doc:      d,
		Measures: d.Measures(),
		Cursor:   0,
		Height:   10,
		Offset:   0,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Measures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the context table, and the footer.
		m.Height = msg.Height - 14
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Score"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Measures) == 0 {
		b.WriteString(listDimStyle.Render("  score has no measures"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Measures) {
		end = len(m.Measures)
	}

	for i := m.Offset; i < end; i++ {
		ms := m.Measures[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + measureListLabel(ms)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.contextTable(m.Measures[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Measures))))

	return b.String()
}

// contextTable renders the per-layer context for one measure.
func (m InspectModel) contextTable(ms *score.Measure) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	cueRows := []bool{}
	for _, st := range ms.Staves() {
		for _, l := range st.Layers() {
			layer := fmt.Sprintf("%d", l.N())
			if l.IsCue() {
				layer += " (cue)"
			}
			key := keyLabel(l.CurrentKeySig())
			if l.DrawKeySigCancellation() {
				key += " cancel"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", st.N()),
				layer,
				clefLabel(l.CurrentClef()),
				key,
				meterLabel(l),
				fmt.Sprintf("%d", l.Len()),
			})
			cueRows = append(cueRows, l.IsCue())
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Staff", "Layer", "Clef", "Key", "Meter", "Elements").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(cueRows) && cueRows[row] {
				return listDimStyle
			}
			return listNormalStyle
		})

	return t.Render()
}

// =============================================================================
// Helpers
// =============================================================================

func measureListLabel(ms *score.Measure) string {
	label := fmt.Sprintf("measure %d", ms.N())
	if ms.IsUnmeasured() {
		label += " (unmeasured)"
	}
	if ms.ScoreDefChange() != nil {
		label += " · score def change"
	}
	return label
}

func clefLabel(c *score.Clef) string {
	if c == nil {
		return "—"
	}
	s := fmt.Sprintf("%s%d", c.Shape(), c.Line())
	if c.Dis() != 0 {
		dir := "va"
		if c.DisBelow() {
			dir = "vb"
		}
		s += fmt.Sprintf(" %d%s", c.Dis(), dir)
	}
	return s
}

func keyLabel(k *score.KeySig) string {
	if k == nil {
		return "—"
	}
	if k.AccidCount() == 0 {
		return "0"
	}
	return fmt.Sprintf("%d%s", k.AccidCount(), k.AccidType())
}

// meterLabel prefers the mensuration sign for mensural layers, then the
// meter group, then the plain meter signature.
func meterLabel(l *score.Layer) string {
	if mens := l.CurrentMensur(); mens != nil {
		s := mens.Sign().String()
		if mens.HasDot() {
			s += "."
		}
		return s
	}
	if grp := l.CurrentMeterSigGrp(); grp != nil {
		sigs := make([]string, len(grp.Sigs()))
		for i, sig := range grp.Sigs() {
			sigs[i] = meterSigLabel(sig)
		}
		return strings.Join(sigs, " | ")
	}
	if sig := l.CurrentMeterSig(); sig != nil {
		return meterSigLabel(sig)
	}
	return "—"
}

func meterSigLabel(sig *score.MeterSig) string {
	switch sig.Sym() {
	case score.MeterSymCommon:
		return "C"
	case score.MeterSymCut:
		return "C|"
	}
	return fmt.Sprintf("%d/%d", sig.Count(), sig.Unit())
}
