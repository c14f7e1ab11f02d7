package playfield

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ghthor/bloxide/game"
	"github.com/ghthor/bloxide/grid"
	"github.com/ghthor/bloxide/piece"
)

const (
	DefaultBlock = "  "
	GhostBlock   = "░░"
	DefaultEmpty = " ·"

	previews     = 3
	previewWidth = 4
)

var (
	blockStyles [piece.Count]lipgloss.Style
	ghostStyles [piece.Count]lipgloss.Style

	emptyStyle = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Bold(true)
	eventStyle = lipgloss.NewStyle().Italic(true).Faint(true)
)

func init() {
	for _, s := range piece.Shapes {
		c := lipgloss.Color(piece.Lookup(s).Color)
		blockStyles[s] = lipgloss.NewStyle().Background(c)
		ghostStyles[s] = lipgloss.NewStyle().Foreground(c)
	}
}

// panelView lays the board and the side panel out side by side.
type panelView struct {
	board string
	side  string
}

var _ table.Data = panelView{}

func (p panelView) At(row, col int) string {
	switch col {
	case 0:
		return p.board
	case 1:
		return p.side
	default:
		return ""
	}
}

func (p panelView) Rows() int    { return 1 }
func (p panelView) Columns() int { return 2 }

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 1 {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return lipgloss.NewStyle()
		})
}

// viewString adapts a rendered string to a tea.Model for the overlay.
type viewString string

func (v viewString) Init() tea.Cmd                       { return nil }
func (v viewString) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v viewString) View() string                        { return string(v) }

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.b.Reset()
	writeBoard(&m.b, m.game)
	m.panel.board = m.b.String()

	m.b.Reset()
	m.writeSide(&m.b)
	m.panel.side = m.b.String()

	m.table.Data(m.panel)
	v := lipgloss.JoinVertical(lipgloss.Left, m.table.Render(), m.help.View(m.keys))

	menu := m.menu()
	if menu == nil {
		return v
	}
	m.overlay.Foreground = viewString(menu.View())
	m.overlay.Background = viewString(v)
	return m.overlay.View()
}

// writeBoard renders the visible rows. The active piece is drawn over the
// stack and the ghost only shows through empty cells.
func writeBoard(b *strings.Builder, g *game.State) {
	locked, active, ghost := g.Locked(), g.Active(), g.Ghost()

	for r := locked.FirstVisibleRow(); r < locked.Rows(); r++ {
		for c := range locked.Cols() {
			switch {
			case active.HasBlockAt(r, c):
				writeCell(b, active.Cell(r, c), blockStyles[:], DefaultBlock)
			case locked.HasBlockAt(r, c):
				writeCell(b, locked.Cell(r, c), blockStyles[:], DefaultBlock)
			case ghost.HasBlockAt(r, c):
				writeCell(b, ghost.Cell(r, c), ghostStyles[:], GhostBlock)
			default:
				b.WriteString(emptyStyle.Render(DefaultEmpty))
			}
		}
		if r+1 < locked.Rows() {
			b.WriteByte('\n')
		}
	}
}

func writeCell(b *strings.Builder, cell grid.Cell, styles []lipgloss.Style, block string) {
	s, ok := cell.Shape()
	if !ok || int(s) >= len(styles) {
		b.WriteString(DefaultEmpty)
		return
	}
	b.WriteString(styles[s].Render(block))
}

// writePiece renders the spawn orientation of s trimmed to its occupied
// rows, padded to a fixed width.
func writePiece(b *strings.Builder, s piece.Shape) {
	o := &piece.Lookup(s).Orientations[0]
	for r := o.BoundsY[0]; r < o.BoundsY[1]; r++ {
		for c := o.BoundsX[0]; c < o.BoundsX[0]+previewWidth; c++ {
			if c < o.BoundsX[1] && o.Mask[r][c] {
				b.WriteString(blockStyles[s].Render(DefaultBlock))
			} else {
				b.WriteString(DefaultBlock)
			}
		}
		b.WriteByte('\n')
	}
}

func (m *Model) writeSide(b *strings.Builder) {
	g := m.game

	fmt.Fprintf(b, "%s %d\n", labelStyle.Render("Score"), g.Score())
	fmt.Fprintf(b, "%s  %d\n", labelStyle.Render("High"), g.HighScore())
	fmt.Fprintf(b, "%s %d\n", labelStyle.Render("Level"), g.Level())
	fmt.Fprintf(b, "%s %d\n", labelStyle.Render("Lines"), g.Lines())

	b.WriteString("\n" + labelStyle.Render("Hold") + "\n")
	if held, ok := g.Held(); ok {
		writePiece(b, held)
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n" + labelStyle.Render("Next") + "\n")
	for _, s := range g.Preview(previews) {
		writePiece(b, s)
	}

	if m.events.Len() > 0 {
		b.WriteByte('\n')
	}
	for e := range m.events.Recent(recentEvents) {
		b.WriteString(eventStyle.Render(e.String()) + "\n")
	}

	if m.saved != nil {
		fmt.Fprintf(b, "\nsaved #%d", m.saved.ID)
	}

	if len(m.top) > 0 {
		b.WriteString("\n\n" + labelStyle.Render("Top") + "\n")
		for i, r := range m.top {
			line := fmt.Sprintf("%d. %d", i+1, r.Score)
			if m.saved != nil && r.ID == m.saved.ID {
				line = labelStyle.Render(line + " <")
			}
			b.WriteString(line + "\n")
		}
	}
}
