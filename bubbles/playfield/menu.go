package playfield

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type MenuItem struct {
	Label string
	ID    string
}

const (
	MenuResume  = "resume"
	MenuNewGame = "new_game"
	MenuQuit    = "quit"
)

// Menu is a vertical list with one highlighted item. Moving past either end
// wraps around.
type Menu struct {
	Title  string
	Items  []MenuItem
	Active int
}

func NewPauseMenu() *Menu {
	return &Menu{
		Title: "Paused",
		Items: []MenuItem{
			{Label: "Resume", ID: MenuResume},
			{Label: "New Game", ID: MenuNewGame},
			{Label: "Quit", ID: MenuQuit},
		},
	}
}

func NewGameOverMenu() *Menu {
	return &Menu{
		Title: "Game Over",
		Items: []MenuItem{
			{Label: "New Game", ID: MenuNewGame},
			{Label: "Quit", ID: MenuQuit},
		},
	}
}

// Move shifts the highlight by delta items.
func (m *Menu) Move(delta int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	m.Active = ((m.Active+delta)%n + n) % n
}

// Selected returns the ID of the highlighted item.
func (m *Menu) Selected() string {
	if m.Active < 0 || m.Active >= len(m.Items) {
		return ""
	}
	return m.Items[m.Active].ID
}

var (
	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	menuActiveStyle = lipgloss.NewStyle().Reverse(true)
)

func (m *Menu) View() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(m.Title))
	for i, item := range m.Items {
		b.WriteByte('\n')
		if i == m.Active {
			b.WriteString(menuActiveStyle.Render("> " + item.Label))
		} else {
			b.WriteString("  " + item.Label)
		}
	}
	return menuStyle.Render(b.String())
}
