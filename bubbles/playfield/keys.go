package playfield

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	SoftDrop    key.Binding
	HardDrop    key.Binding
	RotateRight key.Binding
	RotateLeft  key.Binding
	Hold        key.Binding
	Pause       key.Binding
	Quit        key.Binding

	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuSelect key.Binding
}

var _ help.KeyMap = KeyMap{}

var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "right"),
	),
	SoftDrop: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "soft drop"),
	),
	HardDrop: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "hard drop"),
	),
	RotateRight: key.NewBinding(
		key.WithKeys("up", "x", "k"),
		key.WithHelp("↑/x", "rotate ↷"),
	),
	RotateLeft: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "rotate ↶"),
	),
	Hold: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "hold"),
	),
	Pause: key.NewBinding(
		key.WithKeys("esc", "p"),
		key.WithHelp("esc", "pause"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),

	MenuUp: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	MenuDown: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	MenuSelect: key.NewBinding(
		key.WithKeys("enter", " "),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateRight, k.HardDrop, k.Hold, k.Pause}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateRight, k.RotateLeft, k.Hold},
		{k.Pause, k.Quit},
	}
}
