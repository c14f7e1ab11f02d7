// Package playfield is the bubbletea front end of a game.State. It advances
// the game once per frame, maps keys to game input and renders the board with
// a side panel of counters, the held piece and the next pieces.
package playfield

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/ghthor/bloxide/game"
	"github.com/ghthor/bloxide/highscore"
	"github.com/ghthor/bloxide/unsafering"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// Recorder persists the result of a finished game.
type Recorder interface {
	Save(highscore.Result) (highscore.Result, error)
}

type TickMsg struct {
	time.Time
}

// Leaderboard is implemented by recorders that can list the best results.
type Leaderboard interface {
	Top(n int) ([]highscore.Result, error)
}

// SavedMsg reports the outcome of recording a finished game. Top holds the
// best results when the recorder is also a Leaderboard.
type SavedMsg struct {
	Result highscore.Result
	Top    []highscore.Result
	Err    error
}

const (
	recentEvents = 6
	topResults   = 5
)

type Option func(*Model)

func WithRecorder(r Recorder) Option {
	return func(m *Model) { m.recorder = r }
}

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

func WithHoldWindow(d time.Duration) Option {
	return func(m *Model) { m.input.window = d }
}

// WithClock replaces the clock used to time held keys.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.clock = now }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.log = l }
}

type Model struct {
	game *game.State

	keys  KeyMap
	help  help.Model
	clock func() time.Time
	log   *log.Logger
	frame time.Duration

	input inputState

	recorder Recorder
	recorded bool
	saved    *highscore.Result
	top      []highscore.Result

	pauseMenu    *Menu
	gameOverMenu *Menu
	overlay      *overlay.Model

	events *unsafering.Buffer[game.Event]

	b     strings.Builder
	table *table.Table
	panel panelView

	quitting bool
}

var _ tea.Model = &Model{}

func New(g *game.State, opts ...Option) *Model {
	m := &Model{
		game:         g,
		keys:         DefaultKeyMap,
		help:         help.New(),
		clock:        time.Now,
		log:          log.Default(),
		input:        inputState{window: DefaultHoldWindow},
		pauseMenu:    NewPauseMenu(),
		gameOverMenu: NewGameOverMenu(),
		events:       unsafering.New[game.Event](recentEvents),
	}
	for _, opt := range opts {
		opt(m)
	}

	tps := g.Config().TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	m.frame = time.Second / time.Duration(tps)
	m.table = newTable()
	m.overlay = overlay.New(nil, nil, overlay.Center, overlay.Center, 0, 0)
	return m
}

func (m *Model) Game() *game.State { return m.game }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg{t} })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.UpdatePlayfield(msg)
}

func (m *Model) UpdatePlayfield(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.HandleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case TickMsg:
		return m, m.HandleTick()

	case SavedMsg:
		if msg.Err != nil {
			m.log.Error("recording result", "error", msg.Err)
			return m, nil
		}
		m.saved = &msg.Result
		m.top = msg.Top
		m.log.Info("result recorded", "id", msg.Result.ID, "score", msg.Result.Score)
	}
	return m, nil
}

// menu returns the menu currently shown over the board, if any.
func (m *Model) menu() *Menu {
	switch {
	case m.game.GameOver():
		return m.gameOverMenu
	case m.game.Paused():
		return m.pauseMenu
	default:
		return nil
	}
}

func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}

	if menu := m.menu(); menu != nil {
		return m.handleMenuKey(menu, msg)
	}

	now := m.clock()
	in := &m.input
	switch {
	case key.Matches(msg, m.keys.Left):
		in.release(heldRight)
		in.press(heldLeft, now)
	case key.Matches(msg, m.keys.Right):
		in.release(heldLeft)
		in.press(heldRight, now)
	case key.Matches(msg, m.keys.SoftDrop):
		in.press(heldSoftDrop, now)
	case key.Matches(msg, m.keys.HardDrop):
		in.edges.HardDrop = true
	case key.Matches(msg, m.keys.RotateRight):
		in.edges.RotateRight = true
	case key.Matches(msg, m.keys.RotateLeft):
		in.edges.RotateLeft = true
	case key.Matches(msg, m.keys.Hold):
		in.edges.Hold = true
	case key.Matches(msg, m.keys.Pause):
		in.edges.TogglePause = true
	}
	return nil
}

func (m *Model) handleMenuKey(menu *Menu, msg tea.KeyMsg) tea.Cmd {
	switch {
	case menu == m.pauseMenu && key.Matches(msg, m.keys.Pause):
		m.resume()
	case key.Matches(msg, m.keys.MenuUp):
		menu.Move(-1)
	case key.Matches(msg, m.keys.MenuDown):
		menu.Move(1)
	case key.Matches(msg, m.keys.MenuSelect):
		return m.selectMenu(menu.Selected())
	}
	return nil
}

func (m *Model) selectMenu(id string) tea.Cmd {
	switch id {
	case MenuResume:
		m.resume()
	case MenuNewGame:
		m.NewGame()
	case MenuQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) resume() {
	m.input.reset()
	m.game.TogglePause()
	m.pauseMenu.Active = 0
}

// NewGame starts over, keeping the high score.
func (m *Model) NewGame() {
	m.game.Reset()
	m.input.reset()
	m.events.Reset()
	m.recorded = false
	m.saved = nil
	m.top = nil
	m.pauseMenu.Active = 0
	m.gameOverMenu.Active = 0
}

// HandleTick runs exactly one game update with the input gathered since the
// previous frame.
func (m *Model) HandleTick() tea.Cmd {
	m.game.Update(m.input.frame(m.clock()))

	for _, e := range m.game.Events() {
		m.events.Push(e)
	}

	if m.game.GameOver() && !m.recorded {
		m.recorded = true
		return tea.Batch(m.tick(), m.record())
	}
	return m.tick()
}

func (m *Model) Result() highscore.Result {
	return highscore.Result{
		Score:   m.game.Score(),
		Level:   m.game.Level(),
		Lines:   m.game.Lines(),
		EndedAt: m.clock(),
	}
}

func (m *Model) record() tea.Cmd {
	if m.recorder == nil {
		return nil
	}

	r, rec, logger := m.Result(), m.recorder, m.log
	return func() tea.Msg {
		saved, err := rec.Save(r)
		if err != nil {
			return SavedMsg{Result: saved, Err: err}
		}

		msg := SavedMsg{Result: saved}
		if board, ok := rec.(Leaderboard); ok {
			if msg.Top, err = board.Top(topResults); err != nil {
				logger.Warn("listing top results", "error", err)
			}
		}
		return msg
	}
}
