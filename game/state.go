// Package game is the falling block simulation. A State is advanced exactly
// once per rendered frame by Update and queried by the renderer in between.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ghthor/bloxide/bag"
	"github.com/ghthor/bloxide/grid"
	"github.com/ghthor/bloxide/piece"
)

// SpawnRow is the row every new active piece starts at, one row into the
// hidden buffer.
const SpawnRow = 1

type State struct {
	cfg   Config
	log   *log.Logger
	clock func() time.Time
	rng   *rand.Rand

	locked *grid.Grid
	active *grid.Grid
	ghost  *grid.Grid

	bag *bag.Bag

	piece       piece.Shape
	row, col    int
	orientation int

	held    piece.Shape
	hasHeld bool
	swapped bool

	score       uint64
	highScore   uint64
	rowsCleared int

	start          time.Time
	tick, lastTick int

	ticksToRow     int
	ticksToRepeat  int
	ticksToLock    int
	lockResetsLeft int
	shift          ShiftDirection

	gameOver bool
	paused   bool

	events []Event
}

type Option func(*State)

func WithConfig(cfg Config) Option {
	return func(s *State) { s.cfg = cfg }
}

func WithLogger(l *log.Logger) Option {
	return func(s *State) { s.log = l }
}

// WithClock replaces the wall clock used to derive ticks.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.clock = now }
}

// WithSeed makes the piece sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(s *State) { s.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithHighScore sets the persisted high score baseline.
func WithHighScore(score uint64) Option {
	return func(s *State) { s.highScore = score }
}

func New(opts ...Option) *State {
	s := &State{
		cfg:    DefaultConfig(),
		log:    log.Default(),
		clock:  time.Now,
		locked: grid.NewStandard(),
		active: grid.NewStandard(),
		ghost:  grid.NewStandard(),
		events: make([]Event, 0, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.Reset()
	return s
}

// Reset starts a new game. The high score baseline carries over.
func (s *State) Reset() {
	s.highScore = s.HighScore()

	s.locked.Clear()
	s.active.Clear()
	s.ghost.Clear()
	s.bag = bag.New(s.rng)

	s.hasHeld = false
	s.score = 0
	s.rowsCleared = 0
	s.tick, s.lastTick = 0, 0
	s.start = s.clock()
	s.ticksToRepeat = s.cfg.RepeatDelayTicks
	s.shift = ShiftNeither
	s.gameOver = false
	s.paused = false
	s.events = s.events[:0]

	s.piece = s.bag.Next()
	s.resetPieceState()
	s.refreshOverlays()
}

func (s *State) resetPieceState() {
	s.orientation = 0
	s.col = piece.InitialCol(s.piece, s.locked.Cols())
	s.row = SpawnRow
	s.ticksToRow = s.ticksPerRow()
	s.swapped = false
	s.ticksToLock = s.cfg.LockDelayTicks
	s.lockResetsLeft = s.cfg.LockResetMoves
}

// TogglePause flips the paused flag. Resuming rebases the clock so the time
// spent paused does not count as elapsed ticks.
func (s *State) TogglePause() {
	if s.gameOver {
		return
	}
	if s.paused {
		s.tick, s.lastTick = 0, 0
		s.start = s.clock()
		s.paused = false
	} else {
		s.paused = true
	}
}

// Piece is the position of the active piece.
type Piece struct {
	Shape       piece.Shape
	Row, Col    int
	Orientation int
}

func (s *State) Current() Piece {
	return Piece{
		Shape:       s.piece,
		Row:         s.row,
		Col:         s.col,
		Orientation: s.orientation,
	}
}

func (s *State) Locked() grid.Reader { return s.locked }
func (s *State) Active() grid.Reader { return s.active }
func (s *State) Ghost() grid.Reader  { return s.ghost }

func (s *State) Score() uint64 { return s.score }
func (s *State) Lines() int    { return s.rowsCleared }
func (s *State) Level() int    { return Level(s.rowsCleared) }

// HighScore is the larger of the baseline and the current score.
func (s *State) HighScore() uint64 { return max(s.highScore, s.score) }

func (s *State) Gravity() float64 {
	return Gravity(s.Level(), s.cfg.TicksPerSecond)
}

func (s *State) ticksPerRow() int {
	return TicksPerRow(s.Gravity())
}

// Preview returns the next n pieces, 1 <= n <= bag.Lookahead.
func (s *State) Preview(n int) []piece.Shape {
	return s.bag.Preview(n)
}

func (s *State) Held() (piece.Shape, bool) { return s.held, s.hasHeld }

func (s *State) GameOver() bool { return s.gameOver }
func (s *State) Paused() bool   { return s.paused }

// Events returns what happened during the last Update. The slice is reused by
// the next Update.
func (s *State) Events() []Event { return s.events }

func (s *State) Config() Config { return s.cfg }
