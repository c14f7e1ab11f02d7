package playfield

import (
	"time"

	"github.com/ghthor/bloxide/game"
)

// DefaultHoldWindow is how long after the last press a held key still counts
// as down. Terminals only report presses, so a held key is a stream of
// repeated presses.
const DefaultHoldWindow = 150 * time.Millisecond

type heldKey uint8

const (
	heldSoftDrop heldKey = iota
	heldLeft
	heldRight
	heldCount
)

// inputState collects key presses between frames and turns them into one
// game.Input per frame.
type inputState struct {
	window   time.Duration
	lastSeen [heldCount]time.Time

	edges game.Input
}

func (s *inputState) press(k heldKey, now time.Time) {
	s.lastSeen[k] = now
}

func (s *inputState) held(k heldKey, now time.Time) bool {
	seen := s.lastSeen[k]
	return !seen.IsZero() && now.Sub(seen) <= s.window
}

// release forgets a held key, used when the opposite direction is pressed.
func (s *inputState) release(k heldKey) {
	s.lastSeen[k] = time.Time{}
}

// frame returns the input for the frame at now and clears the edge triggered
// presses.
func (s *inputState) frame(now time.Time) game.Input {
	in := s.edges
	in.SoftDrop = s.held(heldSoftDrop, now)
	in.ShiftLeft = s.held(heldLeft, now)
	in.ShiftRight = s.held(heldRight, now)
	s.edges = game.Input{}
	return in
}

func (s *inputState) reset() {
	s.lastSeen = [heldCount]time.Time{}
	s.edges = game.Input{}
}
