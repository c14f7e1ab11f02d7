package game

import (
	"fmt"
	"time"

	"github.com/ghthor/bloxide/grid"
	"github.com/ghthor/bloxide/piece"
)

// Update advances the simulation by however many ticks have elapsed since the
// previous call and applies one frame of input.
func (s *State) Update(in Input) {
	s.events = s.events[:0]

	if in.TogglePause {
		s.TogglePause()
	}
	if s.gameOver || s.paused {
		return
	}

	s.tick = elapsedTicks(s.clock().Sub(s.start), s.cfg.TicksPerSecond)

	speed := 1
	if in.SoftDrop {
		speed = max(1, ceilTicks(s.cfg.SoftDropGravity/s.Gravity()))
	}
	s.ticksToRow -= s.tickDelta() * speed

	s.steps(in)

	s.refreshOverlays()
	s.lastTick = s.tick
}

func elapsedTicks(d time.Duration, ticksPerSecond int) int {
	if d < 0 {
		return 0
	}
	return int(int64(d) * int64(ticksPerSecond) / int64(time.Second))
}

// tickDelta is 0 or 1 at 60fps or more, larger when frames are slow.
func (s *State) tickDelta() int {
	return max(0, s.tick-s.lastTick)
}

// steps applies the input in a fixed order, stopping once the game ends.
func (s *State) steps(in Input) {
	if in.Hold {
		s.swap()
	}
	if s.gameOver {
		return
	}

	if in.RotateRight {
		s.rotate(1)
	}
	if in.RotateLeft {
		s.rotate(-1)
	}

	if in.HardDrop {
		s.hardDrop()
		if s.gameOver {
			return
		}
	}

	s.moveHorizontal(in.ShiftLeft, in.ShiftRight)
	s.gravityDrop(in.SoftDrop)
}

func (s *State) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *State) mask(orientation int) *piece.Mask {
	return piece.Occupancy(s.piece, orientation)
}

func (s *State) collides(row, col, orientation int) bool {
	return s.locked.CollisionCheck(row, col, s.mask(orientation))
}

// must panics on a grid write that was not collision checked first.
func must(err error) {
	if err != nil {
		panic(fmt.Errorf("game: invariant violated: %w", err))
	}
}

func (s *State) endGame(kind EventKind) {
	s.lastTick = s.tick
	s.gameOver = true
	s.emit(Event{Kind: kind, Shape: s.piece})
	s.log.Info("game over", "reason", kind, "piece", s.piece, "score", s.score, "level", s.Level(), "lines", s.rowsCleared)
}

// install makes shape the active piece at its spawn position. A piece that
// overlaps the stack at spawn ends the game.
func (s *State) install(shape piece.Shape) {
	s.piece = shape
	s.resetPieceState()

	if s.collides(s.row, s.col, s.orientation) {
		s.endGame(EventBlockOut)
	}
}

func (s *State) nextPiece() {
	s.install(s.bag.Next())
}

// swap exchanges the active piece with the held one. Only once per piece.
func (s *State) swap() {
	if s.swapped {
		return
	}

	current := s.piece
	s.emit(Event{Kind: EventHold, Shape: current})
	if s.hasHeld {
		held := s.held
		s.held = current
		s.install(held)
	} else {
		s.held, s.hasHeld = current, true
		s.nextPiece()
	}
	s.swapped = true
}

func (s *State) tryResetLockDelay() {
	if s.lockResetsLeft > 0 {
		s.lockResetsLeft--
		s.ticksToLock = s.cfg.LockDelayTicks
		s.log.Debug("lock delay reset", "movesLeft", s.lockResetsLeft)
	}
}

// rotate turns the active piece a quarter turn, dir 1 clockwise and -1
// counter clockwise, taking the first kick candidate that fits.
func (s *State) rotate(dir int) {
	next := (s.orientation + dir + 4) % 4

	for i := range piece.Kicks {
		dCol, dRow := piece.KickOffset(s.piece, s.orientation, next, i)
		row, col := s.row+dRow, s.col+dCol

		if !s.collides(row, col, next) {
			s.orientation, s.row, s.col = next, row, col
			s.tryResetLockDelay()
			return
		}
	}
}

func (s *State) hardDrop() {
	landing := s.locked.FindLandingRow(s.row, s.col, s.mask(s.orientation))
	dropped := max(0, landing-s.row)
	s.row = landing

	points := 2 * uint64(dropped)
	s.score += points
	s.emit(Event{Kind: EventHardDrop, Shape: s.piece, Rows: dropped, Points: points})

	s.lockAndNext()
}

func (s *State) setShift(d ShiftDirection) {
	s.ticksToRepeat = s.cfg.RepeatDelayTicks
	s.shift = d
}

func (s *State) moveHorizontal(left, right bool) {
	if !left && !right {
		s.setShift(ShiftNeither)
		return
	}

	delta := 0
	switch s.shift {
	case ShiftLeft:
		if left {
			s.ticksToRepeat -= s.tickDelta()
		} else {
			s.setShift(ShiftRight)
			delta = 1
		}

	case ShiftRight:
		if right {
			s.ticksToRepeat -= s.tickDelta()
		} else {
			s.setShift(ShiftLeft)
			delta = -1
		}

	default:
		if left {
			s.setShift(ShiftLeft)
		} else {
			s.setShift(ShiftRight)
		}
		delta = s.shift.delta()
	}

	if s.ticksToRepeat <= 0 {
		delta = s.shift.delta()
		s.ticksToRepeat = s.cfg.RepeatIntervalTicks
	}

	if delta != 0 && !s.collides(s.row, s.col+delta, s.orientation) {
		s.col += delta
		s.tryResetLockDelay()
	}
}

// gravityDrop moves the piece down once per elapsed row interval. When it
// cannot move the lock delay runs down instead.
func (s *State) gravityDrop(softDrop bool) {
	for s.ticksToRow <= 0 {
		if s.collides(s.row+1, s.col, s.orientation) {
			// resting pieces do not bank descents
			s.ticksToRow = 0
			s.ticksToLock -= s.tickDelta()
			if s.ticksToLock <= 0 {
				s.lockAndNext()
			}
			return
		}

		if softDrop {
			s.score++
		}
		s.row++
		s.ticksToRow += s.ticksPerRow()
		s.ticksToLock = s.cfg.LockDelayTicks
		s.lockResetsLeft = s.cfg.LockResetMoves
	}
}

// lockAndNext writes the active piece into the stack, scores cleared rows and
// spawns the next piece. A piece locking entirely above the visible rows ends
// the game instead.
func (s *State) lockAndNext() {
	m := s.mask(s.orientation)
	if s.locked.InvisibleCheck(s.row, m) {
		s.endGame(EventLockOut)
		return
	}

	must(s.locked.SetCells(s.row, s.col, m, grid.CellOf(s.piece)))
	s.emit(Event{Kind: EventLock, Shape: s.piece})
	s.scoreLineClears()
	s.nextPiece()
}

func (s *State) scoreLineClears() {
	rows := s.locked.ClearAllFilledRows()
	if rows == 0 {
		return
	}

	points := LineClearPoints(rows, s.Level())
	s.score += points
	s.rowsCleared += rows
	s.emit(Event{Kind: EventLineClear, Shape: s.piece, Rows: rows, Points: points})
}

// refreshOverlays redraws the active and ghost grids from the piece position.
func (s *State) refreshOverlays() {
	m := s.mask(s.orientation)
	cell := grid.CellOf(s.piece)

	s.active.Clear()
	must(s.active.SetCells(s.row, s.col, m, cell))

	s.ghost.Clear()
	if s.collides(s.row, s.col, s.orientation) {
		return
	}
	landing := s.locked.FindLandingRow(s.row, s.col, m)
	must(s.ghost.SetCells(landing, s.col, m, cell))
}
