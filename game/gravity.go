package game

import "math"

const (
	MinLevel = 1
	MaxLevel = 20

	LinesPerLevel = 10
)

// Level is ceil(rowsCleared / 10) clamped to [MinLevel, MaxLevel].
func Level(rowsCleared int) int {
	lv := (rowsCleared + LinesPerLevel - 1) / LinesPerLevel
	return min(max(lv, MinLevel), MaxLevel)
}

// Gravity returns the fall speed of a level in rows per tick, capped at one
// row per tick.
func Gravity(level, ticksPerSecond int) float64 {
	lv := float64(min(max(level, MinLevel), MaxLevel))
	secondsPerRow := math.Pow(0.8-(lv-1)*0.007, lv-1)
	return min(1.0, (1/secondsPerRow)/float64(ticksPerSecond))
}

// ceilTicks rounds a tick count up, ignoring float noise just above an
// integer.
func ceilTicks(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// TicksPerRow is the number of ticks between automatic descents at the given
// gravity.
func TicksPerRow(gravity float64) int {
	return max(1, ceilTicks(1/gravity))
}

var lineClearPoints = [...]uint64{0, 100, 300, 500, 800}

// LineClearPoints is the score for clearing rows at once on level.
func LineClearPoints(rows, level int) uint64 {
	if rows < 0 || rows >= len(lineClearPoints) {
		return 0
	}
	return lineClearPoints[rows] * uint64(level)
}
