package game

// Config holds the simulation tunables. Durations are in ticks.
type Config struct {
	TicksPerSecond int

	// SoftDropGravity is the gravity, in rows per tick, while soft drop is
	// held.
	SoftDropGravity float64

	// RepeatDelayTicks is how long a shift must be held before it starts
	// repeating, RepeatIntervalTicks the time between repeats after that.
	RepeatDelayTicks    int
	RepeatIntervalTicks int

	LockDelayTicks int

	// LockResetMoves is the number of shifts or rotations that may reset
	// the lock delay before the piece is forced to lock.
	LockResetMoves int
}

func DefaultConfig() Config {
	return Config{
		TicksPerSecond:      60,
		SoftDropGravity:     30.0 / 60.0,
		RepeatDelayTicks:    11, // ~183ms
		RepeatIntervalTicks: 4,  // ~67ms
		LockDelayTicks:      30, // 500ms
		LockResetMoves:      15,
	}
}
