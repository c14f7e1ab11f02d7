package game

// Input is one frame worth of player input. Held fields report the key is
// down, the others are true only on the frame the key was pressed.
type Input struct {
	// held
	SoftDrop   bool
	ShiftLeft  bool
	ShiftRight bool

	// edge triggered
	RotateRight bool
	RotateLeft  bool
	HardDrop    bool
	Hold        bool
	TogglePause bool
}

// ShiftDirection is the horizontal direction currently being auto repeated.
type ShiftDirection uint8

const (
	ShiftNeither ShiftDirection = iota
	ShiftLeft
	ShiftRight
)

func (d ShiftDirection) String() string {
	switch d {
	case ShiftLeft:
		return "left"
	case ShiftRight:
		return "right"
	default:
		return "neither"
	}
}

func (d ShiftDirection) delta() int {
	switch d {
	case ShiftLeft:
		return -1
	case ShiftRight:
		return 1
	default:
		return 0
	}
}
