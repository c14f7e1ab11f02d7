package game

import (
	"fmt"

	"github.com/ghthor/bloxide/piece"
)

type EventKind uint8

const (
	EventLock EventKind = iota
	EventLineClear
	EventHardDrop
	EventHold
	EventBlockOut
	EventLockOut
)

var eventNames = [...]string{
	EventLock:      "lock",
	EventLineClear: "line clear",
	EventHardDrop:  "hard drop",
	EventHold:      "hold",
	EventBlockOut:  "block out",
	EventLockOut:   "lock out",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is something that happened during an Update.
type Event struct {
	Kind  EventKind
	Shape piece.Shape

	// Rows is the number of rows cleared or dropped.
	Rows   int
	Points uint64
}

func (e Event) String() string {
	switch e.Kind {
	case EventLineClear:
		return fmt.Sprintf("%s x%d +%d", e.Kind, e.Rows, e.Points)
	case EventHardDrop:
		return fmt.Sprintf("%s %s +%d", e.Kind, e.Shape, e.Points)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Shape)
	}
}
