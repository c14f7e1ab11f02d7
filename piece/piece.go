// Package piece is the catalog of the seven tetromino shapes. Every shape has
// four fixed orientations, each an occupancy mask over a 5x5 window plus the
// rotation kick offsets used when rotating to or from that orientation.
package piece

import "fmt"

// Shape identifies one of the seven standard pieces.
type Shape uint8

const (
	I Shape = iota
	J
	L
	O
	S
	T
	Z
)

// Count is the number of shapes in the catalog.
const Count = 7

// Window is the side length of the fixed occupancy window.
const Window = 5

// Kicks is the number of kick offsets per orientation.
const Kicks = 5

// Shapes lists every shape in catalog order.
var Shapes = [Count]Shape{I, J, L, O, S, T, Z}

func (s Shape) String() string {
	if int(s) < Count {
		return catalog[s].Name
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Mask is the occupancy of an orientation. Indexed [row][col], rows grow
// downward.
type Mask [Window][Window]bool

// Cells calls fn for every occupied cell of the mask, row by row.
func (m *Mask) Cells(fn func(row, col int)) {
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				fn(r, c)
			}
		}
	}
}

// Offset is a kick table entry as published: X grows to the right and Y grows
// upward.
type Offset struct {
	X, Y int
}

type Orientation struct {
	Mask Mask

	// BoundsX and BoundsY are the half open column and row ranges of the
	// occupied cells inside the window. Only used for display trimming.
	BoundsX, BoundsY [2]int

	Offsets [Kicks]Offset
}

type Definition struct {
	Shape Shape
	Name  string
	Color string

	// Width and Height of the canvas the piece is placed with.
	Width, Height int

	Orientations [4]Orientation
}

// Lookup returns the catalog entry for s.
func Lookup(s Shape) *Definition {
	return &catalog[s]
}

// Occupancy returns the mask of s in the given orientation. The orientation
// wraps modulo 4.
func Occupancy(s Shape, orientation int) *Mask {
	return &catalog[s].Orientations[orientation&3].Mask
}

// KickOffset returns the grid displacement of kick candidate i when rotating s
// from one orientation to another.
//
// The kick tables are authored with rows increasing upward while grid rows
// increase downward, so the row delta is negated.
func KickOffset(s Shape, from, to, i int) (dCol, dRow int) {
	a := catalog[s].Orientations[from&3].Offsets[i]
	b := catalog[s].Orientations[to&3].Offsets[i]
	return a.X - b.X, -(a.Y - b.Y)
}

// InitialCol is the spawn column of s on a playfield cols wide.
func InitialCol(s Shape, cols int) int {
	return (cols - catalog[s].Width) / 2
}
