// Package grid is the playfield: a fixed matrix of locked blocks with a hidden
// buffer region above the visible rows.
package grid

import (
	"errors"
	"fmt"

	"github.com/ghthor/bloxide/piece"
)

const (
	Rows            = 22
	VisibleRows     = 20
	FirstVisibleRow = Rows - VisibleRows
	Cols            = 10
)

// Cell is the content of one grid position. The zero value is empty, any
// other value is the shape that left the block there.
type Cell uint8

const Empty Cell = 0

// CellOf returns the cell tag for a block of shape s.
func CellOf(s piece.Shape) Cell {
	return Cell(s) + 1
}

// Shape reports which shape occupies the cell.
func (c Cell) Shape() (piece.Shape, bool) {
	if c == Empty {
		return 0, false
	}
	return piece.Shape(c - 1), true
}

var ErrOutOfBounds = errors.New("grid: cell out of bounds")

// Reader is the read only view of a Grid handed to renderers.
type Reader interface {
	Rows() int
	Cols() int
	FirstVisibleRow() int
	VisibleRows() int
	Cell(row, col int) Cell
	HasBlockAt(row, col int) bool
}

var _ Reader = &Grid{}

type Grid struct {
	rows, cols      int
	firstVisibleRow int

	cells [][]Cell

	// scratch for ClearAllFilledRows
	cleared []int
}

// New returns an empty grid. Rows above firstVisibleRow are the hidden
// buffer.
func New(rows, cols, firstVisibleRow int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{
		rows:            rows,
		cols:            cols,
		firstVisibleRow: firstVisibleRow,
		cells:           cells,
		cleared:         make([]int, 0, 4),
	}
}

// NewStandard returns the 10x22 guideline playfield.
func NewStandard() *Grid {
	return New(Rows, Cols, FirstVisibleRow)
}

func (g *Grid) Rows() int            { return g.rows }
func (g *Grid) Cols() int            { return g.cols }
func (g *Grid) FirstVisibleRow() int { return g.firstVisibleRow }
func (g *Grid) VisibleRows() int     { return g.rows - g.firstVisibleRow }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

// Cell returns the content at row, col. Out of bounds reads are Empty.
func (g *Grid) Cell(row, col int) Cell {
	if !g.inBounds(row, col) {
		return Empty
	}
	return g.cells[row][col]
}

func (g *Grid) HasBlockAt(row, col int) bool {
	return g.Cell(row, col) != Empty
}

// Clear empties every cell.
func (g *Grid) Clear() *Grid {
	for r := range g.cells {
		clear(g.cells[r])
	}
	return g
}

// CollisionCheck reports whether placing canvas at the offset would put an
// occupied cell out of bounds or on top of a block.
func (g *Grid) CollisionCheck(rowOffset, colOffset int, canvas *piece.Mask) bool {
	collides := false
	canvas.Cells(func(r, c int) {
		row, col := r+rowOffset, c+colOffset
		if !g.inBounds(row, col) || g.cells[row][col] != Empty {
			collides = true
		}
	})
	return collides
}

// SetCells writes every occupied canvas cell into the grid at the offset.
// Nothing is written if any of those cells would be out of bounds.
func (g *Grid) SetCells(rowOffset, colOffset int, canvas *piece.Mask, v Cell) error {
	var err error
	canvas.Cells(func(r, c int) {
		row, col := r+rowOffset, c+colOffset
		if err == nil && !g.inBounds(row, col) {
			err = fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
		}
	})
	if err != nil {
		return err
	}

	canvas.Cells(func(r, c int) {
		g.cells[r+rowOffset][c+colOffset] = v
	})
	return nil
}

// FindLandingRow scans down from rowOffset and returns the last row before
// the canvas first collides. If it never collides the result is Rows().
func (g *Grid) FindLandingRow(rowOffset, colOffset int, canvas *piece.Mask) int {
	for row := rowOffset; row < g.rows; row++ {
		if g.CollisionCheck(row, colOffset, canvas) {
			return row - 1
		}
	}
	return g.rows
}

// InvisibleCheck reports whether every occupied canvas cell at rowOffset
// would be above the first visible row.
func (g *Grid) InvisibleCheck(rowOffset int, canvas *piece.Mask) bool {
	invisible := true
	canvas.Cells(func(r, _ int) {
		if r+rowOffset >= g.firstVisibleRow {
			invisible = false
		}
	})
	return invisible
}

func (g *Grid) IsRowFilled(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	for _, c := range g.cells[row] {
		if c == Empty {
			return false
		}
	}
	return true
}

func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	clear(g.cells[row])
}

// ClearAllFilledRows empties every filled row and compacts the stack above
// each of them down by one. Returns the number of rows cleared.
func (g *Grid) ClearAllFilledRows() int {
	g.cleared = g.cleared[:0]
	for row := range g.rows {
		if g.IsRowFilled(row) {
			g.ClearRow(row)
			g.cleared = append(g.cleared, row)
		}
	}

	for _, row := range g.cleared {
		// bubble the emptied row up to the top, shifting everything above
		// it down by one
		for r := row; r > 0; r-- {
			g.cells[r], g.cells[r-1] = g.cells[r-1], g.cells[r]
		}
	}

	return len(g.cleared)
}
