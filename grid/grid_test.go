package grid

import (
	"testing"

	"github.com/ghthor/bloxide/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(g *Grid, row int, v Cell) {
	for col := range g.Cols() {
		g.cells[row][col] = v
	}
}

func TestCellOf(t *testing.T) {
	for _, s := range piece.Shapes {
		c := CellOf(s)
		require.NotEqual(t, Empty, c)
		got, ok := c.Shape()
		require.True(t, ok)
		require.Equal(t, s, got)
	}

	_, ok := Empty.Shape()
	assert.False(t, ok)
}

func TestStandardDimensions(t *testing.T) {
	g := NewStandard()
	assert.Equal(t, 22, g.Rows())
	assert.Equal(t, 10, g.Cols())
	assert.Equal(t, 20, g.VisibleRows())
	assert.Equal(t, 2, g.FirstVisibleRow())
}

func TestCollisionCheck(t *testing.T) {
	g := NewStandard()
	o := piece.Occupancy(piece.O, 0) // cols 1-2, rows 0-1

	assert.False(t, g.CollisionCheck(0, 0, o))
	assert.False(t, g.CollisionCheck(20, -1, o))
	assert.True(t, g.CollisionCheck(-1, 0, o), "above the top")
	assert.True(t, g.CollisionCheck(0, -2, o), "left wall")
	assert.True(t, g.CollisionCheck(0, 8, o), "right wall")
	assert.True(t, g.CollisionCheck(21, 0, o), "floor")

	g.cells[5][4] = CellOf(piece.T)
	assert.True(t, g.CollisionCheck(4, 3, o))
	assert.False(t, g.CollisionCheck(4, 4, o))
}

func TestSetCellsAfterCollisionCheck(t *testing.T) {
	for _, s := range piece.Shapes {
		for o := range 4 {
			g := NewStandard()
			m := piece.Occupancy(s, o)
			for row := -2; row < g.Rows(); row++ {
				for col := -2; col < g.Cols(); col++ {
					if g.CollisionCheck(row, col, m) {
						continue
					}
					g.Clear()
					require.NoError(t, g.SetCells(row, col, m, CellOf(s)))
					m.Cells(func(r, c int) {
						require.Equal(t, CellOf(s), g.Cell(r+row, c+col))
					})
				}
			}
		}
	}
}

func TestSetCellsOutOfBounds(t *testing.T) {
	g := NewStandard()
	m := piece.Occupancy(piece.I, 0) // row 2, cols 1-4

	err := g.SetCells(0, 7, m, CellOf(piece.I))
	require.ErrorIs(t, err, ErrOutOfBounds)

	for row := range g.Rows() {
		for col := range g.Cols() {
			require.False(t, g.HasBlockAt(row, col), "(%d, %d) written", row, col)
		}
	}

	require.ErrorIs(t, g.SetCells(-3, 0, m, CellOf(piece.I)), ErrOutOfBounds)
}

func TestFindLandingRow(t *testing.T) {
	g := NewStandard()
	o := piece.Occupancy(piece.O, 0)

	assert.Equal(t, 20, g.FindLandingRow(1, 3, o))

	fillRow(g, 21, CellOf(piece.Z))
	assert.Equal(t, 19, g.FindLandingRow(1, 3, o))

	g.cells[10][4] = CellOf(piece.Z)
	assert.Equal(t, 8, g.FindLandingRow(1, 3, o))
	assert.Equal(t, 19, g.FindLandingRow(1, 5, o))

	// already colliding at the start
	assert.Equal(t, 8, g.FindLandingRow(9, 3, o))

	// a canvas that never collides
	var empty piece.Mask
	assert.Equal(t, g.Rows(), g.FindLandingRow(0, 0, &empty))
}

func TestInvisibleCheck(t *testing.T) {
	g := NewStandard()
	o := piece.Occupancy(piece.O, 0) // rows 0-1

	assert.True(t, g.InvisibleCheck(0, o))
	assert.False(t, g.InvisibleCheck(1, o))
	assert.True(t, g.InvisibleCheck(-1, o))

	i := piece.Occupancy(piece.I, 0) // row 2
	assert.True(t, g.InvisibleCheck(-1, i))
	assert.False(t, g.InvisibleCheck(0, i))
}

func TestIsRowFilled(t *testing.T) {
	g := New(4, 4, 0)
	fillRow(g, 2, CellOf(piece.L))
	assert.True(t, g.IsRowFilled(2))
	assert.False(t, g.IsRowFilled(1))
	assert.False(t, g.IsRowFilled(-1))
	assert.False(t, g.IsRowFilled(4))

	g.cells[2][3] = Empty
	assert.False(t, g.IsRowFilled(2))
}

func TestClearAllFilledRows(t *testing.T) {
	g := New(4, 4, 0)
	marked := CellOf(piece.T)

	g.cells[0][0] = marked
	fillRow(g, 1, CellOf(piece.I))
	g.cells[2][3] = CellOf(piece.S)
	fillRow(g, 3, CellOf(piece.I))

	require.Equal(t, 2, g.ClearAllFilledRows())

	assert.Equal(t, marked, g.Cell(2, 0))
	assert.Equal(t, CellOf(piece.S), g.Cell(3, 3))
	for row := range 2 {
		for col := range 4 {
			assert.False(t, g.HasBlockAt(row, col), "(%d, %d)", row, col)
		}
	}
	assert.False(t, g.HasBlockAt(2, 1))
	assert.False(t, g.HasBlockAt(3, 0))
}

func TestClearAllFilledRowsTopRow(t *testing.T) {
	g := New(3, 2, 0)
	fillRow(g, 0, CellOf(piece.O))
	g.cells[1][1] = CellOf(piece.J)

	require.Equal(t, 1, g.ClearAllFilledRows())
	assert.False(t, g.HasBlockAt(0, 0))
	assert.False(t, g.HasBlockAt(0, 1))
	assert.Equal(t, CellOf(piece.J), g.Cell(1, 1))
}

func TestClearAllFilledRowsTetris(t *testing.T) {
	g := NewStandard()
	for row := 18; row < 22; row++ {
		fillRow(g, row, CellOf(piece.I))
	}
	g.cells[17][0] = CellOf(piece.Z)
	g.cells[16][9] = CellOf(piece.S)

	require.Equal(t, 4, g.ClearAllFilledRows())
	assert.Equal(t, CellOf(piece.Z), g.Cell(21, 0))
	assert.Equal(t, CellOf(piece.S), g.Cell(20, 9))
	assert.Equal(t, 0, g.ClearAllFilledRows())
}
