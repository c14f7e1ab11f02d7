package piece

import (
	"fmt"
	"strings"
	"unicode"
)

type visualDef struct {
	name  string
	color string
	size  int
	masks [4]string
	kicks [4][Kicks]Offset
}

var (
	zeroKicks = [Kicks]Offset{}

	// J, L, S, T and Z share one kick table.
	jlstzKicks = [4][Kicks]Offset{
		zeroKicks,
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		zeroKicks,
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	}
)

var visualDefs = [Count]visualDef{
	I: {
		name: "I", color: "#64C4EB", size: 5,
		masks: [4]string{`
|.....
|.....
|.####
|.....
|.....
`, `
|.....
|..#..
|..#..
|..#..
|..#..
`, `
|.....
|.....
|####.
|.....
|.....
`, `
|..#..
|..#..
|..#..
|..#..
|.....
`},
		kicks: [4][Kicks]Offset{
			{{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
			{{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
			{{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
			{{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
		},
	},
	J: {
		name: "J", color: "#5C65A8", size: 3,
		masks: [4]string{`
|#..
|###
|...
`, `
|.##
|.#.
|.#.
`, `
|...
|###
|..#
`, `
|.#.
|.#.
|##.
`},
		kicks: jlstzKicks,
	},
	L: {
		name: "L", color: "#E07F3A", size: 3,
		masks: [4]string{`
|..#
|###
|...
`, `
|.#.
|.#.
|.##
`, `
|...
|###
|#..
`, `
|##.
|.#.
|.#.
`},
		kicks: jlstzKicks,
	},
	O: {
		name: "O", color: "#F1D448", size: 3,
		masks: [4]string{`
|.##
|.##
|...
`, `
|...
|.##
|.##
`, `
|...
|##.
|##.
`, `
|##.
|##.
|...
`},
		kicks: [4][Kicks]Offset{
			zeroKicks,
			{{0, -1}, {0, -1}, {0, -1}, {0, -1}, {0, -1}},
			{{-1, -1}, {-1, -1}, {-1, -1}, {-1, -1}, {-1, -1}},
			{{-1, 0}, {-1, 0}, {-1, 0}, {-1, 0}, {-1, 0}},
		},
	},
	S: {
		name: "S", color: "#64B452", size: 3,
		masks: [4]string{`
|.##
|##.
|...
`, `
|.#.
|.##
|..#
`, `
|...
|.##
|##.
`, `
|#..
|##.
|.#.
`},
		kicks: jlstzKicks,
	},
	T: {
		name: "T", color: "#8C1AF5", size: 3,
		masks: [4]string{`
|.#.
|###
|...
`, `
|.#.
|.##
|.#.
`, `
|...
|###
|.#.
`, `
|.#.
|##.
|.#.
`},
		kicks: jlstzKicks,
	},
	Z: {
		name: "Z", color: "#EA3323", size: 3,
		masks: [4]string{`
|##.
|.##
|...
`, `
|..#
|.##
|.#.
`, `
|...
|##.
|.##
`, `
|.#.
|##.
|#..
`},
		kicks: jlstzKicks,
	},
}

var catalog [Count]Definition

func init() {
	for s, v := range visualDefs {
		def := Definition{
			Shape:  Shape(s),
			Name:   v.name,
			Color:  v.color,
			Width:  v.size,
			Height: v.size,
		}
		for o, visual := range v.masks {
			m, err := parseVisual(visual, v.size)
			if err != nil {
				panic(fmt.Sprintf("failed to parse visual for %s orientation %d: %v", v.name, o, err))
			}
			def.Orientations[o] = Orientation{
				Mask:    m,
				Offsets: v.kicks[o],
			}
			def.Orientations[o].BoundsX, def.Orientations[o].BoundsY = bounds(&m)
		}
		catalog[s] = def
	}
}

// parseVisual converts a visual raw string into a Mask. Only lines that begin
// with '|' are read, '#' marks an occupied cell and anything else is empty.
// Rows and columns beyond size are rejected.
func parseVisual(v string, size int) (Mask, error) {
	var (
		m   Mask
		row int
	)
	for ln := range strings.SplitSeq(v, "\n") {
		ln = strings.TrimLeftFunc(ln, unicode.IsSpace)
		if !strings.HasPrefix(ln, "|") {
			continue
		}
		ln = strings.TrimRightFunc(ln[1:], unicode.IsSpace)
		if row >= size {
			return m, fmt.Errorf("more than %d rows", size)
		}
		if len(ln) > size {
			return m, fmt.Errorf("row %d wider than %d", row, size)
		}
		for col, ch := range ln {
			m[row][col] = ch == '#'
		}
		row++
	}
	if row != size {
		return m, fmt.Errorf("expected %d rows, got %d", size, row)
	}

	cells := 0
	m.Cells(func(int, int) { cells++ })
	if cells != 4 {
		return m, fmt.Errorf("expected 4 cells, got %d", cells)
	}
	return m, nil
}

func bounds(m *Mask) (x, y [2]int) {
	x = [2]int{Window, 0}
	y = [2]int{Window, 0}
	m.Cells(func(r, c int) {
		x[0], x[1] = min(x[0], c), max(x[1], c+1)
		y[0], y[1] = min(y[0], r), max(y[1], r+1)
	})
	return x, y
}
