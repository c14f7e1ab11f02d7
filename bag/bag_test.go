package bag

import (
	"testing"

	"github.com/ghthor/bloxide/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counts(draws []piece.Shape) map[piece.Shape]int {
	m := make(map[piece.Shape]int, piece.Count)
	for _, s := range draws {
		m[s]++
	}
	return m
}

func draw(b *Bag, n int) []piece.Shape {
	out := make([]piece.Shape, n)
	for i := range out {
		out[i] = b.Next()
	}
	return out
}

func TestBagFairness(t *testing.T) {
	for seed := range uint64(50) {
		b := NewSeeded(seed)

		for bagNo := range 4 {
			c := counts(draw(b, 7))
			require.Len(t, c, piece.Count, "seed %d bag %d", seed, bagNo)
			for _, s := range piece.Shapes {
				require.Equal(t, 1, c[s], "seed %d bag %d shape %s", seed, bagNo, s)
			}
		}

		c := counts(draw(b, 14))
		for _, s := range piece.Shapes {
			require.Equal(t, 2, c[s], "seed %d shape %s", seed, s)
		}
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	const n = 30

	want := draw(NewSeeded(7), n)

	b := NewSeeded(7)
	got := make([]piece.Shape, 0, n)
	for range n {
		for k := 1; k <= Lookahead; k++ {
			b.Peek(k)
		}
		got = append(got, b.Next())
	}
	require.Equal(t, want, got)
}

func TestPeekMatchesNext(t *testing.T) {
	b := NewSeeded(3)
	for range 20 {
		peeked := make([]piece.Shape, 0, Lookahead)
		for k := 1; k <= Lookahead; k++ {
			s, ok := b.Peek(k)
			require.True(t, ok)
			peeked = append(peeked, s)
		}

		clone := *b
		require.Equal(t, peeked, draw(&clone, Lookahead))

		b.Next()
	}
}

func TestPeekOutOfRange(t *testing.T) {
	b := NewSeeded(1)
	b.Next()
	before := b.String()

	_, ok := b.Peek(0)
	assert.False(t, ok)
	_, ok = b.Peek(Lookahead + 1)
	assert.False(t, ok)
	_, ok = b.Peek(-2)
	assert.False(t, ok)

	assert.Equal(t, before, b.String())
}

func TestPreview(t *testing.T) {
	b := NewSeeded(11)
	b.Next()

	p := b.Preview(3)
	require.Len(t, p, 3)
	assert.Equal(t, p, draw(b, 3))

	assert.Len(t, b.Preview(20), Lookahead)
}

func TestPreviewOutOfRange(t *testing.T) {
	b := NewSeeded(1)
	before := b.String()

	require.NotPanics(t, func() {
		assert.Empty(t, b.Preview(-1))
		assert.Empty(t, b.Preview(0))
	})
	require.Equal(t, before, b.String())
}
