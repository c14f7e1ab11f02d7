// Package bag implements the "random bag of 7" piece randomizer with one bag
// of lookahead.
package bag

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ghthor/bloxide/piece"
)

// Lookahead is the furthest Peek can see past the cursor.
const Lookahead = piece.Count

type Bag struct {
	rng *rand.Rand

	// index is -1 until the first draw.
	index   int
	current [piece.Count]piece.Shape
	next    [piece.Count]piece.Shape
}

// New returns a bag drawing from rng. A nil rng uses a randomly seeded source.
func New(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Bag{rng: rng, index: -1}
	b.current = b.shuffled()
	b.next = b.shuffled()
	return b
}

// NewSeeded returns a bag with a deterministic draw sequence.
func NewSeeded(seed uint64) *Bag {
	return New(rand.New(rand.NewPCG(seed, seed)))
}

func (b *Bag) shuffled() [piece.Count]piece.Shape {
	bag := piece.Shapes
	b.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

// Next draws the next piece, rolling over into the prepared bag once the
// current one is exhausted.
func (b *Bag) Next() piece.Shape {
	b.index++
	if b.index >= piece.Count {
		b.current = b.next
		b.next = b.shuffled()
		b.index = 0
	}
	return b.current[b.index]
}

// Peek returns the piece offset draws ahead of the last one without consuming
// it. Offsets outside 1..Lookahead report false.
func (b *Bag) Peek(offset int) (piece.Shape, bool) {
	if offset < 1 || offset > Lookahead {
		return 0, false
	}
	i := b.index + offset
	if i >= piece.Count {
		return b.next[i%piece.Count], true
	}
	return b.current[i], true
}

// Preview returns the next n pieces, n clamped to 0..Lookahead.
func (b *Bag) Preview(n int) []piece.Shape {
	n = min(max(n, 0), Lookahead)
	out := make([]piece.Shape, 0, n)
	for k := 1; k <= n; k++ {
		s, _ := b.Peek(k)
		out = append(out, s)
	}
	return out
}

func (b *Bag) String() string {
	join := func(bag [piece.Count]piece.Shape) string {
		names := make([]string, len(bag))
		for i, s := range bag {
			names[i] = s.String()
		}
		return strings.Join(names, ",")
	}
	return fmt.Sprintf("Bag{index: %d, current: [%s], next: [%s]}", b.index, join(b.current), join(b.next))
}
