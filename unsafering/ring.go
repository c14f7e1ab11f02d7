// Package unsafering is a fixed size ring buffer with no synchronization. One
// goroutine owns it; the bubbletea model that feeds it is the only writer and
// reader.
package unsafering

import "iter"

type Buffer[T any] struct {
	data  []T
	count int
	write int
}

func New[T any](size int) *Buffer[T] {
	if size < 1 {
		size = 1
	}
	return &Buffer[T]{data: make([]T, size)}
}

// Push appends v, overwriting the oldest element once full.
func (r *Buffer[T]) Push(v T) {
	r.data[r.write] = v
	r.write = (r.write + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

func (r *Buffer[T]) Len() int { return r.count }
func (r *Buffer[T]) Cap() int { return len(r.data) }

// Reset forgets every element.
func (r *Buffer[T]) Reset() {
	clear(r.data)
	r.count, r.write = 0, 0
}

// Newest returns the element i pushes back, 0 being the latest.
func (r *Buffer[T]) Newest(i int) (val T, ok bool) {
	if i < 0 || i >= r.count {
		return val, false
	}
	n := len(r.data)
	return r.data[(r.write-1-i+n)%n], true
}

// Recent yields up to n of the latest elements, oldest first.
//
//	for v := range buf.Recent(5) {
//	    fmt.Println(v)
//	}
func (r *Buffer[T]) Recent(n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		n = min(max(n, 0), r.count)
		for i := n - 1; i >= 0; i-- {
			v, _ := r.Newest(i)
			if !yield(v) {
				return
			}
		}
	}
}
