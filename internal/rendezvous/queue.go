package rendezvous

// minCompact is the number of shifted slots, at the front of a queue that
// never fully drains, before the live entries are moved down.
const minCompact = 32

// queue is an ordered FIFO container. Entries keep their relative positions
// until shifted, and released slots are zeroed so the backing array does not
// retain references.
type queue[E any] struct {
	items []E
	head  int
}

func (q *queue[E]) Len() int {
	return len(q.items) - q.head
}

func (q *queue[E]) Push(e E) {
	q.items = append(q.items, e)
}

// Shift removes and returns the oldest entry.
func (q *queue[E]) Shift() (e E, ok bool) {
	if q.Len() == 0 {
		return e, false
	}
	e = q.items[q.head]
	var zero E
	q.items[q.head] = zero
	q.head++
	switch {
	case q.head == len(q.items):
		// fully drained, free the backing array
		q.items = nil
		q.head = 0
	case q.head >= minCompact && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return e, true
}

// Drain removes every entry, returning them oldest first.
func (q *queue[E]) Drain() []E {
	if q.Len() == 0 {
		return nil
	}
	items := q.items[q.head:]
	q.items = nil
	q.head = 0
	return items
}
