package datastructures

import "iter"

// CircularQueue is a growable FIFO queue backed by a ring buffer.
//
// The element at logical position p lives at physical index
// (head + p) mod Cap(). Dequeue only advances head, so it never shifts
// elements. Growth and ShrinkToFit reindex the live elements to start at
// physical index 0. The zero value is an empty queue that allocates
// DefaultCapacity slots on its first Enqueue. CircularQueue is not safe for
// concurrent use.
type CircularQueue[T any] struct {
	data  []T
	head  int
	count int
}

// NewCircularQueue creates a CircularQueue with room for capacity elements.
// It returns ErrInvalidArgument if capacity is not positive.
func NewCircularQueue[T any](capacity int) (*CircularQueue[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	return &CircularQueue[T]{data: make([]T, capacity)}, nil
}

// NewDefaultCircularQueue creates a CircularQueue with DefaultCapacity.
func NewDefaultCircularQueue[T any]() *CircularQueue[T] {
	q, _ := NewCircularQueue[T](DefaultCapacity)
	return q
}

// Len returns the number of queued elements.
func (q *CircularQueue[T]) Len() int { return q.count }

// Cap returns the number of allocated slots.
func (q *CircularQueue[T]) Cap() int { return len(q.data) }

// Enqueue adds value to the back of the queue, growing the buffer if full.
func (q *CircularQueue[T]) Enqueue(value T) {
	if q.count == len(q.data) {
		q.resize(grownCapacity(len(q.data)))
	}
	q.data[q.physical(q.count)] = value
	q.count++
}

// Dequeue removes and returns the front element.
func (q *CircularQueue[T]) Dequeue() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, empty("queue")
	}
	value := q.data[q.head]
	q.data[q.head] = zero
	q.count--
	if q.count == 0 {
		q.head = 0
	} else {
		q.head = (q.head + 1) % len(q.data)
	}
	return value, nil
}

// PeekFront returns the front element without removing it.
func (q *CircularQueue[T]) PeekFront() (T, error) {
	if q.count == 0 {
		var zero T
		return zero, empty("queue")
	}
	return q.data[q.head], nil
}

// ShrinkToFit reallocates the buffer to exactly Len() slots, or 1 slot when
// empty, and moves the front element to physical index 0.
func (q *CircularQueue[T]) ShrinkToFit() {
	newCap := fittedCapacity(q.count)
	if newCap == len(q.data) && q.head == 0 {
		return
	}
	q.resize(newCap)
}

// Values returns a copy of the elements from front to back.
func (q *CircularQueue[T]) Values() []T {
	return reindexCircular(q.data, q.head, q.count, q.count)
}

// All returns an iterator over position-value pairs from front to back.
func (q *CircularQueue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for p := 0; p < q.count; p++ {
			if !yield(p, q.data[q.physical(p)]) {
				return
			}
		}
	}
}

// physical maps a logical position in [0, count] to its index in data.
func (q *CircularQueue[T]) physical(position int) int {
	i := q.head + position
	if i >= len(q.data) {
		i -= len(q.data)
	}
	return i
}

func (q *CircularQueue[T]) resize(newCap int) {
	q.data = reindexCircular(q.data, q.head, q.count, newCap)
	q.head = 0
}
