package datastructures

import "iter"

// ArrayStack is a growable contiguous sequence. It serves both as an array
// list (Get, Set, InsertAt, RemoveAt) and as a LIFO stack (Push, Pop, Peek);
// both views share the same storage.
//
// A full ArrayStack doubles its capacity on insertion. It never shrinks on its
// own; call ShrinkToFit to release unused slots. Capacity is never below 1
// once allocated. The zero value is an empty ArrayStack that allocates
// DefaultCapacity slots on its first insertion.
// ArrayStack is not safe for concurrent use.
type ArrayStack[T any] struct {
	data  []T
	count int
}

// NewArrayStack creates an ArrayStack with room for capacity elements.
// It returns ErrInvalidArgument if capacity is not positive.
func NewArrayStack[T any](capacity int) (*ArrayStack[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	return &ArrayStack[T]{data: make([]T, capacity)}, nil
}

// NewDefaultArrayStack creates an ArrayStack with DefaultCapacity.
func NewDefaultArrayStack[T any]() *ArrayStack[T] {
	s, _ := NewArrayStack[T](DefaultCapacity)
	return s
}

// Len returns the number of elements.
func (s *ArrayStack[T]) Len() int { return s.count }

// Cap returns the number of allocated slots.
func (s *ArrayStack[T]) Cap() int { return len(s.data) }

// Get returns the element at index.
func (s *ArrayStack[T]) Get(index int) (T, error) {
	if err := s.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return s.data[index], nil
}

// Set overwrites the element at index.
func (s *ArrayStack[T]) Set(index int, value T) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.data[index] = value
	return nil
}

// PushBack appends value, growing the buffer if it is full.
func (s *ArrayStack[T]) PushBack(value T) {
	if s.count == len(s.data) {
		s.grow()
	}
	s.data[s.count] = value
	s.count++
}

// Add is the array list name for PushBack.
func (s *ArrayStack[T]) Add(value T) { s.PushBack(value) }

// Push is the stack name for PushBack.
func (s *ArrayStack[T]) Push(value T) { s.PushBack(value) }

// PopBack removes and returns the last element.
func (s *ArrayStack[T]) PopBack() (T, error) {
	var zero T
	if s.count == 0 {
		return zero, empty("stack")
	}
	s.count--
	value := s.data[s.count]
	s.data[s.count] = zero
	return value, nil
}

// Pop is the stack name for PopBack.
func (s *ArrayStack[T]) Pop() (T, error) { return s.PopBack() }

// PeekBack returns the last element without removing it.
func (s *ArrayStack[T]) PeekBack() (T, error) {
	if s.count == 0 {
		var zero T
		return zero, empty("stack")
	}
	return s.data[s.count-1], nil
}

// Peek is the stack name for PeekBack.
func (s *ArrayStack[T]) Peek() (T, error) { return s.PeekBack() }

// RemoveAt deletes the element at index and closes the gap by shifting the
// elements after it one slot to the left.
func (s *ArrayStack[T]) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	copy(s.data[index:s.count], s.data[index+1:s.count])
	s.count--
	var zero T
	s.data[s.count] = zero
	return nil
}

// InsertAt places value at index, shifting the elements at and after index
// one slot to the right. Valid indexes are [0, Len()]; inserting at Len() is
// the same as PushBack.
func (s *ArrayStack[T]) InsertAt(index int, value T) error {
	if index < 0 || index > s.count {
		return outOfBounds(index, s.count)
	}
	if s.count == len(s.data) {
		s.grow()
	}
	copy(s.data[index+1:s.count+1], s.data[index:s.count])
	s.data[index] = value
	s.count++
	return nil
}

// ShrinkToFit reallocates the buffer to exactly Len() slots, or 1 slot when
// empty. It is a no-op when the buffer is already that size.
func (s *ArrayStack[T]) ShrinkToFit() {
	newCap := fittedCapacity(s.count)
	if newCap == len(s.data) {
		return
	}
	s.data = copyLinear(s.data, s.count, newCap)
}

// Values returns a copy of the elements from index 0 to Len()-1.
func (s *ArrayStack[T]) Values() []T {
	out := make([]T, s.count)
	copy(out, s.data[:s.count])
	return out
}

// All returns an iterator over index-value pairs from the bottom of the stack.
func (s *ArrayStack[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.data[i]) {
				return
			}
		}
	}
}

func (s *ArrayStack[T]) grow() {
	s.data = copyLinear(s.data, s.count, grownCapacity(len(s.data)))
}

func (s *ArrayStack[T]) checkIndex(index int) error {
	if index < 0 || index >= s.count {
		return outOfBounds(index, s.count)
	}
	return nil
}
