package datastructures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityPolicy(t *testing.T) {
	assert.ErrorIs(t, validateCapacity(0), ErrInvalidArgument)
	assert.ErrorIs(t, validateCapacity(-3), ErrInvalidArgument)
	assert.NoError(t, validateCapacity(1))

	assert.Equal(t, 8, grownCapacity(4))
	assert.Equal(t, DefaultCapacity, grownCapacity(0))
	assert.Equal(t, 1, fittedCapacity(0))
	assert.Equal(t, 5, fittedCapacity(5))
}

func TestZeroValueCollections(t *testing.T) {
	var s ArrayStack[int]
	assert.Equal(t, 0, s.Cap())
	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
	s.Push(1)
	s.Push(2)
	assert.Equal(t, DefaultCapacity, s.Cap())
	assert.Equal(t, []int{1, 2}, s.Values())

	var inserted ArrayStack[string]
	assert.NoError(t, inserted.InsertAt(0, "a"))
	assert.Equal(t, DefaultCapacity, inserted.Cap())

	var q CircularQueue[int]
	assert.Empty(t, q.Values())
	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrEmpty)
	q.Enqueue(1)
	q.Enqueue(2)
	assert.Equal(t, DefaultCapacity, q.Cap())
	front, err := q.Dequeue()
	assert.NoError(t, err)
	assert.Equal(t, 1, front)

	var shrunk CircularQueue[int]
	shrunk.ShrinkToFit()
	assert.Equal(t, 1, shrunk.Cap())
}

func TestReindexCircular(t *testing.T) {
	tests := []struct {
		name   string
		old    []int
		head   int
		count  int
		newCap int
		want   []int
	}{
		{"empty", []int{0, 0}, 1, 0, 1, []int{0}},
		{"contiguous", []int{1, 2, 3, 0}, 0, 3, 6, []int{1, 2, 3, 0, 0, 0}},
		{"offset without wrap", []int{0, 1, 2, 0}, 1, 2, 2, []int{1, 2}},
		{"wrapped", []int{3, 4, 1, 2}, 2, 4, 8, []int{1, 2, 3, 4, 0, 0, 0, 0}},
		{"wrapped shrink", []int{3, 0, 0, 1, 2}, 3, 3, 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]int{}, tt.old...)
			assert.Equal(t, tt.want, reindexCircular(tt.old, tt.head, tt.count, tt.newCap))
			assert.Equal(t, before, tt.old, "input buffer must not change")
		})
	}
}

func TestCopyLinear(t *testing.T) {
	assert.Equal(t, []int{1, 2, 0, 0}, copyLinear([]int{1, 2, 9}, 2, 4))
	assert.Equal(t, []int{1}, copyLinear([]int{1, 2, 9}, 1, 1))
}
