package datastructures

import (
	"math/rand"
	"testing"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests in this file replay random operation sequences against the gods
// containers and compare contents after every step.

func toInts(t *testing.T, values []interface{}) []int {
	t.Helper()
	out := make([]int, len(values))
	for i, v := range values {
		n, ok := v.(int)
		require.True(t, ok)
		out[i] = n
	}
	return out
}

func TestArrayStackMatchesArrayList(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewArrayStack[int](1)
	require.NoError(t, err)
	ref := arraylist.New()

	for step := range 2000 {
		switch op := rng.Intn(6); op {
		case 0, 1:
			s.Push(step)
			ref.Add(step)
		case 2:
			index := rng.Intn(s.Len()+3) - 1
			err := s.InsertAt(index, step)
			if index < 0 || index > ref.Size() {
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				require.NoError(t, err)
				ref.Insert(index, step)
			}
		case 3:
			index := rng.Intn(s.Len()+2) - 1
			err := s.RemoveAt(index)
			if index < 0 || index >= ref.Size() {
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				require.NoError(t, err)
				ref.Remove(index)
			}
		case 4:
			v, err := s.Pop()
			if ref.Empty() {
				assert.ErrorIs(t, err, ErrEmpty)
			} else {
				require.NoError(t, err)
				want, _ := ref.Get(ref.Size() - 1)
				ref.Remove(ref.Size() - 1)
				assert.Equal(t, want, v)
			}
		case 5:
			if rng.Intn(4) == 0 {
				s.ShrinkToFit()
				assert.Equal(t, max(s.Len(), 1), s.Cap())
			}
		}

		require.Equal(t, toInts(t, ref.Values()), s.Values(), "step %d", step)
		require.GreaterOrEqual(t, s.Cap(), max(s.Len(), 1))
	}
}

func TestCircularQueueMatchesArrayQueue(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	q, err := NewCircularQueue[int](1)
	require.NoError(t, err)
	ref := arrayqueue.New()

	for step := range 2000 {
		switch op := rng.Intn(5); op {
		case 0, 1:
			q.Enqueue(step)
			ref.Enqueue(step)
		case 2, 3:
			v, err := q.Dequeue()
			want, ok := ref.Dequeue()
			if !ok {
				assert.ErrorIs(t, err, ErrEmpty)
			} else {
				require.NoError(t, err)
				assert.Equal(t, want, v)
			}
		case 4:
			if rng.Intn(4) == 0 {
				q.ShrinkToFit()
				assert.Equal(t, max(q.Len(), 1), q.Cap())
			}
		}

		require.Equal(t, toInts(t, ref.Values()), q.Values(), "step %d", step)
		require.GreaterOrEqual(t, q.Cap(), max(q.Len(), 1))
		require.Less(t, q.head, q.Cap())
		if q.Len() == 0 {
			require.Equal(t, 0, q.head)
		}
	}
}

func TestLinkedListMatchesDoublyLinkedList(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	l := NewLinkedList[int]()
	ref := doublylinkedlist.New()

	for step := range 1000 {
		switch op := rng.Intn(6); op {
		case 0:
			require.NoError(t, l.AddFirst(NewNode(step)))
			ref.Prepend(step)
		case 1:
			require.NoError(t, l.AddLast(NewNode(step)))
			ref.Add(step)
		case 2, 3:
			if l.Len() == 0 {
				continue
			}
			index := rng.Intn(l.Len())
			pivot, err := l.At(index)
			require.NoError(t, err)
			if op == 2 {
				require.NoError(t, l.AddBefore(pivot, NewNode(step)))
				ref.Insert(index, step)
			} else {
				require.NoError(t, l.AddAfter(pivot, NewNode(step)))
				ref.Insert(index+1, step)
			}
		case 4:
			if l.Len() == 0 {
				continue
			}
			index := rng.Intn(l.Len())
			n, err := l.At(index)
			require.NoError(t, err)
			require.NoError(t, l.Remove(n))
			assertDetached(t, n)
			ref.Remove(index)
		case 5:
			_, err := l.RemoveLast()
			if ref.Empty() {
				assert.ErrorIs(t, err, ErrEmpty)
			} else {
				require.NoError(t, err)
				ref.Remove(ref.Size() - 1)
			}
		}

		require.Equal(t, toInts(t, ref.Values()), l.Values(), "step %d", step)
	}
	assertLinks(t, l, toInts(t, ref.Values()))
}
