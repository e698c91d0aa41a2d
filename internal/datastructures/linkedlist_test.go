package datastructures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilledList(t *testing.T, data ...int) (*LinkedList[int], []*Node[int]) {
	t.Helper()
	l := NewLinkedList[int]()
	nodes := make([]*Node[int], 0, len(data))
	for _, v := range data {
		n := NewNode(v)
		require.NoError(t, l.AddLast(n))
		nodes = append(nodes, n)
	}
	return l, nodes
}

// assertLinks walks the list both ways and checks every structural invariant.
func assertLinks[T any](t *testing.T, l *LinkedList[T], expected []T) {
	t.Helper()
	assert.Equal(t, len(expected), l.Len())

	forward := []T{}
	var prev *Node[T]
	for n := l.First(); n != nil; n = n.Next() {
		assert.Same(t, l, n.List())
		if prev == nil {
			assert.Nil(t, n.Prev())
		} else {
			assert.Same(t, prev, n.Prev())
		}
		forward = append(forward, n.Value())
		prev = n
		require.LessOrEqual(t, len(forward), len(expected), "cycle or extra nodes")
	}
	assert.Equal(t, expected, forward)
	if len(expected) == 0 {
		assert.Nil(t, l.First())
		assert.Nil(t, l.Last())
	} else {
		assert.Same(t, prev, l.Last())
		assert.Nil(t, l.Last().Next())
	}

	backward := []T{}
	for n := l.Last(); n != nil; n = n.Prev() {
		backward = append([]T{n.Value()}, backward...)
	}
	assert.Equal(t, expected, backward)
}

func assertDetached[T any](t *testing.T, n *Node[T]) {
	t.Helper()
	assert.Nil(t, n.List())
	assert.Nil(t, n.Prev())
	assert.Nil(t, n.Next())
}

func TestNewLinkedList(t *testing.T) {
	l := NewLinkedList[int]()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())

	n := NewNode(42)
	assert.Equal(t, 42, n.Value())
	assertDetached(t, n)
}

func TestLinkedListAddFirstLast(t *testing.T) {
	l := NewLinkedList[int]()

	require.NoError(t, l.AddFirst(NewNode(2)))
	require.NoError(t, l.AddLast(NewNode(3)))
	require.NoError(t, l.AddFirst(NewNode(1)))
	require.NoError(t, l.AddLast(NewNode(4)))

	assertLinks(t, l, []int{1, 2, 3, 4})

	assert.ErrorIs(t, l.AddFirst(nil), ErrInvalidArgument)
	assert.ErrorIs(t, l.AddLast(nil), ErrInvalidArgument)
	assertLinks(t, l, []int{1, 2, 3, 4})
}

func TestLinkedListOwnershipExclusive(t *testing.T) {
	a, nodes := newFilledList(t, 1, 2, 3)
	b, _ := newFilledList(t, 10)

	for _, n := range nodes {
		assert.ErrorIs(t, a.AddFirst(n), ErrInvalidTopology)
		assert.ErrorIs(t, a.AddLast(n), ErrInvalidTopology)
		assert.ErrorIs(t, b.AddFirst(n), ErrInvalidTopology)
		assert.ErrorIs(t, b.AddLast(n), ErrInvalidTopology)
		assert.ErrorIs(t, b.AddAfter(b.First(), n), ErrInvalidTopology)
		assert.ErrorIs(t, b.AddBefore(b.First(), n), ErrInvalidTopology)
	}
	assertLinks(t, a, []int{1, 2, 3})
	assertLinks(t, b, []int{10})

	// Once removed, the node can move to another list.
	require.NoError(t, a.Remove(nodes[1]))
	require.NoError(t, b.AddLast(nodes[1]))
	assertLinks(t, a, []int{1, 3})
	assertLinks(t, b, []int{10, 2})
}

func TestLinkedListAddBefore(t *testing.T) {
	l, nodes := newFilledList(t, 2, 4)

	require.NoError(t, l.AddBefore(nodes[0], NewNode(1)))
	require.NoError(t, l.AddBefore(nodes[1], NewNode(3)))
	assertLinks(t, l, []int{1, 2, 3, 4})

	single, only := newFilledList(t, 9)
	require.NoError(t, single.AddBefore(only[0], NewNode(8)))
	assertLinks(t, single, []int{8, 9})
}

func TestLinkedListAddAfter(t *testing.T) {
	l, nodes := newFilledList(t, 1, 3)

	require.NoError(t, l.AddAfter(nodes[1], NewNode(4)))
	require.NoError(t, l.AddAfter(nodes[0], NewNode(2)))
	assertLinks(t, l, []int{1, 2, 3, 4})

	single, only := newFilledList(t, 8)
	require.NoError(t, single.AddAfter(only[0], NewNode(9)))
	assertLinks(t, single, []int{8, 9})
}

func TestLinkedListSpliceFailures(t *testing.T) {
	l, nodes := newFilledList(t, 1, 2, 3)
	other, otherNodes := newFilledList(t, 7)
	loose := NewNode(5)

	tests := []struct {
		name  string
		pivot *Node[int]
		node  *Node[int]
		want  error
	}{
		{"nil pivot", nil, loose, ErrInvalidArgument},
		{"nil node", nodes[0], nil, ErrInvalidArgument},
		{"identical", nodes[1], nodes[1], ErrInvalidTopology},
		{"unlinked pivot", NewNode(0), loose, ErrInvalidTopology},
		{"pivot in another list", otherNodes[0], loose, ErrInvalidTopology},
		{"node in this list", nodes[0], nodes[2], ErrInvalidTopology},
		{"node in another list", nodes[0], otherNodes[0], ErrInvalidTopology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, l.AddBefore(tt.pivot, tt.node), tt.want)
			assert.ErrorIs(t, l.AddAfter(tt.pivot, tt.node), tt.want)
			assertLinks(t, l, []int{1, 2, 3})
			assertLinks(t, other, []int{7})
			assertDetached(t, loose)
		})
	}
}

func TestLinkedListRemove(t *testing.T) {
	tests := []struct {
		name     string
		data     []int
		remove   []int
		expected []int
	}{
		{"middle", []int{1, 2, 3}, []int{1}, []int{1, 3}},
		{"head", []int{1, 2, 3}, []int{0}, []int{2, 3}},
		{"tail", []int{1, 2, 3}, []int{2}, []int{1, 2}},
		{"only node", []int{1}, []int{0}, []int{}},
		{"everything", []int{1, 2, 3, 4}, []int{3, 0, 2, 1}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, nodes := newFilledList(t, tt.data...)
			for _, i := range tt.remove {
				require.NoError(t, l.Remove(nodes[i]))
				assertDetached(t, nodes[i])
			}
			assertLinks(t, l, tt.expected)
		})
	}
}

func TestLinkedListRemoveFailures(t *testing.T) {
	l, nodes := newFilledList(t, 1, 2)
	other, otherNodes := newFilledList(t, 3)

	assert.ErrorIs(t, l.Remove(nil), ErrInvalidArgument)
	assert.ErrorIs(t, l.Remove(NewNode(9)), ErrInvalidTopology)
	assert.ErrorIs(t, l.Remove(otherNodes[0]), ErrInvalidTopology)

	require.NoError(t, l.Remove(nodes[0]))
	assert.ErrorIs(t, l.Remove(nodes[0]), ErrInvalidTopology, "second removal")

	assertLinks(t, l, []int{2})
	assertLinks(t, other, []int{3})
}

func TestLinkedListRemoveFirstLast(t *testing.T) {
	l := NewLinkedList[int]()

	_, err := l.RemoveFirst()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = l.RemoveLast()
	assert.ErrorIs(t, err, ErrEmpty)

	l, nodes := newFilledList(t, 1, 2, 3, 4)

	n, err := l.RemoveFirst()
	require.NoError(t, err)
	assert.Same(t, nodes[0], n)
	assertDetached(t, n)

	n, err = l.RemoveLast()
	require.NoError(t, err)
	assert.Same(t, nodes[3], n)
	assertDetached(t, n)

	assertLinks(t, l, []int{2, 3})

	_, err = l.RemoveLast()
	require.NoError(t, err)
	_, err = l.RemoveFirst()
	require.NoError(t, err)
	assertLinks(t, l, []int{})

	_, err = l.RemoveFirst()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLinkedListClear(t *testing.T) {
	for _, data := range [][]int{nil, {1}, {1, 2, 3, 4, 5}} {
		l, nodes := newFilledList(t, data...)
		l.Clear()

		assertLinks(t, l, []int{})
		for _, n := range nodes {
			assertDetached(t, n)
		}

		// Cleared nodes are reusable.
		for _, n := range nodes {
			require.NoError(t, l.AddFirst(n))
		}
		assert.Equal(t, len(data), l.Len())
	}
}

func TestLinkedListAt(t *testing.T) {
	l, nodes := newFilledList(t, 0, 1, 2, 3, 4)

	for i, want := range nodes {
		n, err := l.At(i)
		require.NoError(t, err)
		assert.Same(t, want, n)
	}
	for _, index := range []int{-1, 5, 10} {
		_, err := l.At(index)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
}

func TestLinkedListAllAllowsRemoval(t *testing.T) {
	l, _ := newFilledList(t, 1, 2, 3, 4, 5, 6)

	for n := range l.All() {
		if n.Value()%2 == 0 {
			require.NoError(t, l.Remove(n))
		}
	}

	assertLinks(t, l, []int{1, 3, 5})
	assert.Equal(t, []int{1, 3, 5}, l.Values())
}
