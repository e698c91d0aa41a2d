package datastructures

import (
	"fmt"
	"iter"
)

type (
	// LinkedList is a doubly linked list of caller-allocated nodes.
	//
	// Every node knows which list, if any, it is linked into. A node can be
	// linked into at most one list at a time and returns to the unlinked
	// state (no owner, no links) when it is removed or its list is cleared.
	// LinkedList is not safe for concurrent use.
	LinkedList[T any] struct {
		first  *Node[T]
		last   *Node[T]
		length int
	}

	// Node is an element of a LinkedList. Create one with NewNode and hand it
	// to one of the list's Add methods.
	Node[T any] struct {
		value T
		list  *LinkedList[T]
		prev  *Node[T]
		next  *Node[T]
	}
)

// NewNode creates an unlinked node holding value.
func NewNode[T any](value T) *Node[T] {
	return &Node[T]{value: value}
}

// Value returns the value stored in the node.
func (n *Node[T]) Value() T { return n.value }

// SetValue replaces the value stored in the node.
func (n *Node[T]) SetValue(value T) { n.value = value }

// List returns the list the node is linked into, or nil.
func (n *Node[T]) List() *LinkedList[T] { return n.list }

// Next returns the following node, or nil at the end of the list.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the preceding node, or nil at the start of the list.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

func (n *Node[T]) detach() {
	n.list = nil
	n.prev = nil
	n.next = nil
}

// NewLinkedList creates an empty list.
func NewLinkedList[T any]() *LinkedList[T] {
	return &LinkedList[T]{}
}

// Len returns the number of linked nodes.
func (l *LinkedList[T]) Len() int { return l.length }

// First returns the head node, or nil if the list is empty.
func (l *LinkedList[T]) First() *Node[T] { return l.first }

// Last returns the tail node, or nil if the list is empty.
func (l *LinkedList[T]) Last() *Node[T] { return l.last }

// AddFirst links node at the head of the list.
func (l *LinkedList[T]) AddFirst(node *Node[T]) error {
	if err := checkInsertable(node); err != nil {
		return err
	}
	if l.first == nil {
		l.linkOnly(node)
		return nil
	}
	l.linkBefore(l.first, node)
	return nil
}

// AddLast links node at the tail of the list.
func (l *LinkedList[T]) AddLast(node *Node[T]) error {
	if err := checkInsertable(node); err != nil {
		return err
	}
	if l.last == nil {
		l.linkOnly(node)
		return nil
	}
	l.linkAfter(l.last, node)
	return nil
}

// AddBefore links node immediately before pivot, which must belong to l.
func (l *LinkedList[T]) AddBefore(pivot, node *Node[T]) error {
	if err := l.checkSplice(pivot, node); err != nil {
		return err
	}
	l.linkBefore(pivot, node)
	return nil
}

// AddAfter links node immediately after pivot, which must belong to l.
func (l *LinkedList[T]) AddAfter(pivot, node *Node[T]) error {
	if err := l.checkSplice(pivot, node); err != nil {
		return err
	}
	l.linkAfter(pivot, node)
	return nil
}

// Remove unlinks node from l and clears its links and owner.
func (l *LinkedList[T]) Remove(node *Node[T]) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidArgument)
	}
	if node.list != l {
		return fmt.Errorf("%w: node is not linked into this list", ErrInvalidTopology)
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.first = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.last = node.prev
	}
	node.detach()
	l.length--
	return nil
}

// RemoveFirst unlinks the head node and returns it.
func (l *LinkedList[T]) RemoveFirst() (*Node[T], error) {
	node := l.first
	if node == nil {
		return nil, empty("linked list")
	}
	return node, l.Remove(node)
}

// RemoveLast unlinks the tail node and returns it.
func (l *LinkedList[T]) RemoveLast() (*Node[T], error) {
	node := l.last
	if node == nil {
		return nil, empty("linked list")
	}
	return node, l.Remove(node)
}

// Clear unlinks every node, so references held elsewhere see no owner and
// no neighbours.
func (l *LinkedList[T]) Clear() {
	for n := l.first; n != nil; {
		next := n.next
		n.detach()
		n = next
	}
	l.first = nil
	l.last = nil
	l.length = 0
}

// Values returns the node values from head to tail.
func (l *LinkedList[T]) Values() []T {
	out := make([]T, 0, l.length)
	for n := l.first; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// All returns an iterator over the nodes from head to tail. The iterator
// reads the next link before yielding, so the yielded node may be removed.
func (l *LinkedList[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n := l.first; n != nil; {
			next := n.next
			if !yield(n) {
				return
			}
			n = next
		}
	}
}

// At returns the node at position index, walking from whichever end is
// closer.
func (l *LinkedList[T]) At(index int) (*Node[T], error) {
	if index < 0 || index >= l.length {
		return nil, outOfBounds(index, l.length)
	}
	if index < l.length/2 {
		n := l.first
		for range index {
			n = n.next
		}
		return n, nil
	}
	n := l.last
	for range l.length - 1 - index {
		n = n.prev
	}
	return n, nil
}

func checkInsertable[T any](node *Node[T]) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidArgument)
	}
	if node.list != nil {
		return fmt.Errorf("%w: node is already linked into a list", ErrInvalidTopology)
	}
	return nil
}

func (l *LinkedList[T]) checkSplice(pivot, node *Node[T]) error {
	if pivot == nil {
		return fmt.Errorf("%w: pivot node is nil", ErrInvalidArgument)
	}
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidArgument)
	}
	if pivot == node {
		return fmt.Errorf("%w: pivot and node are the same node", ErrInvalidTopology)
	}
	if pivot.list != l {
		return fmt.Errorf("%w: pivot is not linked into this list", ErrInvalidTopology)
	}
	return checkInsertable(node)
}

func (l *LinkedList[T]) linkOnly(node *Node[T]) {
	node.list = l
	l.first = node
	l.last = node
	l.length++
}

func (l *LinkedList[T]) linkBefore(pivot, node *Node[T]) {
	node.list = l
	node.next = pivot
	node.prev = pivot.prev
	if pivot.prev != nil {
		pivot.prev.next = node
	} else {
		l.first = node
	}
	pivot.prev = node
	l.length++
}

func (l *LinkedList[T]) linkAfter(pivot, node *Node[T]) {
	node.list = l
	node.prev = pivot
	node.next = pivot.next
	if pivot.next != nil {
		pivot.next.prev = node
	} else {
		l.last = node
	}
	pivot.next = node
	l.length++
}
