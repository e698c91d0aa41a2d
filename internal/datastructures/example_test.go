package datastructures_test

import (
	"fmt"

	"github.com/vskvj3/playbook/internal/datastructures"
)

func ExampleArrayStack() {
	list, _ := datastructures.NewArrayStack[int](2)
	for v := 1; v <= 6; v++ {
		list.Add(v)
	}
	fmt.Println(list.Len(), list.Cap())

	_ = list.RemoveAt(0) // first index
	_ = list.RemoveAt(2) // middle index
	_ = list.RemoveAt(3) // last index
	list.Add(9)

	_ = list.InsertAt(0, 1)
	_ = list.InsertAt(3, 4)
	_ = list.InsertAt(5, 6)
	_ = list.InsertAt(6, 7)
	_ = list.InsertAt(7, 8)
	list.ShrinkToFit()

	fmt.Println(list.Values(), list.Cap())
	// Output:
	// 6 8
	// [1 2 3 4 5 6 7 8 9] 9
}

func ExampleCircularQueue() {
	q, _ := datastructures.NewCircularQueue[string](2)
	q.Enqueue("a")
	q.Enqueue("b")
	front, _ := q.Dequeue()
	q.Enqueue("c")
	q.Enqueue("d")

	fmt.Println(front, q.Values(), q.Cap())
	// Output: a [b c d] 4
}

func ExampleLinkedList() {
	l := datastructures.NewLinkedList[string]()
	world := datastructures.NewNode("world")
	_ = l.AddLast(world)
	_ = l.AddBefore(world, datastructures.NewNode("hello"))

	_ = l.Remove(world)
	fmt.Println(l.Values(), world.List() == nil)
	// Output: [hello] true
}
