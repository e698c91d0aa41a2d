package datastructures

import "fmt"

const (
	// DefaultCapacity is used by the NewDefault* constructors.
	DefaultCapacity = 10
	// GrowthFactor multiplies the capacity of a full buffer on insertion.
	GrowthFactor = 2
)

// validateCapacity rejects construction capacities that are zero or negative.
func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be greater than 0, got %d", ErrInvalidArgument, capacity)
	}
	return nil
}

// grownCapacity returns the capacity a full buffer grows to. An unallocated
// buffer (the zero value of a collection) gets DefaultCapacity.
func grownCapacity(capacity int) int {
	if capacity == 0 {
		return DefaultCapacity
	}
	return capacity * GrowthFactor
}

// fittedCapacity returns the shrink-to-fit capacity for count elements.
// It never returns 0 so the buffer always holds at least one slot.
func fittedCapacity(count int) int {
	return max(count, 1)
}

// copyLinear moves the first count elements of old into a new buffer of
// newCap slots.
func copyLinear[T any](old []T, count, newCap int) []T {
	buf := make([]T, newCap)
	copy(buf, old[:count])
	return buf
}

// reindexCircular moves count elements of the ring old, starting at physical
// index head, into a new buffer of newCap slots starting at index 0. It serves
// both growth and shrink-to-fit; callers reset their head to 0 afterwards.
func reindexCircular[T any](old []T, head, count, newCap int) []T {
	buf := make([]T, newCap)
	if count == 0 {
		return buf
	}
	// The live region is old[head:] followed by the wrapped part old[:rest].
	n := copy(buf, old[head:min(head+count, len(old))])
	copy(buf[n:], old[:count-n])
	return buf
}
