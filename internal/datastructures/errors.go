package datastructures

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	// ErrInvalidArgument is returned for a missing node or a non-positive
	// requested capacity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds is returned when an index falls outside the valid range.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrEmpty is returned when reading or removing from an empty structure.
	ErrEmpty = errors.New("structure is empty")

	// ErrInvalidTopology is returned when a linked list operation would break
	// node ownership: the pivot belongs to another list, the node is already
	// linked somewhere, or pivot and node are the same node.
	ErrInvalidTopology = errors.New("invalid node topology")
)

func outOfBounds(index, count int) error {
	return fmt.Errorf("%w: index %d with count %d", ErrOutOfBounds, index, count)
}

func empty(name string) error {
	return fmt.Errorf("%w: %s", ErrEmpty, name)
}
