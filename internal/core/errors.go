package core

import (
	"errors"

	ds "github.com/vskvj3/playbook/internal/datastructures"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrWrongType        = errors.New("operation against a key holding the wrong kind of collection")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingField     = errors.New("missing required field")
	ErrMalformedRequest = errors.New("malformed request")
)

// Error kinds reported to clients in the "kind" field of an ERROR reply.
const (
	KindInvalidArgument = "INVALID_ARGUMENT"
	KindOutOfBounds     = "OUT_OF_BOUNDS"
	KindEmpty           = "EMPTY"
	KindInvalidTopology = "INVALID_TOPOLOGY"
	KindWrongType       = "WRONGTYPE"
	KindNotFound        = "NOT_FOUND"
	KindError           = "ERROR"
)

// ErrorKind classifies err for an ERROR reply.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ds.ErrInvalidArgument),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrMalformedRequest):
		return KindInvalidArgument
	case errors.Is(err, ds.ErrOutOfBounds):
		return KindOutOfBounds
	case errors.Is(err, ds.ErrEmpty):
		return KindEmpty
	case errors.Is(err, ds.ErrInvalidTopology):
		return KindInvalidTopology
	case errors.Is(err, ErrWrongType):
		return KindWrongType
	case errors.Is(err, ErrKeyNotFound):
		return KindNotFound
	default:
		return KindError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
