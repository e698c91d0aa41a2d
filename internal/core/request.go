package core

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Request is the typed form of a client request map.
type Request struct {
	Command string  `mapstructure:"command"`
	Key     string  `mapstructure:"key"`
	Value   *string `mapstructure:"value"`
	Index   *int    `mapstructure:"index"`
	Exp     *int64  `mapstructure:"exp"`
	At      *int64  `mapstructure:"at"`
	Where   string  `mapstructure:"where"`
	Message *string `mapstructure:"message"`
}

// DecodeRequest converts a loosely typed request map into a Request. Numbers
// may arrive as any integer width (msgpack) or as decimal strings (CLI).
func DecodeRequest(raw map[string]interface{}) (*Request, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty request", ErrMalformedRequest)
	}

	req := &Request{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	req.Command = strings.ToUpper(strings.TrimSpace(req.Command))
	req.Where = strings.ToUpper(strings.TrimSpace(req.Where))
	if req.Command == "" {
		return nil, fmt.Errorf("%w: invalid or missing 'command' field", ErrMalformedRequest)
	}
	return req, nil
}

// ToMap converts the request back into the map form used on the wire and in
// the append-only log.
func (r *Request) ToMap() map[string]interface{} {
	m := map[string]interface{}{"command": r.Command}
	if r.Key != "" {
		m["key"] = r.Key
	}
	if r.Value != nil {
		m["value"] = *r.Value
	}
	if r.Index != nil {
		m["index"] = int64(*r.Index)
	}
	if r.Exp != nil {
		m["exp"] = *r.Exp
	}
	if r.At != nil {
		m["at"] = *r.At
	}
	if r.Where != "" {
		m["where"] = r.Where
	}
	if r.Message != nil {
		m["message"] = *r.Message
	}
	return m
}

func (r *Request) requireKey() error {
	if r.Key == "" {
		return fmt.Errorf("%w: %s requires a 'key' field", ErrMissingField, r.Command)
	}
	return nil
}

func (r *Request) requireValue() (string, error) {
	if err := r.requireKey(); err != nil {
		return "", err
	}
	if r.Value == nil {
		return "", fmt.Errorf("%w: %s requires a 'value' field", ErrMissingField, r.Command)
	}
	return *r.Value, nil
}

func (r *Request) requireIndex() (int, error) {
	if err := r.requireKey(); err != nil {
		return 0, err
	}
	if r.Index == nil {
		return 0, fmt.Errorf("%w: %s requires an 'index' field (integer)", ErrMissingField, r.Command)
	}
	return *r.Index, nil
}

func (r *Request) requireBefore() (bool, error) {
	switch r.Where {
	case "BEFORE":
		return true, nil
	case "AFTER":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s requires 'where' to be BEFORE or AFTER", ErrMissingField, r.Command)
	}
}
