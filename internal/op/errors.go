package op

import (
	"errors"
	"fmt"
)

// ErrInvalidMode reports an unsupported file open mode. Valid modes are
// ModeWrite ("w") and ModeAppend ("a").
var ErrInvalidMode = errors.New("invalid file open mode")

// TypeError reports an input whose type is outside the accepted set for
// the operation.
type TypeError struct {
	Op    string
	Value interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: unsupported input type %T", e.Op, e.Value)
}

// DecodeError reports JSON text that could not be parsed. Offset is the
// byte position of the failure when known, -1 otherwise.
type DecodeError struct {
	Msg    string
	Offset int64
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("decode json: %s (offset %d)", e.Msg, e.Offset)
	}
	return fmt.Sprintf("decode json: %s", e.Msg)
}

// UnsupportedTypeError reports a value with no JSON representation and
// no registered converter.
type UnsupportedTypeError struct {
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("encode json: unsupported type %T", e.Value)
}
