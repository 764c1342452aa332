package wire

import "fmt"

// DecodeError describes a rejected packet: a malformed size or a mismatched
// discriminant (§4.F decoding rule). Every Decode* function in this package
// validates fully before writing to its output struct, so a DecodeError
// never leaves partially-applied state for the caller to observe.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "wire: " + e.Reason
}

func errTooShort(want, got int) error {
	return &DecodeError{Reason: fmt.Sprintf("bad buffer size: need %d bytes, got %d", want, got)}
}

func errWrongType(want, got uint32) error {
	return &DecodeError{Reason: fmt.Sprintf("unexpected packet type: want %d, got %d", want, got)}
}

func errBadCount(reason string) error {
	return &DecodeError{Reason: reason}
}
