// Package stack normalizes get-method stack parameters into the single wire
// form the TONX backend accepts.
//
// Two input encodings are accepted:
//
//	legacy:  [["num", 16], ["cell", "te6cc..."], ["slice", "te6cc..."]]
//	typed:   [{"type": "num", "value": "0x10"}, {"type": "cell", "value": "te6cc..."}]
//
// Both normalize to
//
//	[["num", "16"], ["tvm.Cell", "te6cc..."], ["tvm.Slice", "te6cc..."]]
package stack

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the type of one stack entry.
type Kind string

const (
	KindNum   Kind = "num"
	KindCell  Kind = "cell"
	KindSlice Kind = "slice"
)

// Wire tags
const (
	TagNum   = "num"
	TagCell  = "tvm.Cell"
	TagSlice = "tvm.Slice"
)

var (
	// ErrUnknownShape is returned when the input matches neither encoding.
	ErrUnknownShape = errors.New("unknown type of params")
	// ErrInvalidNumber is returned for num values that are not exact integers.
	ErrInvalidNumber = errors.New("invalid num value")
)

// ParseKind parses a stack entry kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNum, KindCell, KindSlice:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown stack entry type %q", s)
}

// WireTag returns the tag used on the wire.
func (k Kind) WireTag() string {
	switch k {
	case KindCell:
		return TagCell
	case KindSlice:
		return TagSlice
	default:
		return TagNum
	}
}

// Entry is one canonical stack entry. Num values are base-10 integer strings.
type Entry struct {
	Kind  Kind
	Value string
}

// Num returns a num entry.
func Num(value string) Entry { return Entry{Kind: KindNum, Value: value} }

// Cell returns a cell entry.
func Cell(boc string) Entry { return Entry{Kind: KindCell, Value: boc} }

// Slice returns a slice entry.
func Slice(boc string) Entry { return Entry{Kind: KindSlice, Value: boc} }

// MarshalJSON encodes the entry as a [tag, value] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Kind.WireTag(), e.Value})
}

// UnmarshalJSON decodes a [tag, value] pair in wire form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("stack entry must be a [tag, value] pair: %w", err)
	}
	switch pair[0] {
	case TagNum:
		e.Kind = KindNum
	case TagCell:
		e.Kind = KindCell
	case TagSlice:
		e.Kind = KindSlice
	default:
		return fmt.Errorf("unknown stack entry tag %q", pair[0])
	}
	e.Value = pair[1]
	return nil
}
