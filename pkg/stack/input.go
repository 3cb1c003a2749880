package stack

import (
	"bytes"
	"encoding/json"
)

type shape int

const (
	shapeNone shape = iota
	shapeLegacy
	shapeTyped
	shapeRaw
)

// LegacyEntry is a [tag, value] tuple where num values are JSON numbers
// and cell/slice values are base64 BoC strings.
type LegacyEntry struct {
	Tag   string
	Value interface{}
}

// MarshalJSON encodes the entry as a [tag, value] tuple.
func (e LegacyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Tag, e.Value})
}

// TypedEntry is a {type, value} object where every value is a string.
type TypedEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Input holds stack parameters in either accepted encoding. The zero value
// is an empty stack.
type Input struct {
	shape  shape
	legacy []LegacyEntry
	typed  []TypedEntry
	raw    json.RawMessage
}

// FromLegacy builds an input from legacy tuples.
func FromLegacy(entries ...LegacyEntry) Input {
	return Input{shape: shapeLegacy, legacy: entries}
}

// FromTyped builds an input from typed objects.
func FromTyped(entries ...TypedEntry) Input {
	return Input{shape: shapeTyped, typed: entries}
}

// FromRaw builds an input from undecoded JSON; the encoding is detected by Normalize.
func FromRaw(raw json.RawMessage) Input {
	return Input{shape: shapeRaw, raw: append(json.RawMessage(nil), raw...)}
}

// IsEmpty reports whether the input carries no entries.
func (in Input) IsEmpty() bool {
	switch in.shape {
	case shapeLegacy:
		return len(in.legacy) == 0
	case shapeTyped:
		return len(in.typed) == 0
	case shapeRaw:
		trimmed := bytes.TrimSpace(in.raw)
		return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]"))
	}
	return true
}

// UnmarshalJSON keeps the raw JSON for Normalize to discriminate.
func (in *Input) UnmarshalJSON(data []byte) error {
	*in = FromRaw(data)
	return nil
}

// MarshalJSON encodes the input in the encoding it was built with.
func (in Input) MarshalJSON() ([]byte, error) {
	switch in.shape {
	case shapeLegacy:
		if in.legacy == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(in.legacy)
	case shapeTyped:
		if in.typed == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(in.typed)
	case shapeRaw:
		if len(bytes.TrimSpace(in.raw)) == 0 {
			return []byte("[]"), nil
		}
		return in.raw, nil
	}
	return []byte("[]"), nil
}
