package stack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/frigatebird-studio/tonx-go/internal/utils"
)

// Normalize converts the input into canonical entries. An empty or absent
// stack yields an empty, non-nil slice.
func Normalize(in Input) ([]Entry, error) {
	switch in.shape {
	case shapeLegacy:
		return normalizeLegacy(in.legacy)
	case shapeTyped:
		return normalizeTyped(in.typed)
	case shapeRaw:
		return normalizeRaw(in.raw)
	}
	return []Entry{}, nil
}

func normalizeLegacy(entries []LegacyEntry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		var (
			entry Entry
			err   error
		)
		switch Kind(e.Tag) {
		case KindNum:
			var v string
			v, err = legacyNum(e.Value)
			entry = Num(v)
		case KindCell, KindSlice:
			s, ok := e.Value.(string)
			if !ok {
				err = ErrUnknownShape
			}
			entry = Entry{Kind: Kind(e.Tag), Value: s}
		default:
			err = ErrUnknownShape
		}
		if err != nil {
			return nil, fmt.Errorf("stack[%d]: %w", i, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func normalizeTyped(entries []TypedEntry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		kind, err := ParseKind(e.Type)
		if err != nil {
			return nil, fmt.Errorf("stack[%d]: %w", i, ErrUnknownShape)
		}

		value := e.Value
		if kind == KindNum && utils.HasHexPrefix(value) {
			value, err = hexToDecimal(value)
			if err != nil {
				return nil, fmt.Errorf("stack[%d]: %w", i, err)
			}
		}
		out = append(out, Entry{Kind: kind, Value: value})
	}
	return out, nil
}

// normalizeRaw tries the legacy encoding first and falls back to the typed one.
func normalizeRaw(raw json.RawMessage) ([]Entry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Entry{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, ErrUnknownShape
	}
	if len(items) == 0 {
		return []Entry{}, nil
	}

	if legacy, ok := decodeLegacy(items); ok {
		return normalizeLegacy(legacy)
	}
	if typed, ok := decodeTyped(items); ok {
		return normalizeTyped(typed)
	}
	return nil, ErrUnknownShape
}

func decodeLegacy(items []json.RawMessage) ([]LegacyEntry, bool) {
	out := make([]LegacyEntry, 0, len(items))
	for _, item := range items {
		var pair []json.RawMessage
		if err := json.Unmarshal(item, &pair); err != nil || len(pair) != 2 {
			return nil, false
		}
		var tag string
		if err := json.Unmarshal(pair[0], &tag); err != nil {
			return nil, false
		}

		switch Kind(tag) {
		case KindNum:
			dec := json.NewDecoder(bytes.NewReader(pair[1]))
			dec.UseNumber()
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				return nil, false
			}
			n, ok := v.(json.Number)
			if !ok {
				return nil, false
			}
			out = append(out, LegacyEntry{Tag: tag, Value: n})
		case KindCell, KindSlice:
			var s string
			if err := json.Unmarshal(pair[1], &s); err != nil {
				return nil, false
			}
			out = append(out, LegacyEntry{Tag: tag, Value: s})
		default:
			return nil, false
		}
	}
	return out, true
}

func decodeTyped(items []json.RawMessage) ([]TypedEntry, bool) {
	out := make([]TypedEntry, 0, len(items))
	for _, item := range items {
		var obj struct {
			Type  *string `json:"type"`
			Value *string `json:"value"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.Type == nil || obj.Value == nil {
			return nil, false
		}
		if _, err := ParseKind(*obj.Type); err != nil {
			return nil, false
		}
		out = append(out, TypedEntry{Type: *obj.Type, Value: *obj.Value})
	}
	return out, true
}

// legacyNum renders a legacy num value as an exact base-10 integer.
func legacyNum(v interface{}) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", ErrUnknownShape
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidNumber, n)
		}
		return integerString(d, n.String())
	case *big.Int:
		if n == nil {
			return "", ErrUnknownShape
		}
		return n.String(), nil
	case decimal.Decimal:
		return integerString(n, n.String())
	case float32:
		return floatString(float64(n))
	case float64:
		return floatString(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}
	return "", ErrUnknownShape
}

func floatString(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return integerString(decimal.NewFromFloat(f), strconv.FormatFloat(f, 'g', -1, 64))
}

func integerString(d decimal.Decimal, original string) (string, error) {
	if !d.IsInteger() {
		return "", fmt.Errorf("%w: %s is not an integer", ErrInvalidNumber, original)
	}
	return d.String(), nil
}

// hexToDecimal converts a 0x-prefixed hex string to base 10 without precision loss.
func hexToDecimal(s string) (string, error) {
	if !utils.IsHexNumber(s) {
		return "", fmt.Errorf("%w: %q is not a hex number", ErrInvalidNumber, s)
	}
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a hex number", ErrInvalidNumber, s)
	}
	return n.String(), nil
}
