package stack

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BothEncodingsAgree(t *testing.T) {
	legacy, err := Normalize(FromRaw(json.RawMessage(`[["num",16]]`)))
	require.NoError(t, err)
	typed, err := Normalize(FromRaw(json.RawMessage(`[{"type":"num","value":"0x10"}]`)))
	require.NoError(t, err)

	assert.Equal(t, legacy, typed)

	out, err := json.Marshal(legacy)
	require.NoError(t, err)
	assert.JSONEq(t, `[["num","16"]]`, string(out))
}

func TestNormalize_Raw(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "absent", input: ``, want: `[]`},
		{name: "null", input: `null`, want: `[]`},
		{name: "empty", input: `[]`, want: `[]`},
		{
			name:  "legacy all kinds",
			input: `[["num",0],["cell","te6cc1"],["slice","te6cc2"]]`,
			want:  `[["num","0"],["tvm.Cell","te6cc1"],["tvm.Slice","te6cc2"]]`,
		},
		{name: "legacy large exact", input: `[["num",1e21]]`, want: `[["num","1000000000000000000000"]]`},
		{name: "legacy negative", input: `[["num",-42]]`, want: `[["num","-42"]]`},
		{name: "legacy fraction", input: `[["num",1.5]]`, wantErr: ErrInvalidNumber},
		{name: "legacy string num", input: `[["num","16"]]`, wantErr: ErrUnknownShape},
		{name: "legacy numeric cell", input: `[["cell",1]]`, wantErr: ErrUnknownShape},
		{name: "legacy unknown tag", input: `[["tuple","x"]]`, wantErr: ErrUnknownShape},
		{name: "legacy wrong arity", input: `[["num"]]`, wantErr: ErrUnknownShape},
		{
			name:  "typed all kinds",
			input: `[{"type":"num","value":"0xFF"},{"type":"cell","value":"te6cc1"},{"type":"slice","value":"te6cc2"}]`,
			want:  `[["num","255"],["tvm.Cell","te6cc1"],["tvm.Slice","te6cc2"]]`,
		},
		{name: "typed uppercase prefix", input: `[{"type":"num","value":"0X1f"}]`, want: `[["num","31"]]`},
		{name: "typed decimal passes through", input: `[{"type":"num","value":"12345"}]`, want: `[["num","12345"]]`},
		{
			name:  "typed hex beyond 64 bits",
			input: `[{"type":"num","value":"0x10000000000000000"}]`,
			want:  `[["num","18446744073709551616"]]`,
		},
		{name: "typed extra keys", input: `[{"type":"cell","value":"te6cc","note":"x"}]`, want: `[["tvm.Cell","te6cc"]]`},
		{name: "typed bare prefix", input: `[{"type":"num","value":"0x"}]`, wantErr: ErrInvalidNumber},
		{name: "typed bad hex", input: `[{"type":"num","value":"0xZZ"}]`, wantErr: ErrInvalidNumber},
		{name: "typed numeric value", input: `[{"type":"num","value":16}]`, wantErr: ErrUnknownShape},
		{name: "typed unknown type", input: `[{"type":"tuple","value":"x"}]`, wantErr: ErrUnknownShape},
		{name: "mixed", input: `[["num",1],{"type":"num","value":"1"}]`, wantErr: ErrUnknownShape},
		{name: "object", input: `{"type":"num"}`, wantErr: ErrUnknownShape},
		{name: "scalar list", input: `[1,2]`, wantErr: ErrUnknownShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(FromRaw(json.RawMessage(tt.input)))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)

			out, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestNormalize_LegacyGoValues(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name    string
		value   interface{}
		want    string
		wantErr error
	}{
		{name: "int", value: 7, want: "7"},
		{name: "int64", value: int64(-9), want: "-9"},
		{name: "uint64", value: uint64(18446744073709551615), want: "18446744073709551615"},
		{name: "integral float", value: 3.0, want: "3"},
		{name: "big float", value: 1e21, want: "1000000000000000000000"},
		{name: "json number", value: json.Number("100"), want: "100"},
		{name: "big int", value: huge, want: "123456789012345678901234567890"},
		{name: "decimal", value: decimal.RequireFromString("5000"), want: "5000"},
		{name: "fractional float", value: 0.25, wantErr: ErrInvalidNumber},
		{name: "fractional decimal", value: decimal.RequireFromString("1.01"), wantErr: ErrInvalidNumber},
		{name: "string", value: "16", wantErr: ErrUnknownShape},
		{name: "nil", value: nil, wantErr: ErrUnknownShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(FromLegacy(LegacyEntry{Tag: "num", Value: tt.value}))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []Entry{Num(tt.want)}, got)
		})
	}
}

func TestNormalize_Typed(t *testing.T) {
	got, err := Normalize(FromTyped(
		TypedEntry{Type: "num", Value: "0x0"},
		TypedEntry{Type: "slice", Value: "te6cc"},
	))
	require.NoError(t, err)
	assert.Equal(t, []Entry{Num("0"), Slice("te6cc")}, got)

	_, err = Normalize(FromTyped(TypedEntry{Type: "dict", Value: "x"}))
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestNormalize_ZeroInput(t *testing.T) {
	var in Input
	assert.True(t, in.IsEmpty())

	got, err := Normalize(in)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInput_JSON(t *testing.T) {
	var params struct {
		Stack Input `json:"stack"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"stack":[["num",5]]}`), &params))
	assert.False(t, params.Stack.IsEmpty())

	got, err := Normalize(params.Stack)
	require.NoError(t, err)
	assert.Equal(t, []Entry{Num("5")}, got)

	out, err := json.Marshal(FromLegacy(LegacyEntry{Tag: "cell", Value: "te6cc"}))
	require.NoError(t, err)
	assert.JSONEq(t, `[["cell","te6cc"]]`, string(out))

	out, err = json.Marshal(FromTyped(TypedEntry{Type: "num", Value: "0x1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"num","value":"0x1"}]`, string(out))

	out, err = json.Marshal(Input{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(out))
}

func TestEntry_UnmarshalJSON(t *testing.T) {
	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(`[["num","1"],["tvm.Cell","a"],["tvm.Slice","b"]]`), &entries))
	assert.Equal(t, []Entry{Num("1"), Cell("a"), Slice("b")}, entries)

	var bad Entry
	assert.Error(t, json.Unmarshal([]byte(`["tvm.Tuple","x"]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"num"}`), &bad))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("cell")
	require.NoError(t, err)
	assert.Equal(t, KindCell, k)
	assert.Equal(t, TagCell, k.WireTag())

	_, err = ParseKind("tvm.Cell")
	assert.Error(t, err)
}
