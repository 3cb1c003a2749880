package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("getAccountBalance", map[string]interface{}{"address": "EQA"})
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if req.JSONRPC != "2.0" {
		t.Errorf("Expected jsonrpc=2.0, got %s", req.JSONRPC)
	}
	id, ok := req.ID.(string)
	if !ok {
		t.Fatalf("Expected string id, got %T", req.ID)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected uuid id, got %q", id)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	params, ok := decoded["params"].(map[string]interface{})
	if !ok || params["address"] != "EQA" {
		t.Errorf("Expected params object with address, got %v", decoded["params"])
	}
}

func TestNewRequest_NoParams(t *testing.T) {
	req, err := NewRequest("getMasterchainInfo", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.Params != nil {
		t.Errorf("Expected no params, got %s", req.Params)
	}

	other, _ := NewRequest("getMasterchainInfo", nil)
	if other.ID == req.ID {
		t.Error("Expected unique request ids")
	}
}

func TestNewRequest_MarshalError(t *testing.T) {
	if _, err := NewRequest("x", make(chan int)); err == nil {
		t.Fatal("Expected error for unmarshalable params")
	}
}

func TestParseRequest_Single(t *testing.T) {
	data := `{"jsonrpc":"2.0","method":"getMasterchainInfo","params":{},"id":1}`

	requests, batch, err := ParseRequest([]byte(data))
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if batch {
		t.Error("Expected single request")
	}
	if len(requests) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(requests))
	}

	req := requests[0]
	if req.Method != "getMasterchainInfo" {
		t.Errorf("Expected method=getMasterchainInfo, got %s", req.Method)
	}
	if req.ID != float64(1) { // JSON 数字默认解析为 float64
		t.Errorf("Expected id=1, got %v", req.ID)
	}
}

func TestParseRequest_Batch(t *testing.T) {
	data := `[
		{"jsonrpc":"2.0","method":"getMasterchainInfo","id":1},
		{"jsonrpc":"2.0","method":"getAccountBalance","params":{"address":"EQA"},"id":"b"}
	]`

	requests, batch, err := ParseRequest([]byte(data))
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if !batch {
		t.Error("Expected batch request")
	}
	if len(requests) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(requests))
	}
	if requests[1].ID != "b" {
		t.Errorf("Expected id=b, got %v", requests[1].ID)
	}
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `invalid json`},
		{"empty body", `  `},
		{"invalid version", `{"jsonrpc":"1.0","method":"test","id":1}`},
		{"empty method", `{"jsonrpc":"2.0","method":"","id":1}`},
		{"object id", `{"jsonrpc":"2.0","method":"test","id":{}}`},
		{"empty batch", `[]`},
		{"invalid batch member", `[{"jsonrpc":"2.0","method":"a","id":1},{"jsonrpc":"2.0","id":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseRequest([]byte(tt.data)); err == nil {
				t.Fatal("Expected error")
			}
		})
	}
}

func TestParseRequest_Notification(t *testing.T) {
	requests, _, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"getMasterchainInfo"}`))
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	if !requests[0].IsNotification() {
		t.Error("Expected notification")
	}
}

func TestNewResponse(t *testing.T) {
	resp, err := NewResponse(1, map[string]interface{}{"seqno": 42})
	if err != nil {
		t.Fatalf("NewResponse failed: %v", err)
	}
	if resp.JSONRPC != "2.0" || resp.Error != nil || resp.ID != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(resp.Result, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if decoded["seqno"] != float64(42) {
		t.Errorf("Expected seqno=42, got %v", decoded["seqno"])
	}

	raw, err := NewResponse("x", json.RawMessage(`{"a":1}`))
	if err != nil {
		t.Fatalf("NewResponse failed: %v", err)
	}
	if string(raw.Result) != `{"a":1}` {
		t.Errorf("Expected raw result to pass through, got %s", raw.Result)
	}

	empty, _ := NewResponse("x", json.RawMessage(nil))
	if string(empty.Result) != "null" {
		t.Errorf("Expected null result, got %s", empty.Result)
	}
}

func TestNewResponse_MarshalError(t *testing.T) {
	if _, err := NewResponse(1, make(chan int)); err == nil {
		t.Fatal("Expected error for unmarshalable result")
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(1, Errorf(CodeMethodNotFound, "Method %s not implemented", "foo"))

	if resp.Error == nil {
		t.Fatal("Expected error")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Expected error code=-32601, got %d", resp.Error.Code)
	}
	if resp.Error.Message != "Method foo not implemented" {
		t.Errorf("Unexpected message %q", resp.Error.Message)
	}
}

func TestMarshalResponses(t *testing.T) {
	one := &Response{JSONRPC: "2.0", Result: json.RawMessage(`1`), ID: 1}

	t.Run("single", func(t *testing.T) {
		data, err := MarshalResponses([]*Response{one}, false)
		if err != nil {
			t.Fatalf("MarshalResponses failed: %v", err)
		}
		var single Response
		if err := json.Unmarshal(data, &single); err != nil {
			t.Fatalf("Expected single object: %v", err)
		}
	})

	t.Run("batch of one stays an array", func(t *testing.T) {
		data, err := MarshalResponses([]*Response{one}, true)
		if err != nil {
			t.Fatalf("MarshalResponses failed: %v", err)
		}
		var batch []Response
		if err := json.Unmarshal(data, &batch); err != nil {
			t.Fatalf("Expected array: %v", err)
		}
		if len(batch) != 1 {
			t.Errorf("Expected 1 response, got %d", len(batch))
		}
	})

	t.Run("empty", func(t *testing.T) {
		data, err := MarshalResponses(nil, true)
		if err != nil {
			t.Fatalf("MarshalResponses failed: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("Expected [], got %s", data)
		}
	})
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without data",
			err:      &Error{Code: -32601, Message: "Method not found"},
			expected: "JSON-RPC error -32601: Method not found",
		},
		{
			name:     "error with data",
			err:      &Error{Code: CodeBackendError, Message: "Received error: bad", Data: "x"},
			expected: "JSON-RPC error -32002: Received error: bad (data: x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsServerError(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{CodeTransportError, true},
		{CodeSchemaError, true},
		{-32000, true},
		{-32099, true},
		{-32100, false},
		{CodeInternalError, false},
	}

	for _, tt := range tests {
		if got := IsServerError(tt.code); got != tt.expected {
			t.Errorf("IsServerError(%d) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}
