package router

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	apperrors "github.com/frigatebird-studio/tonx-go/pkg/errors"
)

func TestBaseHandler_Method(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test_method", logger)

	if handler.Method() != "test_method" {
		t.Errorf("Expected method 'test_method', got '%s'", handler.Method())
	}
}

func TestBaseHandler_ObjectParams(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test", logger)

	testCases := []struct {
		name        string
		params      json.RawMessage
		expected    string
		expectError bool
	}{
		{name: "absent", params: nil, expected: ""},
		{name: "null", params: json.RawMessage(`null`), expected: ""},
		{name: "empty array", params: json.RawMessage(`[]`), expected: ""},
		{name: "object", params: json.RawMessage(` {"address":"EQabc"} `), expected: `{"address":"EQabc"}`},
		{name: "single element array", params: json.RawMessage(`[{"address":"EQabc"}]`), expected: `{"address":"EQabc"}`},
		{name: "two element array", params: json.RawMessage(`[{"a":1},{"b":2}]`), expectError: true},
		{name: "positional scalar", params: json.RawMessage(`["EQabc"]`), expectError: true},
		{name: "scalar", params: json.RawMessage(`"EQabc"`), expectError: true},
		{name: "broken array", params: json.RawMessage(`[{`), expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := handler.ObjectParams(tc.params)

			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error, got params %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(got) != tc.expected {
				t.Errorf("Expected params %q, got %q", tc.expected, string(got))
			}
		})
	}
}

func TestBaseHandler_CreateSuccessResponse(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test", logger)

	response, err := handler.CreateSuccessResponse("test_id", json.RawMessage(`{"seqno":1}`))
	if err != nil {
		t.Fatalf("Failed to create success response: %v", err)
	}

	if response.Error != nil {
		t.Errorf("Expected no error, got: %v", response.Error)
	}
	if response.ID != "test_id" {
		t.Errorf("Expected ID 'test_id', got '%v'", response.ID)
	}
	if string(response.Result) != `{"seqno":1}` {
		t.Errorf("Expected raw result to pass through, got %s", response.Result)
	}
}

func TestBaseHandler_CreateErrorResponse(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test", logger)

	response := handler.CreateErrorResponse("test_id", jsonrpc.CodeInvalidParams, "Invalid parameters", "details")

	if response.Error == nil {
		t.Fatal("Expected error in response")
	}
	if response.Error.Code != jsonrpc.CodeInvalidParams {
		t.Errorf("Expected error code %d, got %d", jsonrpc.CodeInvalidParams, response.Error.Code)
	}
	if response.Error.Message != "Invalid parameters" {
		t.Errorf("Expected error message 'Invalid parameters', got '%s'", response.Error.Message)
	}
	if response.Error.Data != "details" {
		t.Errorf("Expected error data 'details', got '%v'", response.Error.Data)
	}
}

func TestBaseHandler_CreateInvalidParamsResponse(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test", logger)

	response := handler.CreateInvalidParamsResponse("test_id", "params must be an object")

	if response.Error == nil {
		t.Fatal("Expected error in response")
	}
	if response.Error.Code != jsonrpc.CodeInvalidParams {
		t.Errorf("Expected error code %d, got %d", jsonrpc.CodeInvalidParams, response.Error.Code)
	}
	if response.Error.Message != "Invalid params: params must be an object" {
		t.Errorf("Unexpected error message '%s'", response.Error.Message)
	}
}

func TestBaseHandler_CreateAppErrorResponse(t *testing.T) {
	logger := logrus.New()
	handler := NewBaseHandler("test", logger)

	tests := []struct {
		name     string
		err      error
		code     int
		errType  apperrors.ErrorType
		contains string
	}{
		{
			name:    "backend",
			err:     apperrors.Backend("Incorrect address", json.RawMessage(`{"ok":false}`)),
			code:    jsonrpc.CodeBackendError,
			errType: apperrors.ErrorTypeBackend,
		},
		{
			name:    "schema",
			err:     apperrors.Schema([]string{"state: required"}, nil),
			code:    jsonrpc.CodeSchemaError,
			errType: apperrors.ErrorTypeSchema,
		},
		{
			name:    "not implemented",
			err:     apperrors.MethodNotImplemented("getFoo"),
			code:    jsonrpc.CodeMethodNotFound,
			errType: apperrors.ErrorTypeMethodNotImplemented,
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			code:    jsonrpc.CodeInternalError,
			errType: apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := handler.CreateAppErrorResponse(1, tt.err)
			if response.Error == nil {
				t.Fatal("Expected error in response")
			}
			if response.Error.Code != tt.code {
				t.Errorf("Expected error code %d, got %d", tt.code, response.Error.Code)
			}
			data, ok := response.Error.Data.(map[string]interface{})
			if !ok {
				t.Fatalf("Expected map data, got %T", response.Error.Data)
			}
			if data["type"] != string(tt.errType) {
				t.Errorf("Expected type %s, got %v", tt.errType, data["type"])
			}
		})
	}
}
