package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// JSONRPCVersion 协议版本
const JSONRPCVersion = "2.0"

// Request 表示 JSON-RPC 2.0 请求
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id"`
}

// Response 表示 JSON-RPC 2.0 响应
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      interface{}     `json:"id"`
}

// Error 表示 JSON-RPC 2.0 错误
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRequest 创建发往上游的请求，ID 为随机 UUID
func NewRequest(method string, params interface{}) (*Request, error) {
	req := &Request{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		ID:      uuid.NewString(),
	}
	if params == nil {
		return req, nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
	}
	if !bytes.Equal(raw, []byte("null")) {
		req.Params = raw
	}
	return req, nil
}

// IsNotification 没有 ID 的请求不需要响应
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// ParseRequest 解析 JSON-RPC 请求，第二个返回值表示是否为批量请求
func ParseRequest(data []byte) ([]Request, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty request body")
	}

	if trimmed[0] != '[' {
		var single Request
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, false, fmt.Errorf("invalid JSON-RPC request: %v", err)
		}
		if err := validateRequest(&single); err != nil {
			return nil, false, err
		}
		return []Request{single}, false, nil
	}

	var batch []Request
	if err := json.Unmarshal(trimmed, &batch); err != nil {
		return nil, true, fmt.Errorf("invalid JSON-RPC request: %v", err)
	}
	if len(batch) == 0 {
		return nil, true, fmt.Errorf("empty batch request")
	}

	for i := range batch {
		if err := validateRequest(&batch[i]); err != nil {
			return nil, true, fmt.Errorf("request at index %d: %v", i, err)
		}
	}

	return batch, true, nil
}

// validateRequest 验证单个请求
func validateRequest(req *Request) error {
	if req.JSONRPC != JSONRPCVersion {
		return fmt.Errorf("invalid jsonrpc version: %s", req.JSONRPC)
	}

	if req.Method == "" {
		return fmt.Errorf("method is required")
	}

	// ID 可以是 null、字符串或数字
	if req.ID != nil {
		switch v := req.ID.(type) {
		case string, float64:
		default:
			return fmt.Errorf("invalid id type: %T", v)
		}
	}

	return nil
}

// NewResponse 创建成功响应
func NewResponse(id interface{}, result interface{}) (*Response, error) {
	var resultJSON json.RawMessage
	if raw, ok := result.(json.RawMessage); ok {
		resultJSON = raw
	} else {
		b, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		resultJSON = b
	}
	if len(resultJSON) == 0 {
		resultJSON = json.RawMessage("null")
	}

	return &Response{
		JSONRPC: JSONRPCVersion,
		Result:  resultJSON,
		ID:      id,
	}, nil
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(id interface{}, err *Error) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		Error:   err,
		ID:      id,
	}
}

// MarshalResponses 序列化响应，批量请求总是返回数组
func MarshalResponses(responses []*Response, batch bool) ([]byte, error) {
	if !batch && len(responses) == 1 {
		return json.Marshal(responses[0])
	}
	if responses == nil {
		responses = []*Response{}
	}
	return json.Marshal(responses)
}
