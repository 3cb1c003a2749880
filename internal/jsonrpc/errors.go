package jsonrpc

import "fmt"

// 标准 JSON-RPC 错误码
const (
	// 解析错误
	CodeParseError = -32700

	// 无效请求
	CodeInvalidRequest = -32600

	// 方法不存在
	CodeMethodNotFound = -32601

	// 无效参数
	CodeInvalidParams = -32602

	// 内部错误
	CodeInternalError = -32603
)

// 网关错误码（-32000 到 -32099 为服务器保留错误码）
const (
	// 上游网络错误或非 2xx 状态码
	CodeTransportError = -32001
	// 上游在响应体中报告错误
	CodeBackendError = -32002
	// 上游响应结构不符合要求
	CodeSchemaError = -32003
	// 上游请求超时
	CodeTimeoutError = -32004

	CodeServerErrorStart = -32099
	CodeServerErrorEnd   = -32000
)

// 标准错误
var (
	// ParseError 表示解析错误
	ParseError = &Error{
		Code:    CodeParseError,
		Message: "Parse error",
	}

	// InvalidRequestError 表示无效请求错误
	InvalidRequestError = &Error{
		Code:    CodeInvalidRequest,
		Message: "Invalid request",
	}

	// InternalError 表示内部错误
	InternalError = &Error{
		Code:    CodeInternalError,
		Message: "Internal error",
	}
)

// Errorf 创建带格式的错误
func Errorf(code int, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsServerError 检查错误码是否为服务器错误
func IsServerError(code int) bool {
	return code >= CodeServerErrorStart && code <= CodeServerErrorEnd
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}
