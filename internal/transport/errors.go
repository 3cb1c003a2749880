package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error 表示上游调用在网络层或本地发生的错误
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// ErrorCode 错误码
type ErrorCode int

const (
	// ErrorCodeConnectionFailed 连接失败
	ErrorCodeConnectionFailed ErrorCode = iota + 1
	// ErrorCodeRequestFailed 请求构造失败
	ErrorCodeRequestFailed
	// ErrorCodeInvalidResponse 响应体读取失败
	ErrorCodeInvalidResponse
	// ErrorCodeTimeout 超时
	ErrorCodeTimeout
	// ErrorCodeInvalidRequest 参数在发送前未通过校验
	ErrorCodeInvalidRequest
)

// Error 实现error接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回包装的错误
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建新的传输错误
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConnectionError 检查是否是连接错误
func IsConnectionError(err error) bool {
	return hasCode(err, ErrorCodeConnectionFailed)
}

// IsTimeoutError 检查是否是超时错误
func IsTimeoutError(err error) bool {
	return hasCode(err, ErrorCodeTimeout)
}

// IsInvalidRequestError 检查是否是本地参数错误
func IsInvalidRequestError(err error) bool {
	return hasCode(err, ErrorCodeInvalidRequest)
}

// ConnectionError 创建连接错误
func ConnectionError(err error) error {
	return NewError(ErrorCodeConnectionFailed, "failed to reach TONX backend", err)
}

// RequestError 创建请求错误
func RequestError(err error) error {
	return NewError(ErrorCodeRequestFailed, "failed to create upstream request", err)
}

// InvalidResponseError 创建无效响应错误
func InvalidResponseError(err error) error {
	return NewError(ErrorCodeInvalidResponse, "failed to read upstream response", err)
}

// TimeoutError 创建超时错误
func TimeoutError(err error) error {
	return NewError(ErrorCodeTimeout, "request to TONX backend timed out", err)
}

// InvalidRequestError 创建本地参数错误
func InvalidRequestError(err error) error {
	return NewError(ErrorCodeInvalidRequest, "invalid request", err)
}

// classifyDoError 区分超时和其他网络错误
func classifyDoError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutError(err)
	}
	return ConnectionError(err)
}
