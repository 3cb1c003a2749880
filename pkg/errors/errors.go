// Package errors 定义 TONX 适配层对外暴露的错误分类
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
)

// ErrorType 错误类型
type ErrorType string

const (
	// 上游网络错误或非 2xx 状态码
	ErrorTypeTransport ErrorType = "TRANSPORT_ERROR"
	ErrorTypeTimeout   ErrorType = "TIMEOUT_ERROR"

	// 上游在响应体中报告的错误
	ErrorTypeBackend ErrorType = "BACKEND_ERROR"
	// 上游成功响应的结构不符合要求
	ErrorTypeSchema ErrorType = "SCHEMA_ERROR"

	// 请求在发出前未通过本地校验
	ErrorTypeLocalValidation ErrorType = "LOCAL_VALIDATION_ERROR"
	// 方法没有对应的端点
	ErrorTypeMethodNotImplemented ErrorType = "METHOD_NOT_IMPLEMENTED"

	// 系统级错误
	ErrorTypeConfig   ErrorType = "CONFIG_ERROR"
	ErrorTypeInternal ErrorType = "INTERNAL_ERROR"
)

// ContextKeyRaw 上游原始响应在 Context 中的键
const ContextKeyRaw = "raw"

// AppError 应用统一的错误类型
type AppError struct {
	Type        ErrorType              `json:"type"`
	Code        int                    `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`
	OriginalErr error                  `json:"-"`
}

// New 创建新的应用错误
func New(errorType ErrorType, code int, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Newf 创建带格式的应用错误
func Newf(errorType ErrorType, code int, format string, args ...interface{}) *AppError {
	return New(errorType, code, fmt.Sprintf(format, args...))
}

// Wrap 包装现有错误
func Wrap(err error, errorType ErrorType, code int, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(errorType, code, message)
	appErr.OriginalErr = err
	appErr.Details = err.Error()
	return appErr
}

// WithContext 添加上下文信息
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails 添加详细信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithRaw 附加上游原始响应
func (e *AppError) WithRaw(raw json.RawMessage) *AppError {
	if len(raw) == 0 {
		return e
	}
	return e.WithContext(ContextKeyRaw, raw)
}

// Raw 返回上游原始响应
func (e *AppError) Raw() json.RawMessage {
	raw, _ := e.Context[ContextKeyRaw].(json.RawMessage)
	return raw
}

// Error 实现 error 接口，只返回面向调用方的消息
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.OriginalErr
}

// Is 检查错误类型
func (e *AppError) Is(target error) bool {
	if targetErr, ok := target.(*AppError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// ToJSONRPCError 转换为 JSON-RPC 错误
func (e *AppError) ToJSONRPCError() *jsonrpc.Error {
	errorData := map[string]interface{}{
		"type": string(e.Type),
	}
	if e.Details != "" {
		errorData["details"] = e.Details
	}
	for k, v := range e.Context {
		errorData[k] = v
	}

	return &jsonrpc.Error{
		Code:    e.Code,
		Message: e.Message,
		Data:    errorData,
	}
}

// Backend 创建上游业务错误
func Backend(message string, raw json.RawMessage) *AppError {
	return New(ErrorTypeBackend, jsonrpc.CodeBackendError, "Received error: "+message).WithRaw(raw)
}

// Schema 创建响应结构错误
func Schema(issues []string, raw json.RawMessage) *AppError {
	return New(ErrorTypeSchema, jsonrpc.CodeSchemaError, "Malformed response: "+strings.Join(issues, ", ")).
		WithContext("issues", issues).
		WithRaw(raw)
}

// Transport 创建网络层错误
func Transport(message string, status int, cause error) *AppError {
	appErr := New(ErrorTypeTransport, jsonrpc.CodeTransportError, message)
	appErr.OriginalErr = cause
	if status != 0 {
		appErr.WithContext("status", status)
	}
	return appErr
}

// Timeout 创建超时错误
func Timeout(cause error) *AppError {
	return Wrap(cause, ErrorTypeTimeout, jsonrpc.CodeTimeoutError, "Request to TONX backend timed out")
}

// LocalValidation 创建本地参数校验错误
func LocalValidation(method string, issues ...string) *AppError {
	msg := "Invalid params"
	if method != "" {
		msg += " for " + method
	}
	if len(issues) > 0 {
		msg += ": " + strings.Join(issues, ", ")
	}
	appErr := New(ErrorTypeLocalValidation, jsonrpc.CodeInvalidParams, msg)
	if len(issues) > 0 {
		appErr.WithContext("issues", issues)
	}
	return appErr
}

// MethodNotImplemented 创建未实现方法错误
func MethodNotImplemented(method string) *AppError {
	return Newf(ErrorTypeMethodNotImplemented, jsonrpc.CodeMethodNotFound, "Method %s not implemented", method).
		WithContext("method", method)
}

// Config 创建配置错误
func Config(err error) *AppError {
	return Wrap(err, ErrorTypeConfig, jsonrpc.CodeInternalError, "Configuration error")
}

// Internal 创建内部错误
func Internal(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, jsonrpc.CodeInternalError, "Internal error")
}

// TypeOf 返回错误链中第一个 AppError 的类型
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsErrorType 检查错误是否属于指定类型
func IsErrorType(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// IsTransportError 网络错误、非 2xx 状态码或超时
func IsTransportError(err error) bool {
	t := TypeOf(err)
	return t == ErrorTypeTransport || t == ErrorTypeTimeout
}

// IsTimeoutError 检查是否是超时错误
func IsTimeoutError(err error) bool {
	return IsErrorType(err, ErrorTypeTimeout)
}

// IsBackendError 检查是否是上游业务错误
func IsBackendError(err error) bool {
	return IsErrorType(err, ErrorTypeBackend)
}

// IsSchemaError 检查是否是响应结构错误
func IsSchemaError(err error) bool {
	return IsErrorType(err, ErrorTypeSchema)
}

// IsLocalValidationError 检查是否是本地参数校验错误
func IsLocalValidationError(err error) bool {
	return IsErrorType(err, ErrorTypeLocalValidation)
}

// IsMethodNotImplemented 检查是否是未实现方法错误
func IsMethodNotImplemented(err error) bool {
	return IsErrorType(err, ErrorTypeMethodNotImplemented)
}

// IsClientError 调用方可以通过修改请求修复的错误
func IsClientError(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeLocalValidation, ErrorTypeMethodNotImplemented:
		return true
	}
	return false
}
