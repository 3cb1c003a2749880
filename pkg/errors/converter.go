package errors

import (
	"context"
	stderrors "errors"

	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/internal/schema"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
)

// Converter 错误转换器
type Converter struct{}

// NewConverter 创建新的错误转换器
func NewConverter() *Converter {
	return &Converter{}
}

// FromTransport 转换请求发出前后的传输层错误
func (c *Converter) FromTransport(err error) *AppError {
	if err == nil {
		return nil
	}

	var tErr *transport.Error
	if !stderrors.As(err, &tErr) {
		return Transport(err.Error(), 0, err)
	}

	switch tErr.Code {
	case transport.ErrorCodeInvalidRequest:
		issue := tErr.Message
		if tErr.Err != nil {
			issue = tErr.Err.Error()
		}
		appErr := LocalValidation("", issue)
		appErr.OriginalErr = err
		return appErr
	case transport.ErrorCodeTimeout:
		return Timeout(err)
	default:
		return Transport(tErr.Error(), 0, err)
	}
}

// FromFailure 转换失败信封
func (c *Converter) FromFailure(f *envelope.Failure) *AppError {
	if f == nil {
		return nil
	}

	switch f.Kind {
	case envelope.KindBackend:
		appErr := Backend(f.Message, f.Raw)
		if f.Status != 0 {
			appErr.WithContext("status", f.Status)
		}
		return appErr
	case envelope.KindParse:
		appErr := Schema([]string{f.Message}, nil)
		appErr.OriginalErr = f
		return appErr
	default:
		if transport.IsTimeoutError(f.Cause) {
			return Timeout(f)
		}
		return Transport(f.Message, f.Status, f).WithRaw(f.Raw)
	}
}

// FromJSONRPC 从 JSON-RPC 错误转换
func (c *Converter) FromJSONRPC(jsonErr *jsonrpc.Error) *AppError {
	if jsonErr == nil {
		return nil
	}

	var errorType ErrorType
	switch jsonErr.Code {
	case jsonrpc.CodeMethodNotFound:
		errorType = ErrorTypeMethodNotImplemented
	case jsonrpc.CodeInvalidParams, jsonrpc.CodeInvalidRequest, jsonrpc.CodeParseError:
		errorType = ErrorTypeLocalValidation
	case jsonrpc.CodeTransportError:
		errorType = ErrorTypeTransport
	case jsonrpc.CodeTimeoutError:
		errorType = ErrorTypeTimeout
	case jsonrpc.CodeSchemaError:
		errorType = ErrorTypeSchema
	case jsonrpc.CodeBackendError:
		errorType = ErrorTypeBackend
	default:
		errorType = ErrorTypeInternal
	}

	appErr := New(errorType, jsonErr.Code, jsonErr.Message)
	if jsonErr.Data != nil {
		appErr.WithContext("original_data", jsonErr.Data)
	}
	return appErr
}

// ToJSONRPC 转换为 JSON-RPC 错误
func (c *Converter) ToJSONRPC(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}
	return ConvertError(err).ToJSONRPCError()
}

// FromOutcome 把校验失败的结果转换为错误，成功时返回 nil
func FromOutcome[T any](o schema.Outcome[T]) error {
	if o.Success {
		return nil
	}
	if o.Failure != nil {
		return NewConverter().FromFailure(o.Failure)
	}
	return Schema(o.Issues, o.Raw)
}

// Result 返回校验通过的数据或对应的错误
func Result[T any](o schema.Outcome[T]) (T, error) {
	if err := FromOutcome(o); err != nil {
		var zero T
		return zero, err
	}
	return o.Data, nil
}

// ConvertError 通用的错误转换函数
func ConvertError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	c := NewConverter()

	var failure *envelope.Failure
	if stderrors.As(err, &failure) {
		return c.FromFailure(failure)
	}

	var tErr *transport.Error
	if stderrors.As(err, &tErr) {
		return c.FromTransport(err)
	}

	var jsonErr *jsonrpc.Error
	if stderrors.As(err, &jsonErr) {
		return c.FromJSONRPC(jsonErr)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}

	return Internal(err)
}

// ConvertToJSONRPC 快速转换为 JSON-RPC 错误
func ConvertToJSONRPC(err error) *jsonrpc.Error {
	return NewConverter().ToJSONRPC(err)
}
