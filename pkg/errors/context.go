package errors

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey 请求ID的context key
	RequestIDKey contextKey = "request_id"
	// OperationKey 操作名称（即上游方法名）的context key
	OperationKey contextKey = "operation"
)

// NewContextWithRequestID 创建带有请求ID的context，requestID 为空时自动生成
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// NewContextWithOperation 创建带有操作名称的context
func NewContextWithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// EnsureRequestID 返回带请求ID的context，已有请求ID时原样返回
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestID(ctx); id != "" {
		return ctx, id
	}
	id := GenerateRequestID()
	return context.WithValue(ctx, RequestIDKey, id), id
}

// GetRequestID 从context获取请求ID
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

// GetOperation 从context获取操作名称
func GetOperation(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	operation, _ := ctx.Value(OperationKey).(string)
	return operation
}

// GenerateRequestID 生成新的请求ID
func GenerateRequestID() string {
	return uuid.NewString()
}
