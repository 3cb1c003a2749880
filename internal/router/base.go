package router

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

// BaseHandler 提供处理器的基础功能
type BaseHandler struct {
	method string
	logger *logrus.Logger
}

// NewBaseHandler 创建基础处理器
func NewBaseHandler(method string, logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{
		method: method,
		logger: logger,
	}
}

// Method 返回方法名
func (h *BaseHandler) Method() string {
	return h.method
}

// ObjectParams 返回对象形式的参数。
// 参数缺失或为 null 时返回 nil；只含一个对象的数组会被展开。
func (h *BaseHandler) ObjectParams(params json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		return trimmed, nil
	case '[':
		var paramsArray []json.RawMessage
		if err := json.Unmarshal(trimmed, &paramsArray); err != nil {
			return nil, fmt.Errorf("params must be an object: %v", err)
		}
		switch len(paramsArray) {
		case 0:
			return nil, nil
		case 1:
			return h.ObjectParams(paramsArray[0])
		}
		return nil, fmt.Errorf("expected 1 parameter object, got %d", len(paramsArray))
	}
	return nil, fmt.Errorf("params must be an object")
}

// CreateSuccessResponse 创建成功响应
func (h *BaseHandler) CreateSuccessResponse(id interface{}, result interface{}) (*jsonrpc.Response, error) {
	response, err := jsonrpc.NewResponse(id, result)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create success response")
		return nil, fmt.Errorf("failed to create response: %v", err)
	}
	return response, nil
}

// CreateErrorResponse 创建错误响应
func (h *BaseHandler) CreateErrorResponse(id interface{}, code int, message string, data interface{}) *jsonrpc.Response {
	err := &jsonrpc.Error{
		Code:    code,
		Message: message,
		Data:    data,
	}
	return jsonrpc.NewErrorResponse(id, err)
}

// CreateInvalidParamsResponse 创建无效参数响应
func (h *BaseHandler) CreateInvalidParamsResponse(id interface{}, message string) *jsonrpc.Response {
	return jsonrpc.NewErrorResponse(id, errors.LocalValidation("", message).ToJSONRPCError())
}

// CreateAppErrorResponse 按错误分类创建错误响应
func (h *BaseHandler) CreateAppErrorResponse(id interface{}, err error) *jsonrpc.Response {
	return jsonrpc.NewErrorResponse(id, errors.ConvertToJSONRPC(err))
}

// LogRequest 记录请求日志
func (h *BaseHandler) LogRequest(request *jsonrpc.Request) {
	h.logger.WithFields(logrus.Fields{
		"method": request.Method,
		"id":     request.ID,
		"params": string(request.Params),
	}).Debug("Processing JSON-RPC request")
}

// LogResponse 记录响应日志
func (h *BaseHandler) LogResponse(request *jsonrpc.Request, response *jsonrpc.Response, err error) {
	fields := logrus.Fields{
		"method": request.Method,
		"id":     request.ID,
	}

	if err != nil {
		fields["error"] = err.Error()
		h.logger.WithFields(fields).Error("Request processing failed")
	} else if response.Error != nil {
		fields["error_code"] = response.Error.Code
		fields["error_message"] = response.Error.Message
		h.logger.WithFields(fields).Warn("Request returned error")
	} else {
		h.logger.WithFields(fields).Debug("Request processed successfully")
	}
}
