package router

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

// Performer 执行一次 TONX 方法调用，*provider.Provider 满足该接口
type Performer interface {
	Perform(ctx context.Context, action provider.Action) (json.RawMessage, error)
}

// ProviderHandler 把 JSON-RPC 请求转换为 provider.Action 并执行。
// 参数校验、端点选择和错误分类都由 Performer 完成。
type ProviderHandler struct {
	*BaseHandler
	performer Performer
}

// NewProviderHandler 创建方法分发处理器
func NewProviderHandler(performer Performer, logger *logrus.Logger) *ProviderHandler {
	return &ProviderHandler{
		BaseHandler: NewBaseHandler("provider", logger),
		performer:   performer,
	}
}

// Handle 处理 JSON-RPC 请求
func (h *ProviderHandler) Handle(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	h.LogRequest(request)

	params, err := h.ObjectParams(request.Params)
	if err != nil {
		resp := h.CreateInvalidParamsResponse(request.ID, err.Error())
		h.LogResponse(request, resp, nil)
		return resp, nil
	}

	action := provider.Action{Method: request.Method}
	if params != nil {
		action.Params = params
	}

	result, err := h.performer.Perform(ctx, action)
	if err != nil {
		resp := h.CreateAppErrorResponse(request.ID, err)
		h.LogResponse(request, resp, nil)
		return resp, nil
	}

	resp, err := h.CreateSuccessResponse(request.ID, result)
	h.LogResponse(request, resp, err)
	return resp, err
}
