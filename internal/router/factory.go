package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

// RouterFactory 路由器工厂，简化路由器的创建和配置
type RouterFactory struct {
	logger         *logrus.Logger
	metrics        *metrics.Metrics
	maxRequestSize int64
}

// NewRouterFactory 创建路由器工厂
func NewRouterFactory(logger *logrus.Logger, m *metrics.Metrics, maxRequestSize int64) *RouterFactory {
	return &RouterFactory{
		logger:         logger,
		metrics:        m,
		maxRequestSize: maxRequestSize,
	}
}

// CreateRouter 创建完整配置的路由器：每个已知方法注册同一个分发处理器，
// 未注册的方法也交给它处理，由 provider 返回 "Method X not implemented"
func (f *RouterFactory) CreateRouter(performer Performer) *Router {
	router := NewRouterWithMaxSize(f.logger, f.maxRequestSize)
	router.SetMetrics(f.metrics)

	handler := NewProviderHandler(performer, f.logger)
	for _, method := range provider.Methods() {
		if err := router.Register(&MethodHandler{
			handler: handler,
			method:  method,
		}); err != nil {
			f.logger.WithError(err).WithField("method", method).Error("Failed to register handler")
		}
	}

	router.SetDefaultHandler(&MethodHandler{
		handler: handler,
		method:  "provider_default",
	})

	return router
}

// MethodHandler 包装处理器，使其符合 Handler 接口
type MethodHandler struct {
	handler Handler
	method  string
}

// Method 返回方法名
func (m *MethodHandler) Method() string {
	return m.method
}

// Handle 处理请求
func (m *MethodHandler) Handle(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	return m.handler.Handle(ctx, request)
}
