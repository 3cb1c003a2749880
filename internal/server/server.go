package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/config"
	"github.com/frigatebird-studio/tonx-go/internal/router"
	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

// Server 表示 HTTP 网关服务器
type Server struct {
	config        *config.Config
	router        *gin.Engine
	server        *http.Server
	logger        *logrus.Logger
	jsonRPCRouter *router.Router
	provider      *provider.Provider
}

// New 创建新的 HTTP 服务器
func New(cfg *config.Config) (*Server, error) {
	return NewBuilder(cfg).Build()
}

// Handler 返回服务器的 HTTP 处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Provider 返回网关使用的 TONX 客户端
func (s *Server) Provider() *provider.Provider {
	return s.provider
}

// Start 启动 HTTP 服务器，监听失败通过返回的通道报告
func (s *Server) Start() <-chan error {
	addr := fmt.Sprintf("%s:%d", s.config.HTTP.Host, s.config.HTTP.Port)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.WithFields(logrus.Fields{
		"host":    s.config.HTTP.Host,
		"port":    s.config.HTTP.Port,
		"network": s.config.Upstream.Network,
		"auth":    s.config.Auth.Enabled,
	}).Info("Starting HTTP server")

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("HTTP server error")
			errCh <- err
		}
	}()

	return errCh
}

// Stop 优雅停止 HTTP 服务器
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.logger.Info("Shutting down HTTP server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
