package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"github.com/frigatebird-studio/tonx-go/internal/config"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/internal/router"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

// authWhitelist 无需认证的路径
var authWhitelist = []string{"/health", "/ready", "/metrics"}

// Builder 服务器构建器
type Builder struct {
	cfg       *config.Config
	logOutput io.Writer
}

// NewBuilder 创建新的服务器构建器
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// WithLogOutput 设置日志输出，默认为 stderr
func (b *Builder) WithLogOutput(w io.Writer) *Builder {
	b.logOutput = w
	return b
}

// Build 构建服务器：日志、指标、TONX 客户端、JSON-RPC 路由和 HTTP 路由
func (b *Builder) Build() (*Server, error) {
	b.setGinMode()

	logger, err := b.createLogger()
	if err != nil {
		return nil, errors.Config(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetricsWithRegistry(registry)

	p, err := provider.New(provider.Options{
		Network: b.cfg.Upstream.NetworkID(),
		APIKey:  b.cfg.Upstream.APIKey,
		BaseURL: b.cfg.Upstream.BaseURL,
		Timeout: b.cfg.Upstream.Timeout,
		Logger:  errors.FromLogrus(logger),
		Metrics: m,
	})
	if err != nil {
		return nil, err
	}

	routerFactory := router.NewRouterFactory(logger, m, b.cfg.HTTP.MaxRequestSize())
	jsonRPCRouter := routerFactory.CreateRouter(p)

	return &Server{
		config:        b.cfg,
		router:        b.createGinRouter(jsonRPCRouter, registry, logger),
		logger:        logger,
		jsonRPCRouter: jsonRPCRouter,
		provider:      p,
	}, nil
}

// setGinMode 设置 gin 模式
func (b *Builder) setGinMode() {
	if b.cfg.Log.Level == config.LogLevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

// createLogger 按日志配置创建 logrus 实例
func (b *Builder) createLogger() (*logrus.Logger, error) {
	level, format := b.cfg.Log.Level, b.cfg.Log.Format
	if level == "" {
		level = config.DefaultLogLevel
	}
	if format == "" {
		format = config.DefaultLogFormat
	}

	logger, err := errors.NewLogger(&errors.LoggerConfig{
		Level:  level,
		Format: format,
		Output: b.logOutput,
	})
	if err != nil {
		return nil, err
	}
	return logger.GetUnderlying(), nil
}

// createGinRouter 创建 gin 路由器并注册所有端点。
// jsonRPCRouter 为 nil 时不注册 JSON-RPC 端点，registry 为 nil 时不暴露指标。
func (b *Builder) createGinRouter(jsonRPCRouter *router.Router, registry *prometheus.Registry, logger *logrus.Logger) *gin.Engine {
	if logger == nil {
		logger = logrus.New()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ginlogrus.Logger(logger, "/health", "/ready", "/metrics"))
	engine.Use(corsMiddleware())
	engine.Use(AuthMiddleware(b.cfg.Auth.Enabled, b.cfg.Auth.Secret, authWhitelist))

	engine.GET("/health", b.healthHandler(logger))
	engine.GET("/ready", b.readyHandler(logger, jsonRPCRouter))

	if registry != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	if jsonRPCRouter != nil {
		engine.POST("/", func(c *gin.Context) {
			jsonRPCRouter.HandleHTTPRequest(c.Writer, c.Request)
		})
	}
	engine.OPTIONS("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return engine
}

// healthHandler 处理健康检查请求
func (b *Builder) healthHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Debug("Health check")
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// readyHandler 处理就绪检查请求，JSON-RPC 路由未就绪时返回 503
func (b *Builder) readyHandler(logger *logrus.Logger, jsonRPCRouter *router.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jsonRPCRouter == nil {
			logger.Warn("Ready check failed: JSON-RPC router not initialized")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"time":   time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"network": string(b.cfg.Upstream.NetworkID()),
			"methods": len(jsonRPCRouter.GetRegisteredMethods()),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// corsMiddleware 允许浏览器跨域调用 JSON-RPC 端点
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
