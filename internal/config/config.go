package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
)

// Config 表示应用程序的完整配置
type Config struct {
	// HTTP 服务器配置
	HTTP HTTPConfig `mapstructure:"http"`

	// TONX 上游配置
	Upstream UpstreamConfig `mapstructure:"upstream"`

	// 网关认证配置
	Auth AuthConfig `mapstructure:"auth"`

	// 日志配置
	Log LogConfig `mapstructure:"log"`
}

// HTTPConfig 定义 HTTP 服务器配置
type HTTPConfig struct {
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	MaxRequestSizeMB int64  `mapstructure:"max-request-size-mb"`
}

// Validate 验证 HTTP 配置
func (c *HTTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("http-host is required")
	}
	if c.Port <= 0 || c.Port > MaxPort {
		return fmt.Errorf("http-port must be between 1 and %d", MaxPort)
	}
	if c.MaxRequestSizeMB == 0 {
		c.MaxRequestSizeMB = DefaultMaxRequestSizeMB
	}
	if c.MaxRequestSizeMB < 0 {
		return fmt.Errorf("http-max-request-size-mb must be positive")
	}
	return nil
}

// MaxRequestSize 返回最大请求体字节数
func (c *HTTPConfig) MaxRequestSize() int64 {
	return c.MaxRequestSizeMB * 1024 * 1024
}

// UpstreamConfig 定义 TONX 上游配置
type UpstreamConfig struct {
	Network string        `mapstructure:"network"`
	APIKey  string        `mapstructure:"api-key"`
	BaseURL string        `mapstructure:"base-url"` // 为空时使用 https://{network}-rpc.tonxapi.com
	Timeout time.Duration `mapstructure:"timeout"`
}

// Validate 验证上游配置
func (c *UpstreamConfig) Validate() error {
	network, err := endpoint.ParseNetwork(c.Network)
	if err != nil {
		return fmt.Errorf("upstream-network: %w", err)
	}
	c.Network = network.String()

	if err := endpoint.ValidateAPIKey(c.APIKey); err != nil {
		return fmt.Errorf("upstream-api-key: %w", err)
	}
	if err := endpoint.ValidateBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("upstream-base-url: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("upstream-timeout must be positive")
	}
	return nil
}

// NetworkID 返回解析后的网络
func (c *UpstreamConfig) NetworkID() endpoint.Network {
	return endpoint.Network(c.Network)
}

// AuthConfig 定义网关认证配置
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

// Validate 验证认证配置
func (c *AuthConfig) Validate() error {
	if c.Enabled && c.Secret == "" {
		return fmt.Errorf("auth-secret is required when auth is enabled")
	}
	return nil
}

// LogConfig 定义日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	if !validLogLevels[strings.ToLower(c.Level)] {
		return fmt.Errorf("log-level must be one of: debug, info, warn, error, fatal, got: %s", c.Level)
	}
	if !validLogFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("log-format must be one of: json, text, got: %s", c.Format)
	}
	return nil
}

// Validate 验证配置是否有效
func (c *Config) Validate() error {
	// 设置默认值
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = DefaultUpstreamTimeout
	}

	// 验证所有子配置
	validators := []Validator{&c.HTTP, &c.Upstream, &c.Auth, &c.Log}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// String 返回配置的安全摘要（不包含敏感信息）
func (c *Config) String() string {
	return fmt.Sprintf(
		"HTTP: {Host: %s, Port: %d}, "+
			"Upstream: {Network: %s, BaseURL: %s, Timeout: %s, APIKey: [REDACTED]}, "+
			"Auth: {Enabled: %t, Secret: [REDACTED]}, "+
			"Log: {Level: %s, Format: %s}",
		c.HTTP.Host, c.HTTP.Port,
		c.Upstream.Network, c.Upstream.BaseURL, c.Upstream.Timeout,
		c.Auth.Enabled,
		c.Log.Level, c.Log.Format,
	)
}

// Load 从 viper 读取并验证配置
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
