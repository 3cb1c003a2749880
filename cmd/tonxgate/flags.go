package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/frigatebird-studio/tonx-go/internal/config"
)

// Flag 定义命令行标志
type Flag struct {
	Name         string
	DefaultValue interface{}
	Description  string
	BindTo       string // viper 键名
}

// flags 定义所有命令行标志
var flags = []Flag{
	// HTTP 服务器配置
	{
		Name:         "http-host",
		DefaultValue: config.DefaultHTTPHost,
		Description:  "HTTP server host",
		BindTo:       "http.host",
	},
	{
		Name:         "http-port",
		DefaultValue: config.DefaultHTTPPort,
		Description:  "HTTP server port",
		BindTo:       "http.port",
	},
	{
		Name:         "http-max-request-size-mb",
		DefaultValue: int(config.DefaultMaxRequestSizeMB),
		Description:  "Maximum JSON-RPC request body size in MB",
		BindTo:       "http.max-request-size-mb",
	},

	// TONX 上游配置
	{
		Name:         "upstream-network",
		DefaultValue: config.DefaultNetwork,
		Description:  "TONX network (mainnet, testnet)",
		BindTo:       "upstream.network",
	},
	{
		Name:         "upstream-api-key",
		DefaultValue: "",
		Description:  "TONX API key (required)",
		BindTo:       "upstream.api-key",
	},
	{
		Name:         "upstream-base-url",
		DefaultValue: "",
		Description:  "Override the TONX host, e.g. a self-hosted proxy",
		BindTo:       "upstream.base-url",
	},
	{
		Name:         "upstream-timeout",
		DefaultValue: config.DefaultUpstreamTimeout,
		Description:  "Timeout for each TONX backend request",
		BindTo:       "upstream.timeout",
	},

	// 网关认证配置
	{
		Name:         "auth-enabled",
		DefaultValue: false,
		Description:  "Require a Bearer token or X-API-Key on JSON-RPC requests",
		BindTo:       "auth.enabled",
	},
	{
		Name:         "auth-secret",
		DefaultValue: "",
		Description:  "Shared secret checked by the gateway",
		BindTo:       "auth.secret",
	},

	// 日志配置
	{
		Name:         "log-level",
		DefaultValue: config.DefaultLogLevel,
		Description:  "Log level (debug, info, warn, error, fatal)",
		BindTo:       "log.level",
	},
	{
		Name:         "log-format",
		DefaultValue: config.DefaultLogFormat,
		Description:  "Log format (text, json)",
		BindTo:       "log.format",
	},
}

// registerFlags 注册所有命令行标志并绑定到 viper
func registerFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	for _, flag := range flags {
		// 根据类型添加标志
		switch d := flag.DefaultValue.(type) {
		case string:
			fs.String(flag.Name, d, flag.Description)
		case int:
			fs.Int(flag.Name, d, flag.Description)
		case bool:
			fs.Bool(flag.Name, d, flag.Description)
		case time.Duration:
			fs.Duration(flag.Name, d, flag.Description)
		default:
			return fmt.Errorf("unsupported flag type: %T for flag %s", d, flag.Name)
		}

		if err := v.BindPFlag(flag.BindTo, fs.Lookup(flag.Name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	return nil
}
