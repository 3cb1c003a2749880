// Package adapter 包含三个 TON 客户端适配器共用的配置和结果解码。
// 每个适配器把被包装客户端的调用原语替换为经过 TONX 端点模板、
// 方法分类和响应归一化的实现。
package adapter

import (
	"time"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/internal/schema"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

// Options 适配器配置，网络和 API key 只在构造时提供
type Options struct {
	Network endpoint.Network
	APIKey  string
	// BaseURL 覆盖默认主机地址，用于测试或自建代理
	BaseURL string
	// Version x-adapter-version 请求头，为空时使用默认版本
	Version    string
	Timeout    time.Duration
	HTTPClient transport.Doer
	Logger     errors.Logger
	Metrics    *metrics.Metrics
}

// Validate 验证配置
func (o Options) Validate() error {
	if err := o.Network.Validate(); err != nil {
		return errors.Config(err)
	}
	if err := endpoint.ValidateAPIKey(o.APIKey); err != nil {
		return errors.Config(err)
	}
	if err := endpoint.ValidateBaseURL(o.BaseURL); err != nil {
		return errors.Config(err)
	}
	return nil
}

// Host 返回 TONX 主机地址
func (o Options) Host() string {
	return endpoint.Host(o.BaseURL, o.Network)
}

// NewTransport 创建带适配器标识请求头的传输客户端
func (o Options) NewTransport(name string, headers map[string]string) *transport.Client {
	logger := o.Logger
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return transport.NewClient(transport.Options{
		Adapter:    name,
		Version:    o.Version,
		Timeout:    o.Timeout,
		Headers:    headers,
		HTTPClient: o.HTTPClient,
		Logger:     logger.GetUnderlying(),
		Metrics:    o.Metrics,
	})
}

// CallError 把发送前的本地错误转换为 *errors.AppError
func CallError(err error) error {
	if err == nil {
		return nil
	}
	return errors.NewConverter().FromTransport(err)
}

// Decode 校验信封并把结果映射为 T
func Decode[T any](env envelope.Envelope, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, errors.ConvertError(err)
	}
	return errors.Result(schema.Validate[T](env))
}
