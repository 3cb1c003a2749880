// Package provider 提供 TONX JSON-RPC 统一客户端：每个后端方法对应一个类型化操作，
// 按方法名路由到默认端点或 labs 端点。
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/internal/schema"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

const (
	adapterName     = "provider"
	labsAdapterName = "provider-labs"
)

// Options 统一客户端配置
type Options struct {
	Network endpoint.Network
	APIKey  string
	// BaseURL 覆盖默认主机地址，用于测试或自建代理
	BaseURL    string
	Timeout    time.Duration
	HTTPClient transport.Doer
	Logger     errors.Logger
	Metrics    *metrics.Metrics
}

// Provider TONX 统一客户端，创建后只读，可并发使用
type Provider struct {
	opts   Options
	host   string
	logger errors.Logger

	defaultURL string
	client     *transport.Client

	labsOnce   sync.Once
	labsURL    string
	labsClient *transport.Client
}

// New 创建统一客户端并初始化默认端点，labs 端点在首次使用时创建
func New(opts Options) (*Provider, error) {
	if err := opts.Network.Validate(); err != nil {
		return nil, errors.Config(err)
	}
	if err := endpoint.ValidateAPIKey(opts.APIKey); err != nil {
		return nil, errors.Config(err)
	}
	if err := endpoint.ValidateBaseURL(opts.BaseURL); err != nil {
		return nil, errors.Config(err)
	}
	if opts.Logger == nil {
		opts.Logger = errors.NewNopLogger()
	}

	p := &Provider{
		opts:   opts,
		host:   endpoint.Host(opts.BaseURL, opts.Network),
		logger: opts.Logger.WithField("component", adapterName),
	}
	p.defaultURL = endpoint.JSONRPCURL(p.host, opts.APIKey)
	p.client = p.newClient(adapterName)
	return p, nil
}

func (p *Provider) newClient(name string) *transport.Client {
	return transport.NewClient(transport.Options{
		Adapter:    name,
		Timeout:    p.opts.Timeout,
		HTTPClient: p.opts.HTTPClient,
		Logger:     p.opts.Logger.GetUnderlying(),
		Metrics:    p.opts.Metrics,
	})
}

// Network 返回客户端所属网络
func (p *Provider) Network() endpoint.Network {
	return p.opts.Network
}

// labs 返回 labs 端点，只创建一次
func (p *Provider) labs() (*transport.Client, string) {
	p.labsOnce.Do(func() {
		p.labsURL = endpoint.LabsURL(p.host, p.opts.APIKey)
		p.labsClient = p.newClient(labsAdapterName)
	})
	return p.labsClient, p.labsURL
}

// Perform 通用调度入口，返回未经类型化的结果
func (p *Provider) Perform(ctx context.Context, action Action) (json.RawMessage, error) {
	return perform[json.RawMessage](ctx, p, action)
}

// perform 发送请求并把结果校验为 T，同时记录操作日志
func perform[T any](ctx context.Context, p *Provider, action Action) (T, error) {
	start := time.Now()
	ctx = errors.NewContextWithOperation(ctx, action.Method)

	result, err := performOnce[T](ctx, p, action)
	p.logger.WithContext(ctx).LogOperation(action.Method, start, err)
	return result, err
}

func performOnce[T any](ctx context.Context, p *Provider, action Action) (T, error) {
	var zero T
	env, err := p.dispatch(ctx, action)
	if err != nil {
		return zero, err
	}
	return errors.Result(schema.Validate[T](env))
}

// dispatch 查找方法所属端点族，校验参数后发送。未注册的方法不会发起网络请求。
func (p *Provider) dispatch(ctx context.Context, action Action) (envelope.Envelope, error) {
	spec, ok := registry[action.Method]
	if !ok {
		return envelope.Envelope{}, errors.MethodNotImplemented(action.Method)
	}

	params, err := prepareParams(action.Method, spec, action.Params)
	if err != nil {
		return envelope.Envelope{}, err
	}

	client, url := p.client, p.defaultURL
	if spec.family == FamilyLabs {
		client, url = p.labs()
	}

	env, err := client.CallJSONRPC(ctx, url, action.Method, params, envelope.JSONRPCFields)
	if err != nil {
		return envelope.Envelope{}, errors.NewConverter().FromTransport(err)
	}
	return env, nil
}

// wireEncoder 由需要在发送前转换形式的参数实现
type wireEncoder interface {
	wireParams() (interface{}, error)
}

// prepareParams 把调用方参数转换为该方法的参数结构体并执行本地校验
func prepareParams(method string, spec methodSpec, raw interface{}) (interface{}, error) {
	if spec.params == nil {
		return map[string]interface{}{}, nil
	}

	target := spec.params()
	if err := assignParams(target, raw); err != nil {
		return nil, errors.LocalValidation(method, err.Error())
	}
	if issues := schema.Check(target); len(issues) > 0 {
		return nil, errors.LocalValidation(method, issues...)
	}

	if enc, ok := target.(wireEncoder); ok {
		wire, err := enc.wireParams()
		if err != nil {
			return nil, errors.LocalValidation(method, err.Error())
		}
		return wire, nil
	}
	return target, nil
}

// assignParams 把 raw 写入 target（指向参数结构体的指针）
func assignParams(target interface{}, raw interface{}) error {
	if raw == nil {
		return nil
	}

	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		tv := reflect.ValueOf(target)
		rv := reflect.ValueOf(raw)
		if rv.Type() == tv.Type() {
			if rv.IsNil() {
				return nil
			}
			tv.Elem().Set(rv.Elem())
			return nil
		}
		if rv.Type() == tv.Elem().Type() {
			tv.Elem().Set(rv)
			return nil
		}

		b, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		data = b
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, target)
}
