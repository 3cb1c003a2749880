package toncore

import (
	"context"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

const (
	// Name 适配器名称，x-source 请求头为 "toncore-adapter"
	Name = "toncore"
	// HeaderAPIKey TON Center 兼容接口的认证请求头
	HeaderAPIKey = "API_KEY"
)

// Adapter 通过 TONX 的 TON Center 兼容接口访问 HTTPAPI
type Adapter struct {
	*HTTPAPI

	client *transport.Client
	tmpl   *endpoint.Template
}

// New 创建 toncore 适配器
func New(opts adapter.Options) (*Adapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := endpoint.ToncoreTemplate(opts.Host())
	if err != nil {
		return nil, errors.Config(err)
	}

	a := &Adapter{
		client: opts.NewTransport(Name, map[string]string{HeaderAPIKey: opts.APIKey}),
		tmpl:   tmpl,
	}
	a.HTTPAPI = NewHTTPAPI(a.call)
	return a, nil
}

// call 按方法分类发送请求。响应缺少 ok 字段时视为成功，由结构校验决定结果是否可用。
func (a *Adapter) call(ctx context.Context, method string, params map[string]interface{}) (envelope.Envelope, error) {
	env, err := a.client.CallTemplate(ctx, a.tmpl, method, params, envelope.HttpAPIFields)
	if err != nil {
		return envelope.Envelope{}, adapter.CallError(err)
	}
	return env, nil
}
