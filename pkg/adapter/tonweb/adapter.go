package tonweb

import (
	"context"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

// Name 适配器名称，x-source 请求头为 "tonweb-adapter"
const Name = "tonweb"

// Adapter 通过 TONX v2 API 访问 HTTPProvider。
// API key 位于方法名之后的路径段，调用方只能控制方法名。
type Adapter struct {
	*HTTPProvider

	client *transport.Client
	tmpl   *endpoint.Template
}

// New 创建 tonweb 适配器
func New(opts adapter.Options) (*Adapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := endpoint.TonwebTemplate(opts.Host(), opts.APIKey)
	if err != nil {
		return nil, errors.Config(err)
	}

	a := &Adapter{
		client: opts.NewTransport(Name, nil),
		tmpl:   tmpl,
	}
	a.HTTPProvider = NewHTTPProvider(a.send)
	return a, nil
}

// send 缺少或为 null 的 result 视为失败
func (a *Adapter) send(ctx context.Context, req Request) (envelope.Envelope, error) {
	env, err := a.client.CallTemplate(ctx, a.tmpl, req.Method, req.Params, envelope.TonWebFields)
	if err != nil {
		return envelope.Envelope{}, adapter.CallError(err)
	}
	return env, nil
}
