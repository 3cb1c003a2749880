package tonclient4

import (
	"context"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

// Name 适配器名称，x-source 请求头为 "tonclient4-adapter"
const Name = "tonclient4"

// Adapter 通过 TONX JSON-RPC 端点和 v2 REST 接口访问 Client
type Adapter struct {
	*Client

	client *transport.Client
	rpcURL string
	rest   *endpoint.Template
}

// New 创建 tonclient4 适配器
func New(opts adapter.Options, clientOpts ...Option) (*Adapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rest, err := endpoint.TonwebTemplate(opts.Host(), opts.APIKey)
	if err != nil {
		return nil, errors.Config(err)
	}

	a := &Adapter{
		client: opts.NewTransport(Name, nil),
		rpcURL: endpoint.JSONRPCURL(opts.Host(), opts.APIKey),
		rest:   rest,
	}
	a.Client = NewClient(a.sendRPC, a.sendREST, clientOpts...)
	return a, nil
}

func (a *Adapter) sendRPC(ctx context.Context, method string, params interface{}) (envelope.Envelope, error) {
	env, err := a.client.CallJSONRPC(ctx, a.rpcURL, method, params, envelope.JSONRPCFields)
	if err != nil {
		return envelope.Envelope{}, adapter.CallError(err)
	}
	return env, nil
}

func (a *Adapter) sendREST(ctx context.Context, path string, params map[string]interface{}) (envelope.Envelope, error) {
	env, err := a.client.CallTemplate(ctx, a.rest, path, params, envelope.TonCenterFields)
	if err != nil {
		return envelope.Envelope{}, adapter.CallError(err)
	}
	return env, nil
}
