// Package transport 发送 TONX 上游请求并把结果归一化为信封
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/internal/metrics"
	"github.com/frigatebird-studio/tonx-go/internal/utils"
)

const (
	// DefaultTimeout 默认请求超时
	DefaultTimeout = 10 * time.Second
	// DefaultVersion 默认的 x-adapter-version 请求头
	DefaultVersion = "0.1.0"

	// HeaderSource 标识请求来源的请求头
	HeaderSource = "x-source"
	// HeaderAdapterVersion 标识适配器版本的请求头
	HeaderAdapterVersion = "x-adapter-version"
)

// Doer 执行 HTTP 请求，*http.Client 满足该接口
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options 传输客户端配置
type Options struct {
	// Adapter 适配器名称，用于 x-source 请求头和指标标签
	Adapter string
	// Version x-adapter-version 请求头
	Version string
	// Timeout HTTPClient 为空时创建的客户端超时
	Timeout time.Duration
	// Headers 附加请求头
	Headers    map[string]string
	HTTPClient Doer
	Logger     logrus.FieldLogger
	Metrics    *metrics.Metrics
}

// Client 表示 TONX 上游客户端，创建后只读，可并发使用
type Client struct {
	adapter    string
	headers    http.Header
	httpClient Doer
	logger     logrus.FieldLogger
	metrics    *metrics.Metrics
}

// NewClient 创建新的上游客户端
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = utils.NewHTTPClient(opts.Timeout)
	}

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	if opts.Adapter != "" {
		headers.Set(HeaderSource, opts.Adapter+"-adapter")
	}
	headers.Set(HeaderAdapterVersion, opts.Version)
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	return &Client{
		adapter:    opts.Adapter,
		headers:    headers,
		httpClient: httpClient,
		logger:     logger.WithField("adapter", opts.Adapter),
		metrics:    opts.Metrics,
	}
}

// Adapter 返回适配器名称
func (c *Client) Adapter() string {
	return c.adapter
}

// CallTemplate 按方法分类发送模板请求：GET 把参数放入查询字符串，POST 把参数作为 JSON 请求体。
// 返回的 error 只表示请求未能发出前的本地错误。
func (c *Client) CallTemplate(ctx context.Context, tmpl *endpoint.Template, method string, params map[string]interface{}, fields envelope.Fields) (envelope.Envelope, error) {
	verb := endpoint.Classify(method)

	var (
		url  string
		body []byte
		err  error
	)
	if verb == http.MethodPost {
		url, err = tmpl.Build(method, nil)
		if err != nil {
			return envelope.Envelope{}, InvalidRequestError(err)
		}
		if params == nil {
			params = map[string]interface{}{}
		}
		body, err = json.Marshal(params)
		if err != nil {
			return envelope.Envelope{}, InvalidRequestError(err)
		}
	} else {
		url, err = tmpl.Build(method, params)
		if err != nil {
			return envelope.Envelope{}, InvalidRequestError(err)
		}
	}

	return c.call(ctx, method, verb, url, body, fields), nil
}

// CallJSONRPC 以 JSON-RPC 2.0 格式 POST 到 url
func (c *Client) CallJSONRPC(ctx context.Context, url, method string, params interface{}, fields envelope.Fields) (envelope.Envelope, error) {
	req, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return envelope.Envelope{}, InvalidRequestError(err)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return envelope.Envelope{}, InvalidRequestError(err)
	}

	return c.call(ctx, method, http.MethodPost, url, body, fields), nil
}

// Send 发送一次 HTTP 请求并返回原始结果，不做任何重试
func (c *Client) Send(ctx context.Context, method, verb, url string, body []byte) envelope.CallOutcome {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, verb, url, reader)
	if err != nil {
		return envelope.CallOutcome{Err: RequestError(err)}
	}
	httpReq.Header = c.headers.Clone()
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = classifyDoError(err)
		c.logger.WithFields(logrus.Fields{
			"method":   method,
			"verb":     verb,
			"duration": time.Since(start),
		}).WithError(err).Debug("Upstream call failed")
		return envelope.CallOutcome{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope.CallOutcome{StatusCode: resp.StatusCode, Err: InvalidResponseError(err)}
	}

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"verb":     verb,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Upstream call completed")

	return envelope.CallOutcome{StatusCode: resp.StatusCode, Body: respBody}
}

func (c *Client) call(ctx context.Context, method, verb, url string, body []byte, fields envelope.Fields) envelope.Envelope {
	start := time.Now()
	env := envelope.Normalize(c.Send(ctx, method, verb, url, body), fields)

	result := metrics.OutcomeSuccess
	if env.Error != nil {
		result = string(env.Error.Kind)
	}
	c.metrics.ObserveCall(c.adapter, method, verb, result, time.Since(start))
	return env
}
