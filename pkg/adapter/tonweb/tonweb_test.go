package tonweb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/internal/transport"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
	"github.com/frigatebird-studio/tonx-go/pkg/stack"
)

type seen struct {
	method string
	path   string
	query  string
	source string
	body   string
}

func newTestAdapter(t *testing.T, status int, body string) (*Adapter, *atomic.Pointer[seen], *atomic.Int32) {
	t.Helper()
	last := &atomic.Pointer[seen]{}
	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		last.Store(&seen{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			source: r.Header.Get(transport.HeaderSource),
			body:   string(b),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	a, err := New(adapter.Options{Network: endpoint.Testnet, APIKey: "KEY", BaseURL: server.URL})
	require.NoError(t, err)
	return a, last, hits
}

func TestAdapter_GetAddressBalance(t *testing.T) {
	a, last, _ := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":"123456789012345678901"}`)

	balance, err := a.GetAddressBalance(context.Background(), "EQabc")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("123456789012345678901").Equal(balance))

	s := last.Load()
	assert.Equal(t, http.MethodGet, s.method)
	assert.Equal(t, "/v2/api/getAddressBalance/KEY", s.path)
	assert.Equal(t, "address=EQabc", s.query)
	assert.Equal(t, "tonweb-adapter", s.source)
}

func TestAdapter_CallUsesPost(t *testing.T) {
	a, last, _ := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":{"exit_code":0,"stack":[]}}`)

	entries, err := stack.Normalize(stack.FromLegacy(
		stack.LegacyEntry{Tag: "num", Value: 5},
		stack.LegacyEntry{Tag: "slice", Value: "te6cc"},
	))
	require.NoError(t, err)

	result, err := a.Call(context.Background(), "EQabc", "get_wallet_address", entries)
	require.NoError(t, err)
	assert.JSONEq(t, `{"exit_code":0,"stack":[]}`, string(result))

	s := last.Load()
	assert.Equal(t, http.MethodPost, s.method)
	assert.Equal(t, "/v2/api/runGetMethod/KEY", s.path)
	assert.Empty(t, s.query)
	assert.JSONEq(t, `{"address":"EQabc","method":"get_wallet_address","stack":[["num","5"],["tvm.Slice","te6cc"]]}`, s.body)
}

func TestAdapter_GetTransactionsDefaults(t *testing.T) {
	a, last, _ := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":[]}`)

	_, err := a.GetTransactions(context.Background(), "EQabc", 0, "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "address=EQabc&limit=20", last.Load().query)

	_, err = a.GetTransactions(context.Background(), "EQabc", 5, "100", "aGFzaA==", "", true)
	require.NoError(t, err)
	assert.Equal(t, "address=EQabc&archival=true&hash=aGFzaA%3D%3D&limit=5&lt=100", last.Load().query)
}

func TestAdapter_GetMasterchainBlockHeader(t *testing.T) {
	a, last, _ := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":{"global_id":-239}}`)

	_, err := a.GetMasterchainBlockHeader(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "/v2/api/getBlockHeader/KEY", last.Load().path)
	assert.Equal(t, "seqno=100&shard=-9223372036854775808&workchain=-1", last.Load().query)
}

func TestAdapter_ResultConvention(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr func(error) bool
		message string
		result  string
	}{
		{name: "zero result", status: http.StatusOK, body: `{"ok":true,"result":0}`, result: `0`},
		{name: "empty string result", status: http.StatusOK, body: `{"ok":true,"result":""}`, result: `""`},
		{
			name:    "error without result",
			status:  http.StatusOK,
			body:    `{"ok":false,"error":"LITE_SERVER_UNKNOWN: cannot load block","code":500}`,
			wantErr: errors.IsBackendError,
			message: "Received error: LITE_SERVER_UNKNOWN: cannot load block",
		},
		{
			name:    "null result",
			status:  http.StatusOK,
			body:    `{"result":null}`,
			wantErr: errors.IsBackendError,
			message: "Received error: Unknown error",
		},
		{
			name:    "non-2xx",
			status:  http.StatusServiceUnavailable,
			body:    ``,
			wantErr: errors.IsTransportError,
			message: "HTTP 503 Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestAdapter(t, tt.status, tt.body)

			result, err := a.GetMasterchainInfo(context.Background())
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.JSONEq(t, tt.result, string(result))
				return
			}
			require.Error(t, err)
			assert.True(t, tt.wantErr(err), "unexpected type %s", errors.TypeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestAdapter_MethodCannotEscapePath(t *testing.T) {
	a, _, hits := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":1}`)

	for _, method := range []string{"../admin", "getInfo/KEY2", "getInfo?x=1", "getInfo#frag", ""} {
		_, err := a.Send(context.Background(), method, nil)
		require.Error(t, err, method)
		assert.True(t, errors.IsLocalValidationError(err), method)
	}
	assert.Zero(t, hits.Load())
}

func TestHTTPProvider_InjectedSend(t *testing.T) {
	var got []Request
	p := NewHTTPProvider(func(ctx context.Context, req Request) (envelope.Envelope, error) {
		got = append(got, req)
		return envelope.Success([]byte(`{"wallet":true}`)), nil
	})

	_, err := p.GetWalletInfo(context.Background(), "EQabc")
	require.NoError(t, err)
	_, err = p.GetEstimateFee(context.Background(), EstimateFeeQuery{Address: "EQabc", Body: "te6cc"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "getWalletInformation", got[0].Method)
	assert.Equal(t, "estimateFee", got[1].Method)
	assert.NotContains(t, got[1].Params, "init_code")
}

func TestAdapter_BlockQueries(t *testing.T) {
	a, last, _ := newTestAdapter(t, http.StatusOK, `{"ok":true,"result":{"shards":[]}}`)

	_, err := a.GetBlockShards(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "/v2/api/shards/KEY", last.Load().path)
	assert.Equal(t, "seqno=100", last.Load().query)

	_, err = a.GetMasterchainBlockTransactions(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "/v2/api/getBlockTransactions/KEY", last.Load().path)
	assert.Equal(t, "seqno=100&shard=-9223372036854775808&workchain=-1", last.Load().query)
}

func TestHTTPProvider_TokenAndConfig(t *testing.T) {
	var got []Request
	p := NewHTTPProvider(func(ctx context.Context, req Request) (envelope.Envelope, error) {
		got = append(got, req)
		return envelope.Success([]byte(`{"config":{"bytes":"te6cc"}}`)), nil
	})

	_, err := p.GetTokenData(context.Background(), "EQjetton")
	require.NoError(t, err)
	res, err := p.GetConfigParam(context.Background(), 34)
	require.NoError(t, err)
	assert.JSONEq(t, `{"config":{"bytes":"te6cc"}}`, string(res))

	require.Len(t, got, 2)
	assert.Equal(t, Request{Method: "getTokenData", Params: map[string]interface{}{"address": "EQjetton"}}, got[0])
	assert.Equal(t, Request{Method: "getConfigParam", Params: map[string]interface{}{"config_id": 34}}, got[1])
}
