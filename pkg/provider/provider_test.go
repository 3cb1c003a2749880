package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigatebird-studio/tonx-go/internal/endpoint"
	"github.com/frigatebird-studio/tonx-go/internal/jsonrpc"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
	"github.com/frigatebird-studio/tonx-go/pkg/stack"
)

type recordedCall struct {
	Path    string
	Request jsonrpc.Request
}

type rpcServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls []recordedCall
}

func (s *rpcServer) Calls() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedCall(nil), s.calls...)
}

// newRPCServer 启动模拟的 TONX 后端，reply 返回状态码和响应体
func newRPCServer(t *testing.T, reply func(req jsonrpc.Request) (int, string)) *rpcServer {
	t.Helper()
	s := &rpcServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req jsonrpc.Request
		_ = json.Unmarshal(body, &req)

		s.mu.Lock()
		s.calls = append(s.calls, recordedCall{Path: r.URL.Path, Request: req})
		s.mu.Unlock()

		status, resp := reply(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(s.Close)
	return s
}

func resultReply(result string) func(jsonrpc.Request) (int, string) {
	return func(req jsonrpc.Request) (int, string) {
		return http.StatusOK, `{"jsonrpc":"2.0","id":"1","result":` + result + `}`
	}
}

func newTestProvider(t *testing.T, server *rpcServer) *Provider {
	t.Helper()
	p, err := New(Options{Network: endpoint.Testnet, APIKey: "KEY", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad network", Options{Network: "devnet", APIKey: "KEY"}},
		{"missing key", Options{Network: endpoint.Mainnet}},
		{"unsafe key", Options{Network: endpoint.Mainnet, APIKey: "a/b"}},
		{"bad base url", Options{Network: endpoint.Mainnet, APIKey: "KEY", BaseURL: "localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			assert.Nil(t, p)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConfig), "got %v", err)
		})
	}

	p, err := New(Options{Network: endpoint.Mainnet, APIKey: "KEY"})
	require.NoError(t, err)
	assert.Equal(t, endpoint.Mainnet, p.Network())
}

func TestProvider_DefaultEndpoint(t *testing.T) {
	server := newRPCServer(t, resultReply(`{"last":{"seqno":42}}`))
	p := newTestProvider(t, server)

	result, err := p.GetMasterchainInfo(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"last":{"seqno":42}}`, string(result))

	calls := server.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/v2/json-rpc/KEY", calls[0].Path)
	assert.Equal(t, jsonrpc.JSONRPCVersion, calls[0].Request.JSONRPC)
	assert.Equal(t, MethodGetMasterchainInfo, calls[0].Request.Method)
	assert.JSONEq(t, `{}`, string(calls[0].Request.Params))
	assert.NotEmpty(t, calls[0].Request.ID)
}

func TestProvider_LabsRouting(t *testing.T) {
	server := newRPCServer(t, resultReply(`{"raw_form":"0:abc"}`))
	p := newTestProvider(t, server)
	ctx := context.Background()

	_, err := p.DetectAddress(ctx, "EQabc")
	require.NoError(t, err)
	_, err = p.GetAddressInformation(ctx, "EQabc")
	require.NoError(t, err)

	calls := server.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/v2/labs/KEY", calls[0].Path)
	assert.Equal(t, "/v2/json-rpc/KEY", calls[1].Path)
	assert.JSONEq(t, string(calls[0].Request.Params), string(calls[1].Request.Params))
}

func TestProvider_LabsConcurrentFirstUse(t *testing.T) {
	server := newRPCServer(t, resultReply(`"ok"`))
	p := newTestProvider(t, server)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.VerifyBoc(context.Background(), "te6cc")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for _, c := range server.Calls() {
		assert.Equal(t, "/v2/labs/KEY", c.Path)
	}
	assert.Len(t, server.Calls(), 8)
}

func TestProvider_UnmappedMethod(t *testing.T) {
	server := newRPCServer(t, resultReply(`1`))
	p := newTestProvider(t, server)

	_, err := p.Perform(context.Background(), Action{Method: "getFoo"})
	require.Error(t, err)
	assert.True(t, errors.IsMethodNotImplemented(err))
	assert.Equal(t, "Method getFoo not implemented", err.Error())
	assert.Empty(t, server.Calls())
}

func TestProvider_LocalValidation(t *testing.T) {
	server := newRPCServer(t, resultReply(`[]`))
	p := newTestProvider(t, server)
	ctx := context.Background()

	_, err := p.GetTgBTCBurns(ctx, GetTgBTCBurnsParams{})
	require.Error(t, err)
	assert.True(t, errors.IsLocalValidationError(err))
	assert.Contains(t, err.Error(), "address: required_without=JettonWallet")

	_, err = p.GetTgBTCBurns(ctx, GetTgBTCBurnsParams{Address: "EQ", StartUtime: Ptr(int64(1))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_utime: required_with=StartUtime")

	_, err = p.GetTgBTCTransfers(ctx, GetTgBTCTransfersParams{Address: "EQ", Limit: Ptr(1000)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit: max=256")

	_, err = p.GetBlockHeader(ctx, GetBlockHeaderParams{Shard: "-9223372036854775808"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seqno: required")
	assert.Contains(t, err.Error(), "workchain: required")

	assert.Empty(t, server.Calls())

	burns, err := p.GetTgBTCBurns(ctx, GetTgBTCBurnsParams{JettonWallet: "EQw", StartLt: Ptr(int64(1)), EndLt: Ptr(int64(9))})
	require.NoError(t, err)
	assert.Empty(t, burns)
	require.Len(t, server.Calls(), 1)
	assert.JSONEq(t, `{"jetton_wallet":"EQw","start_lt":1,"end_lt":9}`, string(server.Calls()[0].Request.Params))
}

func TestProvider_RunGetMethodStackEncodings(t *testing.T) {
	server := newRPCServer(t, resultReply(
		`{"@type":"smc.runResult","gas_used":463,"stack":[["num","0x1"]],"exit_code":0,"@extra":"1:2"}`))
	p := newTestProvider(t, server)
	ctx := context.Background()

	inputs := []stack.Input{
		stack.FromLegacy(stack.LegacyEntry{Tag: "num", Value: 16}),
		stack.FromTyped(stack.TypedEntry{Type: "num", Value: "0x10"}),
		stack.FromRaw(json.RawMessage(`[["num",16]]`)),
	}
	for _, in := range inputs {
		resp, err := p.RunGetMethod(ctx, RunGetMethodParams{Address: "EQ", Method: "get_value", Stack: in})
		require.NoError(t, err)
		require.NotNil(t, resp.ExitCode)
		assert.Equal(t, 0, *resp.ExitCode)
		assert.Equal(t, int64(463), *resp.GasUsed)
		assert.Equal(t, "smc.runResult", resp.Type)
		require.Len(t, resp.Stack, 1)
		assert.JSONEq(t, `["num","0x1"]`, string(resp.Stack[0]))
	}

	calls := server.Calls()
	require.Len(t, calls, len(inputs))
	for _, c := range calls {
		assert.JSONEq(t, `{"address":"EQ","method":"get_value","stack":[["num","16"]]}`, string(c.Request.Params))
	}

	_, err := p.RunGetMethod(ctx, RunGetMethodParams{Address: "EQ", Method: "seqno"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"EQ","method":"seqno","stack":[]}`, string(server.Calls()[len(inputs)].Request.Params))
}

func TestProvider_RunGetMethodUnknownStack(t *testing.T) {
	server := newRPCServer(t, resultReply(`{}`))
	p := newTestProvider(t, server)

	_, err := p.RunGetMethod(context.Background(), RunGetMethodParams{
		Address: "EQ",
		Method:  "seqno",
		Stack:   stack.FromRaw(json.RawMessage(`[["num","16"]]`)),
	})
	require.Error(t, err)
	assert.True(t, errors.IsLocalValidationError(err))
	assert.Contains(t, err.Error(), "unknown type of params")
	assert.Empty(t, server.Calls())
}

func TestProvider_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{
			name:    "backend error",
			status:  http.StatusOK,
			body:    `{"jsonrpc":"2.0","id":"1","error":{"code":-32000,"message":"boom"}}`,
			check:   errors.IsBackendError,
			message: "Received error: boom",
		},
		{
			name:    "malformed response",
			status:  http.StatusOK,
			body:    `{"jsonrpc":"2.0","id":"1","result":{"jetton_master":"EQm","coordinator":"EQc"}}`,
			check:   errors.IsSchemaError,
			message: "Malformed response: teleport: required",
		},
		{
			name:    "non-2xx",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			check:   errors.IsTransportError,
			message: "HTTP 502 Bad Gateway",
		},
		{
			name:    "unparseable body",
			status:  http.StatusOK,
			body:    `not json`,
			check:   errors.IsSchemaError,
			message: "Malformed response: failed to parse response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRPCServer(t, func(jsonrpc.Request) (int, string) { return tt.status, tt.body })
			p := newTestProvider(t, server)

			resp, err := p.GetTgBTCConfig(context.Background())
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, tt.check(err), "unexpected error type %s", errors.TypeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestProvider_TypedResponses(t *testing.T) {
	server := newRPCServer(t, resultReply(
		`{"holders":[{"address":"EQ1","balance":"10","last_updated":1700000000,"owner_type":"wallet"}],"total":1}`))
	p := newTestProvider(t, server)

	holders, err := p.GetTgBTCHolders(context.Background(), GetTgBTCHoldersParams{Limit: Ptr(10)})
	require.NoError(t, err)
	require.Len(t, holders.Holders, 1)
	assert.Equal(t, "EQ1", holders.Holders[0].Address)
	assert.Equal(t, int64(1700000000), *holders.Holders[0].LastUpdated)
	assert.Equal(t, int64(1), *holders.Total)
	assert.JSONEq(t, `{"limit":10}`, string(server.Calls()[0].Request.Params))
}

func TestProvider_PerformRawParams(t *testing.T) {
	server := newRPCServer(t, resultReply(`"1000"`))
	p := newTestProvider(t, server)
	ctx := context.Background()

	result, err := p.Perform(ctx, Action{Method: MethodGetAccountBalance, Params: json.RawMessage(`{"address":"EQa"}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `"1000"`, string(result))

	_, err = p.Perform(ctx, Action{Method: MethodGetAccountBalance, Params: map[string]interface{}{"address": "EQb"}})
	require.NoError(t, err)

	_, err = p.Perform(ctx, Action{Method: MethodGetAccountBalance, Params: AddressParams{Address: "EQc"}})
	require.NoError(t, err)

	_, err = p.Perform(ctx, Action{Method: MethodGetAccountBalance, Params: json.RawMessage(`{"address":1}`)})
	assert.True(t, errors.IsLocalValidationError(err))

	calls := server.Calls()
	require.Len(t, calls, 3)
	assert.JSONEq(t, `{"address":"EQa"}`, string(calls[0].Request.Params))
	assert.JSONEq(t, `{"address":"EQb"}`, string(calls[1].Request.Params))
	assert.JSONEq(t, `{"address":"EQc"}`, string(calls[2].Request.Params))
}

func TestRegistry(t *testing.T) {
	methods := Methods()
	assert.Len(t, methods, 36)
	assert.IsIncreasing(t, methods)

	labs := 0
	for _, m := range methods {
		family, ok := FamilyOf(m)
		require.True(t, ok)
		if family == FamilyLabs {
			labs++
		}
	}
	assert.Equal(t, 5, labs)

	_, ok := FamilyOf("getFoo")
	assert.False(t, ok)
}
