// Package tonweb 提供 TonWeb 风格的 HTTPProvider，以及把它接到 TONX v2 API 的适配器。
package tonweb

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
	"github.com/frigatebird-studio/tonx-go/pkg/stack"
)

// DefaultTransactionsLimit GetTransactions 的默认条数
const DefaultTransactionsLimit = 20

// masterchainShard 主链的分片标识
const masterchainShard = "-9223372036854775808"

// Request 一次 HTTPProvider 调用
type Request struct {
	Method string
	Params map[string]interface{}
}

// SendFunc 是 HTTPProvider 的发送原语
type SendFunc func(ctx context.Context, req Request) (envelope.Envelope, error)

// EstimateFeeQuery GetEstimateFee 参数
type EstimateFeeQuery struct {
	Address      string
	Body         string
	InitCode     string
	InitData     string
	IgnoreChksig bool
}

// HTTPProvider TonWeb 的 HTTP 提供者，结果以原始 JSON 返回
type HTTPProvider struct {
	send SendFunc
}

// NewHTTPProvider 创建 HTTPProvider
func NewHTTPProvider(send SendFunc) *HTTPProvider {
	return &HTTPProvider{send: send}
}

// Send 发送任意方法，返回 result 字段
func (p *HTTPProvider) Send(ctx context.Context, method string, params map[string]interface{}) (json.RawMessage, error) {
	return adapter.Decode[json.RawMessage](p.send(ctx, Request{Method: method, Params: params}))
}

// GetAddressInfo 查询地址信息
func (p *HTTPProvider) GetAddressInfo(ctx context.Context, address string) (json.RawMessage, error) {
	return p.Send(ctx, "getAddressInformation", map[string]interface{}{"address": address})
}

// GetExtendedAddressInfo 查询扩展地址信息
func (p *HTTPProvider) GetExtendedAddressInfo(ctx context.Context, address string) (json.RawMessage, error) {
	return p.Send(ctx, "getExtendedAddressInformation", map[string]interface{}{"address": address})
}

// GetWalletInfo 查询钱包信息
func (p *HTTPProvider) GetWalletInfo(ctx context.Context, address string) (json.RawMessage, error) {
	return p.Send(ctx, "getWalletInformation", map[string]interface{}{"address": address})
}

// GetAddressBalance 返回余额（nanoton）
func (p *HTTPProvider) GetAddressBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	raw, err := adapter.Decode[json.Number](p.send(ctx, Request{
		Method: "getAddressBalance",
		Params: map[string]interface{}{"address": address},
	}))
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, errors.Schema([]string{"result: " + err.Error()}, nil)
	}
	return balance, nil
}

// GetTransactions 查询账户交易，limit 小于等于 0 时使用默认值
func (p *HTTPProvider) GetTransactions(ctx context.Context, address string, limit int, lt, hash, toLt string, archival bool) (json.RawMessage, error) {
	if limit <= 0 {
		limit = DefaultTransactionsLimit
	}
	params := map[string]interface{}{
		"address": address,
		"limit":   limit,
		"lt":      nil,
		"hash":    nil,
		"to_lt":   nil,
	}
	if lt != "" {
		params["lt"] = lt
	}
	if hash != "" {
		params["hash"] = hash
	}
	if toLt != "" {
		params["to_lt"] = toLt
	}
	if archival {
		params["archival"] = true
	}
	return p.Send(ctx, "getTransactions", params)
}

// GetMasterchainInfo 查询主链信息
func (p *HTTPProvider) GetMasterchainInfo(ctx context.Context) (json.RawMessage, error) {
	return p.Send(ctx, "getMasterchainInfo", nil)
}

// GetBlockHeader 查询区块头
func (p *HTTPProvider) GetBlockHeader(ctx context.Context, workchain int, shard string, seqno int64) (json.RawMessage, error) {
	return p.Send(ctx, "getBlockHeader", map[string]interface{}{
		"workchain": workchain,
		"shard":     shard,
		"seqno":     seqno,
	})
}

// GetMasterchainBlockHeader 查询主链区块头
func (p *HTTPProvider) GetMasterchainBlockHeader(ctx context.Context, seqno int64) (json.RawMessage, error) {
	return p.GetBlockHeader(ctx, -1, masterchainShard, seqno)
}

// GetBlockShards 查询主链区块引用的分片区块
func (p *HTTPProvider) GetBlockShards(ctx context.Context, masterchainSeqno int64) (json.RawMessage, error) {
	return p.Send(ctx, "shards", map[string]interface{}{"seqno": masterchainSeqno})
}

// GetBlockTransactions 查询区块内的交易摘要
func (p *HTTPProvider) GetBlockTransactions(ctx context.Context, workchain int, shard string, seqno int64) (json.RawMessage, error) {
	return p.Send(ctx, "getBlockTransactions", map[string]interface{}{
		"workchain": workchain,
		"shard":     shard,
		"seqno":     seqno,
	})
}

// GetMasterchainBlockTransactions 查询主链区块内的交易摘要
func (p *HTTPProvider) GetMasterchainBlockTransactions(ctx context.Context, seqno int64) (json.RawMessage, error) {
	return p.GetBlockTransactions(ctx, -1, masterchainShard, seqno)
}

// GetTokenData 查询 Jetton 或 NFT 合约的数据
func (p *HTTPProvider) GetTokenData(ctx context.Context, address string) (json.RawMessage, error) {
	return p.Send(ctx, "getTokenData", map[string]interface{}{"address": address})
}

// GetConfigParam 查询网络配置参数，结果中的 config.bytes 为原始 BOC
func (p *HTTPProvider) GetConfigParam(ctx context.Context, configID int) (json.RawMessage, error) {
	return p.Send(ctx, "getConfigParam", map[string]interface{}{"config_id": configID})
}

// SendBoc 发送序列化的外部消息
func (p *HTTPProvider) SendBoc(ctx context.Context, boc []byte) (json.RawMessage, error) {
	return p.Send(ctx, "sendBoc", map[string]interface{}{
		"boc": base64.StdEncoding.EncodeToString(boc),
	})
}

// Call 执行合约 get 方法
func (p *HTTPProvider) Call(ctx context.Context, address, method string, entries []stack.Entry) (json.RawMessage, error) {
	if entries == nil {
		entries = []stack.Entry{}
	}
	return p.Send(ctx, "runGetMethod", map[string]interface{}{
		"address": address,
		"method":  method,
		"stack":   entries,
	})
}

// GetEstimateFee 估算手续费
func (p *HTTPProvider) GetEstimateFee(ctx context.Context, query EstimateFeeQuery) (json.RawMessage, error) {
	params := map[string]interface{}{
		"address":       query.Address,
		"body":          query.Body,
		"ignore_chksig": query.IgnoreChksig,
	}
	if query.InitCode != "" {
		params["init_code"] = query.InitCode
	}
	if query.InitData != "" {
		params["init_data"] = query.InitData
	}
	return p.Send(ctx, "estimateFee", params)
}
