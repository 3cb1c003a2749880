// Package toncore 提供 TON Center v2 风格的 HTTPAPI 客户端，以及把它接到 TONX 的适配器。
package toncore

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

// Caller 是 HTTPAPI 的调用原语，返回归一化后的信封
type Caller func(ctx context.Context, method string, params map[string]interface{}) (envelope.Envelope, error)

// TransactionID 交易标识
type TransactionID struct {
	Lt   string `json:"lt" validate:"required"`
	Hash string `json:"hash" validate:"required"`
}

// BlockIDExt 完整区块标识
type BlockIDExt struct {
	Workchain *int   `json:"workchain" validate:"required"`
	Shard     string `json:"shard" validate:"required"`
	Seqno     *int64 `json:"seqno" validate:"required"`
	RootHash  string `json:"root_hash" validate:"required"`
	FileHash  string `json:"file_hash" validate:"required"`
}

// AddressInformation getAddressInformation 结果
type AddressInformation struct {
	Balance           json.Number   `json:"balance" validate:"required"`
	State             string        `json:"state" validate:"required,oneof=active uninitialized frozen"`
	Code              string        `json:"code"`
	Data              string        `json:"data"`
	FrozenHash        string        `json:"frozen_hash"`
	LastTransactionID TransactionID `json:"last_transaction_id"`
	BlockID           BlockIDExt    `json:"block_id"`
	SyncUtime         *int64        `json:"sync_utime" validate:"required"`
}

// Transaction getTransactions 结果中的一笔交易
type Transaction struct {
	Data          string            `json:"data" validate:"required"`
	Utime         *int64            `json:"utime" validate:"required"`
	TransactionID TransactionID     `json:"transaction_id"`
	Fee           json.Number       `json:"fee"`
	StorageFee    json.Number       `json:"storage_fee"`
	OtherFee      json.Number       `json:"other_fee"`
	InMsg         json.RawMessage   `json:"in_msg"`
	OutMsgs       []json.RawMessage `json:"out_msgs"`
}

// MasterchainInfo getMasterchainInfo 结果
type MasterchainInfo struct {
	Last          BlockIDExt `json:"last"`
	Init          BlockIDExt `json:"init"`
	StateRootHash string     `json:"state_root_hash" validate:"required"`
}

// RunGetMethodResult runGetMethod 结果
type RunGetMethodResult struct {
	GasUsed  *int64            `json:"gas_used" validate:"required"`
	ExitCode *int              `json:"exit_code" validate:"required"`
	Stack    []json.RawMessage `json:"stack" validate:"required"`
}

// Fees 手续费明细
type Fees struct {
	InFwdFee   *int64 `json:"in_fwd_fee" validate:"required"`
	StorageFee *int64 `json:"storage_fee" validate:"required"`
	GasFee     *int64 `json:"gas_fee" validate:"required"`
	FwdFee     *int64 `json:"fwd_fee" validate:"required"`
}

// EstimateFeeResult estimateFee 结果
type EstimateFeeResult struct {
	SourceFees Fees `json:"source_fees"`
}

// ShardsResult shards 结果
type ShardsResult struct {
	Shards []BlockIDExt `json:"shards" validate:"required,dive"`
}

// ShortTransaction getBlockTransactions 结果中的交易摘要
type ShortTransaction struct {
	Account string `json:"account" validate:"required"`
	Lt      string `json:"lt" validate:"required"`
	Hash    string `json:"hash" validate:"required"`
	Mode    int    `json:"mode"`
}

// BlockTransactions getBlockTransactions 结果
type BlockTransactions struct {
	ID           BlockIDExt         `json:"id"`
	ReqCount     int                `json:"req_count"`
	Incomplete   bool               `json:"incomplete"`
	Transactions []ShortTransaction `json:"transactions" validate:"dive"`
}

// TransactionsOptions GetTransactions 的可选参数，空值不发送
type TransactionsOptions struct {
	Limit     int
	Lt        string
	Hash      string
	ToLt      string
	Inclusive bool
	Archival  bool
}

// EstimateFeeArgs EstimateFee 参数
type EstimateFeeArgs struct {
	Body            []byte
	InitCode        []byte
	InitData        []byte
	IgnoreSignature bool
}

// HTTPAPI TON Center v2 API 客户端，所有请求经由注入的 Caller 发送
type HTTPAPI struct {
	call Caller
}

// NewHTTPAPI 创建 HTTPAPI
func NewHTTPAPI(call Caller) *HTTPAPI {
	return &HTTPAPI{call: call}
}

// GetAddressInformation 查询地址信息
func (h *HTTPAPI) GetAddressInformation(ctx context.Context, address string) (*AddressInformation, error) {
	info, err := adapter.Decode[AddressInformation](h.call(ctx, "getAddressInformation", map[string]interface{}{
		"address": address,
	}))
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBalance 返回账户余额（nanoton）
func (h *HTTPAPI) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	info, err := h.GetAddressInformation(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := decimal.NewFromString(info.Balance.String())
	if err != nil {
		return decimal.Zero, errors.Schema([]string{"balance: " + err.Error()}, nil)
	}
	return balance, nil
}

// GetAddressState 返回账户状态：active、uninitialized 或 frozen
func (h *HTTPAPI) GetAddressState(ctx context.Context, address string) (string, error) {
	return adapter.Decode[string](h.call(ctx, "getAddressState", map[string]interface{}{
		"address": address,
	}))
}

// IsContractDeployed 判断合约是否已部署
func (h *HTTPAPI) IsContractDeployed(ctx context.Context, address string) (bool, error) {
	state, err := h.GetAddressState(ctx, address)
	if err != nil {
		return false, err
	}
	return state == "active", nil
}

// GetTransactions 查询账户交易
func (h *HTTPAPI) GetTransactions(ctx context.Context, address string, opts TransactionsOptions) ([]Transaction, error) {
	params := map[string]interface{}{
		"address":   address,
		"limit":     opts.Limit,
		"lt":        optional(opts.Lt),
		"hash":      optional(opts.Hash),
		"to_lt":     optional(opts.ToLt),
		"inclusive": flag(opts.Inclusive),
		"archival":  flag(opts.Archival),
	}
	if opts.Limit <= 0 {
		params["limit"] = nil
	}
	return adapter.Decode[[]Transaction](h.call(ctx, "getTransactions", params))
}

// GetMasterchainInfo 查询主链信息
func (h *HTTPAPI) GetMasterchainInfo(ctx context.Context) (*MasterchainInfo, error) {
	info, err := adapter.Decode[MasterchainInfo](h.call(ctx, "getMasterchainInfo", nil))
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetTransaction 按 lt 和 hash 查询单笔交易，不存在时返回 nil
func (h *HTTPAPI) GetTransaction(ctx context.Context, address, lt, hash string) (*Transaction, error) {
	txs, err := h.GetTransactions(ctx, address, TransactionsOptions{
		Limit:     1,
		Lt:        lt,
		Hash:      hash,
		Inclusive: true,
	})
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].TransactionID.Lt == lt && txs[i].TransactionID.Hash == hash {
			return &txs[i], nil
		}
	}
	return nil, nil
}

// GetShards 查询主链区块引用的分片区块
func (h *HTTPAPI) GetShards(ctx context.Context, seqno int64) ([]BlockIDExt, error) {
	res, err := adapter.Decode[ShardsResult](h.call(ctx, "shards", map[string]interface{}{
		"seqno": seqno,
	}))
	if err != nil {
		return nil, err
	}
	return res.Shards, nil
}

// GetBlockTransactions 查询区块内的交易摘要
func (h *HTTPAPI) GetBlockTransactions(ctx context.Context, workchain int, seqno int64, shard string) (*BlockTransactions, error) {
	res, err := adapter.Decode[BlockTransactions](h.call(ctx, "getBlockTransactions", map[string]interface{}{
		"workchain": workchain,
		"seqno":     seqno,
		"shard":     shard,
	}))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RunGetMethod 执行合约 get 方法，stack 使用规范化后的条目
func (h *HTTPAPI) RunGetMethod(ctx context.Context, address, method string, entries []stack.Entry) (*RunGetMethodResult, error) {
	if entries == nil {
		entries = []stack.Entry{}
	}
	res, err := adapter.Decode[RunGetMethodResult](h.call(ctx, "runGetMethod", map[string]interface{}{
		"address": address,
		"method":  method,
		"stack":   entries,
	}))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SendBoc 发送序列化的外部消息
func (h *HTTPAPI) SendBoc(ctx context.Context, boc []byte) error {
	_, err := adapter.Decode[json.RawMessage](h.call(ctx, "sendBoc", map[string]interface{}{
		"boc": base64.StdEncoding.EncodeToString(boc),
	}))
	return err
}

// EstimateFee 估算消息手续费
func (h *HTTPAPI) EstimateFee(ctx context.Context, address string, args EstimateFeeArgs) (*EstimateFeeResult, error) {
	params := map[string]interface{}{
		"address":       address,
		"body":          base64.StdEncoding.EncodeToString(args.Body),
		"init_code":     encodeOptional(args.InitCode),
		"init_data":     encodeOptional(args.InitData),
		"ignore_chksig": args.IgnoreSignature,
	}
	res, err := adapter.Decode[EstimateFeeResult](h.call(ctx, "estimateFee", params))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func flag(b bool) interface{} {
	if !b {
		return nil
	}
	return true
}

func encodeOptional(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return base64.StdEncoding.EncodeToString(b)
}
