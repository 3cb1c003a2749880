// Package tonclient4 提供 TonClient4 风格的客户端，以及把它接到 TONX JSON-RPC 与 REST 接口的适配器。
// TONX 返回的是 TON Center 结构，客户端负责转换为 TonClient4 结构。
package tonclient4

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frigatebird-studio/tonx-go/internal/envelope"
	"github.com/frigatebird-studio/tonx-go/pkg/adapter"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
)

const (
	// masterchainShard 主链的分片标识
	masterchainShard = "-9223372036854775808"
	// maxParallelShards GetBlock 同时查询的分片数上限
	maxParallelShards = 8
)

// ErrBlockOutOfScope 上游没有该区块的分片信息
var ErrBlockOutOfScope = stderrors.New("block is out of scope")

// RPCFunc 发送一次 JSON-RPC 调用
type RPCFunc func(ctx context.Context, method string, params interface{}) (envelope.Envelope, error)

// RESTFunc 发送一次 REST 调用，path 为方法路径段
type RESTFunc func(ctx context.Context, path string, params map[string]interface{}) (envelope.Envelope, error)

// Option 客户端选项
type Option func(*Client)

// WithClock 替换 GetLastBlock 使用的时钟
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client TonClient4 客户端
type Client struct {
	rpc  RPCFunc
	rest RESTFunc
	now  func() time.Time
}

// NewClient 创建客户端
func NewClient(rpc RPCFunc, rest RESTFunc, opts ...Option) *Client {
	c := &Client{rpc: rpc, rest: rest, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLastBlock 返回最新主链区块
func (c *Client) GetLastBlock(ctx context.Context) (*LastBlock, error) {
	info, err := adapter.Decode[masterchainInfo](c.rpc(ctx, "getMasterchainInfo", nil))
	if err != nil {
		return nil, err
	}
	return &LastBlock{
		Last: info.Last.ref(),
		Init: BlockHashes{
			FileHash: info.Init.FileHash,
			RootHash: info.Init.RootHash,
		},
		StateRootHash: info.StateRootHash,
		Now:           c.now().Unix(),
	}, nil
}

// GetBlock 返回主链区块及其引用的分片区块中的交易，分片顺序与上游一致
func (c *Client) GetBlock(ctx context.Context, seqno int64) (*Block, error) {
	shards, err := adapter.Decode[shardsResult](c.rest(ctx, "shards", map[string]interface{}{"seqno": seqno}))
	if err != nil {
		return nil, err
	}
	if len(shards.Shards) == 0 {
		appErr := errors.Backend("Block is out of scope", nil)
		appErr.OriginalErr = ErrBlockOutOfScope
		return nil, appErr.WithContext("seqno", seqno)
	}

	workchain := -1
	ids := make([]blockID, 0, len(shards.Shards)+1)
	ids = append(ids, blockID{Workchain: &workchain, Shard: masterchainShard, Seqno: &seqno})
	ids = append(ids, shards.Shards...)

	out := make([]ShardBlock, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelShards)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			txs, err := adapter.Decode[blockTransactions](c.rpc(gctx, "getBlockTransactions", map[string]interface{}{
				"workchain": *id.Workchain,
				"shard":     id.Shard,
				"seqno":     *id.Seqno,
			}))
			if err != nil {
				return err
			}
			out[i] = txs.shardBlock(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Block{Shards: out}, nil
}

// GetAccount 返回账户状态。上游总是返回最新状态，seqno 只写入错误上下文。
func (c *Client) GetAccount(ctx context.Context, seqno int64, address string) (*Account, error) {
	info, err := adapter.Decode[addressInformation](c.rpc(ctx, "getAddressInformation", map[string]interface{}{
		"address": address,
	}))
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("seqno", seqno)
		}
		return nil, err
	}
	return info.account(), nil
}

// GetAccountTransactions 从 lt 开始向前加载账户交易，结果保留未解析的 BOC
func (c *Client) GetAccountTransactions(ctx context.Context, address string, lt uint64) ([]AccountTransaction, error) {
	txs, err := adapter.Decode[[]transaction](c.rpc(ctx, "getTransactions", map[string]interface{}{
		"account": address,
		"end_lt":  lt,
		"sort":    "DESC",
	}))
	if err != nil {
		return nil, err
	}

	out := make([]AccountTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, AccountTransaction{
			Lt:   tx.Lt,
			Hash: tx.Hash,
			Now:  *tx.Now,
			Boc:  tx.Data,
		})
	}
	return out, nil
}
