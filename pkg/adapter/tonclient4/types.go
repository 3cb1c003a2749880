package tonclient4

// BlockRef 区块引用
type BlockRef struct {
	Workchain int    `json:"workchain"`
	Shard     string `json:"shard"`
	Seqno     int64  `json:"seqno"`
	FileHash  string `json:"fileHash"`
	RootHash  string `json:"rootHash"`
}

// BlockHashes 区块哈希
type BlockHashes struct {
	FileHash string `json:"fileHash"`
	RootHash string `json:"rootHash"`
}

// LastBlock GetLastBlock 的结果，Now 为本地时钟的 Unix 秒
type LastBlock struct {
	Last          BlockRef    `json:"last"`
	Init          BlockHashes `json:"init"`
	StateRootHash string      `json:"stateRootHash"`
	Now           int64       `json:"now"`
}

// BlockTransaction 区块中的一笔交易
type BlockTransaction struct {
	Account string `json:"account"`
	Hash    string `json:"hash"`
	Lt      string `json:"lt"`
}

// ShardBlock 一个分片区块
type ShardBlock struct {
	Workchain    int                `json:"workchain"`
	Seqno        int64              `json:"seqno"`
	Shard        string             `json:"shard"`
	RootHash     string             `json:"rootHash"`
	FileHash     string             `json:"fileHash"`
	Transactions []BlockTransaction `json:"transactions"`
}

// Block GetBlock 的结果，第一个分片为主链
type Block struct {
	Shards []ShardBlock `json:"shards"`
}

// AccountState 账户状态，Type 为 uninit、active 或 frozen
type AccountState struct {
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	Data      string `json:"data,omitempty"`
	StateHash string `json:"stateHash,omitempty"`
}

// Balance 账户余额（nanoton）
type Balance struct {
	Coins string `json:"coins"`
}

// LastTransaction 账户最后一笔交易
type LastTransaction struct {
	Lt   string `json:"lt"`
	Hash string `json:"hash"`
}

// AccountInfo 账户信息
type AccountInfo struct {
	State   AccountState     `json:"state"`
	Balance Balance          `json:"balance"`
	Last    *LastTransaction `json:"last"`
}

// Account GetAccount 的结果
type Account struct {
	Account AccountInfo `json:"account"`
	Block   BlockRef    `json:"block"`
}

// AccountTransaction 一笔未解析的账户交易
type AccountTransaction struct {
	Lt   string `json:"lt"`
	Hash string `json:"hash"`
	Now  int64  `json:"now"`
	Boc  string `json:"boc"`
}

// 以下为 TONX 返回的 TON Center 结构

type blockID struct {
	Workchain *int   `json:"workchain" validate:"required"`
	Shard     string `json:"shard" validate:"required"`
	Seqno     *int64 `json:"seqno" validate:"required"`
	RootHash  string `json:"root_hash"`
	FileHash  string `json:"file_hash"`
}

func (b blockID) ref() BlockRef {
	return BlockRef{
		Workchain: *b.Workchain,
		Shard:     b.Shard,
		Seqno:     *b.Seqno,
		FileHash:  b.FileHash,
		RootHash:  b.RootHash,
	}
}

type masterchainInfo struct {
	Last          blockID `json:"last" validate:"required"`
	Init          blockID `json:"init" validate:"required"`
	StateRootHash string  `json:"state_root_hash" validate:"required"`
}

type shardsResult struct {
	Shards []blockID `json:"shards" validate:"dive"`
}

type shortTransaction struct {
	Account string `json:"account" validate:"required"`
	Hash    string `json:"hash" validate:"required"`
	Lt      string `json:"lt" validate:"required"`
}

type blockTransactions struct {
	ID           blockID            `json:"id"`
	Incomplete   bool               `json:"incomplete"`
	Transactions []shortTransaction `json:"transactions" validate:"dive"`
}

func (b blockTransactions) shardBlock(id blockID) ShardBlock {
	sb := ShardBlock{
		Workchain:    *id.Workchain,
		Seqno:        *id.Seqno,
		Shard:        id.Shard,
		RootHash:     b.ID.RootHash,
		FileHash:     b.ID.FileHash,
		Transactions: make([]BlockTransaction, 0, len(b.Transactions)),
	}
	if sb.RootHash == "" {
		sb.RootHash = id.RootHash
	}
	if sb.FileHash == "" {
		sb.FileHash = id.FileHash
	}
	for _, tx := range b.Transactions {
		sb.Transactions = append(sb.Transactions, BlockTransaction(tx))
	}
	return sb
}

type transactionID struct {
	Lt   string `json:"lt" validate:"required"`
	Hash string `json:"hash" validate:"required"`
}

type addressInformation struct {
	Balance           string        `json:"balance" validate:"required"`
	State             string        `json:"state" validate:"required,oneof=active uninitialized frozen"`
	Code              string        `json:"code"`
	Data              string        `json:"data"`
	FrozenHash        string        `json:"frozen_hash"`
	LastTransactionID transactionID `json:"last_transaction_id"`
	BlockID           blockID       `json:"block_id"`
}

func (a addressInformation) account() *Account {
	info := AccountInfo{Balance: Balance{Coins: a.Balance}}
	switch a.State {
	case "active":
		info.State = AccountState{Type: "active", Code: a.Code, Data: a.Data}
	case "frozen":
		info.State = AccountState{Type: "frozen", StateHash: a.FrozenHash}
	default:
		info.State = AccountState{Type: "uninit"}
	}
	if a.LastTransactionID.Lt != "0" {
		info.Last = &LastTransaction{Lt: a.LastTransactionID.Lt, Hash: a.LastTransactionID.Hash}
	}
	return &Account{Account: info, Block: a.BlockID.ref()}
}

type transaction struct {
	Lt   string `json:"lt" validate:"required"`
	Hash string `json:"hash" validate:"required"`
	Now  *int64 `json:"now" validate:"required"`
	Data string `json:"data" validate:"required"`
}
