package provider

import (
	"github.com/frigatebird-studio/tonx-go/pkg/stack"
)

// Ptr 返回 v 的指针，便于填写可选参数
func Ptr[T any](v T) *T {
	return &v
}

// AddressParams 只包含一个地址的参数
type AddressParams struct {
	Address string `json:"address" validate:"required"`
}

// BocParams 只包含一个 BoC 的参数
type BocParams struct {
	Boc string `json:"boc" validate:"required"`
}

// GetTransactionsParams getTransactions 参数
type GetTransactionsParams struct {
	Account    string `json:"account,omitempty"`
	EndLt      *int64 `json:"end_lt,omitempty"`
	EndUtime   *int64 `json:"end_utime,omitempty"`
	Hash       string `json:"hash,omitempty"`
	Limit      *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset     *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	Seqno      *int64 `json:"seqno,omitempty"`
	Shard      string `json:"shard,omitempty"`
	Sort       string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	StartLt    *int64 `json:"start_lt,omitempty"`
	StartUtime *int64 `json:"start_utime,omitempty"`
	Workchain  *int   `json:"workchain,omitempty"`
}

// GetJettonBurnsParams getJettonBurns 参数
type GetJettonBurnsParams struct {
	Address      string `json:"address,omitempty"`
	EndLt        *int64 `json:"end_lt,omitempty"`
	EndUtime     *int64 `json:"end_utime,omitempty"`
	JettonMaster string `json:"jetton_master,omitempty"`
	JettonWallet string `json:"jetton_wallet,omitempty"`
	Limit        *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset       *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	Sort         string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	StartLt      *int64 `json:"start_lt,omitempty"`
	StartUtime   *int64 `json:"start_utime,omitempty"`
}

// GetJettonMastersParams getJettonMasters 参数
type GetJettonMastersParams struct {
	Address      string `json:"address,omitempty"`
	AdminAddress string `json:"admin_address,omitempty"`
	Limit        *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset       *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// GetJettonTransfersParams getJettonTransfers 参数
type GetJettonTransfersParams struct {
	Address      string `json:"address,omitempty"`
	Direction    string `json:"direction,omitempty" validate:"omitempty,oneof=in out both"`
	EndLt        *int64 `json:"end_lt,omitempty"`
	EndUtime     *int64 `json:"end_utime,omitempty"`
	JettonMaster string `json:"jetton_master,omitempty"`
	JettonWallet string `json:"jetton_wallet,omitempty"`
	Limit        *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset       *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	Sort         string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	StartLt      *int64 `json:"start_lt,omitempty"`
	StartUtime   *int64 `json:"start_utime,omitempty"`
}

// GetJettonWalletsParams getJettonWallets 参数
type GetJettonWalletsParams struct {
	Address       string `json:"address,omitempty"`
	JettonAddress string `json:"jetton_address,omitempty"`
	Limit         *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset        *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	OwnerAddress  string `json:"owner_address,omitempty"`
}

// GetMessagesParams getMessages 参数
type GetMessagesParams struct {
	BodyHash    string `json:"body_hash,omitempty"`
	Destination string `json:"destination,omitempty"`
	Hash        string `json:"hash,omitempty"`
	Limit       *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset      *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	Source      string `json:"source,omitempty"`
}

// GetNftCollectionsParams getNftCollections 参数
type GetNftCollectionsParams struct {
	CollectionAddress string `json:"collection_address,omitempty"`
	Limit             *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset            *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	OwnerAddress      string `json:"owner_address,omitempty"`
}

// GetNftItemsParams getNftItems 参数
type GetNftItemsParams struct {
	CollectionAddress string `json:"collection_address,omitempty"`
	Limit             *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset            *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	OwnerAddress      string `json:"owner_address,omitempty"`
}

// GetNftTransfersParams getNftTransfers 参数
type GetNftTransfersParams struct {
	Address           string `json:"address,omitempty"`
	CollectionAddress string `json:"collection_address,omitempty"`
	Direction         string `json:"direction,omitempty" validate:"omitempty,oneof=in out both"`
	EndLt             *int64 `json:"end_lt,omitempty"`
	EndUtime          *int64 `json:"end_utime,omitempty"`
	ItemAddress       string `json:"item_address,omitempty"`
	Limit             *int   `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset            *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	Sort              string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	StartLt           *int64 `json:"start_lt,omitempty"`
	StartUtime        *int64 `json:"start_utime,omitempty"`
}

// EstimateFeeParams estimateFee 参数
type EstimateFeeParams struct {
	Address      string `json:"address,omitempty"`
	Body         string `json:"body,omitempty"`
	IgnoreChksig *bool  `json:"ignore_chksig,omitempty"`
	InitCode     string `json:"init_code,omitempty"`
	InitData     string `json:"init_data,omitempty"`
}

// GetBlockHeaderParams getBlockHeader 参数，workchain 可以为 0 或 -1
type GetBlockHeaderParams struct {
	FileHash  string `json:"file_hash,omitempty"`
	RootHash  string `json:"root_hash,omitempty"`
	Seqno     *int64 `json:"seqno" validate:"required"`
	Shard     string `json:"shard" validate:"required"`
	Workchain *int   `json:"workchain" validate:"required"`
}

// GetBlockTransactionsParams getBlockTransactions 参数
type GetBlockTransactionsParams struct {
	AfterHash string `json:"after_hash,omitempty"`
	AfterLt   *int64 `json:"after_lt,omitempty"`
	Count     *int   `json:"count,omitempty" validate:"omitempty,min=1"`
	FileHash  string `json:"file_hash,omitempty"`
	RootHash  string `json:"root_hash,omitempty"`
	Seqno     *int64 `json:"seqno,omitempty"`
	Shard     string `json:"shard,omitempty"`
	Workchain *int   `json:"workchain,omitempty"`
}

// GetMasterchainBlockSignaturesParams getMasterchainBlockSignatures 参数
type GetMasterchainBlockSignaturesParams struct {
	Seqno *int64 `json:"seqno" validate:"required"`
}

// RunGetMethodParams runGetMethod 参数。Stack 同时接受元组和对象两种编码，
// 发送前统一为 [tag, value] 形式。
type RunGetMethodParams struct {
	Address string      `json:"address" validate:"required"`
	Method  string      `json:"method" validate:"required"`
	Stack   stack.Input `json:"stack"`
}

type runGetMethodRequest struct {
	Address string        `json:"address"`
	Method  string        `json:"method"`
	Stack   []stack.Entry `json:"stack"`
}

func (p *RunGetMethodParams) wireParams() (interface{}, error) {
	entries, err := stack.Normalize(p.Stack)
	if err != nil {
		return nil, err
	}
	return runGetMethodRequest{Address: p.Address, Method: p.Method, Stack: entries}, nil
}

// RadixConversionParams radixConversion 参数
type RadixConversionParams struct {
	Base   string `json:"base" validate:"required"`
	Number string `json:"number" validate:"required"`
}

// BinaryConversionParams binaryConversion 参数
type BinaryConversionParams struct {
	ASCII       string `json:"ascii" validate:"required"`
	Base64      string `json:"base64,omitempty"`
	Base64URL   string `json:"base64url,omitempty"`
	Hexadecimal string `json:"hexadecimal,omitempty"`
}

// GetTgBTCHoldersParams getTgBTCHolders 参数
type GetTgBTCHoldersParams struct {
	Limit  *int `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset *int `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// GetTgBTCBurnsParams getTgBTCBurns 参数。address 与 jetton_wallet 至少填一个，
// 时间和 LT 的上下界必须成对出现。
type GetTgBTCBurnsParams struct {
	Address      string `json:"address,omitempty" validate:"required_without=JettonWallet"`
	JettonWallet string `json:"jetton_wallet,omitempty" validate:"required_without=Address"`
	StartUtime   *int64 `json:"start_utime,omitempty" validate:"required_with=EndUtime"`
	EndUtime     *int64 `json:"end_utime,omitempty" validate:"required_with=StartUtime"`
	StartLt      *int64 `json:"start_lt,omitempty" validate:"required_with=EndLt"`
	EndLt        *int64 `json:"end_lt,omitempty" validate:"required_with=StartLt"`
	Sort         string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	Limit        *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=256"`
	Offset       *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// GetTgBTCWalletAddressByOwnerParams getTgBTCWalletAddressByOwner 参数
type GetTgBTCWalletAddressByOwnerParams struct {
	OwnerAddress string `json:"owner_address" validate:"required"`
}

// GetTgBTCTransferPayloadParams getTgBTCTransferPayload 参数
type GetTgBTCTransferPayloadParams struct {
	Amount      uint64 `json:"amount" validate:"gt=0"`
	Destination string `json:"destination" validate:"required"`
	Source      string `json:"source" validate:"required"`
	Comment     string `json:"comment,omitempty"`
}

// GetTgBTCTransfersParams getTgBTCTransfers 参数
type GetTgBTCTransfersParams struct {
	Address      string `json:"address" validate:"required"`
	JettonWallet string `json:"jetton_wallet,omitempty"`
	Direction    string `json:"direction,omitempty" validate:"omitempty,oneof=in out both"`
	Sort         string `json:"sort,omitempty" validate:"omitempty,oneof=ASC DESC"`
	Limit        *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=256"`
	Offset       *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
	StartUtime   *int64 `json:"start_utime,omitempty" validate:"required_with=EndUtime"`
	EndUtime     *int64 `json:"end_utime,omitempty" validate:"required_with=StartUtime"`
	StartLt      *int64 `json:"start_lt,omitempty" validate:"required_with=EndLt"`
	EndLt        *int64 `json:"end_lt,omitempty" validate:"required_with=StartLt"`
}
