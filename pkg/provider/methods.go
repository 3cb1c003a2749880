package provider

import (
	"context"
	"encoding/json"
)

func (p *Provider) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	return p.Perform(ctx, Action{Method: method, Params: params})
}

// GetAccountBalance 查询账户余额
func (p *Provider) GetAccountBalance(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetAccountBalance, &AddressParams{Address: address})
}

// GetTransactions 查询交易列表
func (p *Provider) GetTransactions(ctx context.Context, params GetTransactionsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetTransactions, &params)
}

// GetJettonBurns 查询 Jetton 销毁记录
func (p *Provider) GetJettonBurns(ctx context.Context, params GetJettonBurnsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetJettonBurns, &params)
}

// GetJettonMasters 查询 Jetton 主合约
func (p *Provider) GetJettonMasters(ctx context.Context, params GetJettonMastersParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetJettonMasters, &params)
}

// GetJettonTransfers 查询 Jetton 转账记录
func (p *Provider) GetJettonTransfers(ctx context.Context, params GetJettonTransfersParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetJettonTransfers, &params)
}

// GetJettonWallets 查询 Jetton 钱包
func (p *Provider) GetJettonWallets(ctx context.Context, params GetJettonWalletsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetJettonWallets, &params)
}

// GetMessages 查询消息
func (p *Provider) GetMessages(ctx context.Context, params GetMessagesParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetMessages, &params)
}

// GetNftCollections 查询 NFT 集合
func (p *Provider) GetNftCollections(ctx context.Context, params GetNftCollectionsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetNftCollections, &params)
}

// GetNftItems 查询 NFT
func (p *Provider) GetNftItems(ctx context.Context, params GetNftItemsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetNftItems, &params)
}

// GetNftTransfers 查询 NFT 转移记录
func (p *Provider) GetNftTransfers(ctx context.Context, params GetNftTransfersParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetNftTransfers, &params)
}

// EstimateFee 估算手续费
func (p *Provider) EstimateFee(ctx context.Context, params EstimateFeeParams) (json.RawMessage, error) {
	return p.call(ctx, MethodEstimateFee, &params)
}

// GetAddressInformation 查询地址信息
func (p *Provider) GetAddressInformation(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetAddressInformation, &AddressParams{Address: address})
}

// GetAddressState 查询地址状态
func (p *Provider) GetAddressState(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetAddressState, &AddressParams{Address: address})
}

// GetBlockHeader 查询区块头
func (p *Provider) GetBlockHeader(ctx context.Context, params GetBlockHeaderParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetBlockHeader, &params)
}

// GetBlockTransactions 查询区块内交易
func (p *Provider) GetBlockTransactions(ctx context.Context, params GetBlockTransactionsParams) (json.RawMessage, error) {
	return p.call(ctx, MethodGetBlockTransactions, &params)
}

// GetConsensusBlock 查询共识区块
func (p *Provider) GetConsensusBlock(ctx context.Context) (json.RawMessage, error) {
	return p.call(ctx, MethodGetConsensusBlock, nil)
}

// GetExtendedAddressInformation 查询扩展地址信息
func (p *Provider) GetExtendedAddressInformation(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetExtendedAddressInformation, &AddressParams{Address: address})
}

// GetMasterchainBlockSignatures 查询主链区块签名
func (p *Provider) GetMasterchainBlockSignatures(ctx context.Context, seqno int64) (json.RawMessage, error) {
	return p.call(ctx, MethodGetMasterchainBlockSignatures, &GetMasterchainBlockSignaturesParams{Seqno: &seqno})
}

// GetTokenData 查询 Jetton 或 NFT 数据
func (p *Provider) GetTokenData(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetTokenData, &AddressParams{Address: address})
}

// RunGetMethod 执行合约 get 方法，Stack 在发送前规范化
func (p *Provider) RunGetMethod(ctx context.Context, params RunGetMethodParams) (*RunGetMethodResponse, error) {
	return performPtr[RunGetMethodResponse](ctx, p, MethodRunGetMethod, &params)
}

// SendMessage 发送外部消息
func (p *Provider) SendMessage(ctx context.Context, boc string) (json.RawMessage, error) {
	return p.call(ctx, MethodSendMessage, &BocParams{Boc: boc})
}

// GetBocStatus 查询 BoC 状态（labs）
func (p *Provider) GetBocStatus(ctx context.Context, boc string) (json.RawMessage, error) {
	return p.call(ctx, MethodGetBocStatus, &BocParams{Boc: boc})
}

// VerifyBoc 校验 BoC（labs）
func (p *Provider) VerifyBoc(ctx context.Context, boc string) (json.RawMessage, error) {
	return p.call(ctx, MethodVerifyBoc, &BocParams{Boc: boc})
}

// RadixConversion 进制转换（labs）
func (p *Provider) RadixConversion(ctx context.Context, params RadixConversionParams) (json.RawMessage, error) {
	return p.call(ctx, MethodRadixConversion, &params)
}

// BinaryConversion 编码转换（labs）
func (p *Provider) BinaryConversion(ctx context.Context, params BinaryConversionParams) (json.RawMessage, error) {
	return p.call(ctx, MethodBinaryConversion, &params)
}

// DetectAddress 识别地址格式（labs）
func (p *Provider) DetectAddress(ctx context.Context, address string) (json.RawMessage, error) {
	return p.call(ctx, MethodDetectAddress, &AddressParams{Address: address})
}

// GetMasterchainInfo 查询主链信息
func (p *Provider) GetMasterchainInfo(ctx context.Context) (json.RawMessage, error) {
	return p.call(ctx, MethodGetMasterchainInfo, nil)
}

// GetTgBTCConfig 查询 tgBTC 配置
func (p *Provider) GetTgBTCConfig(ctx context.Context) (*GetTgBTCConfigResponse, error) {
	return performPtr[GetTgBTCConfigResponse](ctx, p, MethodGetTgBTCConfig, nil)
}

// GetTgBTCBalance 查询 tgBTC 余额
func (p *Provider) GetTgBTCBalance(ctx context.Context, address string) (*GetTgBTCBalanceResponse, error) {
	return performPtr[GetTgBTCBalanceResponse](ctx, p, MethodGetTgBTCBalance, &AddressParams{Address: address})
}

// GetTgBTCMasterAddress 查询 tgBTC 主合约地址
func (p *Provider) GetTgBTCMasterAddress(ctx context.Context) (*GetTgBTCMasterAddressResponse, error) {
	return performPtr[GetTgBTCMasterAddressResponse](ctx, p, MethodGetTgBTCMasterAddress, nil)
}

// GetTgBTCHolders 查询 tgBTC 持有人
func (p *Provider) GetTgBTCHolders(ctx context.Context, params GetTgBTCHoldersParams) (*GetTgBTCHoldersResponse, error) {
	return performPtr[GetTgBTCHoldersResponse](ctx, p, MethodGetTgBTCHolders, &params)
}

// GetTgBTCBurns 查询 tgBTC 销毁记录
func (p *Provider) GetTgBTCBurns(ctx context.Context, params GetTgBTCBurnsParams) ([]TgBTCBurn, error) {
	return perform[[]TgBTCBurn](ctx, p, Action{Method: MethodGetTgBTCBurns, Params: &params})
}

// GetTgBTCWalletAddressByOwner 根据持有人查询 tgBTC 钱包地址
func (p *Provider) GetTgBTCWalletAddressByOwner(ctx context.Context, ownerAddress string) (*GetTgBTCWalletAddressByOwnerResponse, error) {
	return performPtr[GetTgBTCWalletAddressByOwnerResponse](ctx, p, MethodGetTgBTCWalletAddressByOwner,
		&GetTgBTCWalletAddressByOwnerParams{OwnerAddress: ownerAddress})
}

// GetTgBTCTransferPayload 生成 tgBTC 转账载荷
func (p *Provider) GetTgBTCTransferPayload(ctx context.Context, params GetTgBTCTransferPayloadParams) (*GetTgBTCTransferPayloadResponse, error) {
	return performPtr[GetTgBTCTransferPayloadResponse](ctx, p, MethodGetTgBTCTransferPayload, &params)
}

// GetTgBTCMetaData 查询 tgBTC 元数据
func (p *Provider) GetTgBTCMetaData(ctx context.Context) (*TgBTCMetaData, error) {
	return performPtr[TgBTCMetaData](ctx, p, MethodGetTgBTCMetaData, nil)
}

// GetTgBTCTransfers 查询 tgBTC 转账记录
func (p *Provider) GetTgBTCTransfers(ctx context.Context, params GetTgBTCTransfersParams) ([]TgBTCTransfer, error) {
	return perform[[]TgBTCTransfer](ctx, p, Action{Method: MethodGetTgBTCTransfers, Params: &params})
}

func performPtr[T any](ctx context.Context, p *Provider, method string, params interface{}) (*T, error) {
	resp, err := perform[T](ctx, p, Action{Method: method, Params: params})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
