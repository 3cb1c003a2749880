package provider

import (
	"sort"
)

// Family 表示方法所属的端点族
type Family string

const (
	// FamilyDefault 默认 JSON-RPC 端点
	FamilyDefault Family = "default"
	// FamilyLabs labs 端点
	FamilyLabs Family = "labs"
)

// TONX 后端方法名
const (
	MethodGetAccountBalance             = "getAccountBalance"
	MethodGetTransactions               = "getTransactions"
	MethodGetJettonBurns                = "getJettonBurns"
	MethodGetJettonMasters              = "getJettonMasters"
	MethodGetJettonTransfers            = "getJettonTransfers"
	MethodGetJettonWallets              = "getJettonWallets"
	MethodGetMessages                   = "getMessages"
	MethodGetNftCollections             = "getNftCollections"
	MethodGetNftItems                   = "getNftItems"
	MethodGetNftTransfers               = "getNftTransfers"
	MethodEstimateFee                   = "estimateFee"
	MethodGetAddressInformation         = "getAddressInformation"
	MethodGetAddressState               = "getAddressState"
	MethodGetBlockHeader                = "getBlockHeader"
	MethodGetBlockTransactions          = "getBlockTransactions"
	MethodGetConsensusBlock             = "getConsensusBlock"
	MethodGetExtendedAddressInformation = "getExtendedAddressInformation"
	MethodGetMasterchainBlockSignatures = "getMasterchainBlockSignatures"
	MethodGetTokenData                  = "getTokenData"
	MethodRunGetMethod                  = "runGetMethod"
	MethodSendMessage                   = "sendMessage"
	MethodGetMasterchainInfo            = "getMasterchainInfo"
	MethodGetTgBTCConfig                = "getTgBTCConfig"
	MethodGetTgBTCBalance               = "getTgBTCBalance"
	MethodGetTgBTCMasterAddress         = "getTgBTCMasterAddress"
	MethodGetTgBTCHolders               = "getTgBTCHolders"
	MethodGetTgBTCBurns                 = "getTgBTCBurns"
	MethodGetTgBTCWalletAddressByOwner  = "getTgBTCWalletAddressByOwner"
	MethodGetTgBTCTransferPayload       = "getTgBTCTransferPayload"
	MethodGetTgBTCMetaData              = "getTgBTCMetaData"
	MethodGetTgBTCTransfers             = "getTgBTCTransfers"

	MethodGetBocStatus     = "getBocStatus"
	MethodVerifyBoc        = "verifyBoc"
	MethodRadixConversion  = "radixConversion"
	MethodBinaryConversion = "binaryConversion"
	MethodDetectAddress    = "detectAddress"
)

// methodSpec 描述一个后端方法：所属端点族和参数类型。
// params 为 nil 表示该方法不接受参数，请求中发送空对象。
type methodSpec struct {
	family Family
	params func() interface{}
}

var registry = map[string]methodSpec{
	MethodGetAccountBalance:             {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodGetTransactions:               {FamilyDefault, func() interface{} { return new(GetTransactionsParams) }},
	MethodGetJettonBurns:                {FamilyDefault, func() interface{} { return new(GetJettonBurnsParams) }},
	MethodGetJettonMasters:              {FamilyDefault, func() interface{} { return new(GetJettonMastersParams) }},
	MethodGetJettonTransfers:            {FamilyDefault, func() interface{} { return new(GetJettonTransfersParams) }},
	MethodGetJettonWallets:              {FamilyDefault, func() interface{} { return new(GetJettonWalletsParams) }},
	MethodGetMessages:                   {FamilyDefault, func() interface{} { return new(GetMessagesParams) }},
	MethodGetNftCollections:             {FamilyDefault, func() interface{} { return new(GetNftCollectionsParams) }},
	MethodGetNftItems:                   {FamilyDefault, func() interface{} { return new(GetNftItemsParams) }},
	MethodGetNftTransfers:               {FamilyDefault, func() interface{} { return new(GetNftTransfersParams) }},
	MethodEstimateFee:                   {FamilyDefault, func() interface{} { return new(EstimateFeeParams) }},
	MethodGetAddressInformation:         {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodGetAddressState:               {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodGetBlockHeader:                {FamilyDefault, func() interface{} { return new(GetBlockHeaderParams) }},
	MethodGetBlockTransactions:          {FamilyDefault, func() interface{} { return new(GetBlockTransactionsParams) }},
	MethodGetConsensusBlock:             {FamilyDefault, nil},
	MethodGetExtendedAddressInformation: {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodGetMasterchainBlockSignatures: {FamilyDefault, func() interface{} { return new(GetMasterchainBlockSignaturesParams) }},
	MethodGetTokenData:                  {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodRunGetMethod:                  {FamilyDefault, func() interface{} { return new(RunGetMethodParams) }},
	MethodSendMessage:                   {FamilyDefault, func() interface{} { return new(BocParams) }},
	MethodGetMasterchainInfo:            {FamilyDefault, nil},
	MethodGetTgBTCConfig:                {FamilyDefault, nil},
	MethodGetTgBTCBalance:               {FamilyDefault, func() interface{} { return new(AddressParams) }},
	MethodGetTgBTCMasterAddress:         {FamilyDefault, nil},
	MethodGetTgBTCHolders:               {FamilyDefault, func() interface{} { return new(GetTgBTCHoldersParams) }},
	MethodGetTgBTCBurns:                 {FamilyDefault, func() interface{} { return new(GetTgBTCBurnsParams) }},
	MethodGetTgBTCWalletAddressByOwner:  {FamilyDefault, func() interface{} { return new(GetTgBTCWalletAddressByOwnerParams) }},
	MethodGetTgBTCTransferPayload:       {FamilyDefault, func() interface{} { return new(GetTgBTCTransferPayloadParams) }},
	MethodGetTgBTCMetaData:              {FamilyDefault, nil},
	MethodGetTgBTCTransfers:             {FamilyDefault, func() interface{} { return new(GetTgBTCTransfersParams) }},

	MethodGetBocStatus:     {FamilyLabs, func() interface{} { return new(BocParams) }},
	MethodVerifyBoc:        {FamilyLabs, func() interface{} { return new(BocParams) }},
	MethodRadixConversion:  {FamilyLabs, func() interface{} { return new(RadixConversionParams) }},
	MethodBinaryConversion: {FamilyLabs, func() interface{} { return new(BinaryConversionParams) }},
	MethodDetectAddress:    {FamilyLabs, func() interface{} { return new(AddressParams) }},
}

// FamilyOf 返回方法所属的端点族，未注册的方法返回 false
func FamilyOf(method string) (Family, bool) {
	spec, ok := registry[method]
	return spec.family, ok
}

// Methods 返回全部已注册的方法名，按字母排序
func Methods() []string {
	methods := make([]string, 0, len(registry))
	for m := range registry {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
