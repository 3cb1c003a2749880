package provider

import (
	"encoding/json"
)

// Action 描述一次后端调用：方法名和参数。
// Params 可以是参数结构体（或其指针）、map、json.RawMessage 或 nil。
type Action struct {
	Method string
	Params interface{}
}

// RunGetMethodResponse runGetMethod 响应
type RunGetMethodResponse struct {
	ExitCode *int              `json:"exit_code" validate:"required"`
	Stack    []json.RawMessage `json:"stack" validate:"required"`
	GasUsed  *int64            `json:"gas_used" validate:"required"`
	Type     string            `json:"@type"`
	Extra    string            `json:"@extra"`
}

// GetTgBTCConfigResponse getTgBTCConfig 响应
type GetTgBTCConfigResponse struct {
	JettonMaster string `json:"jetton_master" validate:"required"`
	Teleport     string `json:"teleport" validate:"required"`
	Coordinator  string `json:"coordinator" validate:"required"`
}

// GetTgBTCBalanceResponse getTgBTCBalance 响应
type GetTgBTCBalanceResponse struct {
	Address string `json:"address" validate:"required"`
	Balance string `json:"balance" validate:"required"`
}

// GetTgBTCMasterAddressResponse getTgBTCMasterAddress 响应
type GetTgBTCMasterAddressResponse struct {
	Address         string `json:"address" validate:"required"`
	AccountFriendly string `json:"account_friendly" validate:"required"`
}

// TgBTCHolder tgBTC 持有人
type TgBTCHolder struct {
	Address     string `json:"address" validate:"required"`
	Balance     string `json:"balance" validate:"required"`
	LastUpdated *int64 `json:"last_updated" validate:"required"`
	OwnerType   string `json:"owner_type" validate:"required"`
}

// GetTgBTCHoldersResponse getTgBTCHolders 响应
type GetTgBTCHoldersResponse struct {
	Holders []TgBTCHolder `json:"holders" validate:"required,dive"`
	Total   *int64        `json:"total" validate:"required"`
}

// TgBTCBurn 一条 tgBTC 销毁记录
type TgBTCBurn struct {
	QueryID             string `json:"query_id" validate:"required"`
	Owner               string `json:"owner" validate:"required"`
	JettonMaster        string `json:"jetton_master" validate:"required"`
	JettonWallet        string `json:"jetton_wallet" validate:"required"`
	Amount              string `json:"amount" validate:"required"`
	TransactionHash     string `json:"transaction_hash" validate:"required"`
	TransactionLt       string `json:"transaction_lt" validate:"required"`
	TransactionNow      *int64 `json:"transaction_now" validate:"required"`
	ResponseDestination string `json:"response_destination,omitempty"`
	CustomPayload       string `json:"custom_payload,omitempty"`
}

// GetTgBTCWalletAddressByOwnerResponse getTgBTCWalletAddressByOwner 响应
type GetTgBTCWalletAddressByOwnerResponse struct {
	Address         string `json:"address" validate:"required"`
	AddressFriendly string `json:"address_friendly" validate:"required"`
	Owner           string `json:"owner" validate:"required"`
	OwnerFriendly   string `json:"owner_friendly" validate:"required"`
	Jetton          string `json:"jetton" validate:"required"`
	JettonFriendly  string `json:"jetton_friendly" validate:"required"`
}

// GetTgBTCTransferPayloadResponse getTgBTCTransferPayload 响应
type GetTgBTCTransferPayloadResponse struct {
	Address string      `json:"address" validate:"required"`
	Amount  json.Number `json:"amount" validate:"required"`
	Payload string      `json:"payload" validate:"required"`
}

// TgBTCMetaData tgBTC 元数据
type TgBTCMetaData struct {
	Address      string `json:"address" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Symbol       string `json:"symbol" validate:"required"`
	TotalSupply  string `json:"total_supply,omitempty"`
	AdminAddress string `json:"admin_address,omitempty"`
	Decimals     string `json:"decimals,omitempty"`
	Mintable     *bool  `json:"mintable,omitempty"`
	URI          string `json:"uri,omitempty"`
	Image        string `json:"image,omitempty"`
	ImageData    []int  `json:"image_data,omitempty"`
	Description  string `json:"description,omitempty"`
}

// TgBTCTransfer 一条 tgBTC 转账记录
type TgBTCTransfer struct {
	QueryID             string `json:"query_id" validate:"required"`
	Source              string `json:"source" validate:"required"`
	Destination         string `json:"destination" validate:"required"`
	Amount              string `json:"amount" validate:"required"`
	SourceWallet        string `json:"source_wallet" validate:"required"`
	JettonMaster        string `json:"jetton_master" validate:"required"`
	TransactionHash     string `json:"transaction_hash" validate:"required"`
	TransactionLt       string `json:"transaction_lt" validate:"required"`
	TransactionNow      *int64 `json:"transaction_now" validate:"required"`
	ResponseDestination string `json:"response_destination,omitempty"`
	CustomPayload       string `json:"custom_payload,omitempty"`
	ForwardTonAmount    string `json:"forward_ton_amount" validate:"required"`
	ForwardPayload      string `json:"forward_payload,omitempty"`
}
