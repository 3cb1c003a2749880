package endpoint

import (
	"fmt"
	"net/url"
	"strings"
)

// Network 表示 TONX 网络
type Network string

const (
	// Mainnet 主网
	Mainnet Network = "mainnet"
	// Testnet 测试网
	Testnet Network = "testnet"
)

// DefaultHostPattern TONX 主机地址模板，%s 为网络名
const DefaultHostPattern = "https://%s-rpc.tonxapi.com"

// ParseNetwork 解析网络名称
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Validate 验证网络名称
func (n Network) Validate() error {
	switch n {
	case Mainnet, Testnet:
		return nil
	default:
		return fmt.Errorf("network must be one of: mainnet, testnet, got: %q", string(n))
	}
}

// String 实现 fmt.Stringer
func (n Network) String() string {
	return string(n)
}

// ValidateAPIKey 检查 API key 能否安全地嵌入 URL 路径
func ValidateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key is required")
	}
	if strings.ContainsAny(apiKey, "/?#% \t\r\n") {
		return fmt.Errorf("api key contains characters that are not allowed in a URL path segment")
	}
	return nil
}

// Host 返回网络对应的主机地址，baseURL 非空时优先使用 baseURL
func Host(baseURL string, network Network) string {
	if baseURL != "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return fmt.Sprintf(DefaultHostPattern, network)
}

// ToncoreTemplate 返回 TON Center 兼容接口的模板，API key 通过请求头发送
func ToncoreTemplate(host string) (*Template, error) {
	return NewTemplate(host + "/migration/ton-center/" + MethodPlaceholder)
}

// TonwebTemplate 返回 v2 API 模板，API key 位于方法名之后的路径段
func TonwebTemplate(host, apiKey string) (*Template, error) {
	return NewTemplate(host + "/v2/api/" + MethodPlaceholder + "/" + url.PathEscape(apiKey))
}

// JSONRPCURL 返回默认 JSON-RPC 端点
func JSONRPCURL(host, apiKey string) string {
	return host + "/v2/json-rpc/" + url.PathEscape(apiKey)
}

// LabsURL 返回 labs JSON-RPC 端点
func LabsURL(host, apiKey string) string {
	return host + "/v2/labs/" + url.PathEscape(apiKey)
}

// ValidateBaseURL 检查自定义主机地址，空字符串表示使用默认主机
func ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url, got: %q", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base url must not carry a query or fragment")
	}
	return nil
}
