package envelope

import (
	"encoding/json"
	"fmt"
)

// Kind 失败类别
type Kind string

const (
	// KindTransport 网络错误或非 2xx 状态码
	KindTransport Kind = "transport"
	// KindBackend 上游在响应体中报告的错误
	KindBackend Kind = "backend"
	// KindParse 响应体不是合法 JSON
	KindParse Kind = "parse"
)

// Failure 表示一次失败的上游调用
type Failure struct {
	Kind    Kind
	Message string
	// Raw 上游返回的原始 JSON（可解析时）
	Raw json.RawMessage
	// Status HTTP 状态码，网络错误时为 0
	Status int
	Cause  error
}

// Error 实现 error 接口
func (f *Failure) Error() string {
	if f.Cause != nil && f.Cause.Error() != f.Message {
		return fmt.Sprintf("%s failure: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

// Unwrap 返回底层错误
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Envelope 统一的响应信封，Result 与 Error 只有一个有意义
type Envelope struct {
	OK     bool
	Result json.RawMessage
	Error  *Failure
}

// Success 创建成功信封
func Success(result json.RawMessage) Envelope {
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return Envelope{OK: true, Result: result}
}

// Fail 创建失败信封
func Fail(f *Failure) Envelope {
	return Envelope{OK: false, Error: f}
}

// TransportFailure 用网络层错误创建失败信封
func TransportFailure(err error) Envelope {
	return Fail(&Failure{Kind: KindTransport, Message: err.Error(), Cause: err})
}

// Err 成功时返回 nil
func (e Envelope) Err() error {
	if e.OK || e.Error == nil {
		return nil
	}
	return e.Error
}
