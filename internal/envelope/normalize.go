package envelope

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fastjson"
)

// UnknownErrorMessage 上游报告失败但未给出错误信息时使用
const UnknownErrorMessage = "Unknown error"

// ParseFailureMessage 响应体无法解析时使用
const ParseFailureMessage = "failed to parse response"

// CallOutcome 一次 HTTP 调用的原始结果
type CallOutcome struct {
	StatusCode int
	Body       []byte
	Err        error
}

// Fields 描述上游响应体的字段约定
type Fields struct {
	// OK 成功标志字段名，为空表示没有该字段
	OK string
	// OKDefault 成功标志字段缺失时的取值
	OKDefault bool
	// Result 结果字段名，为空表示整个响应体就是结果
	Result string
	// Error 错误字段名
	Error string
	// StrictResult 为 true 时结果缺失或为 null 视为失败
	StrictResult bool
}

var (
	// TonCenterFields TON Center v2 的 {ok, result, error} 约定
	TonCenterFields = Fields{OK: "ok", Result: "result", Error: "error"}
	// HttpAPIFields 缺失 ok 字段时按成功处理
	HttpAPIFields = Fields{OK: "ok", OKDefault: true, Result: "result", Error: "error"}
	// TonWebFields 只有 result 存在时才算成功
	TonWebFields = Fields{Result: "result", Error: "error", StrictResult: true}
	// JSONRPCFields JSON-RPC 2.0 的 {result, error:{code,message}} 约定
	JSONRPCFields = Fields{Result: "result", Error: "error"}
	// RawFields 整个响应体即结果
	RawFields = Fields{Error: "error"}
)

var parserPool fastjson.ParserPool

// Normalize 把一次调用的结果转换为统一信封
func Normalize(outcome CallOutcome, fields Fields) Envelope {
	if outcome.Err != nil {
		return TransportFailure(outcome.Err)
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, parseErr := p.ParseBytes(outcome.Body)

	if outcome.StatusCode < 200 || outcome.StatusCode > 299 {
		f := &Failure{
			Kind:    KindTransport,
			Message: statusMessage(outcome.StatusCode),
			Status:  outcome.StatusCode,
		}
		if parseErr == nil {
			f.Raw = copyRaw(v)
			if msg, ok := errorText(v, fields); ok && msg != "" {
				f.Message = msg
			}
		}
		return Fail(f)
	}

	if parseErr != nil {
		return Fail(&Failure{
			Kind:    KindParse,
			Message: ParseFailureMessage,
			Status:  outcome.StatusCode,
			Cause:   parseErr,
		})
	}

	ok := true
	if fields.OK != "" {
		ok = fields.OKDefault
		if okVal := v.Get(fields.OK); okVal != nil {
			ok = okVal.Type() == fastjson.TypeTrue
		}
	}

	msg, hasError := errorText(v, fields)
	if !ok || hasError {
		return backendFailure(v, msg, outcome.StatusCode)
	}

	if fields.Result == "" {
		return Success(copyRaw(v))
	}

	result := v.Get(fields.Result)
	if result == nil || result.Type() == fastjson.TypeNull {
		if fields.StrictResult {
			return backendFailure(v, msg, outcome.StatusCode)
		}
		return Success(json.RawMessage("null"))
	}
	return Success(copyRaw(result))
}

func backendFailure(v *fastjson.Value, msg string, status int) Envelope {
	if msg == "" {
		msg = UnknownErrorMessage
	}
	return Fail(&Failure{
		Kind:    KindBackend,
		Message: msg,
		Raw:     copyRaw(v),
		Status:  status,
	})
}

// errorText 返回错误字段的文本，第二个返回值表示错误字段存在且不为 null
func errorText(v *fastjson.Value, fields Fields) (string, bool) {
	if fields.Error == "" {
		return "", false
	}
	e := v.Get(fields.Error)
	if e == nil || e.Type() == fastjson.TypeNull {
		return "", false
	}

	switch e.Type() {
	case fastjson.TypeString:
		return string(e.GetStringBytes()), true
	case fastjson.TypeObject:
		if m := e.Get("message"); m != nil && m.Type() == fastjson.TypeString {
			return string(m.GetStringBytes()), true
		}
	}
	return e.String(), true
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("HTTP %d %s", code, text)
	}
	return fmt.Sprintf("HTTP %d", code)
}

// copyRaw 复制值的 JSON 表示，解析器归还后仍可使用
func copyRaw(v *fastjson.Value) json.RawMessage {
	return json.RawMessage(v.MarshalTo(nil))
}
