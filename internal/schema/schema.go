// Package schema 校验上游成功响应的结构
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/frigatebird-studio/tonx-go/internal/envelope"
)

// Outcome 表示一次校验的结果
type Outcome[T any] struct {
	Success bool
	Data    T
	// Issues 描述每一处不符合结构要求的字段
	Issues []string
	// Failure 信封本身失败时不为 nil，此时不会进行结构校验
	Failure *envelope.Failure
	// Raw 被校验的原始结果
	Raw json.RawMessage
}

var rawMessageType = reflect.TypeOf(json.RawMessage(nil))

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validator 返回共享的校验器，可注册自定义规则
func Validator() *validator.Validate {
	return validate
}

// Validate 校验信封中的结果并映射到 T
func Validate[T any](env envelope.Envelope) Outcome[T] {
	var out Outcome[T]
	if !env.OK {
		out.Failure = env.Error
		if out.Failure == nil {
			out.Failure = &envelope.Failure{Kind: envelope.KindBackend, Message: envelope.UnknownErrorMessage}
		}
		return out
	}

	out.Raw = env.Result
	issues := Decode(env.Result, &out.Data)
	if len(issues) > 0 {
		var zero T
		out.Data = zero
		out.Issues = issues
		return out
	}
	out.Success = true
	return out
}

// Decode 把 JSON 结果映射到 target 并执行结构规则，返回全部问题
func Decode(raw json.RawMessage, target interface{}) []string {
	trimmed := bytes.TrimSpace(raw)
	isNull := len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))

	if rm, ok := target.(*json.RawMessage); ok {
		if isNull {
			return []string{"result: required"}
		}
		*rm = append((*rm)[:0], trimmed...)
		return nil
	}
	if isNull {
		return []string{"result: required"}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return []string{fmt.Sprintf("result: %v", err)}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     target,
		DecodeHook: rawMessageHook,
	})
	if err != nil {
		return []string{fmt.Sprintf("result: %v", err)}
	}
	if err := decoder.Decode(data); err != nil {
		var mErr *mapstructure.Error
		if !errors.As(err, &mErr) {
			return []string{decodeIssue(err.Error())}
		}
		// 类型不匹配之外的字段仍按结构规则校验
		mismatches := make([]string, 0, len(mErr.Errors))
		paths := make([]string, 0, len(mErr.Errors))
		for _, msg := range mErr.Errors {
			issue := decodeIssue(msg)
			mismatches = append(mismatches, issue)
			paths = append(paths, issuePath(issue))
		}
		issues := mismatches
		for _, issue := range Check(target) {
			if !coveredBy(issuePath(issue), paths) {
				issues = append(issues, issue)
			}
		}
		return issues
	}

	return Check(target)
}

var (
	quotedNameRe   = regexp.MustCompile(`^'([^']*)' (.+)$`)
	decodingNameRe = regexp.MustCompile(`^error decoding '([^']*)': (.+)$`)
	numberNameRe   = regexp.MustCompile(`^error decoding json\.Number into ([^:]*): (.+)$`)
	unconvertible  = regexp.MustCompile(`^expected type '([^']*)', got unconvertible type '([^']*)'`)
)

// decodeIssue 把 mapstructure 的错误信息改写为 "path: reason"
func decodeIssue(msg string) string {
	path, reason := "", msg
	for _, re := range []*regexp.Regexp{quotedNameRe, decodingNameRe, numberNameRe} {
		if m := re.FindStringSubmatch(msg); m != nil {
			path, reason = m[1], m[2]
			break
		}
	}
	if m := unconvertible.FindStringSubmatch(reason); m != nil {
		reason = fmt.Sprintf("expected %s, got %s", m[1], m[2])
	}
	if path == "" {
		path = "result"
	}
	return path + ": " + reason
}

func issuePath(issue string) string {
	if i := strings.Index(issue, ": "); i >= 0 {
		return issue[:i]
	}
	return issue
}

// coveredBy 报告 path 是否为某个类型不匹配字段本身或其祖先
func coveredBy(path string, mismatched []string) bool {
	for _, m := range mismatched {
		if m == path || strings.HasPrefix(m, path+".") || strings.HasPrefix(m, path+"[") {
			return true
		}
	}
	return false
}

// Check 对结构体（或结构体切片）执行 validator 规则
func Check(v interface{}) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return structIssues(rv.Interface(), "")
	case reflect.Slice, reflect.Array:
		var issues []string
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Ptr && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			issues = append(issues, structIssues(elem.Interface(), fmt.Sprintf("[%d].", i))...)
		}
		return issues
	}
	return nil
}

func structIssues(v interface{}, prefix string) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{prefix + err.Error()}
	}

	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, prefix+formatFieldError(fe))
	}
	return issues
}

func formatFieldError(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", path, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", path, fe.Tag())
}

// rawMessageHook 让 json.RawMessage 字段保留原始 JSON
func rawMessageHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rawMessageType {
		return data, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
