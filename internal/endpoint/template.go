package endpoint

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// MethodPlaceholder 模板中的方法名占位符
const MethodPlaceholder = "@@METHOD@@"

// Template 表示带方法名占位符的端点模板，构造后不可变
type Template struct {
	raw string
}

// NewTemplate 创建端点模板
func NewTemplate(raw string) (*Template, error) {
	if n := strings.Count(raw, MethodPlaceholder); n != 1 {
		return nil, fmt.Errorf("endpoint template must contain exactly one %s placeholder, found %d", MethodPlaceholder, n)
	}
	u, err := url.Parse(strings.Replace(raw, MethodPlaceholder, "method", 1))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint template: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint template must start with http:// or https://")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint template has no host")
	}
	idx := strings.Index(raw, MethodPlaceholder)
	if strings.ContainsAny(raw[:idx], "?#") {
		return nil, fmt.Errorf("method placeholder must be part of the URL path")
	}
	return &Template{raw: raw}, nil
}

// String 返回原始模板
func (t *Template) String() string {
	return t.raw
}

// Build 用方法名替换占位符并追加查询参数。
// 值为 nil 的参数会被跳过，零值和空字符串会保留。
func (t *Template) Build(method string, query map[string]interface{}) (string, error) {
	if err := ValidateMethodName(method); err != nil {
		return "", err
	}

	u, err := url.Parse(strings.Replace(t.raw, MethodPlaceholder, method, 1))
	if err != nil {
		return "", fmt.Errorf("failed to build endpoint: %w", err)
	}
	if len(query) == 0 {
		return u.String(), nil
	}

	values := u.Query()
	for key, value := range query {
		encoded, ok, err := QueryValues(value)
		if err != nil {
			return "", fmt.Errorf("query parameter %s: %w", key, err)
		}
		if !ok {
			continue
		}
		for _, v := range encoded {
			values.Add(key, v)
		}
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// QueryValues 把参数值转换为查询字符串值，ok 为 false 表示该参数应被跳过
func QueryValues(value interface{}) (encoded []string, ok bool, err error) {
	if value == nil {
		return nil, false, nil
	}

	switch v := value.(type) {
	case string:
		return []string{v}, true, nil
	case bool:
		return []string{strconv.FormatBool(v)}, true, nil
	case json.Number:
		return []string{v.String()}, true, nil
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, false, nil
		}
		return []string{v.String()}, true, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, false, nil
		}
		return QueryValues(rv.Elem().Interface())
	case reflect.String:
		return []string{rv.String()}, true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}, true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(rv.Uint(), 10)}, true, nil
	case reflect.Float32, reflect.Float64:
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 64)}, true, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, false, nil
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, itemOK, err := QueryValues(rv.Index(i).Interface())
			if err != nil {
				return nil, false, err
			}
			if itemOK {
				out = append(out, item...)
			}
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported query value type %T", value)
	}
}
