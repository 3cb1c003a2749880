package endpoint

import (
	"fmt"
	"net/http"
	"regexp"
)

// postMethods 需要以 POST 发送的方法（执行 get-method、提交消息、批量查询）
var postMethods = map[string]struct{}{
	"runGetMethod":      {},
	"sendBoc":           {},
	"sendBocReturnHash": {},
	"sendQuery":         {},
}

var methodNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Classify 返回方法对应的 HTTP 动词，未知方法一律使用 GET
func Classify(method string) string {
	if IsPostMethod(method) {
		return http.MethodPost
	}
	return http.MethodGet
}

// IsPostMethod 判断方法是否属于 POST 方法集合
func IsPostMethod(method string) bool {
	_, ok := postMethods[method]
	return ok
}

// ValidateMethodName 检查方法名只包含一个合法的路径段
func ValidateMethodName(method string) error {
	if !methodNamePattern.MatchString(method) {
		return fmt.Errorf("invalid method name %q", method)
	}
	return nil
}
