package urlbuilder

import (
	"errors"
	"fmt"
)

// ErrDomainMismatch URL不属于构建器配置的域名
var ErrDomainMismatch = errors.New("URL不属于配置的域名")

// DomainMismatchError 域名不匹配错误
// 调用方传入了构建器作用域之外的URL,属于编程错误,不应重试
type DomainMismatchError struct {
	// URL 调用方传入的URL
	URL string

	// Domain 构建器配置的域名
	Domain string
}

// Error 实现error接口
func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("URL [%s] 不以域名 [%s] 开头", e.URL, e.Domain)
}

// Is 支持 errors.Is(err, ErrDomainMismatch)
func (e *DomainMismatchError) Is(target error) bool {
	return target == ErrDomainMismatch
}
