package headers

import (
	"errors"
	"fmt"
)

// ErrInitialization User-Agent数据源无法初始化
var ErrInitialization = errors.New("User-Agent数据源初始化失败")

// InitializationError 数据源初始化错误
// 进程启动时即应暴露,不能推迟到首次使用
type InitializationError struct {
	// Browser 查询失败的浏览器名 (数据集整体失败时为空)
	Browser string

	Cause error
}

// Error 实现error接口
func (e *InitializationError) Error() string {
	if e.Browser == "" {
		return fmt.Sprintf("User-Agent数据源初始化失败: %v", e.Cause)
	}
	return fmt.Sprintf("User-Agent数据源初始化失败 [%s]: %v", e.Browser, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *InitializationError) Unwrap() error {
	return e.Cause
}

// Is 支持 errors.Is(err, ErrInitialization)
func (e *InitializationError) Is(target error) bool {
	return target == ErrInitialization
}
