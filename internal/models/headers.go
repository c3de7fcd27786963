package models

import (
	"fmt"
	"net/http"
	"strings"
)

// UserAgentMode 默认User-Agent的选择策略
type UserAgentMode string

const (
	UserAgentRandom    UserAgentMode = "random"    // 候选集中均匀随机
	UserAgentStatistic UserAgentMode = "statistic" // 按真实使用占比加权随机
	UserAgentChrome    UserAgentMode = "chrome"    // 固定使用Chrome
	UserAgentFirefox   UserAgentMode = "firefox"   // 固定使用Firefox
	UserAgentSafari    UserAgentMode = "safari"    // 固定使用Safari
	UserAgentIE        UserAgentMode = "ie"        // 固定使用IE
)

// Valid 判断策略名是否合法
func (m UserAgentMode) Valid() bool {
	switch m {
	case UserAgentRandom, UserAgentStatistic, UserAgentChrome,
		UserAgentFirefox, UserAgentSafari, UserAgentIE:
		return true
	}
	return false
}

// HeaderConfig 表示headers.yaml配置文件的结构
type HeaderConfig struct {
	// Headers 自定义HTTP头部 (viper会把键名转为小写)
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
}

// CliHeaders 命令行 -H 传入的头部列表,每项格式为 "Name: Value"
type CliHeaders []string

// Parse 将字符串列表解析为 http.Header
func (ch CliHeaders) Parse() (http.Header, error) {
	result := make(http.Header)
	for i, s := range ch {
		name, value, err := parseHeaderString(s)
		if err != nil {
			return nil, fmt.Errorf("参数 --header 第%d项格式错误: %w", i+1, err)
		}
		result.Set(name, value)
	}
	return result, nil
}

func parseHeaderString(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("缺少冒号分隔符,应为 'Name: Value'")
	}

	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return "", "", fmt.Errorf("头部名称不能为空")
	}

	return name, value, nil
}

// HeaderProvider 为每个出站请求提供一组HTTP头部
type HeaderProvider interface {
	// GetHeaders 返回本次请求应使用的头部
	// 按优先级合并: 预设默认 < 配置文件 < 命令行
	GetHeaders() (http.Header, error)
}

// ValidationError 头部验证错误
type ValidationError struct {
	// Field 出错的字段 ("name" 或 "value")
	Field string

	HeaderName string
	Reason     string

	// Suggestion 修复建议 (可选)
	Suggestion string
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("头部验证失败 [%s]: %s", e.HeaderName, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (建议: %s)", e.Suggestion)
	}
	return msg
}

// ConfigError 配置文件错误
type ConfigError struct {
	FilePath string

	// Cause 底层错误 (如viper.ConfigParseError)
	Cause error
}

// Error 实现error接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("配置文件错误 [%s]: %v", e.FilePath, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
