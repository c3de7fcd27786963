package utils

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var (
	// SensitiveKeywords 敏感头部名称 / 查询参数名关键字
	SensitiveKeywords = []string{
		"authorization",
		"cookie",
		"token",
		"key",
		"secret",
		"password",
		"credential",
		"session",
	}
)

const redacted = "***"

// HeaderRedactor 头部脱敏器,用于日志输出
type HeaderRedactor struct {
	sensitiveKeywords []string
}

// NewHeaderRedactor 创建头部脱敏器
func NewHeaderRedactor() *HeaderRedactor {
	return &HeaderRedactor{
		sensitiveKeywords: SensitiveKeywords,
	}
}

// IsSensitive 名称中包含敏感关键字 (不区分大小写)
func (hr *HeaderRedactor) IsSensitive(name string) bool {
	nameLower := strings.ToLower(name)
	for _, keyword := range hr.sensitiveKeywords {
		if strings.Contains(nameLower, keyword) {
			return true
		}
	}
	return false
}

// RedactHeaderValue 脱敏单个头部值
func (hr *HeaderRedactor) RedactHeaderValue(name, value string) string {
	if strings.EqualFold(name, "Referer") {
		return hr.RedactURL(value)
	}

	if !hr.IsSensitive(name) {
		return value
	}

	// Bearer Token 仅保留前缀
	if strings.HasPrefix(value, "Bearer ") {
		return "Bearer " + redacted
	}

	// 足够长的密钥保留前4位和后4位
	if len(value) > 8 {
		return value[:4] + redacted + value[len(value)-4:]
	}

	return redacted
}

// RedactURL 脱敏URL查询串中的敏感参数
// Referer 常由构建器追加过查询参数,可能携带令牌
func (hr *HeaderRedactor) RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	changed := false
	for key, values := range query {
		if !hr.IsSensitive(key) {
			continue
		}
		for i := range values {
			values[i] = redacted
		}
		changed = true
	}
	if !changed {
		return rawURL
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Redact 脱敏整个http.Header,返回安全的字符串map (每个头部只取第一个值)
func (hr *HeaderRedactor) Redact(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for name, values := range headers {
		if len(values) == 0 {
			continue
		}
		result[name] = hr.RedactHeaderValue(name, values[0])
	}
	return result
}

// RedactToString 脱敏并格式化为 "Name: value, ..." (按名称排序)
func (hr *HeaderRedactor) RedactToString(headers http.Header) string {
	safe := hr.Redact(headers)
	names := make([]string, 0, len(safe))
	for name := range safe {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+safe[name])
	}
	return strings.Join(parts, ", ")
}
