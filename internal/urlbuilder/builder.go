// Package urlbuilder 构建限定在单一域名内的URL
//
// 每个目标站点创建一个 Builder,在整个爬取会话中复用。
// Builder 构造后不可变,可被多个goroutine并发使用。
//
//	b, err := urlbuilder.New("https://www.python.org")
//	b.JoinAll("/a", "/b")                                     // https://www.python.org/a/b
//	b.AddParams("https://www.python.org/q", map[string]string{"version": "2.7"})
package urlbuilder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RecoveryAshes/crawlib/internal/models"
)

// Builder 域名限定的URL构建器
type Builder struct {
	// domain 基础URL前缀 (如 "https://example.org")
	domain string

	// base domain解析后的结果,用于相对链接解析
	base *url.URL
}

// New 创建URL构建器
// domain 必须是带主机名的 http/https 绝对URL
func New(domain string) (*Builder, error) {
	if err := models.ValidateURL(domain); err != nil {
		return nil, fmt.Errorf("无效的域名 [%s]: %w", domain, err)
	}

	base, err := url.Parse(strings.TrimRight(domain, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("解析域名失败 [%s]: %w", domain, err)
	}

	return &Builder{
		domain: domain,
		base:   base,
	}, nil
}

// MustNew 与 New 相同,但在域名无效时panic
// 仅用于包级变量等域名在编译期已知的场景
func MustNew(domain string) *Builder {
	b, err := New(domain)
	if err != nil {
		panic(err)
	}
	return b
}

// Domain 返回配置的域名
func (b *Builder) Domain() string {
	return b.domain
}

// JoinAll 将各路径片段拼接到域名之后
// 域名与第一个片段之间、相邻片段之间恰好一个 '/'。
// 去掉斜杠后为空的片段会被跳过;没有剩余片段时原样返回域名,结果总以域名开头。
func (b *Builder) JoinAll(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.Trim(part, "/"); segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return b.domain
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(b.domain, "/"))
	for _, segment := range segments {
		sb.WriteByte('/')
		sb.WriteString(segment)
	}
	return sb.String()
}

// Contains 判断URL是否以构建器域名开头
func (b *Builder) Contains(rawURL string) bool {
	return strings.HasPrefix(rawURL, b.domain)
}

// AddParams 为URL追加查询参数
// URL必须以域名开头,否则返回 *DomainMismatchError (即使params为空)。
// 已有查询串时以 '&' 合并,同名参数追加而不覆盖。
func (b *Builder) AddParams(rawURL string, params map[string]string) (string, error) {
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}
	return b.AddValues(rawURL, values)
}

// AddValues 与 AddParams 相同,但支持多值参数
func (b *Builder) AddValues(rawURL string, values url.Values) (string, error) {
	if !b.Contains(rawURL) {
		return "", &DomainMismatchError{URL: rawURL, Domain: b.domain}
	}

	query := values.Encode()
	if query == "" {
		return rawURL, nil
	}

	// 片段标识符必须保留在末尾,查询串插入其前
	head, fragment, hasFragment := strings.Cut(rawURL, "#")

	var sb strings.Builder
	sb.Grow(len(rawURL) + len(query) + 1)
	sb.WriteString(head)
	switch {
	case !strings.Contains(head, "?"):
		sb.WriteByte('?')
	case strings.HasSuffix(head, "?"), strings.HasSuffix(head, "&"):
	default:
		sb.WriteByte('&')
	}
	sb.WriteString(query)
	if hasFragment {
		sb.WriteByte('#')
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

// Resolve 以域名根路径为基准解析相对链接,返回绝对URL
// 解析结果可能落在其他域名 (如 href 本身是绝对URL),调用方可用 Contains 检查
func (b *Builder) Resolve(href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("解析链接失败 [%s]: %w", href, err)
	}
	return b.base.ResolveReference(ref).String(), nil
}
