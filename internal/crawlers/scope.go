package crawlers

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/RecoveryAshes/crawlib/internal/urlbuilder"
	"github.com/RecoveryAshes/crawlib/internal/utils"
	"golang.org/x/net/publicsuffix"
)

// Scope 域名范围检查
type Scope struct {
	builder *urlbuilder.Builder

	// host 构建器域名的主机名 (小写,不含端口)
	host string

	// site 构建器域名的可注册域名 (eTLD+1),无法计算时为空
	site string

	allowSubdomains bool
}

// NewScope 创建域名范围检查器
func NewScope(b *urlbuilder.Builder, allowSubdomains bool) (*Scope, error) {
	parsed, err := url.Parse(b.Domain())
	if err != nil {
		return nil, fmt.Errorf("解析域名失败 [%s]: %w", b.Domain(), err)
	}

	s := &Scope{
		builder:         b,
		host:            strings.ToLower(parsed.Hostname()),
		allowSubdomains: allowSubdomains,
	}

	if allowSubdomains {
		// IP地址、localhost等没有可注册域名,退化为精确匹配
		if net.ParseIP(s.host) != nil {
			utils.Debugf("IP地址没有可注册域名,子域名规则不生效 [%s]", s.host)
		} else if site, err := publicsuffix.EffectiveTLDPlusOne(s.host); err != nil {
			utils.Debugf("无法计算可注册域名,子域名规则不生效 [%s]: %v", s.host, err)
		} else {
			s.site = site
		}
	}

	return s, nil
}

// Allows 判断URL是否在范围内
func (s *Scope) Allows(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())

	// 前缀匹配之外还要求主机名一致,排除 www.python.org.evil.com 这类URL
	if host == s.host && s.builder.Contains(rawURL) {
		return true
	}

	if s.site == "" || net.ParseIP(host) != nil {
		return false
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	return site == s.site
}
