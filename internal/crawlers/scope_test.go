package crawlers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RecoveryAshes/crawlib/internal/urlbuilder"
	"github.com/RecoveryAshes/crawlib/internal/utils"
)

func TestScope_Allows(t *testing.T) {
	b := urlbuilder.MustNew("https://www.python.org")

	strict, err := NewScope(b, false)
	if err != nil {
		t.Fatalf("NewScope失败: %v", err)
	}
	loose, err := NewScope(b, true)
	if err != nil {
		t.Fatalf("NewScope失败: %v", err)
	}

	tests := []struct {
		name       string
		url        string
		wantStrict bool
		wantLoose  bool
	}{
		{"同域名", "https://www.python.org/downloads/", true, true},
		{"域名本身", "https://www.python.org", true, true},
		{"子域名", "https://docs.python.org/3/", false, true},
		{"裸域名", "https://python.org/", false, true},
		{"前缀相同的其他域名", "https://www.python.org.evil.com/", false, false},
		{"其他域名", "https://www.google.com/q", false, false},
		{"非HTTP协议", "ftp://www.python.org/pub", false, false},
		{"协议不同", "http://www.python.org/", false, true},
		{"无协议", "www.python.org/q", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strict.Allows(tt.url); got != tt.wantStrict {
				t.Errorf("严格模式 Allows(%q) = %v, 期望 %v", tt.url, got, tt.wantStrict)
			}
			if got := loose.Allows(tt.url); got != tt.wantLoose {
				t.Errorf("子域名模式 Allows(%q) = %v, 期望 %v", tt.url, got, tt.wantLoose)
			}
		})
	}
}

func TestScope_IPHost(t *testing.T) {
	b := urlbuilder.MustNew("http://127.0.0.1:8080")

	scope, err := NewScope(b, true)
	if err != nil {
		t.Fatalf("NewScope失败: %v", err)
	}

	if !scope.Allows("http://127.0.0.1:8080/a") {
		t.Error("同主机应被允许")
	}
	if scope.Allows("http://10.0.0.1/") {
		t.Error("IP地址不应按子域名规则放行")
	}
}

func TestNewScope_NoRegistrableDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantLog string
	}{
		{"IP地址", "http://127.0.0.1:8080", "IP地址没有可注册域名"},
		{"localhost", "http://localhost:8080", "无法计算可注册域名"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			if err := utils.InitLogger(utils.LogConfig{Level: "debug", Console: &console}); err != nil {
				t.Fatalf("初始化日志器失败: %v", err)
			}
			t.Cleanup(func() {
				_ = utils.InitLogger(utils.LogConfig{Level: "error", Console: &bytes.Buffer{}})
			})

			scope, err := NewScope(urlbuilder.MustNew(tt.domain), true)
			if err != nil {
				t.Fatalf("NewScope失败: %v", err)
			}
			if scope.site != "" {
				t.Errorf("site = %q, 期望为空", scope.site)
			}

			// 日志经由全局日志器输出
			if !strings.Contains(console.String(), tt.wantLog) {
				t.Errorf("日志缺少 %q, 实际输出: %q", tt.wantLog, console.String())
			}
		})
	}
}
