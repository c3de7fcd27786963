package urlbuilder

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
)

const pythonOrg = "https://www.python.org"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantErr bool
	}{
		{"HTTPS域名", "https://www.python.org", false},
		{"HTTP域名带端口", "http://localhost:8080", false},
		{"带路径前缀", "https://example.org/api", false},
		{"缺少协议", "www.python.org", true},
		{"不支持的协议", "ftp://example.org", true},
		{"空字符串", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.domain)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
			}
			if err == nil && b.Domain() != tt.domain {
				t.Errorf("Domain() = %q, 期望 %q", b.Domain(), tt.domain)
			}
		})
	}
}

func TestBuilder_JoinAll(t *testing.T) {
	b := MustNew(pythonOrg)

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"无片段返回域名", nil, pythonOrg},
		{"前导斜杠", []string{"/a", "/b"}, pythonOrg + "/a/b"},
		{"无斜杠", []string{"a", "b"}, pythonOrg + "/a/b"},
		{"前后斜杠", []string{"/a/", "/b/"}, pythonOrg + "/a/b"},
		{"多重斜杠", []string{"//a//", "b//"}, pythonOrg + "/a/b"},
		{"片段内部路径", []string{"docs/3", "library"}, pythonOrg + "/docs/3/library"},
		{"空片段被跳过", []string{"", "/", "a"}, pythonOrg + "/a"},
		{"带文件名", []string{"downloads", "index.html"}, pythonOrg + "/downloads/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.JoinAll(tt.parts...)
			if got != tt.want {
				t.Errorf("JoinAll(%q) = %q, 期望 %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestBuilder_JoinAll_NoDoubledSlash(t *testing.T) {
	// 域名自带尾部斜杠
	b := MustNew("https://example.org/")
	segments := []string{"a", "/a", "a/", "/a/", "//a//"}

	for _, first := range segments {
		for _, second := range segments {
			got := b.JoinAll(first, second)
			if !strings.HasPrefix(got, "https://example.org") {
				t.Fatalf("JoinAll(%q, %q) = %q, 未以域名开头", first, second, got)
			}
			rest := strings.TrimPrefix(got, "https://")
			if strings.Contains(rest, "//") {
				t.Errorf("JoinAll(%q, %q) = %q, 存在重复斜杠", first, second, got)
			}
		}
	}

	// 片段全部为空时不能截掉域名的尾部斜杠
	emptyParts := [][]string{nil, {""}, {"/"}, {"", "//"}, {"/", "", "///"}}
	for _, parts := range emptyParts {
		got := b.JoinAll(parts...)
		if got != "https://example.org/" {
			t.Errorf("JoinAll(%q) = %q, 期望原样返回域名", parts, got)
		}
		if _, err := b.AddParams(got, map[string]string{"q": "1"}); err != nil {
			t.Errorf("JoinAll(%q) 的结果应能追加参数: %v", parts, err)
		}
	}
}

func TestBuilder_AddParams(t *testing.T) {
	b := MustNew(pythonOrg)

	t.Run("添加单个参数", func(t *testing.T) {
		got, err := b.AddParams(pythonOrg+"/q", map[string]string{"version": "2.7"})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		if got != pythonOrg+"/q?version=2.7" {
			t.Errorf("AddParams() = %q", got)
		}
	})

	t.Run("域名不匹配", func(t *testing.T) {
		_, err := b.AddParams("www.google.com/q", map[string]string{"q": "Python"})
		if !errors.Is(err, ErrDomainMismatch) {
			t.Fatalf("期望 ErrDomainMismatch, 实际 %v", err)
		}

		var mismatch *DomainMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("期望 *DomainMismatchError, 实际 %T", err)
		}
		if mismatch.URL != "www.google.com/q" || mismatch.Domain != pythonOrg {
			t.Errorf("错误字段不正确: %+v", mismatch)
		}
	})

	t.Run("空参数也检查域名", func(t *testing.T) {
		_, err := b.AddParams("https://www.google.com/q", nil)
		if !errors.Is(err, ErrDomainMismatch) {
			t.Fatalf("期望 ErrDomainMismatch, 实际 %v", err)
		}
	})

	t.Run("空参数原样返回", func(t *testing.T) {
		in := pythonOrg + "/q"
		got, err := b.AddParams(in, map[string]string{})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		if got != in {
			t.Errorf("AddParams() = %q, 期望 %q", got, in)
		}
	})

	t.Run("合并已有查询串", func(t *testing.T) {
		got, err := b.AddParams(pythonOrg+"/search?q=go", map[string]string{"page": "2"})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		if got != pythonOrg+"/search?q=go&page=2" {
			t.Errorf("AddParams() = %q", got)
		}
	})

	t.Run("尾部问号不重复", func(t *testing.T) {
		got, err := b.AddParams(pythonOrg+"/search?", map[string]string{"q": "go"})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		if got != pythonOrg+"/search?q=go" {
			t.Errorf("AddParams() = %q", got)
		}
	})

	t.Run("同名参数追加", func(t *testing.T) {
		got, err := b.AddParams(pythonOrg+"/search?q=go", map[string]string{"q": "python"})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		parsed, err := url.Parse(got)
		if err != nil {
			t.Fatalf("解析结果失败: %v", err)
		}
		values := parsed.Query()["q"]
		if len(values) != 2 || values[0] != "go" || values[1] != "python" {
			t.Errorf("期望 q=[go python], 实际 %v", values)
		}
	})

	t.Run("片段保留在末尾", func(t *testing.T) {
		got, err := b.AddParams(pythonOrg+"/doc#intro", map[string]string{"v": "3"})
		if err != nil {
			t.Fatalf("AddParams失败: %v", err)
		}
		if got != pythonOrg+"/doc?v=3#intro" {
			t.Errorf("AddParams() = %q", got)
		}
	})
}

func TestBuilder_AddParams_RoundTrip(t *testing.T) {
	b := MustNew(pythonOrg)
	base := pythonOrg + "/search"

	params := map[string]string{
		"q":        "a&b=c?d",
		"with sp":  "hello world",
		"unicode":  "中文 ünïcode",
		"percent":  "100%",
		"encoded":  "%20",
		"empty":    "",
		"plus":     "1+1",
		"slash/ok": "/path/",
	}

	got, err := b.AddParams(base, params)
	if err != nil {
		t.Fatalf("AddParams失败: %v", err)
	}

	if !strings.HasPrefix(got, base+"?") {
		t.Fatalf("结果 %q 未保留原路径", got)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("解析结果失败: %v", err)
	}
	if parsed.Scheme+"://"+parsed.Host+parsed.Path != base {
		t.Errorf("路径部分被修改: %q", got)
	}

	decoded := parsed.Query()
	if len(decoded) != len(params) {
		t.Fatalf("参数数量不一致: 期望 %d, 实际 %d (%v)", len(params), len(decoded), decoded)
	}
	for key, want := range params {
		if got := decoded.Get(key); got != want {
			t.Errorf("参数 %q: 期望 %q, 实际 %q", key, want, got)
		}
	}
}

func TestBuilder_AddValues(t *testing.T) {
	b := MustNew(pythonOrg)

	got, err := b.AddValues(pythonOrg+"/q", url.Values{"tag": {"go", "web"}})
	if err != nil {
		t.Fatalf("AddValues失败: %v", err)
	}
	if got != pythonOrg+"/q?tag=go&tag=web" {
		t.Errorf("AddValues() = %q", got)
	}
}

func TestBuilder_Resolve(t *testing.T) {
	b := MustNew(pythonOrg)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"绝对路径", "/about/", pythonOrg + "/about/"},
		{"相对路径", "downloads", pythonOrg + "/downloads"},
		{"带查询串", "/search?q=go", pythonOrg + "/search?q=go"},
		{"其他域名", "https://www.google.com/", "https://www.google.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Resolve(tt.href)
			if err != nil {
				t.Fatalf("Resolve(%q) 失败: %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, 期望 %q", tt.href, got, tt.want)
			}
		})
	}

	if b.Contains("https://www.google.com/") {
		t.Error("其他域名不应被判定为属于构建器")
	}
}

func TestBuilder_ConcurrentUse(t *testing.T) {
	b := MustNew(pythonOrg)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			joined := b.JoinAll("a", "b")
			if _, err := b.AddParams(joined, map[string]string{"k": "v"}); err != nil {
				t.Errorf("并发AddParams失败: %v", err)
			}
		}()
	}
	wg.Wait()
}
