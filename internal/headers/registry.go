// Package headers 提供常用HTTP请求头部的名称与预设值
//
// 头部按分组组织: 每组有一个 Key 常量 (HTTP头部名称) 和若干预设值常量。
// User-Agent 分组的取值来自外部数据源,见 UserAgents。
//
//	req.Header.Set(headers.ContentTypeKey, headers.ContentTypeHTMLUTF8)
//	req.Header.Set(headers.UserAgentKey, agents.Random())
package headers

// User-Agent
const (
	UserAgentKey = "User-Agent"
)

// Content-Type
const (
	ContentTypeKey      = "Content-Type"
	ContentTypeHTMLUTF8 = "text/html; charset=utf-8"
	ContentTypeJSONUTF8 = "application/json; charset=utf-8"
)

// Connection
const (
	ConnectionKey       = "Connection"
	ConnectionKeepAlive = "keep-alive"
	ConnectionClose     = "close"
)

// Accept
const (
	AcceptKey   = "Accept"
	AcceptHTML  = "text/html"
	AcceptJSON  = "application/json"
	AcceptXML   = "application/xml"
	AcceptImage = "image/*"
)

// Accept-Language
const (
	AcceptLanguageKey  = "Accept-Language"
	AcceptLanguageEnUS = "en-US,en"
	AcceptLanguageZhCN = "zh-CN,zh"
	AcceptLanguageZhTW = "zh-TW,zh"
)

// Referer 没有预设值,取值由调用方决定
const (
	RefererKey = "Referer"
)

// Preset 头部预设值
type Preset struct {
	Name  string
	Value string
}

// Group 一个HTTP头部及其预设值
type Group struct {
	Key     string
	Presets []Preset
}

// Groups 返回全部静态头部分组 (每次调用返回新的副本)
// User-Agent 的取值依赖外部数据源,不在此表中
func Groups() []Group {
	return []Group{
		{
			Key: ContentTypeKey,
			Presets: []Preset{
				{"html_utf8", ContentTypeHTMLUTF8},
				{"json_utf8", ContentTypeJSONUTF8},
			},
		},
		{
			Key: ConnectionKey,
			Presets: []Preset{
				{"keep_alive", ConnectionKeepAlive},
				{"close", ConnectionClose},
			},
		},
		{
			Key: AcceptKey,
			Presets: []Preset{
				{"html", AcceptHTML},
				{"json", AcceptJSON},
				{"xml", AcceptXML},
				{"image", AcceptImage},
			},
		},
		{
			Key: AcceptLanguageKey,
			Presets: []Preset{
				{"en_US", AcceptLanguageEnUS},
				{"zh_CN", AcceptLanguageZhCN},
				{"zh_TW", AcceptLanguageZhTW},
			},
		},
		{
			Key: RefererKey,
		},
	}
}

// Lookup 按头部名称和预设名查找预设值
func Lookup(key, preset string) (string, bool) {
	for _, g := range Groups() {
		if g.Key != key {
			continue
		}
		for _, p := range g.Presets {
			if p.Name == preset {
				return p.Value, true
			}
		}
	}
	return "", false
}
