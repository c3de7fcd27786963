package models

// ParseResult 页面解析结果
// 由下游解析器实现,本库只定义契约
type ParseResult interface {
	// URL 被解析页面的地址
	URL() string

	// Links 页面中提取出的链接 (可能是相对链接)
	Links() []string

	// Fields 结构化提取结果
	Fields() map[string]any
}

// Parser HTML解析器
// 接收已抓取的页面内容,返回结构化提取结果
type Parser interface {
	Parse(pageURL string, body []byte) (ParseResult, error)
}
