package crawlers

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks 从HTML中提取范围内的链接
// 相对链接以 pageURL 为基准解析;结果去重并保持出现顺序
func ExtractLinks(htmlContent, pageURL string, scope *Scope) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("解析页面URL失败: %w", err)
	}

	var links []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				ref, err := url.Parse(strings.TrimSpace(attr.Val))
				if err != nil {
					break
				}
				abs := base.ResolveReference(ref)
				abs.Fragment = ""
				link := abs.String()
				if !seen[link] && scope.Allows(link) {
					seen[link] = true
					links = append(links, link)
				}
				break
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}
