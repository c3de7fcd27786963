package crawlers

import (
	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/RecoveryAshes/crawlib/internal/urlbuilder"
	"github.com/RecoveryAshes/crawlib/internal/utils"
	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID头部名称
const RequestIDHeader = "X-Request-ID"

// Options 采集器选项
type Options struct {
	// AllowSubdomains 允许同一可注册域名下的子域名
	AllowSubdomains bool

	// RequestID 为每个请求附加 X-Request-ID
	RequestID bool

	// MaxDepth 最大深度,0 表示不限制
	MaxDepth int

	// Async 异步模式,调用方需要 Wait()
	Async bool
}

// NewCollector 创建受域名范围约束的Colly采集器
// provider 为nil时不设置额外头部
func NewCollector(b *urlbuilder.Builder, provider models.HeaderProvider, opts Options) (*colly.Collector, error) {
	scope, err := NewScope(b, opts.AllowSubdomains)
	if err != nil {
		return nil, err
	}

	collectorOpts := []colly.CollectorOption{
		colly.Async(opts.Async),
	}
	if opts.MaxDepth > 0 {
		collectorOpts = append(collectorOpts, colly.MaxDepth(opts.MaxDepth))
	}
	c := colly.NewCollector(collectorOpts...)

	c.OnRequest(func(r *colly.Request) {
		target := r.URL.String()
		if !scope.Allows(target) {
			utils.Debugf("拒绝范围外请求: %s (域名: %s)", target, b.Domain())
			r.Abort()
			return
		}

		if provider != nil {
			headers, err := provider.GetHeaders()
			if err != nil {
				utils.Warnf("获取HTTP头部失败: %v", err)
			} else {
				// 多值头部 (配置文件或 -H 多次指定) 全部保留
				for name, values := range headers {
					r.Headers.Del(name)
					for _, value := range values {
						r.Headers.Add(name, value)
					}
				}
			}
		}

		if opts.RequestID {
			id := uuid.New().String()
			r.Headers.Set(RequestIDHeader, id)
			r.Ctx.Put("request_id", id)
		}

		utils.Debugf("访问: %s", target)
	})

	return c, nil
}
