// Package crawlers 将URL构建器与头部管理器接入Colly采集器
//
// # 概述
//
// 本包不实现爬取逻辑本身,只为调用方创建的采集器提供两项约束:
// 请求必须落在构建器的域名范围内,且每个请求都带上头部管理器组装的头部。
//
// # 核心组件
//
// ## Scope
//
// 域名范围检查。默认要求主机名与构建器域名一致且URL以域名开头;
// 开启 AllowSubdomains 后,同一可注册域名 (eTLD+1) 下的子域名也被接受,
// 如 www.python.org 与 docs.python.org。
//
//	scope, err := NewScope(builder, true)
//	scope.Allows("https://docs.python.org/3/") // true
//
// ## NewCollector
//
// 在 OnRequest 回调中拒绝范围外的请求,并应用头部:
//
//	c, err := NewCollector(builder, headerManager, Options{RequestID: true})
//	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
//	    e.Request.Visit(e.Attr("href"))
//	})
//	err = c.Visit(builder.JoinAll("downloads"))
//
// 不使用Colly的AllowedDomains: 它是精确匹配,无法表达子域名规则,
// 并且会以 "Forbidden domain" 错误中断访问。
//
// ## ExtractLinks
//
// 从HTML文本中提取范围内的绝对链接,供不使用Colly的调用方复用同一套范围规则。
package crawlers
