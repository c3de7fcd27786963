package main

import (
	"fmt"

	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/rs/zerolog"
)

// ValidateGlobalFlags 验证全局标志
func ValidateGlobalFlags(domain, logLevel string) error {
	if domain != "" {
		if err := models.ValidateURL(domain); err != nil {
			return fmt.Errorf("无效的站点域名: %w", err)
		}
	}

	if logLevel != "" {
		if _, err := zerolog.ParseLevel(logLevel); err != nil {
			return fmt.Errorf("无效的日志级别: %s", logLevel)
		}
	}

	return nil
}

// ValidateUserAgentFlags 验证 useragent 子命令标志
func ValidateUserAgentFlags(count int, browser string) error {
	if count < 1 || count > 1000 {
		return fmt.Errorf("输出数量必须在1-1000之间,当前值: %d", count)
	}

	if browser == "" {
		return nil
	}

	validBrowsers := map[string]bool{
		string(models.UserAgentChrome):  true,
		string(models.UserAgentFirefox): true,
		string(models.UserAgentSafari):  true,
		string(models.UserAgentIE):      true,
	}
	if !validBrowsers[browser] {
		return fmt.Errorf("无效的浏览器: %s (有效值: chrome, firefox, safari, ie)", browser)
	}

	return nil
}

// ValidateCrawlFlags 验证 crawl 子命令标志
func ValidateCrawlFlags(depth, parallelism int) error {
	if depth < 1 || depth > 10 {
		return fmt.Errorf("采集深度必须在1-10之间,当前值: %d", depth)
	}

	if parallelism < 1 || parallelism > 100 {
		return fmt.Errorf("并发数必须在1-100之间,当前值: %d", parallelism)
	}

	return nil
}
