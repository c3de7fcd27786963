package core

import (
	"fmt"

	"github.com/RecoveryAshes/crawlib/internal/headers"
	"github.com/RecoveryAshes/crawlib/internal/urlbuilder"
	"github.com/RecoveryAshes/crawlib/internal/utils"
)

// LoadUserAgents 加载数据源并构造User-Agent分组
// 数据源初始化失败是致命错误,调用方应立即退出
func LoadUserAgents(cfg UserAgentConfig) (*headers.UserAgents, error) {
	src, err := headers.LoadDataSource(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	var opts []headers.Option
	if cfg.Seed != 0 {
		opts = append(opts, headers.WithSeed(cfg.Seed))
	}

	agents, err := headers.NewUserAgents(src, opts...)
	if err != nil {
		return nil, err
	}

	dataFile := cfg.DataFile
	if dataFile == "" {
		dataFile = "内置数据集"
	}
	utils.Debugf("User-Agent数据源已加载: %s (%d个浏览器)", dataFile, len(src.Browsers()))
	return agents, nil
}

// NewHeaderManagerFromConfig 根据应用配置创建头部管理器
func NewHeaderManagerFromConfig(cfg *Config, cliHeaders []string) (*HeaderManager, error) {
	agents, err := LoadUserAgents(cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	presets, err := PresetHeaders(cfg.Headers)
	if err != nil {
		return nil, err
	}

	return NewHeaderManager(HeaderOptions{
		ConfigFile: cfg.Headers.ConfigFile,
		CliHeaders: cliHeaders,
		Agents:     agents,
		Mode:       cfg.UserAgent.Mode,
		Presets:    presets,
	})
}

// NewBuilderFromConfig 根据配置的站点域名创建URL构建器
func NewBuilderFromConfig(cfg *Config) (*urlbuilder.Builder, error) {
	if cfg.Site.Domain == "" {
		return nil, fmt.Errorf("未配置站点域名 (site.domain 或 --domain)")
	}
	return urlbuilder.New(cfg.Site.Domain)
}
