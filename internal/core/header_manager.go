package core

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/RecoveryAshes/crawlib/internal/config"
	"github.com/RecoveryAshes/crawlib/internal/headers"
	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/RecoveryAshes/crawlib/internal/utils"
)

const (
	// DefaultUserAgent 未提供User-Agent分组时使用
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// HeaderOptions 头部管理器选项
type HeaderOptions struct {
	// ConfigFile 头部配置文件,为空时不加载
	ConfigFile string

	// CliHeaders 命令行 -H 参数
	CliHeaders []string

	// Agents User-Agent分组,为nil时使用 DefaultUserAgent
	Agents *headers.UserAgents

	// Mode 每次请求的User-Agent选择策略
	Mode models.UserAgentMode

	// Presets 静态预设头部 (如 Accept: text/html)
	Presets http.Header
}

// HeaderManager 为每个请求组装HTTP头部
// 合并优先级: 预设默认 < 配置文件 < 命令行。实现 models.HeaderProvider,可并发使用。
type HeaderManager struct {
	agents  *headers.UserAgents
	mode    models.UserAgentMode
	presets http.Header

	// config 从配置文件加载的头部
	config http.Header

	// cli 从命令行参数解析的头部
	cli http.Header

	validator  *utils.HeaderValidator
	redactor   *utils.HeaderRedactor
	configFile *config.HeaderFile

	mu     sync.Mutex
	loaded bool
}

// NewHeaderManager 创建头部管理器
// 命令行参数格式错误或策略名非法时返回错误
func NewHeaderManager(opts HeaderOptions) (*HeaderManager, error) {
	mode := opts.Mode
	if mode == "" {
		mode = models.UserAgentRandom
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("无效的User-Agent策略: %s", mode)
	}

	hm := &HeaderManager{
		agents:    opts.Agents,
		mode:      mode,
		presets:   opts.Presets.Clone(),
		config:    make(http.Header),
		validator: utils.NewHeaderValidator(),
		redactor:  utils.NewHeaderRedactor(),
	}
	if hm.presets == nil {
		hm.presets = make(http.Header)
	}

	if opts.ConfigFile != "" {
		hm.configFile = config.NewHeaderFile(opts.ConfigFile)
	} else {
		hm.loaded = true
	}

	if len(opts.CliHeaders) > 0 {
		parsed, err := models.CliHeaders(opts.CliHeaders).Parse()
		if err != nil {
			return nil, err
		}
		hm.cli = parsed
	} else {
		hm.cli = make(http.Header)
	}

	return hm, nil
}

// PresetHeaders 根据预设名构造静态头部
// 名称为空的项跳过,未知预设名返回错误
func PresetHeaders(cfg HeadersConfig) (http.Header, error) {
	result := make(http.Header)
	entries := []struct{ key, preset string }{
		{headers.AcceptKey, cfg.Accept},
		{headers.AcceptLanguageKey, cfg.AcceptLanguage},
		{headers.ConnectionKey, cfg.Connection},
	}
	for _, e := range entries {
		if e.preset == "" {
			continue
		}
		value, ok := headers.Lookup(e.key, e.preset)
		if !ok {
			return nil, fmt.Errorf("未知的 %s 预设: %s", e.key, e.preset)
		}
		result.Set(e.key, value)
	}
	return result, nil
}

// LoadConfig 加载配置文件,已加载则跳过
func (hm *HeaderManager) LoadConfig() error {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	if hm.loaded {
		return nil
	}

	loaded, err := hm.configFile.Load()
	if err != nil {
		utils.Errorf("加载HTTP头部配置失败: %v", err)
		return err
	}
	hm.config = loaded
	hm.loaded = true

	if len(loaded) > 0 {
		utils.Debugf("成功加载%d个HTTP头部配置: %s", len(loaded), hm.redactor.RedactToString(loaded))
	}

	return nil
}

// Validate 验证所有头部的合法性
// 验证顺序: 预设 → 配置 → 命令行
func (hm *HeaderManager) Validate() error {
	sources := []struct {
		name    string
		headers http.Header
	}{
		{"预设", hm.presets},
		{"配置文件", hm.configHeaders()},
		{"命令行", hm.cli},
	}

	for _, src := range sources {
		if err := hm.validator.Validate(src.headers); err != nil {
			utils.Errorf("%s头部验证失败: %v", src.name, err)
			return err
		}
	}

	utils.Debugf("所有HTTP头部验证通过")
	return nil
}

func (hm *HeaderManager) configHeaders() http.Header {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return hm.config
}

// userAgent 按策略选取本次请求的User-Agent
func (hm *HeaderManager) userAgent() string {
	if hm.agents == nil {
		return DefaultUserAgent
	}

	switch hm.mode {
	case models.UserAgentStatistic:
		return hm.agents.RandomByStatistic()
	case models.UserAgentChrome:
		return hm.agents.Chrome()
	case models.UserAgentFirefox:
		return hm.agents.Firefox()
	case models.UserAgentSafari:
		return hm.agents.Safari()
	case models.UserAgentIE:
		return hm.agents.IE()
	default:
		return hm.agents.Random()
	}
}

// GetMergedHeaders 按优先级合并头部 (预设 < 配置 < 命令行)
// 每次调用重新选取User-Agent
func (hm *HeaderManager) GetMergedHeaders() http.Header {
	result := make(http.Header)
	result.Set(headers.UserAgentKey, hm.userAgent())

	for _, layer := range []http.Header{hm.presets, hm.configHeaders(), hm.cli} {
		for name, values := range layer {
			result[name] = append([]string(nil), values...)
		}
	}

	return result
}

// GetSafeHeaders 返回脱敏后的头部 (用于日志)
func (hm *HeaderManager) GetSafeHeaders() map[string]string {
	return hm.redactor.Redact(hm.GetMergedHeaders())
}

// GetHeaders 实现 models.HeaderProvider
func (hm *HeaderManager) GetHeaders() (http.Header, error) {
	if err := hm.LoadConfig(); err != nil {
		return nil, err
	}

	if err := hm.Validate(); err != nil {
		return nil, err
	}

	return hm.GetMergedHeaders(), nil
}
