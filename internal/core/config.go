package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Site      SiteConfig      `mapstructure:"site"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	UserAgent UserAgentConfig `mapstructure:"useragent"`
	Headers   HeadersConfig   `mapstructure:"headers"`
	Crawl     CrawlConfig     `mapstructure:"crawl"`
}

// SiteConfig 目标站点配置
type SiteConfig struct {
	// Domain URL构建器的基础域名,如 "https://www.python.org"
	Domain string `mapstructure:"domain" validate:"omitempty,http_url"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size" validate:"gte=1"`
	MaxBackups int  `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int  `mapstructure:"max_age" validate:"gte=0"`
	Compress   bool `mapstructure:"compress"`
}

// UserAgentConfig User-Agent数据源与选择策略
type UserAgentConfig struct {
	// DataFile 自定义数据集路径,为空时使用内置数据集
	DataFile string `mapstructure:"data_file"`

	Mode models.UserAgentMode `mapstructure:"mode" validate:"oneof=random statistic chrome firefox safari ie"`

	// Seed 非零时使用固定随机种子
	Seed uint64 `mapstructure:"seed"`
}

// HeadersConfig 默认头部预设
type HeadersConfig struct {
	// ConfigFile 头部配置文件路径,为空时不加载
	ConfigFile string `mapstructure:"config_file"`

	// 以下取预设名,见 headers.Groups
	Accept         string `mapstructure:"accept" validate:"omitempty,oneof=html json xml image"`
	AcceptLanguage string `mapstructure:"accept_language" validate:"omitempty,oneof=en_US zh_CN zh_TW"`
	Connection     string `mapstructure:"connection" validate:"omitempty,oneof=keep_alive close"`
}

// CrawlConfig 采集器集成配置
type CrawlConfig struct {
	// AllowSubdomains 允许访问同一可注册域名下的子域名
	AllowSubdomains bool `mapstructure:"allow_subdomains"`

	// RequestID 为每个请求附加 X-Request-ID
	RequestID bool `mapstructure:"request_id"`

	// MaxDepth 采集深度上限,0 表示不限制
	MaxDepth int `mapstructure:"max_depth" validate:"gte=0,lte=10"`
}

// envKeyReplacer 配置键到环境变量名的转换
var envKeyReplacer = strings.NewReplacer(".", "_")

// LoadConfig 加载配置文件
// configPath为空时按默认位置搜索,找不到则全部使用默认值
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".crawlib"))
		}
	}

	// 环境变量覆盖,如 CRAWLIB_SITE_DOMAIN
	v.SetEnvPrefix("crawlib")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("site.domain", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	v.SetDefault("useragent.data_file", "")
	v.SetDefault("useragent.mode", string(models.UserAgentRandom))
	v.SetDefault("useragent.seed", 0)

	v.SetDefault("headers.config_file", "")
	v.SetDefault("headers.accept", "html")
	v.SetDefault("headers.accept_language", "en_US")
	v.SetDefault("headers.connection", "keep_alive")

	v.SetDefault("crawl.allow_subdomains", false)
	v.SetDefault("crawl.request_id", true)
	v.SetDefault("crawl.max_depth", 0)
}
