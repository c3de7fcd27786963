// Package config 管理 configs/headers.yaml 自定义头部文件
//
// 文件中的头部覆盖内置预设,命令行 -H 参数优先级最高。
// 首次使用时根据注册表预设生成带注释的模板。
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/RecoveryAshes/crawlib/internal/headers"
	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/RecoveryAshes/crawlib/internal/utils"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile 默认头部配置文件路径
	DefaultConfigFile = "configs/headers.yaml"

	// MaxConfigFileSize 配置文件最大大小 (1MB)
	MaxConfigFileSize = 1 * 1024 * 1024
)

//go:embed headers_template.yaml
var templateSource string

var headerTemplate = template.Must(template.New("headers").Parse(templateSource))

// renderTemplate 用注册表当前的预设渲染配置模板
func renderTemplate() ([]byte, error) {
	data := struct {
		Groups    []headers.Group
		Forbidden string
	}{
		Groups:    headers.Groups(),
		Forbidden: strings.Join(utils.ForbiddenHeaders, "、"),
	}

	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("渲染头部配置模板失败: %w", err)
	}
	return buf.Bytes(), nil
}

// HeaderFile 自定义头部配置文件
type HeaderFile struct {
	path      string
	validator *utils.HeaderValidator
}

// NewHeaderFile 创建头部配置文件,路径为空时使用 DefaultConfigFile
func NewHeaderFile(path string) *HeaderFile {
	if path == "" {
		path = DefaultConfigFile
	}
	return &HeaderFile{
		path:      path,
		validator: utils.NewHeaderValidator(),
	}
}

// Load 读取并验证文件中的头部
// 文件不存在时先生成模板。头部名称按 http.CanonicalHeaderKey 规范化,
// 任一头部不合法 (禁止的头部、非法字符、Referer不是绝对URL) 都返回 *models.ConfigError。
func (f *HeaderFile) Load() (http.Header, error) {
	if err := f.ensureExists(); err != nil {
		return nil, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件信息 [%s]: %w", f.path, err)
	}
	if info.Size() > MaxConfigFileSize {
		return nil, &models.ConfigError{
			FilePath: f.path,
			Cause:    fmt.Errorf("配置文件过大: %d 字节 (最大 %d 字节)", info.Size(), MaxConfigFileSize),
		}
	}

	v := viper.New()
	v.SetConfigFile(f.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, &models.ConfigError{FilePath: f.path, Cause: err}
	}

	var raw models.HeaderConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &models.ConfigError{
			FilePath: f.path,
			Cause:    fmt.Errorf("配置绑定失败: %w", err),
		}
	}

	// 按名称顺序验证,错误信息稳定
	names := make([]string, 0, len(raw.Headers))
	for name := range raw.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make(http.Header, len(names))
	for _, name := range names {
		value := raw.Headers[name]
		if err := f.validator.ValidateHeader(name, value); err != nil {
			return nil, &models.ConfigError{FilePath: f.path, Cause: err}
		}
		result.Set(name, value)
	}

	return result, nil
}

func (f *HeaderFile) ensureExists() error {
	if _, err := os.Stat(f.path); !os.IsNotExist(err) {
		return nil
	}

	content, err := renderTemplate()
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("无法创建配置目录 [%s]: %w", dir, err)
	}
	if err := os.WriteFile(f.path, content, 0644); err != nil {
		return fmt.Errorf("无法生成配置文件 [%s]: %w", f.path, err)
	}

	utils.Infof("已生成头部配置模板: %s", f.path)
	return nil
}
