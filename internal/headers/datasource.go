package headers

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// MaxDataFileSize 数据集文件最大大小 (1MB)
const MaxDataFileSize = 1 * 1024 * 1024

//go:embed useragents.yaml
var defaultDataset []byte

// browserEntry 数据集中的单个浏览器
type browserEntry struct {
	Name   string          `mapstructure:"name"`
	Agents []WeightedAgent `mapstructure:"agents"`
}

// aliasEntry 浏览器别名
type aliasEntry struct {
	Alias   string `mapstructure:"alias"`
	Browser string `mapstructure:"browser"`
}

// dataset YAML数据集结构
type dataset struct {
	Browsers []browserEntry `mapstructure:"browsers"`
	Aliases  []aliasEntry   `mapstructure:"aliases"`
}

// DataSource 基于YAML数据集的User-Agent数据源,实现 Provider
type DataSource struct {
	// browsers 浏览器名(小写) -> 按占比降序的User-Agent
	browsers map[string][]WeightedAgent

	// aliases 别名(小写) -> 浏览器名(小写)
	aliases map[string]string

	// order 数据集中的浏览器顺序,保证Weighted结果稳定
	order []string
}

// LoadDataSource 加载User-Agent数据集
// path为空时使用内置数据集
func LoadDataSource(path string) (*DataSource, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		if err := v.ReadConfig(bytes.NewReader(defaultDataset)); err != nil {
			return nil, &InitializationError{Cause: fmt.Errorf("解析内置数据集失败: %w", err)}
		}
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &InitializationError{Cause: fmt.Errorf("无法读取数据集文件 [%s]: %w", path, err)}
		}
		if info.Size() > MaxDataFileSize {
			return nil, &InitializationError{
				Cause: fmt.Errorf("数据集文件过大: %d 字节 (最大 %d 字节)", info.Size(), MaxDataFileSize),
			}
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &InitializationError{Cause: fmt.Errorf("解析数据集文件失败 [%s]: %w", path, err)}
		}
	}

	var ds dataset
	if err := v.Unmarshal(&ds); err != nil {
		return nil, &InitializationError{Cause: fmt.Errorf("数据集绑定失败: %w", err)}
	}

	return newDataSource(ds)
}

func newDataSource(ds dataset) (*DataSource, error) {
	if len(ds.Browsers) == 0 {
		return nil, &InitializationError{Cause: fmt.Errorf("数据集中没有浏览器")}
	}

	src := &DataSource{
		browsers: make(map[string][]WeightedAgent, len(ds.Browsers)),
		aliases:  make(map[string]string, len(ds.Aliases)),
	}

	for _, b := range ds.Browsers {
		name := normalizeName(b.Name)
		if name == "" {
			return nil, &InitializationError{Cause: fmt.Errorf("浏览器名不能为空")}
		}
		if len(b.Agents) == 0 {
			return nil, &InitializationError{Browser: name, Cause: fmt.Errorf("没有User-Agent")}
		}

		agents := make([]WeightedAgent, 0, len(b.Agents))
		for _, a := range b.Agents {
			if strings.TrimSpace(a.Agent) == "" {
				return nil, &InitializationError{Browser: name, Cause: fmt.Errorf("User-Agent不能为空")}
			}
			if a.Share <= 0 {
				return nil, &InitializationError{Browser: name, Cause: fmt.Errorf("使用占比必须为正数: %v", a.Share)}
			}
			agents = append(agents, a)
		}

		if _, exists := src.browsers[name]; !exists {
			src.order = append(src.order, name)
		}
		src.browsers[name] = append(src.browsers[name], agents...)
		sortByShare(src.browsers[name])
	}

	for _, a := range ds.Aliases {
		alias, target := normalizeName(a.Alias), normalizeName(a.Browser)
		if _, ok := src.browsers[target]; !ok {
			return nil, &InitializationError{Browser: alias, Cause: fmt.Errorf("别名指向未知浏览器 [%s]", a.Browser)}
		}
		src.aliases[alias] = target
	}

	return src, nil
}

// Browser 返回指定浏览器使用占比最高的User-Agent
// 名称不区分大小写,支持别名
func (s *DataSource) Browser(name string) (string, error) {
	key := normalizeName(name)
	if target, ok := s.aliases[key]; ok {
		key = target
	}

	agents, ok := s.browsers[key]
	if !ok {
		return "", fmt.Errorf("未知浏览器: %s", name)
	}
	return agents[0].Agent, nil
}

// Weighted 返回数据集中的全部User-Agent及其占比
func (s *DataSource) Weighted() ([]WeightedAgent, error) {
	var out []WeightedAgent
	for _, name := range s.order {
		out = append(out, s.browsers[name]...)
	}
	return out, nil
}

// Browsers 返回数据集中的浏览器名
func (s *DataSource) Browsers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// sortByShare 按占比降序排列,占比相同保持原顺序
func sortByShare(agents []WeightedAgent) {
	sort.SliceStable(agents, func(i, j int) bool {
		return agents[i].Share > agents[j].Share
	})
}
