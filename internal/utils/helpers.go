package utils

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ReadLinesFromFile 从文件中按行读取内容
// 跳过空行和以 # 开头的注释行
func ReadLinesFromFile(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	Debugf("从文件 %s 读取了 %d 行", filepath, len(lines))
	return lines, nil
}

// ParseKeyValues 将 "key=value" 形式的参数解析为查询参数
// 值中可以包含 '=',只按第一个 '=' 分割;同名参数按出现顺序追加
func ParseKeyValues(pairs []string) (url.Values, error) {
	result := make(url.Values, len(pairs))
	for i, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("第%d个参数格式错误 [%s]: 应为 'key=value'", i+1, pair)
		}
		if key == "" {
			return nil, fmt.Errorf("第%d个参数的名称不能为空", i+1)
		}
		result.Add(key, value)
	}
	return result, nil
}
