package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogConfig(dir, level string, console *bytes.Buffer) LogConfig {
	return LogConfig{
		Level:      level,
		LogDir:     dir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
		Console:    console,
	}
}

func TestInitLogger(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	if err := InitLogger(testLogConfig(tempDir, "debug", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	// 日志目录应被自动创建
	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		t.Errorf("日志目录未创建: %s", tempDir)
	}

	Info("测试信息日志")
	Warn("测试警告日志")
	Debug("测试调试日志")

	mainLogPath := filepath.Join(tempDir, "crawlib.log")
	content, err := os.ReadFile(mainLogPath)
	if err != nil {
		t.Fatalf("读取主日志文件失败: %v", err)
	}
	for _, msg := range []string{"测试信息日志", "测试警告日志", "测试调试日志"} {
		if !strings.Contains(string(content), msg) {
			t.Errorf("主日志缺少: %s", msg)
		}
	}

	if !strings.Contains(console.String(), "测试信息日志") {
		t.Error("控制台未输出日志")
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	var console bytes.Buffer

	if err := InitLogger(testLogConfig(tempDir, "info", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Infof("格式化信息日志: %s", "测试")
	Warnf("格式化警告日志: %d", 123)
	Debugf("格式化调试日志: %v", true)

	out := console.String()
	if !strings.Contains(out, "格式化信息日志: 测试") || !strings.Contains(out, "格式化警告日志: 123") {
		t.Errorf("info/warn 日志缺失: %s", out)
	}
	if strings.Contains(out, "格式化调试日志") {
		t.Error("info级别下不应输出调试日志")
	}
}

func TestErrorLogFile(t *testing.T) {
	tempDir := t.TempDir()
	var console bytes.Buffer

	if err := InitLogger(testLogConfig(tempDir, "info", &console)); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Info("普通信息")
	Error(errors.New("磁盘已满"), "写入失败")
	Errorf("格式化错误: %s", "超时")

	content, err := os.ReadFile(filepath.Join(tempDir, "crawlib_error.log"))
	if err != nil {
		t.Fatalf("读取错误日志文件失败: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, "写入失败") || !strings.Contains(text, "格式化错误: 超时") {
		t.Errorf("错误日志缺少错误级别消息: %s", text)
	}
	if strings.Contains(text, "普通信息") {
		t.Error("错误日志不应包含info级别消息")
	}
}

func TestInitLogger_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	if err := InitLogger(LogConfig{Level: "warn", Console: &console}); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Info("不应出现")
	Warn("控制台警告")

	if strings.Contains(console.String(), "不应出现") {
		t.Error("warn级别下不应输出info日志")
	}
	if !strings.Contains(console.String(), "控制台警告") {
		t.Error("控制台缺少警告日志")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	config := DefaultLogConfig()

	if config.Level != "info" {
		t.Errorf("默认日志级别错误: 期望 'info', 得到 '%s'", config.Level)
	}
	if config.LogDir != "logs" {
		t.Errorf("默认日志目录错误: 期望 'logs', 得到 '%s'", config.LogDir)
	}
	if config.MaxSize != 10 || config.MaxBackups != 3 || config.MaxAge != 28 {
		t.Errorf("默认轮转配置错误: %+v", config)
	}
	if !config.Compress {
		t.Error("默认应该启用压缩")
	}
}
