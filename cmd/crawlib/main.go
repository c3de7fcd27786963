package main

import (
	"fmt"
	"os"

	"github.com/RecoveryAshes/crawlib/internal/core"
	"github.com/RecoveryAshes/crawlib/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string
	domain     string

	// HTTP头部参数
	headerFlags    []string // 自定义HTTP请求头
	validateConfig bool     // 验证配置文件
)

// appConfig 由 PersistentPreRunE 加载,子命令共享
var appConfig *core.Config

var rootCmd = &cobra.Command{
	Use:   "crawlib",
	Short: "爬虫基础工具: URL构建与HTTP请求头管理",
	Long: `crawlib - 爬虫基础工具集

提供爬虫常用的基础能力:
  • 基于域名的URL拼接与查询参数追加
  • 常用HTTP请求头常量与预设
  • 均匀随机或按使用占比加权的User-Agent选择
  • 自定义HTTP请求头 (配置文件 / 命令行)

示例:
  # 拼接URL
  crawlib join --domain https://www.python.org downloads release

  # 追加查询参数
  crawlib params --domain https://www.python.org https://www.python.org/search q=go page=2

  # 查看当前生效的请求头
  crawlib headers -H "Referer: https://www.python.org/"

  # 按使用占比随机选取User-Agent
  crawlib useragent --statistic -n 5

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 命令行参数覆盖配置文件
		if domain != "" {
			config.Site.Domain = domain
		}

		// 初始化日志系统
		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
			Console:    cmd.ErrOrStderr(),
		}
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose && logLevel == "" {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if err := ValidateGlobalFlags(domain, logLevel); err != nil {
			return err
		}

		appConfig = config
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfig {
			return runValidateConfig(cmd)
		}
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "crawlib %s\n", Version)
		fmt.Fprintf(out, "构建时间: %s\n", BuildTime)
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&domain, "domain", "", "目标站点域名,覆盖配置文件中的 site.domain")

	// HTTP头部参数
	rootCmd.PersistentFlags().StringSliceVarP(&headerFlags, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "验证配置文件正确性")

	// 添加子命令
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(useragentCmd)
	rootCmd.AddCommand(crawlCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
