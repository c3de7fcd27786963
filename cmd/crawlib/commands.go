package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/RecoveryAshes/crawlib/internal/core"
	"github.com/RecoveryAshes/crawlib/internal/crawlers"
	"github.com/RecoveryAshes/crawlib/internal/headers"
	"github.com/RecoveryAshes/crawlib/internal/models"
	"github.com/RecoveryAshes/crawlib/internal/urlbuilder"
	"github.com/RecoveryAshes/crawlib/internal/utils"
	"github.com/gocolly/colly/v2"
	"github.com/spf13/cobra"
)

// 子命令参数
var (
	partsFile     string
	uaStatistic   bool
	uaCount       int
	uaBrowser     string
	crawlDepth    int
	crawlAsync    bool
	crawlSubdoms  bool
	crawlParallel int
)

var joinCmd = &cobra.Command{
	Use:   "join [parts...]",
	Short: "将路径片段拼接到站点域名后",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := core.NewBuilderFromConfig(appConfig)
		if err != nil {
			return err
		}

		parts := append([]string(nil), args...)
		if partsFile != "" {
			lines, err := utils.ReadLinesFromFile(partsFile)
			if err != nil {
				return fmt.Errorf("读取路径文件失败: %w", err)
			}
			parts = append(parts, lines...)
		}

		fmt.Fprintln(cmd.OutOrStdout(), b.JoinAll(parts...))
		return nil
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params <url> [key=value...]",
	Short: "向站点内的URL追加查询参数",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := core.NewBuilderFromConfig(appConfig)
		if err != nil {
			return err
		}

		params, err := utils.ParseKeyValues(args[1:])
		if err != nil {
			return err
		}

		result, err := b.AddValues(args[0], params)
		if err != nil {
			if errors.Is(err, urlbuilder.ErrDomainMismatch) {
				utils.Warnf("URL不在站点范围内: %s", args[0])
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "显示当前生效的HTTP请求头 (已脱敏)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfig {
			return runValidateConfig(cmd)
		}

		hm, err := core.NewHeaderManagerFromConfig(appConfig, headerFlags)
		if err != nil {
			return err
		}
		if _, err := hm.GetHeaders(); err != nil {
			return err
		}

		printHeaders(cmd, hm.GetSafeHeaders())
		return nil
	},
}

var headersListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出内置的请求头预设",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, group := range headers.Groups() {
			fmt.Fprintf(out, "%s:\n", group.Key)
			for _, preset := range group.Presets {
				fmt.Fprintf(out, "  %-12s %s\n", preset.Name, preset.Value)
			}
		}
	},
}

var useragentCmd = &cobra.Command{
	Use:   "useragent",
	Short: "随机选取User-Agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateUserAgentFlags(uaCount, uaBrowser); err != nil {
			return err
		}

		agents, err := core.LoadUserAgents(appConfig.UserAgent)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if uaBrowser != "" {
			fmt.Fprintln(out, pickBrowser(agents, models.UserAgentMode(uaBrowser)))
			return nil
		}

		for i := 0; i < uaCount; i++ {
			if uaStatistic {
				fmt.Fprintln(out, agents.RandomByStatistic())
			} else {
				fmt.Fprintln(out, agents.Random())
			}
		}
		return nil
	},
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [path]",
	Short: "从站点页面开始采集范围内的链接",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateCrawlFlags(crawlDepth, crawlParallel); err != nil {
			return err
		}

		// 设置信号处理(Ctrl+C优雅退出)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			if sig, ok := <-sigChan; ok {
				utils.Warnf("收到中断信号: %v, 正在退出...", sig)
				os.Exit(0)
			}
		}()

		b, err := core.NewBuilderFromConfig(appConfig)
		if err != nil {
			return err
		}
		hm, err := core.NewHeaderManagerFromConfig(appConfig, headerFlags)
		if err != nil {
			return err
		}

		opts := crawlers.Options{
			AllowSubdomains: appConfig.Crawl.AllowSubdomains || crawlSubdoms,
			RequestID:       appConfig.Crawl.RequestID,
			MaxDepth:        appConfig.Crawl.MaxDepth,
			Async:           crawlAsync,
		}
		if cmd.Flags().Changed("depth") {
			opts.MaxDepth = crawlDepth
		}

		c, err := crawlers.NewCollector(b, hm, opts)
		if err != nil {
			return err
		}
		if crawlAsync {
			if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: crawlParallel}); err != nil {
				return fmt.Errorf("设置并发限制失败: %w", err)
			}
		}

		scope, err := crawlers.NewScope(b, opts.AllowSubdomains)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var (
			found   atomic.Int64
			printed sync.Map
		)
		c.OnResponse(func(r *colly.Response) {
			links, err := crawlers.ExtractLinks(string(r.Body), r.Request.URL.String(), scope)
			if err != nil {
				utils.Warnf("提取链接失败 %s: %v", r.Request.URL, err)
				return
			}
			for _, link := range links {
				// 最大深度页面上的链接同样输出,只是不再访问
				if _, dup := printed.LoadOrStore(link, struct{}{}); !dup {
					found.Add(1)
					fmt.Fprintln(out, link)
				}
				if err := r.Request.Visit(link); err != nil && !errors.Is(err, colly.ErrMaxDepth) {
					utils.Debugf("跳过 %s: %v", link, err)
				}
			}
		})
		c.OnError(func(r *colly.Response, err error) {
			utils.Warnf("请求失败 %s: %v", r.Request.URL, err)
		})

		start := b.JoinAll(args...)
		utils.Infof("开始采集: %s (最大深度: %d)", start, opts.MaxDepth)
		if err := c.Visit(start); err != nil {
			return fmt.Errorf("访问起始页面失败: %w", err)
		}
		c.Wait()

		utils.Infof("采集完成,共发现%d个链接", found.Load())
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVarP(&partsFile, "file", "f", "", "从文件读取路径片段,每行一个")

	useragentCmd.Flags().BoolVar(&uaStatistic, "statistic", false, "按真实使用占比加权随机")
	useragentCmd.Flags().IntVarP(&uaCount, "count", "n", 1, "输出数量 (1-1000)")
	useragentCmd.Flags().StringVar(&uaBrowser, "browser", "", "输出指定浏览器的User-Agent (chrome|firefox|safari|ie)")

	crawlCmd.Flags().IntVarP(&crawlDepth, "depth", "d", 2, "采集深度 (1-10),覆盖 crawl.max_depth")
	crawlCmd.Flags().BoolVar(&crawlAsync, "async", false, "异步并发采集")
	crawlCmd.Flags().BoolVar(&crawlSubdoms, "subdomains", false, "允许同一可注册域名下的子域名")
	crawlCmd.Flags().IntVar(&crawlParallel, "threads", 2, "异步模式下的并发数 (1-100)")

	headersCmd.AddCommand(headersListCmd)
}

// runValidateConfig 验证头部配置并输出脱敏后的结果
func runValidateConfig(cmd *cobra.Command) error {
	hm, err := core.NewHeaderManagerFromConfig(appConfig, headerFlags)
	if err != nil {
		return err
	}

	utils.Info("验证HTTP头部配置...")
	if err := hm.LoadConfig(); err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if err := hm.Validate(); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	utils.Info("配置验证通过")
	printHeaders(cmd, hm.GetSafeHeaders())
	return nil
}

// printHeaders 按名称排序输出
func printHeaders(cmd *cobra.Command, safe map[string]string) {
	names := make([]string, 0, len(safe))
	for name := range safe {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "%s: %s\n", name, safe[name])
	}
}

func pickBrowser(agents *headers.UserAgents, mode models.UserAgentMode) string {
	switch mode {
	case models.UserAgentChrome:
		return agents.Chrome()
	case models.UserAgentFirefox:
		return agents.Firefox()
	case models.UserAgentSafari:
		return agents.Safari()
	default:
		return agents.IE()
	}
}
