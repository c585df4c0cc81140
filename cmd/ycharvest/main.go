package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/YCHarvest/internal/core"
	"github.com/RecoveryAshes/YCHarvest/internal/utils"
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

	// 采集参数
	listingURL      string
	mode            string
	chunkSize       int
	stabilityRounds int
	maxScroll       int
	headless        bool
	outputDir       string
)

var rootCmd = &cobra.Command{
	Use:   "ycharvest",
	Short: "创业公司目录采集工具",
	Long: `YCHarvest - 无限滚动公司目录采集工具 (Go版本)

针对虚拟化无限滚动列表页的两遍式采集流水线:
  • 滚动收敛式链接发现(链接集稳定为权威终止信号)
  • 第一遍从锚文本捕获记录骨架,无需逐条导航
  • 第二遍分块访问详情页,启发式提取描述/创始人/摘要
  • 周期性进度检查点,中途失败不丢失已有数据
  • CSV + JSON 双格式输出与运行报告

使用示例:
  # 默认浏览器模式
  ycharvest -u https://example.com/companies

  # 详情页为服务端渲染时,第二遍直接HTTP抓取
  ycharvest -u https://example.com/companies -m static

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 初始化日志系统
		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
		}

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置信号处理(Ctrl+C优雅退出)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			utils.Warnf("\n收到中断信号: %v, 正在退出...", sig)
			os.Exit(0)
		}()

		if err := validateFlags(); err != nil {
			return err
		}

		// 合并配置文件与命令行参数
		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		appConfig.MergeCLIFlags(listingURL, mode, chunkSize, stabilityRounds, maxScroll, headless, outputDir)

		harvestConfig := appConfig.GetHarvestConfig()

		harvester, err := core.NewHarvester(harvestConfig)
		if err != nil {
			return fmt.Errorf("创建采集器失败: %w", err)
		}

		// 执行采集
		if err := harvester.Run(); err != nil {
			return fmt.Errorf("采集失败: %w", err)
		}

		// 显示统计结果
		stats := harvester.Stats()
		fmt.Println("\n==================================================")
		fmt.Println("📊 采集统计")
		fmt.Println("==================================================")
		fmt.Printf("✅ 处理链接数: %d\n", stats.TotalProcessed)
		fmt.Printf("✅ 成功捕获: %d\n", stats.SuccessfulCaptures)
		fmt.Printf("✅ 成功补全: %d\n", stats.SuccessfulEnrichments)
		fmt.Printf("⏭️  跳过导航元素: %d\n", stats.Skipped)
		fmt.Printf("❌ 错误数: %d\n", stats.Errors)
		fmt.Printf("📦 峰值内存: %.2f MB\n", float64(stats.PeakMemory)/(1024*1024))
		fmt.Printf("⏱️  总耗时: %.2f秒\n", stats.Duration())
		fmt.Printf("📁 输出目录: %s\n", harvester.OutputDir())
		fmt.Println("==================================================")

		utils.Info("✨ 采集任务完成!")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("YCHarvest %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
		fmt.Println("Go实现版本 - 无限滚动公司目录采集工具")
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// 采集参数
	rootCmd.Flags().StringVarP(&listingURL, "url", "u", "", "列表页URL (必需)")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "补全模式 (browser|static)")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "第二遍分块大小 (1-50)")
	rootCmd.Flags().IntVar(&stabilityRounds, "stability-rounds", 0, "滚动收敛所需的链接集稳定轮数")
	rootCmd.Flags().IntVar(&maxScroll, "max-scroll", 0, "最大滚动轮数")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "无头浏览器模式")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "输出根目录")

	// 添加子命令
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
