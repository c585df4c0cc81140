package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Harvest models.HarvestConfig `mapstructure:"harvest"`
	Logging LoggingConfig        `mapstructure:"logging"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configPath != "" {
		// 使用指定的配置文件
		v.SetConfigFile(configPath)
	} else {
		// 搜索默认位置
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ycharvest"))
		}
	}

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 采集配置默认值
	v.SetDefault("harvest.mode", string(models.ModeBrowser))
	v.SetDefault("harvest.chunk_size", 3)
	v.SetDefault("harvest.scroll_stability_rounds", 3)
	v.SetDefault("harvest.max_scroll_attempts", 60)
	v.SetDefault("harvest.page_timeout", 30*time.Second)
	v.SetDefault("harvest.company_page_timeout", 15*time.Second)
	v.SetDefault("harvest.min_expected_records", 100)
	v.SetDefault("harvest.target_record_upper_bound", 200)
	v.SetDefault("harvest.progress_save_interval", 10)
	v.SetDefault("harvest.chunk_delay", 1*time.Second)
	v.SetDefault("harvest.scroll_delay", 2*time.Second)
	v.SetDefault("harvest.headless", true)
	v.SetDefault("harvest.output_dir", "output")

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)
}

// GetHarvestConfig 从配置中提取采集配置
func (c *Config) GetHarvestConfig() models.HarvestConfig {
	return c.Harvest
}

// MergeCLIFlags 合并命令行参数到配置
func (c *Config) MergeCLIFlags(
	listingURL string,
	mode string,
	chunkSize int,
	stabilityRounds int,
	maxScrollAttempts int,
	headless bool,
	outputDir string,
) {
	// 命令行参数优先于配置文件
	if listingURL != "" {
		c.Harvest.ListingURL = listingURL
	}
	if mode != "" {
		c.Harvest.Mode = models.HarvestMode(mode)
	}
	if chunkSize > 0 {
		c.Harvest.ChunkSize = chunkSize
	}
	if stabilityRounds > 0 {
		c.Harvest.ScrollStabilityRounds = stabilityRounds
	}
	if maxScrollAttempts > 0 {
		c.Harvest.MaxScrollAttempts = maxScrollAttempts
	}
	c.Harvest.Headless = headless
	if outputDir != "" {
		c.Harvest.OutputDir = outputDir
	}
}
