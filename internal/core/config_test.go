package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	// 不提供配置文件,全部使用默认值
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("加载默认配置失败: %v", err)
	}

	h := config.Harvest
	if h.Mode != models.ModeBrowser {
		t.Errorf("默认模式应为browser: %s", h.Mode)
	}
	if h.ChunkSize != 3 {
		t.Errorf("默认分块大小应为3: %d", h.ChunkSize)
	}
	if h.ScrollStabilityRounds != 3 {
		t.Errorf("默认稳定轮数应为3: %d", h.ScrollStabilityRounds)
	}
	if h.MaxScrollAttempts != 60 {
		t.Errorf("默认最大滚动轮数应为60: %d", h.MaxScrollAttempts)
	}
	if h.PageTimeout != 30*time.Second {
		t.Errorf("默认列表页超时应为30s: %v", h.PageTimeout)
	}
	if h.CompanyPageTimeout != 15*time.Second {
		t.Errorf("默认详情页超时应为15s: %v", h.CompanyPageTimeout)
	}
	if h.MinExpectedRecords != 100 {
		t.Errorf("默认最低预期记录数应为100: %d", h.MinExpectedRecords)
	}
	if h.TargetRecordUpperBound != 200 {
		t.Errorf("默认记录上限应为200: %d", h.TargetRecordUpperBound)
	}
	if h.ProgressSaveInterval != 10 {
		t.Errorf("默认进度保存间隔应为10: %d", h.ProgressSaveInterval)
	}
	if h.ChunkDelay != time.Second {
		t.Errorf("默认分块延迟应为1s: %v", h.ChunkDelay)
	}
	if h.ScrollDelay != 2*time.Second {
		t.Errorf("默认滚动延迟应为2s: %v", h.ScrollDelay)
	}
	if !h.Headless {
		t.Error("默认应为无头模式")
	}
	if h.OutputDir != "output" {
		t.Errorf("默认输出目录应为output: %s", h.OutputDir)
	}

	if config.Logging.Level != "info" {
		t.Errorf("默认日志级别应为info: %s", config.Logging.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `harvest:
  listing_url: https://example.com/companies
  mode: static
  chunk_size: 5
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if config.Harvest.ListingURL != "https://example.com/companies" {
		t.Errorf("URL未从文件加载: %s", config.Harvest.ListingURL)
	}
	if config.Harvest.Mode != models.ModeStatic {
		t.Errorf("模式未从文件加载: %s", config.Harvest.Mode)
	}
	if config.Harvest.ChunkSize != 5 {
		t.Errorf("分块大小未从文件加载: %d", config.Harvest.ChunkSize)
	}
	// 未指定的字段仍使用默认值
	if config.Harvest.MaxScrollAttempts != 60 {
		t.Errorf("未指定字段应为默认值: %d", config.Harvest.MaxScrollAttempts)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("日志级别未从文件加载: %s", config.Logging.Level)
	}
}

func TestMergeCLIFlags(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("加载默认配置失败: %v", err)
	}

	config.MergeCLIFlags("https://example.com/companies", "static", 5, 4, 80, false, "custom-output")

	h := config.Harvest
	if h.ListingURL != "https://example.com/companies" {
		t.Errorf("URL未合并: %s", h.ListingURL)
	}
	if h.Mode != models.ModeStatic {
		t.Errorf("模式未合并: %s", h.Mode)
	}
	if h.ChunkSize != 5 || h.ScrollStabilityRounds != 4 || h.MaxScrollAttempts != 80 {
		t.Errorf("数值参数未合并: %+v", h)
	}
	if h.Headless {
		t.Error("无头模式未合并")
	}
	if h.OutputDir != "custom-output" {
		t.Errorf("输出目录未合并: %s", h.OutputDir)
	}

	// 零值参数不覆盖已有配置
	config.MergeCLIFlags("", "", 0, 0, 0, false, "")
	if config.Harvest.ListingURL != "https://example.com/companies" {
		t.Error("空URL不应覆盖已有值")
	}
	if config.Harvest.ChunkSize != 5 {
		t.Error("零值分块大小不应覆盖已有值")
	}
}
