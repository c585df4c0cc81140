package models

import (
	"fmt"
	"net/url"
	"time"
)

// HarvestMode 补全模式
type HarvestMode string

const (
	ModeBrowser HarvestMode = "browser" // 详情页通过浏览器导航获取
	ModeStatic  HarvestMode = "static"  // 详情页通过HTTP直接抓取(页面为服务端渲染)
)

// HarvestConfig 采集配置
type HarvestConfig struct {
	ListingURL string      `json:"listing_url" mapstructure:"listing_url"` // 列表页URL(每次运行固定)
	Mode       HarvestMode `json:"mode" mapstructure:"mode"`               // 补全模式 (默认:browser)

	ChunkSize             int `json:"chunk_size" mapstructure:"chunk_size"`                           // 第二遍分块大小 (默认:3)
	ScrollStabilityRounds int `json:"scroll_stability_rounds" mapstructure:"scroll_stability_rounds"` // 链接集稳定轮数 (默认:3)
	MaxScrollAttempts     int `json:"max_scroll_attempts" mapstructure:"max_scroll_attempts"`         // 最大滚动轮数 (默认:60)

	PageTimeout        time.Duration `json:"page_timeout" mapstructure:"page_timeout"`                 // 列表页加载超时 (默认:30s)
	CompanyPageTimeout time.Duration `json:"company_page_timeout" mapstructure:"company_page_timeout"` // 详情页加载超时 (默认:15s)

	MinExpectedRecords     int `json:"min_expected_records" mapstructure:"min_expected_records"`         // 低于此数量记录警告 (默认:100)
	TargetRecordUpperBound int `json:"target_record_upper_bound" mapstructure:"target_record_upper_bound"` // 链接数上限,提前停止滚动 (默认:200)
	ProgressSaveInterval   int `json:"progress_save_interval" mapstructure:"progress_save_interval"`     // 每N条捕获保存一次进度 (默认:10)

	ChunkDelay  time.Duration `json:"chunk_delay" mapstructure:"chunk_delay"`   // 分块间礼貌延迟 (默认:1s)
	ScrollDelay time.Duration `json:"scroll_delay" mapstructure:"scroll_delay"` // 滚动轮间延迟 (默认:2s)

	Headless  bool   `json:"headless" mapstructure:"headless"`     // 无头模式 (默认:true)
	OutputDir string `json:"output_dir" mapstructure:"output_dir"` // 输出根目录 (默认:output)
}

// Validate 验证配置
func (c *HarvestConfig) Validate() error {
	if err := ValidateURL(c.ListingURL); err != nil {
		return fmt.Errorf("列表页URL无效: %w", err)
	}
	if c.Mode != ModeBrowser && c.Mode != ModeStatic {
		return fmt.Errorf("无效的补全模式: %s (可选: browser|static)", c.Mode)
	}
	if c.ChunkSize < 1 || c.ChunkSize > 50 {
		return fmt.Errorf("分块大小必须在1-50之间")
	}
	if c.ScrollStabilityRounds < 1 || c.ScrollStabilityRounds > 20 {
		return fmt.Errorf("稳定轮数必须在1-20之间")
	}
	if c.MaxScrollAttempts < c.ScrollStabilityRounds {
		return fmt.Errorf("最大滚动轮数不能小于稳定轮数")
	}
	if c.PageTimeout <= 0 || c.CompanyPageTimeout <= 0 {
		return fmt.Errorf("页面超时必须为正值")
	}
	if c.ProgressSaveInterval < 1 {
		return fmt.Errorf("进度保存间隔必须大于0")
	}
	if c.TargetRecordUpperBound < c.MinExpectedRecords {
		return fmt.Errorf("记录数上限不能小于最低预期数")
	}
	return nil
}

// ValidateURL 验证URL格式
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("URL格式无效: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL协议必须是http或https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL缺少主机名")
	}
	return nil
}
