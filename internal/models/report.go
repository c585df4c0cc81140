package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RunReport 运行报告
// 运行结束时生成,是会话统计和输出位置的持久化快照
type RunReport struct {
	// 运行信息
	RunID      string      `json:"run_id"`
	ListingURL string      `json:"listing_url"`
	Mode       HarvestMode `json:"mode"`

	// 时间信息
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // 秒

	// 统计信息
	Stats SessionStats `json:"stats"`

	// 记录概况
	TotalRecords    int `json:"total_records"`
	EnrichedRecords int `json:"enriched_records"`
	FailedRecords   int `json:"failed_records"` // enrichment_failed状态的记录数

	// 发现阶段概况
	DiscoveredLinks int  `json:"discovered_links"` // 滚动收敛后发现的去重链接数
	Converged       bool `json:"converged"`        // 滚动循环是否正常收敛

	// 输出路径
	OutputDir string `json:"output_dir"`
	CSVFile   string `json:"csv_file"`
	JSONFile  string `json:"json_file"`

	// 配置快照
	Config HarvestConfig `json:"config"`
}

// ToJSON 序列化为JSON
func (r *RunReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// NewRunID 生成运行唯一ID
func NewRunID() string {
	return uuid.New().String()
}
