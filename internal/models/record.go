package models

import (
	"encoding/json"
	"time"
)

// RecordStatus 记录状态
type RecordStatus string

const (
	StatusCaptured         RecordStatus = "captured"          // 第一遍已捕获,等待补全
	StatusEnriched         RecordStatus = "enriched"          // 第二遍补全成功
	StatusEnrichmentFailed RecordStatus = "enrichment_failed" // 第二遍补全失败(保留已有字段)
)

// 占位值: 区分"已尝试但失败"与"尚未尝试"(空字符串)
const (
	DescriptionNotAvailable = "Description not available"
	SummaryNotAvailable     = "Summary not available"
)

// Founder 创始人信息
type Founder struct {
	Name       string `json:"name"`        // 创始人姓名
	ProfileURL string `json:"profile_url"` // LinkedIn个人主页(可为空,仅姓名)
}

// Record 一条公司记录,流水线的输出单元
type Record struct {
	// 身份标识: 规范化后的详情页URL,第一遍捕获时分配,之后不可变
	IdentityKey string `json:"url"`

	// 基础字段(第一遍从列表页锚文本解析)
	Name       string   `json:"name"`
	Categories []string `json:"categories"` // 保持插入顺序,去重

	// 补全字段(第二遍从详情页提取)
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Founders    []Founder `json:"founders"`

	// 时间戳
	CapturedAt time.Time  `json:"scraped_at"`
	EnrichedAt *time.Time `json:"enriched_at,omitempty"`

	// 状态: captured -> enriched | enrichment_failed,不可逆转
	Status RecordStatus `json:"status"`
}

// NewRecord 创建第一遍捕获的记录骨架
func NewRecord(identityKey string, name string, categories []string) *Record {
	return &Record{
		IdentityKey: identityKey,
		Name:        name,
		Categories:  dedupeOrdered(categories),
		Founders:    []Founder{},
		CapturedAt:  time.Now(),
		Status:      StatusCaptured,
	}
}

// EnrichedFields 第二遍提取出的字段集合
type EnrichedFields struct {
	Name        string    // 详情页上更完整的名称(可为空,表示沿用原值)
	Description string
	Summary     string
	Founders    []Founder
}

// MergeEnrichment 合并补全结果并标记为enriched
// 约束: 非空字段永不被空值覆盖
func (r *Record) MergeEnrichment(fields EnrichedFields) {
	r.applyFields(fields)

	now := time.Now()
	r.EnrichedAt = &now
	r.Status = StatusEnriched
}

// MarkEnrichmentFailed 标记补全失败
// 已有字段保持原样,仍为空的自由文本字段写入占位值
func (r *Record) MarkEnrichmentFailed(partial EnrichedFields) {
	r.applyFields(partial)

	if r.Description == "" {
		r.Description = DescriptionNotAvailable
	}
	if r.Summary == "" {
		r.Summary = SummaryNotAvailable
	}
	r.Status = StatusEnrichmentFailed
}

// applyFields 写入非空字段,空值不覆盖已有内容
func (r *Record) applyFields(fields EnrichedFields) {
	// 详情页名称更长且更干净时才替换
	if len(fields.Name) > len(r.Name) {
		r.Name = fields.Name
	}
	if fields.Description != "" {
		r.Description = fields.Description
	}
	if fields.Summary != "" {
		r.Summary = fields.Summary
	}
	if len(fields.Founders) > 0 && len(r.Founders) == 0 {
		r.Founders = fields.Founders
	}
}

// AddCategories 追加类别标签,保持插入顺序并去重
func (r *Record) AddCategories(categories ...string) {
	r.Categories = dedupeOrdered(append(r.Categories, categories...))
}

// ToJSON 序列化为JSON
func (r *Record) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// dedupeOrdered 去重并保持首次出现的顺序
func dedupeOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
