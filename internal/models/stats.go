package models

import (
	"encoding/json"
	"time"
)

// SessionStats 会话统计
// 生命周期与单次运行绑定: 运行开始时初始化,各阶段递增计数,
// Finalize之后只读,不参与控制流
type SessionStats struct {
	TotalProcessed        int `json:"total_processed"`        // 第一遍处理的链接数
	SuccessfulCaptures    int `json:"successful_captures"`    // 成功捕获的记录数
	SuccessfulEnrichments int `json:"successful_enrichments"` // 成功补全的记录数
	Errors                int `json:"errors"`                 // 错误数(捕获+补全)
	Skipped               int `json:"skipped"`                // 主动跳过的导航元素数

	StartTime time.Time  `json:"start_time"` // 运行开始时间
	EndTime   *time.Time `json:"end_time"`   // 运行结束时间(Finalize时写入)

	// 进程峰值内存(字节),由资源采样器写入
	PeakMemory uint64 `json:"peak_memory"`

	finalized bool
}

// NewSessionStats 创建统计并记录开始时间
func NewSessionStats() *SessionStats {
	return &SessionStats{
		StartTime: time.Now(),
	}
}

// Finalize 写入结束时间,之后统计只读
func (s *SessionStats) Finalize() {
	if s.finalized {
		return
	}
	now := time.Now()
	s.EndTime = &now
	s.finalized = true
}

// Finalized 是否已结束
func (s *SessionStats) Finalized() bool {
	return s.finalized
}

// Duration 运行耗时(秒),未结束时返回0
func (s *SessionStats) Duration() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Seconds()
}

// ToJSON 序列化为JSON
func (s *SessionStats) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
