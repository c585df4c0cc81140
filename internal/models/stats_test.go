package models

import (
	"testing"
	"time"
)

func TestSessionStatsFinalize(t *testing.T) {
	stats := NewSessionStats()
	if stats.StartTime.IsZero() {
		t.Error("开始时间应该被设置")
	}
	if stats.Finalized() {
		t.Error("新统计不应处于已结束状态")
	}
	if stats.Duration() != 0 {
		t.Error("未结束时耗时应为0")
	}

	stats.Finalize()
	if !stats.Finalized() {
		t.Error("Finalize后应处于已结束状态")
	}
	if stats.EndTime == nil {
		t.Fatal("结束时间应该被设置")
	}

	// Finalize幂等: 重复调用不改变结束时间
	first := *stats.EndTime
	time.Sleep(10 * time.Millisecond)
	stats.Finalize()
	if !stats.EndTime.Equal(first) {
		t.Error("重复Finalize不应改变结束时间")
	}

	if stats.Duration() < 0 {
		t.Errorf("耗时不应为负: %f", stats.Duration())
	}
}
