package core

import (
	"testing"
	"time"
)

func TestMemorySampler(t *testing.T) {
	sampler := NewMemorySampler(10 * time.Millisecond)
	sampler.Start()

	time.Sleep(50 * time.Millisecond)

	peak := sampler.Stop()
	if peak == 0 {
		t.Error("采样后峰值内存应大于0")
	}

	// 重复Stop不阻塞且返回相同峰值
	if again := sampler.Stop(); again != peak {
		t.Errorf("重复Stop应返回相同峰值: %d != %d", again, peak)
	}
}

func TestMemorySamplerStopWithoutStart(t *testing.T) {
	sampler := NewMemorySampler(time.Second)
	// 未启动时Stop不应阻塞
	if peak := sampler.Stop(); peak != 0 {
		t.Errorf("未启动的采样器峰值应为0: %d", peak)
	}
}
