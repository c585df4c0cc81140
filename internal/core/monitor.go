package core

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/utils"
	"github.com/shirou/gopsutil/v3/process"
)

// MemorySampler 进程内存采样器
// 后台周期性读取本进程RSS,记录峰值。采集运行结束后
// 峰值写入会话统计,仅用于观测,不参与控制流。
type MemorySampler struct {
	interval time.Duration
	peak     atomic.Uint64
	started  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewMemorySampler 创建内存采样器
func NewMemorySampler(interval time.Duration) *MemorySampler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &MemorySampler{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start 启动后台采样
func (m *MemorySampler) Start() {
	m.started = true

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		utils.Warnf("内存采样器初始化失败: %v", err)
		close(m.done)
		return
	}

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.sample(proc)
		for {
			select {
			case <-m.stop:
				m.sample(proc)
				return
			case <-ticker.C:
				m.sample(proc)
			}
		}
	}()
}

// Stop 停止采样并返回峰值RSS(字节)
// 未启动时直接返回当前峰值
func (m *MemorySampler) Stop() uint64 {
	if !m.started {
		return m.peak.Load()
	}
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	<-m.done
	return m.peak.Load()
}

// Peak 当前已观测到的峰值RSS(字节)
func (m *MemorySampler) Peak() uint64 {
	return m.peak.Load()
}

// sample 读取一次RSS并更新峰值
func (m *MemorySampler) sample(proc *process.Process) {
	info, err := proc.MemoryInfo()
	if err != nil {
		utils.Debugf("读取进程内存失败: %v", err)
		return
	}
	for {
		current := m.peak.Load()
		if info.RSS <= current {
			return
		}
		if m.peak.CompareAndSwap(current, info.RSS) {
			return
		}
	}
}
