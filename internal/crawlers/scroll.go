package crawlers

import (
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/utils"
)

// scrollDriver 滚动循环对页面的最小依赖
// BrowserSession实现此接口,测试中可用假对象替换
type scrollDriver interface {
	ScrollToBottom() error
	PageHeight() (float64, error)
	RecordHrefs() ([]string, error)
}

// ScrollLoopConfig 滚动收敛循环配置
type ScrollLoopConfig struct {
	RequiredStableRounds int           // 链接集连续稳定轮数阈值
	MaxScrollAttempts    int           // 最大滚动轮数(未收敛也停止)
	LinkUpperBound       int           // 去重链接数上限,提前退出
	ScrollDelay          time.Duration // 每轮滚动后的等待时间,让懒加载内容挂载
}

// ScrollResult 滚动收敛结果
type ScrollResult struct {
	Links     *LinkSet // 收敛期间累积的去重规范化链接
	Converged bool     // 是否通过链接集稳定信号正常收敛
	Rounds    int      // 实际执行的滚动轮数
}

// ScrollLoop 滚动收敛循环
// 反复触发"滚动到底部",每轮观测两个独立信号:
//   (1) 页面总高度  (2) DOM中记录链接集合的基数
// 链接集稳定是权威终止信号: 虚拟化列表可能在高度不变时仍在懒挂载
// 新链接元素,反之亦然。高度信号仅作为次要观测记录日志。
type ScrollLoop struct {
	driver     scrollDriver
	normalizer *Normalizer
	config     ScrollLoopConfig
}

// NewScrollLoop 创建滚动收敛循环
func NewScrollLoop(driver scrollDriver, normalizer *Normalizer, config ScrollLoopConfig) *ScrollLoop {
	return &ScrollLoop{
		driver:     driver,
		normalizer: normalizer,
		config:     config,
	}
}

// Run 执行滚动直到收敛、达到轮数上限或链接数上限
// 未收敛不是致命错误: 下游阶段继续处理已收集到的链接
func (l *ScrollLoop) Run() (*ScrollResult, error) {
	result := &ScrollResult{Links: NewLinkSet()}

	lastHeight := float64(-1)
	heightStableRounds := 0
	linkStableRounds := 0

	for round := 0; round < l.config.MaxScrollAttempts; round++ {
		result.Rounds = round + 1

		if err := l.driver.ScrollToBottom(); err != nil {
			return result, err
		}
		time.Sleep(l.config.ScrollDelay)

		// 信号1: 页面高度(次要)
		height, err := l.driver.PageHeight()
		if err != nil {
			return result, err
		}
		if height == lastHeight {
			heightStableRounds++
		} else {
			heightStableRounds = 0
			lastHeight = height
		}

		// 信号2: 链接集基数(权威)
		hrefs, err := l.driver.RecordHrefs()
		if err != nil {
			return result, err
		}

		prevCount := result.Links.Len()
		for _, href := range hrefs {
			if key, ok := l.normalizer.Normalize(href); ok {
				result.Links.Add(key)
			}
		}
		currCount := result.Links.Len()

		if currCount == prevCount {
			linkStableRounds++
		} else {
			linkStableRounds = 0
		}

		utils.Debugf("滚动第%d轮: 链接数=%d, 链接稳定=%d, 高度稳定=%d",
			round+1, currCount, linkStableRounds, heightStableRounds)

		// 权威信号: 链接集连续稳定
		if linkStableRounds >= l.config.RequiredStableRounds {
			result.Converged = true
			utils.Infof("滚动收敛: %d 条去重链接, 共%d轮 (链接稳定%d轮, 高度稳定%d轮)",
				currCount, round+1, linkStableRounds, heightStableRounds)
			return result, nil
		}

		// 链接数达到上限,停止以限制超长列表的工作量
		if l.config.LinkUpperBound > 0 && currCount >= l.config.LinkUpperBound {
			result.Converged = true
			utils.Infof("已收集 %d 条去重链接,达到上限,停止滚动", currCount)
			return result, nil
		}
	}

	utils.Warnf("滚动未收敛: 达到最大轮数%d, 已收集 %d 条链接,继续后续阶段",
		l.config.MaxScrollAttempts, result.Links.Len())
	return result, nil
}
