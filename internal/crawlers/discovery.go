package crawlers

import (
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/models"
	"github.com/RecoveryAshes/YCHarvest/internal/utils"
)

// DiscoveredLink 发现阶段的输出单元
// 身份键由Normalizer分配,锚文本供第一遍解析名称和类别
type DiscoveredLink struct {
	IdentityKey string
	AnchorText  string
}

// listingDriver 发现阶段对浏览器会话的依赖
type listingDriver interface {
	scrollDriver
	Navigate(pageURL string, timeout time.Duration) error
	RecordAnchors() ([]Anchor, error)
}

// Discoverer 链接发现器
// 驱动浏览器会话完成: 列表页导航 -> 滚动收敛 -> 锚元素收集 ->
// 规范化去重。滚动期间见过但收敛后已被虚拟化列表卸载的链接
// 仍然保留(锚文本为空)。
type Discoverer struct {
	driver     listingDriver
	fetcher    *StaticFetcher // 静态回退来源,可为nil
	normalizer *Normalizer
	config     models.HarvestConfig
}

// NewDiscoverer 创建链接发现器
func NewDiscoverer(driver listingDriver, fetcher *StaticFetcher, normalizer *Normalizer, config models.HarvestConfig) *Discoverer {
	return &Discoverer{
		driver:     driver,
		fetcher:    fetcher,
		normalizer: normalizer,
		config:     config,
	}
}

// Discover 执行完整的发现流程
// 发现阶段的错误全部可恢复: 带着已收集到的部分结果继续,
// 最坏情况返回空链接集,由下游产出空数据集和统计摘要
func (d *Discoverer) Discover() ([]DiscoveredLink, *ScrollResult) {
	utils.Infof("🌐 开始链接发现: %s", d.config.ListingURL)

	var links []DiscoveredLink
	var scrollResult *ScrollResult

	if err := d.driver.Navigate(d.config.ListingURL, d.config.PageTimeout); err != nil {
		utils.Warnf("列表页导航失败,跳过滚动阶段: %v", err)
	} else {
		// 等待首屏内容挂载
		time.Sleep(3 * time.Second)

		loop := NewScrollLoop(d.driver, d.normalizer, ScrollLoopConfig{
			RequiredStableRounds: d.config.ScrollStabilityRounds,
			MaxScrollAttempts:    d.config.MaxScrollAttempts,
			LinkUpperBound:       d.config.TargetRecordUpperBound,
			ScrollDelay:          d.config.ScrollDelay,
		})

		var err error
		scrollResult, err = loop.Run()
		if err != nil {
			// 滚动失败非致命: 带着已收集的链接继续
			utils.Warnf("滚动过程出错,继续处理已收集的链接: %v", err)
		}

		links = d.collectAnchors(scrollResult)
	}

	// 发现数量低于预期: 记录警告并尝试静态回退
	if len(links) < d.config.MinExpectedRecords {
		utils.Warnf("仅发现 %d 条链接,低于预期的 %d 条", len(links), d.config.MinExpectedRecords)
		links = d.staticFallback(links)
	}

	utils.Infof("✅ 链接发现完成: %d 条去重记录链接", len(links))
	return links, scrollResult
}

// collectAnchors 收敛后收集锚元素并与滚动期间的链接集合并
func (d *Discoverer) collectAnchors(scrollResult *ScrollResult) []DiscoveredLink {
	ordered := NewLinkSet()
	texts := make(map[string]string)

	anchors, err := d.driver.RecordAnchors()
	if err != nil {
		utils.Warnf("收集锚元素失败,仅使用滚动期间收集的链接: %v", err)
	}
	for _, anchor := range anchors {
		key, ok := d.normalizer.Normalize(anchor.Href)
		if !ok {
			continue
		}
		// 首次出现者确立处理顺序和锚文本
		if ordered.Add(key) {
			texts[key] = anchor.Text
		}
	}

	// 滚动期间见过、但收敛后DOM中已不存在的链接
	if scrollResult != nil {
		for _, key := range scrollResult.Links.Keys() {
			ordered.Add(key)
		}
	}

	links := make([]DiscoveredLink, 0, ordered.Len())
	for _, key := range ordered.Keys() {
		links = append(links, DiscoveredLink{IdentityKey: key, AnchorText: texts[key]})
	}
	return links
}

// staticFallback 通过HTTP抓取列表页补充链接
// 虚拟化列表滚动失败时,服务端渲染的首屏仍可能携带部分记录链接
func (d *Discoverer) staticFallback(links []DiscoveredLink) []DiscoveredLink {
	if d.fetcher == nil {
		return links
	}

	htmlContent, err := d.fetcher.FetchHTML(d.config.ListingURL, d.config.PageTimeout)
	if err != nil {
		utils.Warnf("静态回退抓取失败: %v", err)
		return links
	}

	anchors, err := ExtractAnchorsFromHTML(htmlContent)
	if err != nil {
		utils.Warnf("静态回退解析失败: %v", err)
		return links
	}

	existing := NewLinkSet()
	for _, link := range links {
		existing.Add(link.IdentityKey)
	}

	added := 0
	for _, anchor := range anchors {
		key, ok := d.normalizer.Normalize(anchor.Href)
		if !ok {
			continue
		}
		if existing.Add(key) {
			links = append(links, DiscoveredLink{IdentityKey: key, AnchorText: anchor.Text})
			added++
		}
	}

	if added > 0 {
		utils.Infof("静态回退补充了 %d 条链接", added)
	}
	return links
}
