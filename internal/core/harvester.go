package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/crawlers"
	"github.com/RecoveryAshes/YCHarvest/internal/extract"
	"github.com/RecoveryAshes/YCHarvest/internal/models"
	"github.com/RecoveryAshes/YCHarvest/internal/utils"
)

// PageSource 第二遍补全的详情页HTML来源
// browser模式由BrowserSession实现,static模式由StaticFetcher实现
type PageSource interface {
	FetchHTML(pageURL string, timeout time.Duration) (string, error)
}

// 捕获完整性审计阈值: 成功捕获低于发现链接数的80%时告警
const captureAuditRatio = 0.8

// Harvester 主采集协调器
// 两遍式流水线: 第一遍从列表页锚文本捕获记录骨架,
// 第二遍逐条访问详情页补全描述、创始人和摘要。
// 所有阶段由单个驱动goroutine协作式推进,记录集合无并发访问。
type Harvester struct {
	config models.HarvestConfig
	runID  string

	normalizer *crawlers.Normalizer
	fetcher    *crawlers.StaticFetcher
	writer     *utils.SnapshotWriter
	sampler    *MemorySampler

	// 记录集合与身份索引,插入顺序即发现顺序
	records []*models.Record
	index   map[string]*models.Record

	stats *models.SessionStats

	// 发现阶段结果,供运行报告使用
	discoveredLinks int
	converged       bool

	csvFile  string
	jsonFile string
}

// NewHarvester 创建采集器
func NewHarvester(config models.HarvestConfig) (*Harvester, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	normalizer, err := crawlers.NewNormalizer(config.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("创建链接规范器失败: %w", err)
	}

	// 静态抓取器兼任发现回退来源和static模式的详情页来源
	fetcher, err := crawlers.NewStaticFetcher(config.ListingURL, config.CompanyPageTimeout)
	if err != nil {
		return nil, fmt.Errorf("创建静态抓取器失败: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	writer, err := utils.NewSnapshotWriter(config.OutputDir, timestamp)
	if err != nil {
		return nil, fmt.Errorf("创建检查点写入器失败: %w", err)
	}

	return &Harvester{
		config:     config,
		runID:      models.NewRunID(),
		normalizer: normalizer,
		fetcher:    fetcher,
		writer:     writer,
		sampler:    NewMemorySampler(5 * time.Second),
		index:      make(map[string]*models.Record),
		stats:      models.NewSessionStats(),
	}, nil
}

// Stats 返回会话统计
func (h *Harvester) Stats() *models.SessionStats {
	return h.stats
}

// Records 返回当前记录集合
func (h *Harvester) Records() []*models.Record {
	return h.records
}

// OutputDir 返回运行级数据目录
func (h *Harvester) OutputDir() string {
	return h.writer.DataDir()
}

// Run 执行完整的采集流水线
// 执行流程:
//  1. 启动浏览器会话
//  2. 链接发现 (滚动收敛 + 静态回退)
//  3. 第一遍捕获 (锚文本 -> 记录骨架)
//  4. 第二遍补全 (详情页 -> 描述/创始人/摘要)
//  5. 最终落盘 + 运行报告
func (h *Harvester) Run() error {
	startTime := time.Now()

	utils.Infof("🚀 开始采集任务 [%s]", h.runID)
	utils.Infof("列表页: %s", h.config.ListingURL)
	utils.Infof("补全模式: %s", h.config.Mode)
	utils.Infof("输出目录: %s", h.writer.DataDir())

	h.sampler.Start()

	session, err := crawlers.NewBrowserSession(h.config.Headless)
	if err != nil {
		h.finishStats()
		return fmt.Errorf("启动浏览器会话失败: %w", err)
	}
	defer session.Close()

	// 链接发现(错误可恢复,最坏情况产出空数据集)
	discoverer := crawlers.NewDiscoverer(session, h.fetcher, h.normalizer, h.config)
	links, scrollResult := discoverer.Discover()
	h.discoveredLinks = len(links)
	if scrollResult != nil {
		h.converged = scrollResult.Converged
	}

	// 第一遍: 捕获
	h.firstPassCapture(links)

	// 第二遍: 补全
	// static模式直接HTTP抓取详情页,browser模式复用发现阶段的会话
	var source PageSource = session
	if h.config.Mode == models.ModeStatic {
		source = h.fetcher
	}
	h.secondPassEnrich(source)

	// 最终落盘取代进度检查点
	csvFile, jsonFile, err := h.writer.WriteFinal(h.records)
	if err != nil {
		h.finishStats()
		return fmt.Errorf("写入最终数据失败: %w", err)
	}
	h.csvFile = csvFile
	h.jsonFile = jsonFile

	h.finishStats()
	h.auditCapture()

	report := h.buildReport(startTime)
	if err := h.writer.WriteRunReport(report); err != nil {
		utils.Warnf("保存运行报告失败: %v", err)
	}

	utils.Infof("✨ 采集任务完成: %d 条记录, 耗时 %.2f秒",
		len(h.records), h.stats.Duration())
	return nil
}

// firstPassCapture 第一遍: 从锚文本创建记录骨架
// 单条失败不中断整体流程,导航元素主动跳过
func (h *Harvester) firstPassCapture(links []crawlers.DiscoveredLink) {
	utils.Infof("📥 第一遍捕获: %d 条链接", len(links))

	capturedSinceSave := 0
	for _, link := range links {
		h.stats.TotalProcessed++

		if h.captureOne(link) {
			h.stats.SuccessfulCaptures++
			capturedSinceSave++
		}

		// 周期性进度保存,中途崩溃时已捕获记录不丢失
		if capturedSinceSave >= h.config.ProgressSaveInterval {
			if err := h.writer.WriteProgress(h.records); err != nil {
				utils.Warnf("保存进度失败: %v", err)
			}
			capturedSinceSave = 0
		}
	}

	utils.Infof("✅ 第一遍完成: 捕获 %d, 跳过 %d, 错误 %d",
		h.stats.SuccessfulCaptures, h.stats.Skipped, h.stats.Errors)
}

// captureOne 处理单条发现链接,返回是否产生了新记录
func (h *Harvester) captureOne(link crawlers.DiscoveredLink) (captured bool) {
	defer func() {
		if r := recover(); r != nil {
			utils.Errorf("捕获记录时发生panic [%s]: %v", link.IdentityKey, r)
			h.stats.Errors++
			captured = false
		}
	}()

	// 导航元素: 主动跳过,不计入错误
	if extract.IsNavigationLabel(link.AnchorText) {
		utils.Debugf("跳过导航元素: %q", link.AnchorText)
		h.stats.Skipped++
		return false
	}

	// 身份键去重: 首次出现者胜出
	if existing, ok := h.index[link.IdentityKey]; ok {
		// 重复出现仍可能携带新的类别标签
		_, categories := extract.ParseAnchorText(link.AnchorText)
		existing.AddCategories(categories...)
		return false
	}

	name, categories := extract.ParseAnchorText(link.AnchorText)
	if name == "" {
		// 滚动期间见过但收敛后已卸载的链接没有锚文本,用URL路径兜底
		name = nameFromIdentityKey(link.IdentityKey)
	}

	record := models.NewRecord(link.IdentityKey, name, categories)
	h.records = append(h.records, record)
	h.index[link.IdentityKey] = record
	return true
}

// secondPassEnrich 第二遍: 分块访问详情页补全记录
// 分块之间礼貌延迟并保存进度,单条失败只影响该条记录
func (h *Harvester) secondPassEnrich(source PageSource) {
	pending := make([]*models.Record, 0, len(h.records))
	for _, r := range h.records {
		if r.Status == models.StatusCaptured {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		utils.Warn("没有待补全的记录,跳过第二遍")
		return
	}

	utils.Infof("🔍 第二遍补全: %d 条记录, 分块大小 %d", len(pending), h.config.ChunkSize)
	bar := utils.NewProgressBar(len(pending), "补全记录")

	for start := 0; start < len(pending); start += h.config.ChunkSize {
		end := start + h.config.ChunkSize
		if end > len(pending) {
			end = len(pending)
		}

		for _, record := range pending[start:end] {
			if h.enrichOne(source, record) {
				h.stats.SuccessfulEnrichments++
			} else {
				h.stats.Errors++
			}
			_ = bar.Add(1)
		}

		// 分块结束: 保存进度
		if err := h.writer.WriteProgress(h.records); err != nil {
			utils.Warnf("保存进度失败: %v", err)
		}

		// 分块间礼貌延迟,最后一块不等待
		if end < len(pending) {
			time.Sleep(h.config.ChunkDelay)
		}
	}

	fmt.Println()
	utils.Infof("✅ 第二遍完成: 补全成功 %d / %d", h.stats.SuccessfulEnrichments, len(pending))
}

// finishStats 写入峰值内存并冻结统计
func (h *Harvester) finishStats() {
	h.stats.PeakMemory = h.sampler.Stop()
	h.stats.Finalize()
}

// auditCapture 捕获完整性审计
// 成功捕获数远低于发现链接数说明第一遍存在系统性问题
func (h *Harvester) auditCapture() {
	if h.discoveredLinks == 0 {
		return
	}
	usable := h.discoveredLinks - h.stats.Skipped
	if usable <= 0 {
		return
	}
	ratio := float64(h.stats.SuccessfulCaptures) / float64(usable)
	if ratio < captureAuditRatio {
		utils.Warnf("捕获完整性审计: 仅捕获 %d/%d 条可用链接 (%.0f%%),建议检查列表页结构是否变化",
			h.stats.SuccessfulCaptures, usable, ratio*100)
	}
}

// buildReport 生成运行报告
func (h *Harvester) buildReport(startTime time.Time) *models.RunReport {
	enriched := 0
	failed := 0
	for _, r := range h.records {
		switch r.Status {
		case models.StatusEnriched:
			enriched++
		case models.StatusEnrichmentFailed:
			failed++
		}
	}

	endTime := startTime
	if h.stats.EndTime != nil {
		endTime = *h.stats.EndTime
	}

	return &models.RunReport{
		RunID:      h.runID,
		ListingURL: h.config.ListingURL,
		Mode:       h.config.Mode,

		StartTime: startTime,
		EndTime:   endTime,
		Duration:  h.stats.Duration(),

		Stats: *h.stats,

		TotalRecords:    len(h.records),
		EnrichedRecords: enriched,
		FailedRecords:   failed,

		DiscoveredLinks: h.discoveredLinks,
		Converged:       h.converged,

		OutputDir: h.writer.DataDir(),
		CSVFile:   h.csvFile,
		JSONFile:  h.jsonFile,

		Config: h.config,
	}
}

// nameFromIdentityKey 从详情页URL路径兜底推导名称
// 例: /companies/acme-labs -> "Acme Labs"
func nameFromIdentityKey(identityKey string) string {
	slug := identityKey
	if idx := strings.LastIndex(slug, "/"); idx != -1 {
		slug = slug[idx+1:]
	}

	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
