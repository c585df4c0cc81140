package core

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RecoveryAshes/YCHarvest/internal/extract"
	"github.com/RecoveryAshes/YCHarvest/internal/models"
	"github.com/RecoveryAshes/YCHarvest/internal/utils"
)

// enrichOne 补全单条记录,返回是否成功
// 提取结果和错误显式返回,由这里统一合并: 成功走MergeEnrichment,
// 任何失败(抓取、解析、panic)都转化为enrichment_failed状态,
// 已有字段保持原样,不影响其他记录
func (h *Harvester) enrichOne(source PageSource, record *models.Record) bool {
	fields, err := h.enrichFields(source, record)
	if err != nil {
		utils.Warnf("补全失败 [%s]: %v", record.IdentityKey, err)
		record.MarkEnrichmentFailed(fields)
		return false
	}

	record.MergeEnrichment(fields)
	utils.Debugf("补全成功 [%s]: 描述=%d字符, 创始人=%d",
		record.IdentityKey, len(fields.Description), len(fields.Founders))
	return true
}

// enrichFields 抓取详情页并运行提取器,返回提取出的字段集合
func (h *Harvester) enrichFields(source PageSource, record *models.Record) (fields models.EnrichedFields, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("提取过程发生panic: %v", r)
		}
	}()

	// 身份键即规范化后的详情页绝对URL,可直接导航
	htmlContent, err := source.FetchHTML(record.IdentityKey, h.config.CompanyPageTimeout)
	if err != nil {
		return fields, fmt.Errorf("抓取详情页失败: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return fields, fmt.Errorf("解析详情页失败: %w", err)
	}

	return extractFields(doc, record.Name), nil
}

// extractFields 对详情页文档运行全部提取器
// 摘要提取会移除文档中的导航元素,必须放在最后
func extractFields(doc *goquery.Document, currentName string) models.EnrichedFields {
	fields := models.EnrichedFields{}

	// 详情页标题通常比锚文本首行更完整
	if heading := strings.TrimSpace(doc.Find("h1").First().Text()); heading != "" {
		fields.Name = heading
	}

	name := fields.Name
	if name == "" {
		name = currentName
	}

	fields.Description = extract.ExtractDescription(doc, name)
	fields.Founders = extract.ExtractFounders(doc)
	fields.Summary = extract.ExtractSummary(doc, name)

	return fields
}
