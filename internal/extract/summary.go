package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 团队背景关键词
var teamKeywords = []string{
	"founded by", "co-founder", "former", "ex-", "previously at",
	"stanford", "mit", "harvard", "berkeley", "phd", "google", "facebook",
	"microsoft", "apple", "amazon", "tesla", "experience at",
}

// 业务进展(traction)关键词
var tractionKeywords = []string{
	"customers", "users", "revenue", "growth", "funding", "raised",
	"series a", "series b", "seed", "million", "billion",
	"partnership", "enterprise", "fortune 500",
}

// 独特性关键词
var uniqueKeywords = []string{
	"first", "only", "unique", "breakthrough", "proprietary", "patent",
	"innovative", "revolutionary", "cutting-edge", "novel",
	"10x", "100x", "faster", "better", "advanced",
}

// 句子级样板过滤: 命中即排除
var sentenceBoilerplate = []string{
	"y combinator", "yc", "founded in", "based in", "employees",
	"home >", "companies >", "back to",
}

// 非正文元素,提取前移除
const nonContentSelector = `nav, .nav, .navigation, .breadcrumb, .breadcrumbs, header, footer`

// ExtractSummary 构建两段式自由文本摘要
// "What They Do"来自描述提取器;"Specific Insights"由至多各一句
// 团队背景、业务进展、独特性句子拼接而成,三组关键词互不重叠
// 注意: 会从doc中移除导航类元素,应在其他提取器之后调用
func ExtractSummary(doc *goquery.Document, companyName string) string {
	// 移除导航类元素,避免面包屑污染句子来源
	doc.Find(nonContentSelector).Remove()

	var parts []string

	if description := ExtractDescription(doc, companyName); description != "" {
		parts = append(parts, "What They Do: "+description)
	}

	var insights []string
	if team := extractTeamSentence(doc); team != "" {
		insights = append(insights, team)
	}

	mainText := mainContentText(doc)
	sentences := SplitSentences(StripBreadcrumbs(mainText))

	if traction := firstKeywordSentence(sentences, tractionKeywords); traction != "" {
		insights = append(insights, traction)
	}
	if unique := firstKeywordSentence(sentences, uniqueKeywords); unique != "" {
		insights = append(insights, unique)
	}

	if len(insights) > 0 {
		parts = append(parts, "Specific Insights: "+strings.Join(insights, " "))
	}

	return strings.Join(parts, " | ")
}

// extractTeamSentence 从团队区块提取一句创始人背景
func extractTeamSentence(doc *goquery.Document) string {
	result := ""
	doc.Find(founderSectionSelector).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		text := strings.TrimSpace(section.Text())
		if len(text) < 30 {
			return true
		}
		if s := firstKeywordSentence(SplitSentences(StripBreadcrumbs(text)), teamKeywords); s != "" {
			result = s
			return false
		}
		return true
	})
	return result
}

// firstKeywordSentence 返回首个命中关键词且非样板的句子
func firstKeywordSentence(sentences []string, keywords []string) string {
	for _, sentence := range sentences {
		if len(sentence) <= 30 {
			continue
		}
		lower := strings.ToLower(sentence)
		if containsAny(lower, sentenceBoilerplate) {
			continue
		}
		if containsAny(lower, keywords) {
			return CleanSentence(sentence)
		}
	}
	return ""
}

// mainContentText 提取正文区域文本
// 优先main/article/.content/section中有实质内容的区块,
// 全部缺失时退回body全文
func mainContentText(doc *goquery.Document) string {
	var texts []string
	for _, selector := range mainContentSelectors {
		doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			text := strings.TrimSpace(el.Text())
			if len(text) > 100 {
				texts = append(texts, text)
			}
		})
	}
	if len(texts) == 0 {
		texts = append(texts, strings.TrimSpace(doc.Find("body").Text()))
	}
	return strings.Join(texts, " ")
}
