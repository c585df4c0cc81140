package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 描述段落的最小长度
const minDescriptionLength = 50

// 动作动词: 强烈暗示"公司做什么"的句式
var actionVerbs = []string{
	"builds", "creates", "develops", "provides", "offers", "helps", "enables",
}

// 业务名词: 产品形态类关键词
var businessNouns = []string{
	"platform", "software", "ai", "solution", "service", "tool", "system",
}

// 样板文本: 出现即说明该段落不是正文描述
var boilerplatePhrases = []string{
	"home >", "companies >", "back to", "y combinator",
	"founded in", "employees based", "san francisco", "new york",
}

// 评分阶段的负面指标
var scoringPenalties = []string{
	"founded in", "based in", "employees", "y combinator", "yc",
}

// 正文容器选择器,按优先级排列
var mainContentSelectors = []string{"main", "article", ".content", "section"}

// ExtractDescription 从详情页提取公司描述
// 优先级: (a) 页面meta描述(足够长且非样板开头)
//         (b) 正文容器内第一个命中关键词的长段落
//         (c) 全部段落打分,取最高分者
// 找不到合格段落时返回空串,由调用方决定占位值
func ExtractDescription(doc *goquery.Document, companyName string) string {
	// (a) meta描述
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content = strings.TrimSpace(content)
		lower := strings.ToLower(content)
		if len(content) > 30 && !strings.HasPrefix(lower, "home") && !strings.HasPrefix(lower, "companies") {
			return CleanSentence(content)
		}
	}

	// (b) 正文容器内的首个描述段落
	for _, selector := range mainContentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		var found string
		container.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := strings.TrimSpace(p.Text())
			if isDescriptionParagraph(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return CleanSentence(found)
		}
	}

	// (c) 打分回退: 遍历全部段落
	best := ""
	bestScore := 0
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len(text) < minDescriptionLength {
			return
		}
		score := ScoreDescription(text, companyName)
		if score > bestScore || (score == bestScore && score > 0 && len(text) > len(best)) {
			best = text
			bestScore = score
		}
	})

	if best != "" {
		return CleanSentence(best)
	}
	return ""
}

// isDescriptionParagraph 判断段落是否可能是公司主描述
func isDescriptionParagraph(text string) bool {
	if len(text) < minDescriptionLength {
		return false
	}
	lower := strings.ToLower(text)
	if containsAny(lower, boilerplatePhrases) {
		return false
	}
	return containsAny(lower, actionVerbs) || containsAny(lower, businessNouns)
}

// ScoreDescription 为候选描述段落打分
// +2 包含公司名, +3 包含动作动词, +1/业务名词命中, -2 出现样板短语
func ScoreDescription(text string, companyName string) int {
	lower := strings.ToLower(text)
	score := 0

	if companyName != "" && strings.Contains(lower, strings.ToLower(companyName)) {
		score += 2
	}
	if containsAny(lower, actionVerbs) {
		score += 3
	}
	score += countMatches(lower, businessNouns)

	if containsAny(lower, scoringPenalties) {
		score -= 2
	}

	return score
}
