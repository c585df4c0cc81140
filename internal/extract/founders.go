package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RecoveryAshes/YCHarvest/internal/models"
)

// 创始人结果上限
const maxFounders = 5

// 创始人/团队区块的选择器
const founderSectionSelector = `.founder, .team-member, .people, .leadership, [class*="founder"], [class*="team"]`

// 职业社交网络个人主页锚选择器
const profileAnchorSelector = `a[href*="linkedin.com"]`

// 纯文本回退时的创始人指示词
var founderIndicators = []string{
	"founder", "co-founder", "ceo", "cto", "coo", "founders",
	"team", "leadership", "about us", "our story",
}

// 姓名提取时排除的常见词
var nameExcludeWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "for": true,
	"with": true, "from": true, "to": true, "in": true, "on": true, "at": true,
	"founder": true, "co-founder": true, "ceo": true, "cto": true, "coo": true,
	"chief": true, "engineer": true, "officer": true, "president": true,
	"director": true, "manager": true, "lead": true, "senior": true, "junior": true,
	"company": true, "linkedin": true, "profile": true, "previously": true,
	"currently": true, "formerly": true, "combinator": true,
	"summer": true, "winter": true, "spring": true, "fall": true,
}

// 双词组合中出现即整体丢弃的职位词
var nameRejectPatterns = []string{"founder", "engineer", "officer", "director", "manager"}

// ExtractFounders 从详情页提取创始人及其个人主页链接
// 优先级: (a) 创始人区块内的个人主页锚
//         (b) 全页范围的个人主页锚
//         (c) 无合格锚时,按创始人指示词做纯姓名回退
// 有主页链接按链接去重,否则按姓名去重;结果上限5条
func ExtractFounders(doc *goquery.Document) []models.Founder {
	var founders []models.Founder

	// (a) 创始人区块内
	doc.Find(founderSectionSelector).Each(func(_ int, section *goquery.Selection) {
		section.Find(profileAnchorSelector).Each(func(_ int, link *goquery.Selection) {
			if f, ok := founderFromAnchor(link, 3); ok {
				founders = append(founders, f)
			}
		})
	})

	// (b) 全页范围
	if len(founders) == 0 {
		doc.Find(profileAnchorSelector).Each(func(_ int, link *goquery.Selection) {
			if f, ok := founderFromAnchor(link, 4); ok {
				founders = append(founders, f)
			}
		})
	}

	// (c) 纯姓名回退
	if len(founders) == 0 {
		text := doc.Find("body").Text()
		lower := strings.ToLower(text)
		if containsAny(lower, founderIndicators) {
			for _, name := range ExtractNamesFromText(text) {
				founders = append(founders, models.Founder{Name: name})
			}
		}
	}

	return dedupeFounders(founders)
}

// founderFromAnchor 从一个锚元素解析创始人
// maxAncestors 限定姓名缺失时向上查找的祖先层数
func founderFromAnchor(link *goquery.Selection, maxAncestors int) (models.Founder, bool) {
	href, _ := link.Attr("href")
	profileURL := NormalizeProfileURL(href)
	if profileURL == "" {
		return models.Founder{}, false
	}

	// 优先用锚自身文本,排除平台名占位("LinkedIn"等)
	name := strings.TrimSpace(link.Text())
	if len(name) < 2 || strings.HasPrefix(strings.ToLower(name), "linkedin") {
		name = nameFromAncestors(link, maxAncestors)
	}

	if name == "" || strings.HasPrefix(strings.ToLower(name), "linkedin") {
		return models.Founder{}, false
	}
	return models.Founder{Name: name, ProfileURL: profileURL}, true
}

// nameFromAncestors 向上遍历祖先元素,寻找双大写词姓名
func nameFromAncestors(link *goquery.Selection, maxAncestors int) string {
	current := link
	for level := 0; level < maxAncestors; level++ {
		current = current.Parent()
		if current.Length() == 0 {
			return ""
		}
		text := urlRe.ReplaceAllString(current.Text(), "")
		if names := ExtractNamesFromText(text); len(names) > 0 {
			return names[0]
		}
	}
	return ""
}

// NormalizeProfileURL 规范化个人主页URL
// 强制https协议,去掉query/fragment和尾部斜杠,统一www子域;
// 仅接受个人主页路径(/in/或/pub/),公司主页被拒绝
func NormalizeProfileURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + strings.TrimLeft(raw, "/")
	}
	raw = strings.Replace(raw, "http://", "https://", 1)

	// 去掉query和fragment
	if idx := strings.IndexAny(raw, "?#"); idx != -1 {
		raw = raw[:idx]
	}
	raw = strings.TrimRight(raw, "/")

	// 统一子域
	raw = strings.Replace(raw, "https://linkedin.com", "https://www.linkedin.com", 1)

	if !strings.Contains(raw, "linkedin.com") {
		return ""
	}
	if strings.Contains(raw, "/company/") {
		return ""
	}
	if !strings.Contains(raw, "/in/") && !strings.Contains(raw, "/pub/") {
		return ""
	}
	return raw
}

// ExtractNamesFromText 从可见文本中提取候选姓名
// 规则: 两个连续的大写开头单词,排除职位词/平台词/数字
func ExtractNamesFromText(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	words := strings.Fields(text)

	var names []string
	seen := make(map[string]bool)

	for i := 0; i < len(words); i++ {
		if !isNameWord(words[i]) {
			continue
		}
		if i+1 >= len(words) || !isNameWord(words[i+1]) {
			continue
		}

		fullName := words[i] + " " + words[i+1]
		lower := strings.ToLower(fullName)
		if containsAny(lower, nameRejectPatterns) {
			i++
			continue
		}
		if !seen[fullName] {
			seen[fullName] = true
			names = append(names, fullName)
		}
		i++ // 跳过已消费的第二个词
	}

	if len(names) > maxFounders {
		names = names[:maxFounders]
	}
	return names
}

// isNameWord 单词是否可能是姓名组成部分
func isNameWord(word string) bool {
	if len(word) < 2 {
		return false
	}
	first := rune(word[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	if nameExcludeWords[strings.ToLower(word)] {
		return false
	}
	if strings.HasPrefix(word, "http") {
		return false
	}
	for _, r := range word {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// dedupeFounders 去重: 有主页链接按链接,否则按姓名;保留有姓名的条目
func dedupeFounders(founders []models.Founder) []models.Founder {
	deduped := make(map[string]models.Founder)
	var order []string

	for _, f := range founders {
		f.Name = strings.TrimSpace(f.Name)
		key := f.ProfileURL
		if key == "" {
			key = f.Name
		}
		if key == "" {
			continue
		}
		existing, ok := deduped[key]
		if !ok {
			deduped[key] = f
			order = append(order, key)
		} else if existing.Name == "" && f.Name != "" {
			deduped[key] = f
		}
	}

	var result []models.Founder
	for _, key := range order {
		f := deduped[key]
		if len(f.Name) > 1 && !strings.HasPrefix(strings.ToLower(f.Name), "linkedin") {
			result = append(result, f)
		}
		if len(result) == maxFounders {
			break
		}
	}
	return result
}
