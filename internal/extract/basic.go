package extract

import (
	"regexp"
	"strings"
)

// 列表页导航元素的文本标签,第一遍捕获时主动跳过
var navigationLabels = map[string]bool{
	"founder directory": true,
	"companies":         true,
	"about":             true,
	"contact":           true,
}

// 锚文本中的常见类别标签
var categoryKeywords = []string{
	"AI", "ML", "SaaS", "B2B", "Enterprise", "Fintech", "Healthtech",
	"Edtech", "E-commerce", "Mobile", "Web", "API", "Analytics", "Security",
	"Cloud", "DevOps", "Marketing", "Sales", "HR", "Legal", "Real Estate",
	"Transportation", "Food", "Fashion", "Gaming", "Media", "Entertainment",
}

var lineSplitRe = regexp.MustCompile(`[\n\r]+`)

// IsNavigationLabel 判断锚文本是否为导航元素标签
func IsNavigationLabel(text string) bool {
	return navigationLabels[strings.ToLower(strings.TrimSpace(text))]
}

// ParseAnchorText 从列表页锚文本解析名称和类别
// 轻量分词,不做任何页面导航: 首行为名称,类别按关键词命中
// 顺序收集
func ParseAnchorText(text string) (string, []string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	parts := lineSplitRe.Split(text, -1)
	name := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			name = part
			break
		}
	}
	if name == "" {
		name = text
	}

	lower := strings.ToLower(text)
	var categories []string
	for _, keyword := range categoryKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			categories = append(categories, keyword)
		}
	}

	return name, categories
}
