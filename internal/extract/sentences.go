package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// 不应作为句子边界的常见缩写
var abbreviations = []string{"Inc", "LLC", "Corp", "Ltd", "Co", "Dr", "Mr", "Ms", "Prof", "Sr", "Jr"}

const abbrevPlaceholder = "\x00PERIOD\x00"

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// 导航样式开头: 单词后紧跟冒号、竖线或大于号
	navPrefixRe = regexp.MustCompile(`^[A-Z][a-z]*\s*[:|>]`)
	urlRe       = regexp.MustCompile(`https?://\S+`)
)

// 面包屑导航残留,需要从正文文本中清理
var breadcrumbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*Home\s*>\s*Companies\s*`),
	regexp.MustCompile(`(?i)\s*Home\s*>\s*Companies\s*`),
	regexp.MustCompile(`(?i)\s*Back to companies\s*`),
	regexp.MustCompile(`(?i)\s*Companies\s*>\s*`),
	regexp.MustCompile(`^\s*>\s*`),
	regexp.MustCompile(`(?i)^\s*Home\s*`),
}

// SplitSentences 将文本切分为完整句子
// 缩写中的句点(如"Inc.")不作为句子边界;过短或导航样式的
// 片段被丢弃
func SplitSentences(text string) []string {
	// 先保护缩写中的句点
	protected := text
	for _, abbr := range abbreviations {
		protected = strings.ReplaceAll(protected, abbr+".", abbr+abbrevPlaceholder)
	}

	var sentences []string
	var current strings.Builder
	runes := []rune(protected)

	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// 边界条件: 标点后接空白,空白后是大写字母
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			continue
		}

		if s, ok := normalizeSentence(current.String()); ok {
			sentences = append(sentences, s)
		}
		current.Reset()
		i = j - 1
	}

	if s, ok := normalizeSentence(current.String()); ok {
		sentences = append(sentences, s)
	}

	return sentences
}

// normalizeSentence 还原缩写句点并过滤无意义片段
func normalizeSentence(s string) (string, bool) {
	s = strings.ReplaceAll(s, abbrevPlaceholder, ".")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")

	if len(s) <= 20 {
		return "", false
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "home") || strings.HasPrefix(lower, "companies") || strings.HasPrefix(lower, "back to") {
		return "", false
	}
	if navPrefixRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// CleanSentence 规整一个句子: 压缩空白,补齐末尾标点
func CleanSentence(s string) string {
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s != "" && !strings.ContainsRune(".!?", rune(s[len(s)-1])) {
		s += "."
	}
	return s
}

// StripBreadcrumbs 清理文本中的面包屑导航残留
func StripBreadcrumbs(text string) string {
	for _, pattern := range breadcrumbPatterns {
		text = pattern.ReplaceAllString(text, " ")
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// containsAny 小写文本是否包含任一关键词
func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// countMatches 小写文本中命中的关键词个数
func countMatches(lowerText string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			count++
		}
	}
	return count
}
