package crawlers

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// 记录详情页路径: 固定前缀 + 小写字母/数字/连字符组成的slug
// 严格匹配以排除导航、筛选、锚点等形似链接
var recordPathPattern = regexp.MustCompile(`^/companies/[a-z0-9-]+$`)

// Normalizer URL规范化器
// 将原始href转换为稳定的身份键(identityKey),拒绝非记录链接
type Normalizer struct {
	base *url.URL // 列表页URL,用于解析相对链接
}

// NewNormalizer 创建规范化器
func NewNormalizer(listingURL string) (*Normalizer, error) {
	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("解析列表页URL失败: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("列表页URL缺少协议或主机名: %s", listingURL)
	}
	return &Normalizer{base: base}, nil
}

// Normalize 规范化原始href为身份键
// 规则(按顺序): 相对链接解析到基础源 -> 去掉query和fragment ->
// 去掉尾部斜杠 -> 路径严格匹配记录模式
// 返回: (identityKey, true) 或拒绝 ("", false)
func (n *Normalizer) Normalize(rawHref string) (string, bool) {
	rawHref = strings.TrimSpace(rawHref)
	if rawHref == "" {
		return "", false
	}

	ref, err := url.Parse(rawHref)
	if err != nil {
		return "", false
	}

	resolved := n.base.ResolveReference(ref)

	// 仅接受同源记录链接
	if resolved.Host != n.base.Host {
		return "", false
	}

	// 去掉query和fragment
	resolved.RawQuery = ""
	resolved.Fragment = ""
	resolved.RawFragment = ""

	// 去掉尾部斜杠
	path := strings.TrimRight(resolved.Path, "/")
	if !recordPathPattern.MatchString(path) {
		return "", false
	}
	resolved.Path = path

	return resolved.String(), true
}

// LinkSet 插入有序的链接去重集合
// 首次出现者确立记录在处理顺序中的位置
type LinkSet struct {
	seen map[string]bool
	keys []string
}

// NewLinkSet 创建空集合
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]bool)}
}

// Add 添加身份键,返回是否为首次出现
func (s *LinkSet) Add(key string) bool {
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.keys = append(s.keys, key)
	return true
}

// Contains 检查是否已存在
func (s *LinkSet) Contains(key string) bool {
	return s.seen[key]
}

// Len 当前去重链接数
func (s *LinkSet) Len() int {
	return len(s.keys)
}

// Keys 按插入顺序返回所有身份键
func (s *LinkSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}
