package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
)

// ErrEmptyResponse 页面响应体为空
var ErrEmptyResponse = errors.New("页面响应为空")

// StaticFetcher 静态抓取器(使用Colly)
// 详情页为服务端渲染时,第二遍补全可以直接HTTP抓取,
// 不占用浏览器会话。每次Fetch同步完成,无并发抓取。
type StaticFetcher struct {
	timeout time.Duration
	domain  string // 目标域名,拒绝跨域请求
}

// NewStaticFetcher 创建静态抓取器
func NewStaticFetcher(listingURL string, timeout time.Duration) (*StaticFetcher, error) {
	parsed, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("解析目标URL失败: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("无法从URL中提取域名: %s", listingURL)
	}
	return &StaticFetcher{timeout: timeout, domain: parsed.Host}, nil
}

// FetchHTML 抓取单个页面的HTML
// 实现core.PageSource接口,与BrowserSession.FetchHTML互换
func (f *StaticFetcher) FetchHTML(pageURL string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = f.timeout
	}

	c := colly.NewCollector()
	c.SetRequestTimeout(timeout)

	var body []byte
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		// 同域检查
		if r.URL.Host != f.domain {
			utils.Debugf("拒绝跨域请求: %s (目标域名: %s)", r.URL.String(), f.domain)
			r.Abort()
			fetchErr = fmt.Errorf("跨域请求被拒绝: %s", r.URL.Host)
			return
		}
		utils.Debugf("静态抓取: %s", r.URL.String())
	})

	c.OnResponse(func(r *colly.Response) {
		content := r.Body
		contentEncoding := r.Headers.Get("Content-Encoding")
		if contentEncoding != "" {
			decompressed, err := decompressResponse(contentEncoding, r.Body)
			if err != nil {
				utils.Warnf("解压响应失败 [%s] (编码=%s): %v", r.Request.URL, contentEncoding, err)
			} else {
				content = decompressed
			}
		}
		body = content
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("抓取失败 [%s]: %w", r.Request.URL, err)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("访问页面失败 [%s]: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if len(body) == 0 {
		return "", fmt.Errorf("%w [%s]", ErrEmptyResponse, pageURL)
	}
	return string(body), nil
}

// decompressResponse 根据Content-Encoding头部解压响应体
// 支持 gzip, deflate, br (Brotli) 三种压缩格式
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		defer reader.Close()
		return io.ReadAll(reader)

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()
		return io.ReadAll(reader)

	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))

	case "", "identity":
		return body, nil

	default:
		return nil, fmt.Errorf("不支持的压缩格式: %s", encoding)
	}
}

// ExtractAnchorsFromHTML 从HTML字符串提取记录锚元素(href+文本)
// 滚动发现结果低于预期时,作为静态回退补充链接来源
func ExtractAnchorsFromHTML(htmlContent string) ([]Anchor, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	var anchors []Anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.Contains(attr.Val, "/companies/") {
					anchors = append(anchors, Anchor{
						Href: attr.Val,
						Text: nodeText(n),
					})
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return anchors, nil
}

// nodeText 递归拼接节点的可见文本
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
