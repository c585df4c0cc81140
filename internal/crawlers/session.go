package crawlers

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/utils"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Anchor 页面上的一个锚元素快照
type Anchor struct {
	Href string // 原始href
	Text string // 渲染后的锚文本
}

// BrowserSession 浏览器会话适配器
// 封装go-rod,核心只依赖这组能力: 导航、执行脚本、查询元素、读取内容。
// 单个会话由单个协作式驱动goroutine独占,不支持并发导航。
type BrowserSession struct {
	browser *rod.Browser
	page    *rod.Page
}

// NewBrowserSession 启动浏览器并创建单个标签页
// 启动或连接失败属于致命错误,由调用方中止运行
func NewBrowserSession(headless bool) (*BrowserSession, error) {
	l := launcher.New().Headless(headless)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.MustClose()
		return nil, fmt.Errorf("创建标签页失败: %w", err)
	}

	utils.Debugf("浏览器已启动: %s", controlURL)
	return &BrowserSession{browser: browser, page: page}, nil
}

// Close 关闭浏览器会话
func (s *BrowserSession) Close() {
	if s.browser != nil {
		s.browser.MustClose()
		utils.Debugf("浏览器已关闭")
	}
}

// Navigate 在有限超时内导航并等待页面加载完成
func (s *BrowserSession) Navigate(pageURL string, timeout time.Duration) error {
	page := s.page.Timeout(timeout)
	if err := page.Navigate(pageURL); err != nil {
		return fmt.Errorf("导航失败 [%s]: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("等待页面加载失败 [%s]: %w", pageURL, err)
	}
	return nil
}

// ScrollToBottom 触发一次"滚动到底部"
func (s *BrowserSession) ScrollToBottom() error {
	_, err := s.page.Evaluate(&rod.EvalOptions{
		JS: `() => { window.scrollTo(0, document.body.scrollHeight); }`,
	})
	if err != nil {
		return fmt.Errorf("滚动失败: %w", err)
	}
	return nil
}

// PageHeight 读取当前页面总高度
func (s *BrowserSession) PageHeight() (float64, error) {
	result, err := s.page.Evaluate(&rod.EvalOptions{
		JS: `() => document.body.scrollHeight`,
	})
	if err != nil {
		return 0, fmt.Errorf("读取页面高度失败: %w", err)
	}
	return result.Value.Num(), nil
}

// RecordHrefs 收集当前DOM中所有疑似记录链接的href
// 粗过滤交给选择器,严格过滤由Normalizer完成
func (s *BrowserSession) RecordHrefs() ([]string, error) {
	result, err := s.page.Evaluate(&rod.EvalOptions{
		JS: `() => {
			var anchors = document.querySelectorAll("a[href*='/companies/']");
			var hrefs = [];
			for (var i = 0; i < anchors.length; i++) {
				var href = anchors[i].getAttribute('href');
				if (href) {
					hrefs.push(href);
				}
			}
			return hrefs;
		}`,
	})
	if err != nil {
		return nil, fmt.Errorf("收集链接失败: %w", err)
	}

	hrefs := []string{}
	for _, item := range result.Value.Arr() {
		if item.Str() != "" {
			hrefs = append(hrefs, item.Str())
		}
	}
	return hrefs, nil
}

// RecordAnchors 收集记录链接及其渲染后的锚文本
// 第一遍捕获用锚文本解析名称和类别,无需逐条导航
func (s *BrowserSession) RecordAnchors() ([]Anchor, error) {
	result, err := s.page.Evaluate(&rod.EvalOptions{
		JS: `() => {
			var anchors = document.querySelectorAll("a[href*='/companies/']");
			var out = [];
			for (var i = 0; i < anchors.length; i++) {
				var href = anchors[i].getAttribute('href');
				if (!href) {
					continue;
				}
				out.push({ href: href, text: anchors[i].textContent || '' });
			}
			return out;
		}`,
	})
	if err != nil {
		return nil, fmt.Errorf("收集锚元素失败: %w", err)
	}

	anchors := []Anchor{}
	for _, item := range result.Value.Arr() {
		href := item.Get("href").Str()
		if href == "" {
			continue
		}
		anchors = append(anchors, Anchor{
			Href: href,
			Text: item.Get("text").Str(),
		})
	}
	return anchors, nil
}

// HTML 读取当前页面的完整HTML
func (s *BrowserSession) HTML() (string, error) {
	html, err := s.page.HTML()
	if err != nil {
		return "", fmt.Errorf("读取页面内容失败: %w", err)
	}
	return html, nil
}

// FetchHTML 导航到指定URL并返回渲染后的HTML
// 实现core.PageSource接口,供第二遍补全使用
func (s *BrowserSession) FetchHTML(pageURL string, timeout time.Duration) (string, error) {
	if err := s.Navigate(pageURL, timeout); err != nil {
		return "", err
	}
	// 等待动态内容挂载
	time.Sleep(2 * time.Second)
	return s.HTML()
}
