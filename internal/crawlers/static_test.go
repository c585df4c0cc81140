package crawlers

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestExtractAnchorsFromHTML(t *testing.T) {
	htmlContent := `<html><body>
		<nav><a href="/about">About</a></nav>
		<div class="list">
			<a href="/companies/acme"><span>Acme</span><span>AI, SaaS</span></a>
			<a href="/companies/beta-corp">Beta Corp</a>
			<a href="/blog/post-1">Blog</a>
		</div>
	</body></html>`

	anchors, err := ExtractAnchorsFromHTML(htmlContent)
	if err != nil {
		t.Fatalf("解析HTML失败: %v", err)
	}

	if len(anchors) != 2 {
		t.Fatalf("应提取2个记录锚, 实际为: %d", len(anchors))
	}
	if anchors[0].Href != "/companies/acme" {
		t.Errorf("首个锚href错误: %q", anchors[0].Href)
	}
	// 嵌套span的文本应拼接为锚文本
	if anchors[0].Text != "AcmeAI, SaaS" {
		t.Errorf("锚文本拼接错误: %q", anchors[0].Text)
	}
	if anchors[1].Text != "Beta Corp" {
		t.Errorf("第二个锚文本错误: %q", anchors[1].Text)
	}
}

func TestExtractAnchorsFromHTMLEmpty(t *testing.T) {
	anchors, err := ExtractAnchorsFromHTML("<html><body><p>没有链接</p></body></html>")
	if err != nil {
		t.Fatalf("解析HTML失败: %v", err)
	}
	if len(anchors) != 0 {
		t.Errorf("无记录链接时应返回空结果: %v", anchors)
	}
}

func TestDecompressResponse(t *testing.T) {
	original := []byte("<html><body>测试内容</body></html>")

	t.Run("gzip解压", func(t *testing.T) {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(original); err != nil {
			t.Fatalf("压缩失败: %v", err)
		}
		gw.Close()

		result, err := decompressResponse("gzip", buf.Bytes())
		if err != nil {
			t.Fatalf("解压失败: %v", err)
		}
		if !bytes.Equal(result, original) {
			t.Error("解压结果与原文不一致")
		}
	})

	t.Run("identity原样返回", func(t *testing.T) {
		result, err := decompressResponse("identity", original)
		if err != nil {
			t.Fatalf("identity不应报错: %v", err)
		}
		if !bytes.Equal(result, original) {
			t.Error("identity应原样返回")
		}
	})

	t.Run("空编码原样返回", func(t *testing.T) {
		result, err := decompressResponse("", original)
		if err != nil {
			t.Fatalf("空编码不应报错: %v", err)
		}
		if !bytes.Equal(result, original) {
			t.Error("空编码应原样返回")
		}
	})

	t.Run("不支持的编码报错", func(t *testing.T) {
		if _, err := decompressResponse("zstd", original); err == nil {
			t.Error("不支持的编码应报错")
		}
	})
}

func TestNewStaticFetcher(t *testing.T) {
	fetcher, err := NewStaticFetcher("https://example.com/companies", 0)
	if err != nil {
		t.Fatalf("创建静态抓取器失败: %v", err)
	}
	if fetcher.domain != "example.com" {
		t.Errorf("域名解析错误: %q", fetcher.domain)
	}

	if _, err := NewStaticFetcher("/relative/path", 0); err == nil {
		t.Error("无域名的URL应报错")
	}
}
