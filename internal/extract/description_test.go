package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, htmlContent string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("解析HTML失败: %v", err)
	}
	return doc
}

func TestExtractDescription(t *testing.T) {
	t.Run("meta描述优先", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head>
			<meta name="description" content="Acme builds an AI platform that automates invoicing for enterprises">
		</head><body><main><p>Acme provides a software platform used by many companies worldwide.</p></main></body></html>`)

		got := ExtractDescription(doc, "Acme")
		if got != "Acme builds an AI platform that automates invoicing for enterprises." {
			t.Errorf("应优先使用meta描述: %q", got)
		}
	})

	t.Run("meta过短时回退到正文段落", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head>
			<meta name="description" content="Acme homepage">
		</head><body><main>
			<p>Short intro.</p>
			<p>Acme builds an AI platform that automates invoicing workflows for large enterprise finance teams.</p>
		</main></body></html>`)

		got := ExtractDescription(doc, "Acme")
		if !strings.Contains(got, "automates invoicing workflows") {
			t.Errorf("应选中正文描述段落: %q", got)
		}
	})

	t.Run("样板段落被跳过", func(t *testing.T) {
		doc := docFromHTML(t, `<html><body><main>
			<p>Founded in 2021 and based in San Francisco with over fifty employees on the team.</p>
			<p>Acme develops a security platform that helps enterprises detect threats in real time.</p>
		</main></body></html>`)

		got := ExtractDescription(doc, "Acme")
		if !strings.Contains(got, "security platform") {
			t.Errorf("样板段落应被跳过: %q", got)
		}
	})

	t.Run("打分回退选择最相关段落", func(t *testing.T) {
		// 两个段落都不在正文容器内,走打分回退
		doc := docFromHTML(t, `<html><body>
			<div><p>This page lists various information about different topics and other things entirely.</p></div>
			<div><p>Acme builds an AI platform that automates invoicing for enterprises around the world.</p></div>
		</body></html>`)

		got := ExtractDescription(doc, "Acme")
		if !strings.Contains(got, "Acme builds an AI platform") {
			t.Errorf("打分应选中描述性段落: %q", got)
		}
	})

	t.Run("无合格内容返回空串", func(t *testing.T) {
		doc := docFromHTML(t, `<html><body><p>Short.</p></body></html>`)
		if got := ExtractDescription(doc, "Acme"); got != "" {
			t.Errorf("无合格内容应返回空串: %q", got)
		}
	})
}

func TestScoreDescription(t *testing.T) {
	// +2公司名 +3动作动词 +2业务名词(ai, platform)
	text := "Acme builds an AI platform that automates invoicing for enterprises."
	score := ScoreDescription(text, "Acme")
	if score != 7 {
		t.Errorf("评分错误: 期望7, 实际 %d", score)
	}

	// 样板短语扣分
	boiler := "Founded in 2021, Acme provides a platform."
	if ScoreDescription(boiler, "Acme") >= score {
		t.Error("样板短语应降低评分")
	}

	// 无任何指标
	if got := ScoreDescription("Nothing relevant here at all.", "Acme"); got != 0 {
		t.Errorf("无指标文本评分应为0, 实际 %d", got)
	}
}
