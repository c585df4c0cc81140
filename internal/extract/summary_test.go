package extract

import (
	"strings"
	"testing"
)

func TestExtractSummary(t *testing.T) {
	t.Run("完整两段式摘要", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head>
			<meta name="description" content="Acme builds an AI platform that automates invoicing for enterprises">
		</head><body>
			<main>
				<p>Acme builds an AI workflow product that automates invoicing for finance teams worldwide.</p>
				<p>The company has over five hundred paying customers and strong revenue growth this year.</p>
				<p>Their proprietary matching engine is the first of its kind in the invoicing market.</p>
			</main>
			<div class="founder">
				<p>Founded by former Google engineers with experience at scale, the team knows infrastructure.</p>
			</div>
		</body></html>`)

		summary := ExtractSummary(doc, "Acme")

		if !strings.HasPrefix(summary, "What They Do: ") {
			t.Fatalf("摘要应以What They Do开头: %q", summary)
		}
		if !strings.Contains(summary, " | Specific Insights: ") {
			t.Fatalf("摘要应包含Specific Insights部分: %q", summary)
		}
		lower := strings.ToLower(summary)
		if !strings.Contains(lower, "former google") {
			t.Errorf("应包含团队背景句: %q", summary)
		}
		if !strings.Contains(lower, "customers") {
			t.Errorf("应包含业务进展句: %q", summary)
		}
		if !strings.Contains(lower, "proprietary") {
			t.Errorf("应包含独特性句: %q", summary)
		}
	})

	t.Run("无洞察句时只有描述部分", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head>
			<meta name="description" content="Acme builds an AI platform that automates invoicing for enterprises">
		</head><body><main><p>Just some text here without any interesting signal words at all in it.</p></main></body></html>`)

		summary := ExtractSummary(doc, "Acme")
		if !strings.HasPrefix(summary, "What They Do: ") {
			t.Errorf("应包含描述部分: %q", summary)
		}
		if strings.Contains(summary, "Specific Insights") {
			t.Errorf("无洞察句时不应有Insights部分: %q", summary)
		}
	})

	t.Run("完全无内容返回空串", func(t *testing.T) {
		doc := docFromHTML(t, `<html><body><p>Short.</p></body></html>`)
		if summary := ExtractSummary(doc, "Acme"); summary != "" {
			t.Errorf("无内容应返回空串: %q", summary)
		}
	})

	t.Run("导航元素不污染摘要", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head>
			<meta name="description" content="Acme builds an AI platform that automates invoicing for enterprises">
		</head><body>
			<nav>Home > Companies > First choice navigation with customers everywhere</nav>
			<main><p>Acme builds an AI platform that automates invoicing for enterprises worldwide today.</p></main>
		</body></html>`)

		summary := ExtractSummary(doc, "Acme")
		if strings.Contains(summary, "navigation") {
			t.Errorf("导航文本不应进入摘要: %q", summary)
		}
	})
}

func TestFirstKeywordSentence(t *testing.T) {
	sentences := []string{
		"This sentence is long enough but has no signal words inside.",
		"Y Combinator backed the company with customers in mind.",
		"The company serves enterprise customers across many countries.",
	}

	got := firstKeywordSentence(sentences, tractionKeywords)
	// 第二句命中关键词但含样板词yc,应选第三句
	if !strings.Contains(got, "serves enterprise customers") {
		t.Errorf("应跳过样板句选择第三句: %q", got)
	}
}
