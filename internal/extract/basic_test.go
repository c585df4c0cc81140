package extract

import "testing"

func TestIsNavigationLabel(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Founder Directory", true},
		{"companies", true},
		{"  About  ", true},
		{"Contact", true},
		{"Acme", false},
		{"", false},
		{"About Acme", false},
	}

	for _, tt := range tests {
		if got := IsNavigationLabel(tt.text); got != tt.want {
			t.Errorf("IsNavigationLabel(%q) = %v, 期望 %v", tt.text, got, tt.want)
		}
	}
}

func TestParseAnchorText(t *testing.T) {
	t.Run("多行锚文本", func(t *testing.T) {
		name, categories := ParseAnchorText("Acme Labs\nAI, SaaS, B2B")
		if name != "Acme Labs" {
			t.Errorf("名称应为首行: %q", name)
		}
		expected := []string{"AI", "SaaS", "B2B"}
		if len(categories) != len(expected) {
			t.Fatalf("类别解析错误: %v", categories)
		}
		for i := range expected {
			if categories[i] != expected[i] {
				t.Errorf("类别顺序错误: 期望 %v, 实际 %v", expected, categories)
				break
			}
		}
	})

	t.Run("单行无类别", func(t *testing.T) {
		name, categories := ParseAnchorText("Beta Corp")
		if name != "Beta Corp" {
			t.Errorf("名称错误: %q", name)
		}
		if len(categories) != 0 {
			t.Errorf("不应解析出类别: %v", categories)
		}
	})

	t.Run("类别大小写不敏感", func(t *testing.T) {
		_, categories := ParseAnchorText("Gamma\nfintech and healthtech")
		found := map[string]bool{}
		for _, c := range categories {
			found[c] = true
		}
		if !found["Fintech"] || !found["Healthtech"] {
			t.Errorf("应识别小写类别关键词: %v", categories)
		}
	})

	t.Run("空文本", func(t *testing.T) {
		name, categories := ParseAnchorText("   ")
		if name != "" || categories != nil {
			t.Errorf("空文本应返回空结果: %q, %v", name, categories)
		}
	})
}
