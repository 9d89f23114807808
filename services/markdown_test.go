package services

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("See the **Projects** section:\n- one\n- two")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	for _, want := range []string{"<strong>Projects</strong>", "<li>one</li>", "<ul>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderMarkdown_DropsRawHTML(t *testing.T) {
	html, err := RenderMarkdown("hi <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html passed through: %s", html)
	}
}

func TestRenderMarkdown_HighlightsCode(t *testing.T) {
	html, err := RenderMarkdown("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(html, "<pre") || !strings.Contains(html, "main") {
		t.Fatalf("code block not rendered: %s", html)
	}
}
