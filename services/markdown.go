package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in replies is dropped (goldmark's default, no html.WithUnsafe).
var replyMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderMarkdown converts a reply to HTML for web transcripts
func RenderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := replyMarkdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
