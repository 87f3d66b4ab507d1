package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Markdown 将文案转换为经过清洗的 HTML。
func Markdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// PlainText 将 HTML 还原为读者可见的纯文本，并合并连续空白。
func PlainText(rendered template.HTML) string {
	stripped := stripper.Sanitize(string(rendered))
	return NormalizeSpace(html.UnescapeString(stripped))
}

// NormalizeSpace 将连续空白合并为单个空格并去除首尾空白。
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
