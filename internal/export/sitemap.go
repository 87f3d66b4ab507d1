package export

import (
	"encoding/xml"
	"strings"

	"github.com/peartree/landing/internal/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority,omitempty"`
}

// Sitemap 按给定顺序列出首页和所有页面。
func Sitemap(baseURL string, pages []*content.Page) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	set := urlSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{Loc: base + "/", Priority: "1.0"})
	for _, page := range pages {
		priority := "0.8"
		if page.Kind == content.KindReview {
			priority = "0.6"
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: base + page.Path(), Priority: priority})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Robots 允许所有爬虫，但禁止访问 /admin/，并声明 sitemap 地址。
func Robots(baseURL string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin/\n")
	if base := strings.TrimRight(baseURL, "/"); base != "" {
		b.WriteString("\nSitemap: " + base + "/sitemap.xml\n")
	}
	return []byte(b.String())
}
