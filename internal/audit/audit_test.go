package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, slug string) ([]byte, *content.Page, content.Practice) {
	t.Helper()

	catalog, err := content.LoadCatalog(web.Content())
	require.NoError(t, err)
	r, err := render.New(render.Options{
		Templates: web.Templates(),
		Static:    web.Static(),
		BaseURL:   "https://www.peartreedental.co.uk",
	})
	require.NoError(t, err)

	page, ok := catalog.Page(slug)
	require.True(t, ok, slug)

	var buf bytes.Buffer
	require.NoError(t, r.RenderLanding(&buf, page, catalog.Practice, render.Site{}))
	return buf.Bytes(), page, catalog.Practice
}

func rules(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestRenderedCatalogPassesAudit(t *testing.T) {
	catalog, err := content.LoadCatalog(web.Content())
	require.NoError(t, err)

	for _, page := range catalog.Pages {
		t.Run(page.Slug, func(t *testing.T) {
			html, page, practice := renderPage(t, page.Slug)
			assert.Empty(t, Audit(html, page, practice))
		})
	}
}

func TestAuditDetectsWrongTelLink(t *testing.T) {
	html, page, practice := renderPage(t, "alternatives/mapperley")
	practice.Phone = "0115 000 0000"

	got := rules(Audit(html, page, practice))
	assert.Contains(t, got, RuleTelLink)
	assert.Contains(t, got, RulePractice)
}

func TestAuditDetectsFAQDrift(t *testing.T) {
	html, page, practice := renderPage(t, "services/restorative/root-canal")
	tampered := strings.Replace(string(html), `<summary class="faq-question">`, `<summary class="faq-question">Edited `, 1)

	findings := Audit([]byte(tampered), page, practice)
	require.NotEmpty(t, findings)
	assert.Equal(t, RuleFAQSchema, findings[0].Rule)
	assert.Contains(t, findings[0].Message, "question 1 differs")
}

func TestAuditDetectsMissingFAQSchema(t *testing.T) {
	html, page, practice := renderPage(t, "services/restorative/root-canal")
	start := strings.Index(string(html), `<script type="application/ld+json">`)
	require.NotEqual(t, -1, start)
	end := strings.Index(string(html[start:]), "</script>") + start + len("</script>")
	stripped := string(html[:start]) + string(html[end:])

	assert.Contains(t, rules(Audit([]byte(stripped), page, practice)), RuleFAQSchema)
}

func TestAuditDetectsEmptyJourneyCell(t *testing.T) {
	html := []byte(`<html><head><link rel="canonical" href="https://x/"><meta name="description" content="d"></head><body>
<h1>Hello</h1>
<table class="journey"><tbody>
<tr><td class="traditional">Queue</td><td class="modern"> </td><td class="peartree">Online</td></tr>
</tbody></table>
</body></html>`)
	page := &content.Page{Hero: content.Hero{Heading: "Hello"}, StructuredData: content.StructuredMedicalBusiness}

	findings := Audit(html, page, content.Practice{})
	require.Len(t, findings, 1)
	assert.Equal(t, RuleJourney, findings[0].Rule)
	assert.Contains(t, findings[0].Message, "modern")
}

func TestAuditDetectsEmptyLinksAndHeading(t *testing.T) {
	html := []byte(`<html><head></head><body>
<h1>Another title</h1><h1>Second</h1>
<a href="#">Book</a><a>Call</a>
</body></html>`)
	page := &content.Page{Hero: content.Hero{Heading: "Switch dentist"}, StructuredData: content.StructuredMedicalBusiness}

	got := rules(Audit(html, page, content.Practice{}))
	assert.Contains(t, got, RuleLink)
	assert.Contains(t, got, RuleHeading)
	assert.Contains(t, got, RuleCanonical)
	assert.Contains(t, got, RuleDescription)
}
