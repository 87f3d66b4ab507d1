package render

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*Renderer, *content.Catalog) {
	t.Helper()

	catalog, err := content.LoadCatalog(web.Content())
	require.NoError(t, err)

	r, err := New(Options{
		Templates: web.Templates(),
		Static:    web.Static(),
		BaseURL:   "https://www.peartreedental.co.uk/",
		Now:       func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return r, catalog
}

func TestRenderLandingMapperleyContainsPracticeDetails(t *testing.T) {
	r, catalog := newTestRenderer(t)
	page, ok := catalog.Page("alternatives/mapperley")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, r.RenderLanding(&buf, page, catalog.Practice, Site{}))
	body := buf.String()

	assert.Contains(t, body, "0115 931 2935")
	assert.Contains(t, body, "22 Nottingham Road, Burton Joyce, NG14 5AE")
	assert.Contains(t, body, `href="tel:01159312935"`)
	assert.Contains(t, body, "A better dental experience for Mapperley")
	assert.Contains(t, body, `<link rel="canonical" href="https://www.peartreedental.co.uk/alternatives/mapperley">`)
	assert.Contains(t, body, "&copy; 2026 Pear Tree Dental")
	assert.NotContains(t, body, "ZgotmplZ")
	assert.NotContains(t, body, "{town}")
}

func TestSectionsFollowFixedOrder(t *testing.T) {
	_, catalog := newTestRenderer(t)
	page, ok := catalog.Page("alternatives/mapperley")
	require.True(t, ok)

	assert.Equal(t, SectionOrder, Sections(page))
}

func TestSectionsSkipEmptyWithoutReordering(t *testing.T) {
	page := &content.Page{
		Hero: content.Hero{Heading: "Hello"},
		FAQs: []content.FAQItem{{Question: "Q", Answer: "A"}},
		CTA:  content.CTA{Heading: "Book"},
	}

	assert.Equal(t, []string{SectionHero, SectionFAQ, SectionCTA}, Sections(page))
}

func TestRenderedSectionsAppearInOrder(t *testing.T) {
	r, catalog := newTestRenderer(t)
	page, ok := catalog.Page("alternatives/east-bridgford")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, r.RenderLanding(&buf, page, catalog.Practice, Site{}))
	body := buf.String()

	ids := []string{`id="hero"`, `id="why-switch"`, `id="advantages"`, `id="journey"`, `id="benefits"`,
		`id="testimonial"`, `id="results"`, `id="faq"`, `id="directions"`, `id="book"`}
	last := -1
	for _, id := range ids {
		idx := strings.Index(body, id)
		require.NotEqual(t, -1, idx, "missing section %s", id)
		assert.Greater(t, idx, last, "section %s out of order", id)
		last = idx
	}
}

func TestLandingFAQSchemaMatchesVisibleFAQs(t *testing.T) {
	r, catalog := newTestRenderer(t)
	page, ok := catalog.Page("services/restorative/root-canal")
	require.True(t, ok)

	view, err := r.Landing(page, catalog.Practice, Site{})
	require.NoError(t, err)
	require.Len(t, view.StructuredData, 1, "service pages embed only the FAQPage block")

	entries, isFAQ, err := ParseFAQSchema([]byte(view.StructuredData[0]))
	require.NoError(t, err)
	require.True(t, isFAQ)
	require.Len(t, entries, len(page.FAQs))

	for i, faq := range view.FAQs {
		assert.Equal(t, faq.Question, entries[i].Question)
		assert.Equal(t, faq.PlainAnswer, entries[i].Answer)
	}
}

func TestLandingEmbedsBusinessSchemaForAlternatives(t *testing.T) {
	r, catalog := newTestRenderer(t)
	page, ok := catalog.Page("alternatives/gedling")
	require.True(t, ok)

	view, err := r.Landing(page, catalog.Practice, Site{})
	require.NoError(t, err)
	require.Len(t, view.StructuredData, 2)

	business := string(view.StructuredData[1])
	assert.Contains(t, business, `"@type":"Dentist"`)
	assert.Contains(t, business, `"postalCode":"NG14 5AE"`)
	assert.Contains(t, business, `"areaServed":{"@type":"Place","name":"Gedling"}`)
}

func TestBeforeAfterSizesAreProbed(t *testing.T) {
	r, catalog := newTestRenderer(t)
	page, ok := catalog.Page("services/cosmetic/composite-bonding")
	require.True(t, ok)

	view, err := r.Landing(page, catalog.Practice, Site{})
	require.NoError(t, err)
	assert.Equal(t, ImageSize{Width: 640, Height: 480}, view.BeforeAfter.BeforeSize)
	assert.Equal(t, ImageSize{Width: 640, Height: 480}, view.BeforeAfter.AfterSize)
}

func TestImageProbeIgnoresRemoteAndMissing(t *testing.T) {
	probe := newImageProbe(web.Static())
	assert.False(t, probe.Size("https://cdn.example.com/a.png").Known())
	assert.False(t, probe.Size("/static/img/missing.png").Known())
}

func TestMarkdownSanitisesAnswers(t *testing.T) {
	out, err := Markdown("Call **now** <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>now</strong>")
	assert.NotContains(t, string(out), "<script")
	assert.True(t, strings.HasPrefix(PlainText(out), "Call now"))
}

func TestSafeHref(t *testing.T) {
	tests := []struct {
		in   string
		want template.URL
	}{
		{in: "/book", want: "/book"},
		{in: "tel:01159312935", want: "tel:01159312935"},
		{in: "mailto:hello@example.com", want: "mailto:hello@example.com"},
		{in: "https://example.com", want: "https://example.com"},
		{in: "javascript:alert(1)", want: "#"},
		{in: "//evil.example", want: "#"},
		{in: "", want: "#"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeHref(tt.in), tt.in)
	}
}

func TestMapsURLPrefersCoordinates(t *testing.T) {
	practice := content.Practice{Street: "22 Nottingham Road", Postcode: "NG14 5AE", Latitude: 52.9864, Longitude: -1.0377}
	got := MapsURL(practice, content.Directions{From: "Mapperley"})
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=52.9864%2C-1.0377&origin=Mapperley", got)

	practice.Latitude, practice.Longitude = 0, 0
	got = MapsURL(practice, content.Directions{})
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=22+Nottingham+Road%2C+NG14+5AE", got)

	got = MapsURL(practice, content.Directions{MapsURL: "https://maps.example/x"})
	assert.Equal(t, "https://maps.example/x", got)
}

func TestExecuteUnknownTemplate(t *testing.T) {
	r, _ := newTestRenderer(t)
	err := r.Execute(&bytes.Buffer{}, "missing.html", nil)
	require.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestIndexListsGroups(t *testing.T) {
	r, catalog := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, TemplateIndex, r.Index(catalog, Site{Name: "Pear Tree"})))
	body := buf.String()

	assert.Contains(t, body, "Switching dentists")
	assert.Contains(t, body, `href="/reviews/mapperley"`)
	assert.Contains(t, body, `href="/services/restorative/root-canal"`)
}
