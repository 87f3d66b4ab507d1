package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var validatePractice = Practice{
	Name:        "Pear Tree Dental",
	Phone:       "0115 931 2935",
	Street:      "22 Nottingham Road",
	Postcode:    "NG14 5AE",
	BookingPath: "/book",
}

func validPage() *Page {
	return &Page{
		Slug:  "alternatives/carlton",
		Kind:  KindAlternative,
		Town:  "Carlton",
		Title: "Dentist near Carlton",
		Hero: Hero{
			Heading:   "Switch",
			Primary:   Link{Label: "Book", Href: "/book"},
			Secondary: Link{Label: "Call", Href: "tel:0115 931 2935"},
		},
		FAQs: []FAQItem{{Question: "Q1", Answer: "A1"}},
		CTA: CTA{
			Heading: "Book",
			Primary: Link{Label: "Book", Href: "/book"},
		},
		StructuredData: StructuredBoth,
	}
}

func fields(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Field)
	}
	return out
}

func TestValidatePageAcceptsValidPage(t *testing.T) {
	assert.Empty(t, ValidatePage(validPage(), validatePractice))
}

func TestValidatePageLinks(t *testing.T) {
	tests := []struct {
		name  string
		href  string
		valid bool
	}{
		{name: "internal path", href: "/reviews/mapperley", valid: true},
		{name: "practice phone", href: "tel:01159312935", valid: true},
		{name: "other phone", href: "tel:0115 000 0000", valid: false},
		{name: "mailto", href: "mailto:hello@example.com", valid: true},
		{name: "empty mailto", href: "mailto:", valid: false},
		{name: "https", href: "https://maps.google.com/", valid: true},
		{name: "http", href: "http://example.com", valid: false},
		{name: "protocol relative", href: "//evil.example", valid: false},
		{name: "javascript", href: "javascript:alert(1)", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := validPage()
			page.Hero.Secondary.Href = tt.href
			issues := ValidatePage(page, validatePractice)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				assert.Contains(t, fields(issues), "hero.secondary.href")
			}
		})
	}
}

func TestValidatePageRequiresPrimaryLinks(t *testing.T) {
	page := validPage()
	page.Hero.Primary = Link{}
	page.CTA.Primary = Link{}

	got := fields(ValidatePage(page, validatePractice))
	assert.Contains(t, got, "hero.primary")
	assert.Contains(t, got, "cta.primary")
}

func TestValidatePageJourneyNeedsAllColumns(t *testing.T) {
	page := validPage()
	page.Journey.Stages = []JourneyStage{{Stage: "Booking", Traditional: "Phone queue", Modern: "Online"}}

	issues := ValidatePage(page, validatePractice)
	assert.Contains(t, fields(issues), "journey.stages[0]")
}

func TestValidatePageUnknownIcon(t *testing.T) {
	page := validPage()
	page.Benefits.Items = []BenefitItem{{Title: "Fast", Description: "Quick", Icon: "rocket"}}

	issues := ValidatePage(page, validatePractice)
	assert.Contains(t, fields(issues), "benefits.items[0].icon")
	for _, issue := range issues {
		if issue.Field == "benefits.items[0].icon" {
			assert.Contains(t, issue.Message, "calendar")
			assert.Contains(t, issue.Message, "clock")
		}
	}
}

func TestValidatePageDuplicateFAQ(t *testing.T) {
	page := validPage()
	page.FAQs = append(page.FAQs, FAQItem{Question: " q1 ", Answer: "again"})

	issues := ValidatePage(page, validatePractice)
	assert.Contains(t, fields(issues), "faqs[1].question")
}

func TestValidatePageBeforeAfterPair(t *testing.T) {
	page := validPage()
	page.BeforeAfter = BeforeAfter{BeforeImage: "/static/img/a.png", BeforeAlt: "before", AfterAlt: "after"}

	issues := ValidatePage(page, validatePractice)
	assert.Contains(t, fields(issues), "beforeAfter")
}

func TestValidatePageFAQSchemaNeedsFAQs(t *testing.T) {
	page := validPage()
	page.FAQs = nil
	page.StructuredData = StructuredFAQ

	issues := ValidatePage(page, validatePractice)
	assert.Contains(t, fields(issues), "structuredData")
}

func TestValidateReportsPracticeGaps(t *testing.T) {
	catalog, err := NewCatalog(Practice{Name: "Pear Tree"}, []*Page{validPage()})
	assert.NoError(t, err)

	issues := Validate(catalog)
	assert.Contains(t, fields(issues), "practice.phone")
	for _, issue := range issues {
		if issue.Slug != "" {
			assert.True(t, strings.HasPrefix(issue.String(), issue.Slug))
		}
	}
}

func TestValidatePageSlugShape(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{slug: "alternatives/east-bridgford", valid: true},
		{slug: "services/restorative/root-canal", valid: true},
		{slug: "../../escaped", valid: false},
		{slug: "alternatives/../reviews", valid: false},
		{slug: "alternatives//carlton", valid: false},
		{slug: "Alternatives/Carlton", valid: false},
		{slug: "alternatives/carlton.html", valid: false},
		{slug: "", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			page := validPage()
			page.Slug = tt.slug
			issues := ValidatePage(page, validatePractice)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				assert.Contains(t, fields(issues), "slug")
			}
		})
	}
}

func TestValidateRejectsEscapingSlugFromRecord(t *testing.T) {
	catalog, err := LoadCatalog(testFS(map[string]string{
		"alternatives/x.yaml": "town: X\nkind: alternative\nslug: ../../escaped\n",
	}))
	assert.NoError(t, err)

	assert.Contains(t, fields(Validate(catalog)), "slug")
}
