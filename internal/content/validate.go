package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/peartree/landing/internal/view"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+(/[a-z0-9-]+)*$`)

// Issue 是 Validate 发现的一条内容问题。
type Issue struct {
	Slug    string `json:"slug"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Slug == "" {
		return fmt.Sprintf("%s: %s", i.Field, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", i.Slug, i.Field, i.Message)
}

type issueList struct {
	slug   string
	issues []Issue
}

func (l *issueList) add(field, format string, args ...any) {
	l.issues = append(l.issues, Issue{Slug: l.slug, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (l *issueList) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		l.add(field, "must not be empty")
	}
}

// Validate 检查目录中的诊所信息与每个页面，返回全部问题。
func Validate(c *Catalog) []Issue {
	practiceIssues := &issueList{}
	practiceIssues.required("practice.name", c.Practice.Name)
	practiceIssues.required("practice.phone", c.Practice.Phone)
	practiceIssues.required("practice.street", c.Practice.Street)
	practiceIssues.required("practice.postcode", c.Practice.Postcode)
	practiceIssues.required("practice.bookingPath", c.Practice.BookingPath)

	issues := practiceIssues.issues
	for _, page := range c.Pages {
		issues = append(issues, ValidatePage(page, c.Practice)...)
	}
	return issues
}

// ValidatePage 对照诊所信息检查单个页面。
func ValidatePage(page *Page, practice Practice) []Issue {
	l := &issueList{slug: page.Slug}

	if !slugPattern.MatchString(page.Slug) {
		l.add("slug", "must be lowercase segments of a-z, 0-9 and - joined by /")
	}
	l.required("title", page.Title)
	l.required("hero.heading", page.Hero.Heading)
	if page.Kind == KindAlternative || page.Kind == KindReview {
		l.required("town", page.Town)
	}
	if page.Kind == KindService {
		l.required("service", page.Service)
	}

	checkLink(l, "hero.primary", page.Hero.Primary, practice, true)
	checkLink(l, "hero.secondary", page.Hero.Secondary, practice, false)
	checkLink(l, "cta.primary", page.CTA.Primary, practice, true)
	checkLink(l, "cta.secondary", page.CTA.Secondary, practice, false)

	for i, reason := range page.WhySwitch.Reasons {
		prefix := fmt.Sprintf("whySwitch.reasons[%d]", i)
		l.required(prefix+".reason", reason.Reason)
		l.required(prefix+".oldExperience", reason.OldExperience)
		l.required(prefix+".newSolution", reason.NewSolution)
		l.required(prefix+".impact", reason.Impact)
		if !view.HasIcon(reason.Icon) {
			l.add(prefix+".icon", "unknown icon %q (available: %s)", reason.Icon, iconKeys())
		}
	}

	for i, item := range page.Advantages.Items {
		prefix := fmt.Sprintf("advantages.items[%d]", i)
		l.required(prefix+".advantage", item.Advantage)
		l.required(prefix+".description", item.Description)
		l.required(prefix+".traditionalAlternative", item.TraditionalAlternative)
		l.required(prefix+".benefit", item.Benefit)
		l.required(prefix+".technology", item.Technology)
	}

	for i, stage := range page.Journey.Stages {
		prefix := fmt.Sprintf("journey.stages[%d]", i)
		l.required(prefix+".stage", stage.Stage)
		if strings.TrimSpace(stage.Traditional) == "" || strings.TrimSpace(stage.Modern) == "" || strings.TrimSpace(stage.PearTree) == "" {
			l.add(prefix, "traditional, modern and peartree columns must all be present")
		}
	}

	for i, item := range page.Benefits.Items {
		prefix := fmt.Sprintf("benefits.items[%d]", i)
		l.required(prefix+".title", item.Title)
		l.required(prefix+".description", item.Description)
		if !view.HasIcon(item.Icon) {
			l.add(prefix+".icon", "unknown icon %q (available: %s)", item.Icon, iconKeys())
		}
	}

	if !page.Testimonial.IsZero() {
		l.required("testimonial.text", page.Testimonial.Text)
		l.required("testimonial.author", page.Testimonial.Author)
	}

	if !page.BeforeAfter.IsZero() {
		if strings.TrimSpace(page.BeforeAfter.BeforeImage) == "" || strings.TrimSpace(page.BeforeAfter.AfterImage) == "" {
			l.add("beforeAfter", "before and after images must both be set")
		}
		l.required("beforeAfter.beforeAlt", page.BeforeAfter.BeforeAlt)
		l.required("beforeAfter.afterAlt", page.BeforeAfter.AfterAlt)
	}

	seen := make(map[string]bool, len(page.FAQs))
	for i, faq := range page.FAQs {
		prefix := fmt.Sprintf("faqs[%d]", i)
		l.required(prefix+".question", faq.Question)
		l.required(prefix+".answer", faq.Answer)
		key := strings.ToLower(strings.TrimSpace(faq.Question))
		if key != "" && seen[key] {
			l.add(prefix+".question", "duplicate question %q", faq.Question)
		}
		seen[key] = true
	}
	if page.StructuredData == StructuredFAQ && len(page.FAQs) == 0 {
		l.add("structuredData", "faq structured data requires at least one faq")
	}

	for i, step := range page.Directions.Steps {
		l.required(fmt.Sprintf("directions.steps[%d]", i), step)
	}

	return l.issues
}

func iconKeys() string {
	options := view.IconOptions()
	keys := make([]string, 0, len(options))
	for _, option := range options {
		keys = append(keys, option.Key)
	}
	return strings.Join(keys, ", ")
}

func checkLink(l *issueList, field string, link Link, practice Practice, required bool) {
	if link.IsZero() {
		if required {
			l.add(field, "link is required")
		}
		return
	}
	l.required(field+".label", link.Label)

	href := strings.TrimSpace(link.Href)
	switch {
	case href == "":
		l.add(field+".href", "must not be empty")
	case strings.HasPrefix(href, "tel:"):
		if PhoneDigits(strings.TrimPrefix(href, "tel:")) != PhoneDigits(practice.Phone) {
			l.add(field+".href", "tel link %q does not match practice phone %q", href, practice.Phone)
		}
	case strings.HasPrefix(href, "mailto:"):
		if strings.TrimPrefix(href, "mailto:") == "" {
			l.add(field+".href", "mailto link has no address")
		}
	case strings.HasPrefix(href, "/"):
		if strings.HasPrefix(href, "//") {
			l.add(field+".href", "protocol-relative links are not allowed")
		}
	default:
		u, err := url.Parse(href)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			l.add(field+".href", "must be an internal path, tel:, mailto: or https URL")
		}
	}
}
