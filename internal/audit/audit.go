// Package audit 检查渲染后的落地页，报告访客或搜索引擎会注意到的内容问题。
package audit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/render"
)

// 检查规则名称
const (
	RuleParse       = "parse"
	RuleFAQSchema   = "faq-schema"
	RuleLink        = "link"
	RuleTelLink     = "tel-link"
	RuleJourney     = "journey"
	RulePractice    = "practice"
	RuleHeading     = "heading"
	RuleCanonical   = "canonical"
	RuleDescription = "description"
)

// Finding 是一条未通过的检查。
type Finding struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return f.Rule + ": " + f.Message
}

type report struct {
	findings []Finding
}

func (r *report) add(rule, format string, args ...any) {
	r.findings = append(r.findings, Finding{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// Audit 对照源页面检查渲染结果，返回空切片表示通过。
func Audit(html []byte, page *content.Page, practice content.Practice) []Finding {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return []Finding{{Rule: RuleParse, Message: err.Error()}}
	}

	r := &report{}
	checkHead(r, doc)
	checkFAQs(r, doc, page)
	checkLinks(r, doc, practice)
	checkJourney(r, doc)
	checkPractice(r, doc, practice)
	checkHeading(r, doc, page)
	return r.findings
}

func checkHead(r *report, doc *goquery.Document) {
	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); strings.TrimSpace(href) == "" {
		r.add(RuleCanonical, "missing canonical link")
	}
	if desc, _ := doc.Find(`meta[name="description"]`).Attr("content"); strings.TrimSpace(desc) == "" {
		r.add(RuleDescription, "missing meta description")
	}
}

type visibleFAQ struct {
	question string
	answer   string
}

func checkFAQs(r *report, doc *goquery.Document, page *content.Page) {
	var visible []visibleFAQ
	doc.Find(".faq details").Each(func(_ int, s *goquery.Selection) {
		visible = append(visible, visibleFAQ{
			question: render.NormalizeSpace(s.Find(".faq-question").Text()),
			answer:   render.NormalizeSpace(s.Find(".faq-answer").Text()),
		})
	})

	if len(visible) != len(page.FAQs) {
		r.add(RuleFAQSchema, "page shows %d faqs, content has %d", len(visible), len(page.FAQs))
	}

	var (
		schema    []render.FAQEntry
		hasSchema bool
	)
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		entries, ok, err := render.ParseFAQSchema([]byte(s.Text()))
		if err != nil {
			r.add(RuleFAQSchema, "invalid json-ld block: %v", err)
			return
		}
		if ok {
			schema, hasSchema = entries, true
		}
	})

	if !page.WantsFAQSchema() {
		if hasSchema {
			r.add(RuleFAQSchema, "FAQPage block present but the page does not ask for one")
		}
		return
	}
	if !hasSchema {
		if len(visible) > 0 {
			r.add(RuleFAQSchema, "missing FAQPage block")
		}
		return
	}

	if len(schema) != len(visible) {
		r.add(RuleFAQSchema, "FAQPage has %d entries, page shows %d", len(schema), len(visible))
		return
	}
	for i := range schema {
		if schema[i].Question != visible[i].question {
			r.add(RuleFAQSchema, "question %d differs: schema %q, page %q", i+1, schema[i].Question, visible[i].question)
		}
		if render.NormalizeSpace(schema[i].Answer) != visible[i].answer {
			r.add(RuleFAQSchema, "answer %d differs from visible text", i+1)
		}
	}
}

func checkLinks(r *report, doc *goquery.Document, practice content.Practice) {
	wantTel := practice.TelLink()
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		label := render.NormalizeSpace(s.Text())
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		switch {
		case !ok || href == "" || href == "#":
			r.add(RuleLink, "link %q has no destination", label)
		case strings.HasPrefix(href, "tel:") && href != wantTel:
			r.add(RuleTelLink, "link %q dials %s, practice is %s", label, href, wantTel)
		}
	})
}

func checkJourney(r *report, doc *goquery.Document) {
	doc.Find("table.journey tbody tr").Each(func(i int, row *goquery.Selection) {
		for _, class := range []string{"traditional", "modern", "peartree"} {
			if strings.TrimSpace(row.Find("td."+class).Text()) == "" {
				r.add(RuleJourney, "row %d has an empty %s cell", i+1, class)
			}
		}
	})
}

func checkPractice(r *report, doc *goquery.Document, practice content.Practice) {
	text := render.NormalizeSpace(doc.Find("body").Text())
	if phone := strings.TrimSpace(practice.Phone); phone != "" && !strings.Contains(text, phone) {
		r.add(RulePractice, "practice phone %q not shown", phone)
	}
	if address := practice.Address(); address != "" && !strings.Contains(text, address) {
		r.add(RulePractice, "practice address %q not shown", address)
	}
}

func checkHeading(r *report, doc *goquery.Document, page *content.Page) {
	h1 := doc.Find("h1")
	if h1.Length() != 1 {
		r.add(RuleHeading, "expected one h1, found %d", h1.Length())
	}
	heading := render.NormalizeSpace(page.Hero.Heading)
	if heading == "" || h1.Length() == 0 {
		return
	}
	if !strings.Contains(render.NormalizeSpace(h1.First().Text()), heading) {
		r.add(RuleHeading, "h1 does not contain hero heading %q", heading)
	}
}
