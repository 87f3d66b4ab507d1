package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/peartree/landing/internal/content"
)

// 落地页各区块名称，按渲染顺序排列
const (
	SectionHero        = "hero"
	SectionWhySwitch   = "why_switch"
	SectionAdvantages  = "advantages"
	SectionJourney     = "journey"
	SectionBenefits    = "benefits"
	SectionTestimonial = "testimonial"
	SectionBeforeAfter = "before_after"
	SectionFAQ         = "faq"
	SectionDirections  = "directions"
	SectionCTA         = "cta"
)

// SectionOrder 顺序固定，无内容的区块跳过，不会调整顺序。
var SectionOrder = []string{
	SectionHero,
	SectionWhySwitch,
	SectionAdvantages,
	SectionJourney,
	SectionBenefits,
	SectionTestimonial,
	SectionBeforeAfter,
	SectionFAQ,
	SectionDirections,
	SectionCTA,
}

// Site 为页面框架中展示的站点设置。
type Site struct {
	Name   string
	Footer string
	Year   int
}

// PracticeView 是布局中展示的诊所信息。
type PracticeView struct {
	Name         string
	Phone        string
	TelLink      string
	Email        string
	Address      string
	BookingPath  string
	OpeningHours []string
}

// Document 包含布局所需的全部数据。
type Document struct {
	Site           Site
	Practice       PracticeView
	Title          string
	Description    string
	Canonical      string
	Robots         string
	Theme          content.Theme
	ThemeCSS       template.CSS
	StructuredData []template.JS
}

// FAQView 是一个问答，答案同时提供 HTML 与纯文本。
type FAQView struct {
	Question    string
	Answer      template.HTML
	PlainAnswer string
}

// BeforeAfterView 在对比滑块数据上附加探测到的图片尺寸。
type BeforeAfterView struct {
	content.BeforeAfter
	BeforeSize ImageSize
	AfterSize  ImageSize
}

// LandingView 是 landing.html 的渲染数据。
type LandingView struct {
	Document
	Page        *content.Page
	Sections    []string
	FAQs        []FAQView
	BeforeAfter BeforeAfterView
	MapsURL     string
}

// IndexView 按类型分组列出所有页面。
type IndexView struct {
	Document
	Groups []content.KindGroup
}

// Document 为非落地页构建布局数据。
func (r *Renderer) Document(practice content.Practice, site Site, title, path string) Document {
	theme, _ := content.ResolveTheme(content.Theme{})
	return Document{
		Site:      r.site(site, practice),
		Practice:  practiceView(practice),
		Title:     title,
		Canonical: r.Canonical(path),
		Theme:     theme,
		ThemeCSS:  themeCSS(theme),
	}
}

// Landing 构建单个落地页的视图模型。
func (r *Renderer) Landing(page *content.Page, practice content.Practice, site Site) (*LandingView, error) {
	canonical := r.Canonical(page.Path())

	faqs := make([]FAQView, 0, len(page.FAQs))
	for _, faq := range page.FAQs {
		answer, err := Markdown(faq.Answer)
		if err != nil {
			return nil, fmt.Errorf("render faq answer %q: %w", faq.Question, err)
		}
		faqs = append(faqs, FAQView{
			Question:    strings.TrimSpace(faq.Question),
			Answer:      answer,
			PlainAnswer: PlainText(answer),
		})
	}

	view := &LandingView{
		Document: Document{
			Site:        r.site(site, practice),
			Practice:    practiceView(practice),
			Title:       page.Title,
			Description: page.Description,
			Canonical:   canonical,
			Theme:       page.Theme,
			ThemeCSS:    themeCSS(page.Theme),
		},
		Page:     page,
		Sections: Sections(page),
		FAQs:     faqs,
		BeforeAfter: BeforeAfterView{
			BeforeAfter: page.BeforeAfter,
			BeforeSize:  r.images.Size(page.BeforeAfter.BeforeImage),
			AfterSize:   r.images.Size(page.BeforeAfter.AfterImage),
		},
		MapsURL: MapsURL(practice, page.Directions),
	}

	if page.WantsFAQSchema() {
		block, err := marshalJSONLD(faqSchema(canonical, faqs))
		if err != nil {
			return nil, err
		}
		view.StructuredData = append(view.StructuredData, block)
	}
	if page.WantsBusinessSchema() {
		block, err := marshalJSONLD(businessSchema(practice, page, canonical))
		if err != nil {
			return nil, err
		}
		view.StructuredData = append(view.StructuredData, block)
	}

	return view, nil
}

// RenderLanding 输出完整的落地页文档。
func (r *Renderer) RenderLanding(w io.Writer, page *content.Page, practice content.Practice, site Site) error {
	view, err := r.Landing(page, practice, site)
	if err != nil {
		return err
	}
	return r.Execute(w, TemplateLanding, view)
}

// Index 构建首页目录视图。
func (r *Renderer) Index(catalog *content.Catalog, site Site) *IndexView {
	doc := r.Document(catalog.Practice, site, catalog.Practice.Name, "/")
	doc.Description = fmt.Sprintf("%s, %s. Call %s.", catalog.Practice.Name, catalog.Practice.Address(), catalog.Practice.Phone)
	return &IndexView{Document: doc, Groups: catalog.Groups()}
}

// NotFound 构建 404 页面视图。
func (r *Renderer) NotFound(practice content.Practice, site Site) Document {
	doc := r.Document(practice, site, "Page not found", "")
	doc.Robots = "noindex"
	return doc
}

// Sections 按 SectionOrder 列出页面需要渲染的区块。
func Sections(page *content.Page) []string {
	present := map[string]bool{
		SectionHero:        strings.TrimSpace(page.Hero.Heading) != "",
		SectionWhySwitch:   len(page.WhySwitch.Reasons) > 0,
		SectionAdvantages:  len(page.Advantages.Items) > 0,
		SectionJourney:     len(page.Journey.Stages) > 0,
		SectionBenefits:    len(page.Benefits.Items) > 0,
		SectionTestimonial: !page.Testimonial.IsZero(),
		SectionBeforeAfter: !page.BeforeAfter.IsZero(),
		SectionFAQ:         len(page.FAQs) > 0,
		SectionDirections:  len(page.Directions.Steps) > 0 || strings.TrimSpace(page.Directions.Heading) != "",
		SectionCTA:         strings.TrimSpace(page.CTA.Heading) != "",
	}

	sections := make([]string, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		if present[name] {
			sections = append(sections, name)
		}
	}
	return sections
}

// MapsURL 返回到诊所的 Google Maps 导航链接。页面显式配置的链接优先，其次坐标，最后地址。
func MapsURL(practice content.Practice, directions content.Directions) string {
	if explicit := strings.TrimSpace(directions.MapsURL); explicit != "" {
		return explicit
	}

	values := url.Values{}
	values.Set("api", "1")
	if practice.Latitude != 0 || practice.Longitude != 0 {
		values.Set("destination", fmt.Sprintf("%.4f,%.4f", practice.Latitude, practice.Longitude))
	} else {
		values.Set("destination", practice.Address())
	}
	if from := strings.TrimSpace(directions.From); from != "" {
		values.Set("origin", from)
	}
	return "https://www.google.com/maps/dir/?" + values.Encode()
}

func (r *Renderer) site(site Site, practice content.Practice) Site {
	if strings.TrimSpace(site.Name) == "" {
		site.Name = practice.Name
	}
	if site.Year == 0 {
		site.Year = r.now().Year()
	}
	return site
}

func practiceView(p content.Practice) PracticeView {
	return PracticeView{
		Name:         p.Name,
		Phone:        p.Phone,
		TelLink:      p.TelLink(),
		Email:        p.Email,
		Address:      p.Address(),
		BookingPath:  p.BookingPath,
		OpeningHours: p.OpeningHours,
	}
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func themeCSS(theme content.Theme) template.CSS {
	var b strings.Builder
	for _, pair := range [][2]string{
		{"--accent", theme.Accent},
		{"--accent-soft", theme.AccentSoft},
		{"--ink", theme.Ink},
	} {
		if hexColour.MatchString(pair[1]) {
			fmt.Fprintf(&b, "%s: %s; ", pair[0], pair[1])
		}
	}
	return template.CSS(strings.TrimSpace(b.String()))
}
