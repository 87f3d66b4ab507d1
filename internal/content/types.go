// Package content 定义落地页的内容记录，以及由“类型基础模板 + 城镇/服务记录”实例化页面的加载器。
package content

import (
	"fmt"
	"strings"
)

// Kind 表示共用同一基础模板的落地页类型。
type Kind string

const (
	KindAlternative Kind = "alternative"
	KindReview      Kind = "review"
	KindService     Kind = "service"
)

// Kinds 按展示顺序列出所有类型。
var Kinds = []Kind{KindAlternative, KindReview, KindService}

// ParseKind 规范化类型名，同时接受复数形式的目录名。
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "alternative", "alternatives":
		return KindAlternative, nil
	case "review", "reviews":
		return KindReview, nil
	case "service", "services":
		return KindService, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
}

// Label 返回按类型分组时使用的标题。
func (k Kind) Label() string {
	switch k {
	case KindAlternative:
		return "Switching dentists"
	case KindReview:
		return "Patient reviews"
	case KindService:
		return "Treatments"
	}
	return string(k)
}

// 结构化数据模式
const (
	StructuredFAQ             = "faq"
	StructuredMedicalBusiness = "medical_business"
	StructuredBoth            = "both"
)

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// IsZero 判断链接是否完全未设置。
func (l Link) IsZero() bool {
	return strings.TrimSpace(l.Label) == "" && strings.TrimSpace(l.Href) == ""
}

type Theme struct {
	Name       string `yaml:"name"`
	Accent     string `yaml:"accent"`
	AccentSoft string `yaml:"accentSoft"`
	Ink        string `yaml:"ink"`
}

type Hero struct {
	Badge      string `yaml:"badge"`
	Heading    string `yaml:"heading"`
	Highlight  string `yaml:"highlight"`
	Subheading string `yaml:"subheading"`
	Primary    Link   `yaml:"primary"`
	Secondary  Link   `yaml:"secondary"`
}

// ComparisonReason 是一张“为什么转诊”卡片。
type ComparisonReason struct {
	Reason        string `yaml:"reason"`
	OldExperience string `yaml:"oldExperience"`
	NewSolution   string `yaml:"newSolution"`
	Impact        string `yaml:"impact"`
	Icon          string `yaml:"icon"`
}

type AdvantageItem struct {
	Advantage              string `yaml:"advantage"`
	Description            string `yaml:"description"`
	TraditionalAlternative string `yaml:"traditionalAlternative"`
	Benefit                string `yaml:"benefit"`
	Technology             string `yaml:"technology"`
}

// JourneyStage 是就诊流程三列对比表中的一行。
type JourneyStage struct {
	Stage       string `yaml:"stage"`
	Traditional string `yaml:"traditional"`
	Modern      string `yaml:"modern"`
	PearTree    string `yaml:"peartree"`
}

type BenefitItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type TestimonialQuote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// IsZero 判断页面是否没有患者评价。
func (t TestimonialQuote) IsZero() bool {
	return strings.TrimSpace(t.Text) == "" && strings.TrimSpace(t.Author) == ""
}

type BeforeAfter struct {
	BeforeImage   string `yaml:"beforeImage"`
	AfterImage    string `yaml:"afterImage"`
	BeforeAlt     string `yaml:"beforeAlt"`
	AfterAlt      string `yaml:"afterAlt"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	TreatmentType string `yaml:"treatmentType"`
}

// IsZero 判断对比滑块是否没有图片。
func (b BeforeAfter) IsZero() bool {
	return strings.TrimSpace(b.BeforeImage) == "" && strings.TrimSpace(b.AfterImage) == ""
}

type Directions struct {
	Heading   string   `yaml:"heading"`
	From      string   `yaml:"from"`
	Distance  string   `yaml:"distance"`
	DriveTime string   `yaml:"driveTime"`
	Steps     []string `yaml:"steps"`
	Parking   string   `yaml:"parking"`
	MapsURL   string   `yaml:"mapsURL"`
}

type CTA struct {
	Heading   string `yaml:"heading"`
	Body      string `yaml:"body"`
	Primary   Link   `yaml:"primary"`
	Secondary Link   `yaml:"secondary"`
}

type ReasonSection struct {
	Heading string             `yaml:"heading"`
	Intro   string             `yaml:"intro"`
	Reasons []ComparisonReason `yaml:"reasons"`
}

type AdvantageSection struct {
	Heading string          `yaml:"heading"`
	Intro   string          `yaml:"intro"`
	Items   []AdvantageItem `yaml:"items"`
}

type JourneySection struct {
	Heading string         `yaml:"heading"`
	Intro   string         `yaml:"intro"`
	Stages  []JourneyStage `yaml:"stages"`
}

type BenefitSection struct {
	Heading string        `yaml:"heading"`
	Intro   string        `yaml:"intro"`
	Items   []BenefitItem `yaml:"items"`
}

// Page 是一个完整实例化的落地页。
type Page struct {
	Slug           string           `yaml:"slug"`
	Kind           Kind             `yaml:"kind"`
	Town           string           `yaml:"town"`
	Service        string           `yaml:"service"`
	Title          string           `yaml:"title"`
	Description    string           `yaml:"description"`
	Theme          Theme            `yaml:"theme"`
	Hero           Hero             `yaml:"hero"`
	WhySwitch      ReasonSection    `yaml:"whySwitch"`
	Advantages     AdvantageSection `yaml:"advantages"`
	Journey        JourneySection   `yaml:"journey"`
	Benefits       BenefitSection   `yaml:"benefits"`
	Testimonial    TestimonialQuote `yaml:"testimonial"`
	BeforeAfter    BeforeAfter      `yaml:"beforeAfter"`
	FAQs           []FAQItem        `yaml:"faqs"`
	Directions     Directions       `yaml:"directions"`
	CTA            CTA              `yaml:"cta"`
	StructuredData string           `yaml:"structuredData"`
}

// Path 返回页面的访问路径。
func (p *Page) Path() string {
	return "/" + strings.Trim(p.Slug, "/")
}

// WantsFAQSchema 判断是否输出 FAQPage 结构化数据。
func (p *Page) WantsFAQSchema() bool {
	return len(p.FAQs) > 0 && (p.StructuredData == StructuredFAQ || p.StructuredData == StructuredBoth)
}

// WantsBusinessSchema 判断是否输出 Dentist 结构化数据。
func (p *Page) WantsBusinessSchema() bool {
	return p.StructuredData == StructuredMedicalBusiness || p.StructuredData == StructuredBoth
}

// Practice 是所有页面推广的牙科诊所信息。
type Practice struct {
	Name         string   `yaml:"name"`
	Phone        string   `yaml:"phone"`
	Email        string   `yaml:"email"`
	Street       string   `yaml:"street"`
	Locality     string   `yaml:"locality"`
	Region       string   `yaml:"region"`
	Postcode     string   `yaml:"postcode"`
	Country      string   `yaml:"country"`
	Latitude     float64  `yaml:"latitude"`
	Longitude    float64  `yaml:"longitude"`
	URL          string   `yaml:"url"`
	BookingPath  string   `yaml:"bookingPath"`
	OpeningHours []string `yaml:"openingHours"`
	Specialties  []string `yaml:"specialties"`
}

// Address 返回单行地址，例如 "22 Nottingham Road, Burton Joyce, NG14 5AE"。
func (p Practice) Address() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Street, p.Locality, p.Postcode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

// TelLink 返回诊所电话的 tel: 链接。
func (p Practice) TelLink() string {
	return "tel:" + PhoneDigits(p.Phone)
}

// PhoneDigits 只保留数字和开头的加号。
func PhoneDigits(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
