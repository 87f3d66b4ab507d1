package render

import (
	"encoding/json"
	"html/template"

	"github.com/peartree/landing/internal/content"
)

const schemaContext = "https://schema.org"

type faqPageSchema struct {
	Context    string           `json:"@context"`
	Type       string           `json:"@type"`
	URL        string           `json:"url,omitempty"`
	MainEntity []questionSchema `json:"mainEntity"`
}

type questionSchema struct {
	Type           string       `json:"@type"`
	Name           string       `json:"name"`
	AcceptedAnswer answerSchema `json:"acceptedAnswer"`
}

type answerSchema struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type dentistSchema struct {
	Context          string            `json:"@context"`
	Type             string            `json:"@type"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	URL              string            `json:"url,omitempty"`
	Telephone        string            `json:"telephone"`
	Email            string            `json:"email,omitempty"`
	Address          postalAddress     `json:"address"`
	Geo              *geoCoordinates   `json:"geo,omitempty"`
	OpeningHours     []string          `json:"openingHours,omitempty"`
	MedicalSpecialty []string          `json:"medicalSpecialty,omitempty"`
	AreaServed       *placeSchema      `json:"areaServed,omitempty"`
	AvailableService *medicalProcedure `json:"availableService,omitempty"`
}

type postalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type geoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placeSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type medicalProcedure struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// FAQEntry 是 FAQPage 结构化数据中的一个问答。
type FAQEntry struct {
	Question string
	Answer   string
}

// faqSchema 基于与可见内容相同的 FAQ 视图生成 FAQPage 数据。
func faqSchema(canonical string, faqs []FAQView) faqPageSchema {
	doc := faqPageSchema{
		Context:    schemaContext,
		Type:       "FAQPage",
		URL:        canonical,
		MainEntity: make([]questionSchema, 0, len(faqs)),
	}
	for _, faq := range faqs {
		doc.MainEntity = append(doc.MainEntity, questionSchema{
			Type:           "Question",
			Name:           faq.Question,
			AcceptedAnswer: answerSchema{Type: "Answer", Text: faq.PlainAnswer},
		})
	}
	return doc
}

func businessSchema(practice content.Practice, page *content.Page, canonical string) dentistSchema {
	doc := dentistSchema{
		Context:     schemaContext,
		Type:        "Dentist",
		Name:        practice.Name,
		Description: page.Description,
		URL:         practice.URL,
		Telephone:   practice.Phone,
		Email:       practice.Email,
		Address: postalAddress{
			Type:            "PostalAddress",
			StreetAddress:   practice.Street,
			AddressLocality: practice.Locality,
			AddressRegion:   practice.Region,
			PostalCode:      practice.Postcode,
			AddressCountry:  practice.Country,
		},
		OpeningHours:     practice.OpeningHours,
		MedicalSpecialty: practice.Specialties,
	}
	if doc.URL == "" {
		doc.URL = canonical
	}
	if practice.Latitude != 0 || practice.Longitude != 0 {
		doc.Geo = &geoCoordinates{Type: "GeoCoordinates", Latitude: practice.Latitude, Longitude: practice.Longitude}
	}
	if page.Town != "" {
		doc.AreaServed = &placeSchema{Type: "Place", Name: page.Town}
	}
	if page.Service != "" {
		doc.AvailableService = &medicalProcedure{Type: "MedicalProcedure", Name: page.Service}
	}
	return doc
}

// marshalJSONLD 编码 <script type="application/ld+json"> 的内容。
// encoding/json 会转义 <、> 和 &，内容无法提前闭合 script 标签。
func marshalJSONLD(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

// ParseFAQSchema 从 FAQPage JSON-LD 中提取问答，非 FAQPage 时 ok 为 false。
func ParseFAQSchema(raw []byte) (entries []FAQEntry, ok bool, err error) {
	var doc faqPageSchema
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, err
	}
	if doc.Type != "FAQPage" {
		return nil, false, nil
	}
	entries = make([]FAQEntry, 0, len(doc.MainEntity))
	for _, q := range doc.MainEntity {
		entries = append(entries, FAQEntry{Question: q.Name, Answer: q.AcceptedAnswer.Text})
	}
	return entries, true, nil
}
