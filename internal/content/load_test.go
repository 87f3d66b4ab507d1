package content

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/peartree/landing/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPractice = `
name: Pear Tree Dental
phone: 0115 931 2935
street: 22 Nottingham Road
locality: Burton Joyce
postcode: NG14 5AE
bookingPath: /book
`

const testBase = `
title: "Dentist near {town}"
hero:
  heading: "Switch from {town}"
  primary:
    label: Book
    href: "{booking}"
faqs:
  - question: "How far is {town}?"
    answer: "We are at {address}."
  - question: Second
    answer: Base answer
directions:
  steps:
    - "Leave {town}"
`

func testFS(pages map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{
		"practice.yaml":         {Data: []byte(testPractice)},
		"base/alternative.yaml": {Data: []byte(testBase)},
	}
	for name, data := range pages {
		fsys["pages/"+name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestLoadCatalogInstantiatesFromBase(t *testing.T) {
	catalog, err := LoadCatalog(testFS(map[string]string{
		"alternatives/mapperley.yaml": "town: Mapperley\n",
	}))
	require.NoError(t, err)
	require.Len(t, catalog.Pages, 1)

	page := catalog.Pages[0]
	assert.Equal(t, "alternatives/mapperley", page.Slug)
	assert.Equal(t, KindAlternative, page.Kind)
	assert.Equal(t, "Dentist near Mapperley", page.Title)
	assert.Equal(t, "Switch from Mapperley", page.Hero.Heading)
	assert.Equal(t, "/book", page.Hero.Primary.Href)
	assert.Equal(t, "We are at 22 Nottingham Road, Burton Joyce, NG14 5AE.", page.FAQs[0].Answer)
	assert.Equal(t, "Leave Mapperley", page.Directions.Steps[0])
	assert.Equal(t, "emerald", page.Theme.Name)
	assert.Equal(t, StructuredBoth, page.StructuredData)
}

func TestPageRecordOverridesNestedKeysAndReplacesLists(t *testing.T) {
	catalog, err := LoadCatalog(testFS(map[string]string{
		"alternatives/arnold.yaml": `
town: Arnold
hero:
  heading: Custom heading
faqs:
  - question: Only one
    answer: Replaced
`,
	}))
	require.NoError(t, err)

	page := catalog.Pages[0]
	assert.Equal(t, "Custom heading", page.Hero.Heading)
	assert.Equal(t, "/book", page.Hero.Primary.Href, "nested keys not overridden are kept from the base")
	require.Len(t, page.FAQs, 1, "sequences replace rather than append")
	assert.Equal(t, "Replaced", page.FAQs[0].Answer)
}

func TestBaseNoneSkipsBase(t *testing.T) {
	catalog, err := LoadCatalog(testFS(map[string]string{
		"alternatives/standalone.yaml": "base: none\ntown: Lowdham\ntitle: Standalone\n",
	}))
	require.NoError(t, err)

	page := catalog.Pages[0]
	assert.Equal(t, "Standalone", page.Title)
	assert.Empty(t, page.FAQs)
}

func TestLoadCatalogRejectsDuplicateSlugs(t *testing.T) {
	_, err := LoadCatalog(testFS(map[string]string{
		"alternatives/a.yaml": "town: A\nslug: alternatives/same\n",
		"alternatives/b.yaml": "town: B\nslug: alternatives/same\n",
	}))
	require.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestLoadCatalogRejectsUnknownKind(t *testing.T) {
	_, err := LoadCatalog(testFS(map[string]string{
		"blog/post.yaml": "title: Nope\n",
	}))
	require.ErrorIs(t, err, ErrInvalidKind)
	assert.Contains(t, err.Error(), "pages/blog/post.yaml")
}

func TestLoadCatalogRejectsUnknownTheme(t *testing.T) {
	_, err := LoadCatalog(testFS(map[string]string{
		"alternatives/x.yaml": "town: X\ntheme:\n  name: neon\n",
	}))
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.Contains(t, err.Error(), "emerald, rose, sky, teal, violet")
}

func TestLoadCatalogRejectsUnknownFields(t *testing.T) {
	_, err := LoadCatalog(testFS(map[string]string{
		"alternatives/x.yaml": "town: X\nheroo:\n  heading: typo\n",
	}))
	require.Error(t, err)
}

func TestLoadCatalogRequiresPractice(t *testing.T) {
	_, err := LoadCatalog(fstest.MapFS{})
	require.True(t, errors.Is(err, ErrMissingPractice))
}

func TestChecksumIsStableAcrossReencode(t *testing.T) {
	catalog, err := LoadCatalog(testFS(map[string]string{
		"alternatives/mapperley.yaml": "town: Mapperley\n",
	}))
	require.NoError(t, err)

	doc, err := Encode(catalog.Pages[0])
	require.NoError(t, err)
	decoded, err := Decode(doc)
	require.NoError(t, err)
	again, err := Encode(decoded)
	require.NoError(t, err)

	assert.Equal(t, "Dentist near Mapperley", decoded.Title)
	assert.Equal(t, Checksum(doc), Checksum(again))
	assert.Len(t, Checksum(doc), 64)
}

func TestEmbeddedCatalogLoadsAndValidates(t *testing.T) {
	catalog, err := LoadCatalog(web.Content())
	require.NoError(t, err)

	for _, slug := range []string{
		"alternatives/east-bridgford",
		"alternatives/mapperley",
		"reviews/mapperley",
		"services/restorative/root-canal",
		"services/cosmetic/composite-bonding",
	} {
		_, ok := catalog.Page(slug)
		assert.True(t, ok, "expected %s in catalog", slug)
	}

	assert.Empty(t, Validate(catalog))

	groups := catalog.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, KindAlternative, groups[0].Kind)
}

func TestPracticeAddressAndTel(t *testing.T) {
	p := Practice{Phone: "0115 931 2935", Street: "22 Nottingham Road", Locality: "Burton Joyce", Postcode: "NG14 5AE"}
	assert.Equal(t, "22 Nottingham Road, Burton Joyce, NG14 5AE", p.Address())
	assert.Equal(t, "tel:01159312935", p.TelLink())
	assert.Equal(t, "+441159312935", PhoneDigits("+44 115 931 2935"))
}

func TestParseKindAcceptsPlurals(t *testing.T) {
	kind, err := ParseKind("Services")
	require.NoError(t, err)
	assert.Equal(t, KindService, kind)
}
