package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	practiceFile = "practice.yaml"
	baseDir      = "base"
	pagesDir     = "pages"
	noBase       = "none"
)

// Catalog 包含诊所信息与全部实例化后的页面，按 slug 排序。
type Catalog struct {
	Practice Practice
	Pages    []*Page

	bySlug map[string]*Page
}

// KindGroup 是同一类型下的页面集合。
type KindGroup struct {
	Kind  Kind
	Label string
	Pages []*Page
}

// NewCatalog 按 slug 建立索引，slug 重复时返回错误。
func NewCatalog(practice Practice, pages []*Page) (*Catalog, error) {
	sorted := append([]*Page(nil), pages...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	index := make(map[string]*Page, len(sorted))
	for _, page := range sorted {
		if _, exists := index[page.Slug]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, page.Slug)
		}
		index[page.Slug] = page
	}

	return &Catalog{Practice: practice, Pages: sorted, bySlug: index}, nil
}

// Page 按 slug 查找页面，忽略首尾斜杠。
func (c *Catalog) Page(slug string) (*Page, bool) {
	page, ok := c.bySlug[strings.Trim(slug, "/")]
	return page, ok
}

// Groups 按 Kinds 顺序分组返回页面，跳过空分组。
func (c *Catalog) Groups() []KindGroup {
	groups := make([]KindGroup, 0, len(Kinds))
	for _, kind := range Kinds {
		group := KindGroup{Kind: kind, Label: kind.Label()}
		for _, page := range c.Pages {
			if page.Kind == kind {
				group.Pages = append(group.Pages, page)
			}
		}
		if len(group.Pages) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// LoadCatalog 从 fsys 读取 practice.yaml、base/<kind>.yaml 与 pages/**/*.yaml。
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, practiceFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissingPractice
		}
		return nil, fmt.Errorf("read %s: %w", practiceFile, err)
	}

	var practice Practice
	if err := yaml.Unmarshal(raw, &practice); err != nil {
		return nil, fmt.Errorf("%s: %w", practiceFile, err)
	}

	bases, err := loadBases(fsys)
	if err != nil {
		return nil, err
	}

	var pages []*Page
	err = fs.WalkDir(fsys, pagesDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		rel := strings.TrimPrefix(p, pagesDir+"/")
		page, err := Instantiate(rel, data, bases, practice)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return NewCatalog(practice, pages)
}

func loadBases(fsys fs.FS) (map[string]map[string]any, error) {
	bases := make(map[string]map[string]any)
	entries, err := fs.ReadDir(fsys, baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bases, nil
		}
		return nil, fmt.Errorf("read %s: %w", baseDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		p := path.Join(baseDir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		doc := map[string]any{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		bases[strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))] = doc
	}
	return bases, nil
}

// Instantiate 将单个页面记录合并到基础模板之上并替换占位符。
// rel 为记录在 pages/ 下的相对路径，记录未声明 slug 和 kind 时据此推导。
func Instantiate(rel string, data []byte, bases map[string]map[string]any, practice Practice) (*Page, error) {
	record := map[string]any{}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	slug := stringField(record, "slug")
	if slug == "" {
		slug = strings.TrimSuffix(rel, path.Ext(rel))
	}
	slug = strings.Trim(slug, "/")

	rawKind := stringField(record, "kind")
	if rawKind == "" {
		rawKind, _, _ = strings.Cut(slug, "/")
	}
	kind, err := ParseKind(rawKind)
	if err != nil {
		return nil, err
	}

	explicitBase := stringField(record, "base")
	baseName := explicitBase
	if baseName == "" {
		baseName = string(kind)
	}
	delete(record, "base")

	merged := map[string]any{}
	if baseName != noBase {
		base, ok := bases[baseName]
		if !ok && explicitBase != "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingBase, baseName)
		}
		if ok {
			merged = deepCopy(base).(map[string]any)
		}
	}
	merged = mergeMaps(merged, record)
	merged["slug"] = slug
	merged["kind"] = string(kind)

	replacer := placeholderReplacer(stringField(merged, "town"), stringField(merged, "service"), practice)
	merged = substitute(merged, replacer).(map[string]any)

	encoded, err := yaml.Marshal(merged)
	if err != nil {
		return nil, err
	}
	page, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Decode 解析完整的页面文档并补齐默认值。
func Decode(data []byte) (*Page, error) {
	var page Page
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&page); err != nil {
		return nil, err
	}

	kind, err := ParseKind(string(page.Kind))
	if err != nil {
		return nil, err
	}
	page.Kind = kind
	page.Slug = strings.Trim(page.Slug, "/")

	theme, err := ResolveTheme(page.Theme)
	if err != nil {
		return nil, err
	}
	page.Theme = theme

	switch page.StructuredData {
	case StructuredFAQ, StructuredMedicalBusiness, StructuredBoth:
	case "":
		page.StructuredData = StructuredBoth
	default:
		return nil, fmt.Errorf("unknown structured data mode %q", page.StructuredData)
	}

	return &page, nil
}

// Encode 将页面序列化为与校验和一同入库的文档。
func Encode(page *Page) ([]byte, error) {
	return yaml.Marshal(page)
}

// Checksum 返回文档的十六进制 sha256。
func Checksum(document []byte) string {
	sum := sha256.Sum256(document)
	return hex.EncodeToString(sum[:])
}

func placeholderReplacer(town, service string, practice Practice) *strings.Replacer {
	return strings.NewReplacer(
		"{town}", town,
		"{service}", service,
		"{practice}", practice.Name,
		"{phone}", practice.Phone,
		"{tel}", practice.TelLink(),
		"{address}", practice.Address(),
		"{postcode}", practice.Postcode,
		"{booking}", practice.BookingPath,
	)
}

// mergeMaps 将 src 覆盖到 dst 上：嵌套映射递归合并，列表等其他值整体替换。
func mergeMaps(dst, src map[string]any) map[string]any {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = mergeMaps(dstMap, srcMap)
			continue
		}
		dst[key] = deepCopy(value)
	}
	return dst
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func substitute(value any, r *strings.Replacer) any {
	switch v := value.(type) {
	case string:
		return r.Replace(v)
	case map[string]any:
		for key, item := range v {
			v[key] = substitute(item, r)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = substitute(item, r)
		}
		return v
	default:
		return v
	}
}

func stringField(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
