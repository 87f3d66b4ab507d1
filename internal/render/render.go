// Package render 使用内嵌模板将内容页面渲染为 HTML，gin 服务与静态导出共用同一个 Renderer。
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/peartree/landing/internal/view"
	"go.uber.org/zap"
)

// 页面模板名称
const (
	TemplateLanding   = "landing.html"
	TemplateIndex     = "index.html"
	TemplateNotFound  = "not_found.html"
	TemplateBook      = "book.html"
	TemplateLogin     = "admin/login.html"
	TemplateDashboard = "admin/dashboard.html"
)

const layoutName = "layout"

var pageTemplates = []string{
	TemplateLanding,
	TemplateIndex,
	TemplateNotFound,
	TemplateBook,
	TemplateLogin,
	TemplateDashboard,
}

var sharedTemplates = []string{"layout.html", "partials.html", "sections.html"}

var ErrUnknownTemplate = errors.New("unknown template")

// Options 为 Renderer 的配置。
type Options struct {
	Templates fs.FS
	Static    fs.FS
	BaseURL   string
	Logger    *zap.Logger
	Now       func() time.Time
}

// Renderer 为每个页面模板持有一棵解析好的模板树。
type Renderer struct {
	templates map[string]*template.Template
	baseURL   string
	images    *imageProbe
	logger    *zap.Logger
	now       func() time.Time
}

// New 只解析一次公共布局和片段，再为每个页面模板克隆。
func New(opts Options) (*Renderer, error) {
	if opts.Templates == nil {
		return nil, errors.New("render: templates filesystem is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	shared, err := template.New(layoutName).Funcs(funcMap()).ParseFS(opts.Templates, sharedTemplates...)
	if err != nil {
		return nil, fmt.Errorf("parse shared templates: %w", err)
	}

	set := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		clone, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(opts.Templates, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		set[name] = clone
	}

	return &Renderer{
		templates: set,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		images:    newImageProbe(opts.Static),
		logger:    opts.Logger,
		now:       opts.Now,
	}, nil
}

// Execute 渲染指定页面模板（包含布局）。
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Instance 实现 gin 的 render.HTMLRender，处理器可直接调用 c.HTML。
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("unknown template requested", zap.String("template", name))
		tmpl = r.templates[TemplateNotFound]
	}
	return render.HTML{Template: tmpl, Name: layoutName, Data: data}
}

// Canonical 拼接站点根地址与路径。
func (r *Renderer) Canonical(p string) string {
	if r.baseURL == "" {
		return ""
	}
	if p == "" || p == "/" {
		return r.baseURL + "/"
	}
	return r.baseURL + "/" + strings.TrimLeft(p, "/")
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"icon":     view.IconSVG,
		"safeHref": SafeHref,
		"dict":     dict,
	}
}

// SafeHref 放行内容允许的链接形式（相对路径、tel:、mailto:、http 与 https），
// 其他链接替换为 "#"。
func SafeHref(raw string) template.URL {
	href := strings.TrimSpace(raw)
	switch {
	case href == "":
		return "#"
	case strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"),
		strings.HasPrefix(href, "#"):
		return template.URL(href)
	}

	u, err := url.Parse(href)
	if err != nil {
		return "#"
	}
	switch u.Scheme {
	case "tel", "mailto", "http", "https":
		return template.URL(href)
	}
	return "#"
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict expects key/value pairs")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
