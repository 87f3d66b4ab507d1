// Package export 将整站导出为静态文件。
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/peartree/landing/internal/audit"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// ErrUnsafePath 表示页面路径会写到输出目录之外。
var ErrUnsafePath = errors.New("export: path escapes output directory")

// Source 提供诊所信息与待发布页面。
type Source interface {
	Practice() content.Practice
	Pages() ([]*content.Page, error)
}

// Options 为 Exporter 的配置。
type Options struct {
	Renderer    *render.Renderer
	Source      Source
	Static      fs.FS
	BaseURL     string
	Site        func() render.Site
	Concurrency int
	Audit       bool
	Logger      *zap.Logger
}

// Exporter 将已发布页面渲染到目录。
type Exporter struct {
	renderer    *render.Renderer
	source      Source
	static      fs.FS
	baseURL     string
	site        func() render.Site
	concurrency int
	audit       bool
	logger      *zap.Logger

	mu sync.Mutex
}

// Result 汇总一次导出。
type Result struct {
	Pages    int
	Files    int
	Duration time.Duration
	Findings map[string][]audit.Finding
}

// New 校验 opts 并创建 Exporter。
func New(opts Options) (*Exporter, error) {
	if opts.Renderer == nil || opts.Source == nil {
		return nil, errors.New("export: renderer and source are required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Site == nil {
		opts.Site = func() render.Site { return render.Site{} }
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Exporter{
		renderer:    opts.Renderer,
		source:      opts.Source,
		static:      opts.Static,
		baseURL:     opts.BaseURL,
		site:        opts.Site,
		concurrency: opts.Concurrency,
		audit:       opts.Audit,
		logger:      opts.Logger,
	}, nil
}

// Build 先渲染到 outDir 旁的临时目录，全部写完后再替换 outDir，输出目录不会处于半成品状态。
func (e *Exporter) Build(ctx context.Context, outDir string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	var result Result

	pages, err := e.source.Pages()
	if err != nil {
		return result, fmt.Errorf("load pages: %w", err)
	}
	practice := e.source.Practice()
	site := e.site()

	catalog, err := content.NewCatalog(practice, pages)
	if err != nil {
		return result, err
	}

	outDir = filepath.Clean(outDir)
	staging := outDir + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return result, err
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return result, err
	}
	defer os.RemoveAll(staging)

	w := &writer{root: staging}
	findings := make(map[string][]audit.Finding)
	var findingsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, page := range catalog.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := e.renderer.RenderLanding(&buf, page, practice, site); err != nil {
				return fmt.Errorf("render %s: %w", page.Slug, err)
			}
			if e.audit {
				if found := audit.Audit(buf.Bytes(), page, practice); len(found) > 0 {
					findingsMu.Lock()
					findings[page.Slug] = found
					findingsMu.Unlock()
				}
			}
			return w.write(filepath.Join(filepath.FromSlash(page.Slug), "index.html"), buf.Bytes())
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	if err := e.writeTemplate(w, "index.html", render.TemplateIndex, e.renderer.Index(catalog, site)); err != nil {
		return result, err
	}
	if err := e.writeTemplate(w, "404.html", render.TemplateNotFound, e.renderer.NotFound(practice, site)); err != nil {
		return result, err
	}

	sitemap, err := Sitemap(e.baseURL, catalog.Pages)
	if err != nil {
		return result, err
	}
	if err := w.write("sitemap.xml", sitemap); err != nil {
		return result, err
	}
	if err := w.write("robots.txt", Robots(e.baseURL)); err != nil {
		return result, err
	}

	if e.static != nil {
		if err := copyStatic(w, e.static); err != nil {
			return result, fmt.Errorf("copy static assets: %w", err)
		}
	}

	if err := os.RemoveAll(outDir); err != nil {
		return result, err
	}
	if err := os.Rename(staging, outDir); err != nil {
		return result, err
	}

	result.Pages = len(catalog.Pages)
	result.Files = w.count()
	result.Duration = time.Since(started)
	if len(findings) > 0 {
		result.Findings = findings
	}

	e.logger.Info("static export finished",
		zap.String("dir", outDir),
		zap.Int("pages", result.Pages),
		zap.Int("files", result.Files),
		zap.Int("pagesWithFindings", len(findings)),
		zap.Duration("took", result.Duration))
	return result, nil
}

func (e *Exporter) writeTemplate(w *writer, name, tmpl string, data any) error {
	var buf bytes.Buffer
	if err := e.renderer.Execute(&buf, tmpl, data); err != nil {
		return err
	}
	return w.write(name, buf.Bytes())
}

func copyStatic(w *writer, static fs.FS) error {
	return fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, p)
		if err != nil {
			return err
		}
		return w.write(filepath.Join("static", filepath.FromSlash(p)), data)
	})
}

type writer struct {
	root string

	mu    sync.Mutex
	files []string
}

func (w *writer) write(rel string, data []byte) error {
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}
	target := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	w.mu.Lock()
	w.files = append(w.files, filepath.ToSlash(rel))
	w.mu.Unlock()
	return nil
}

func (w *writer) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

// Files 列出 dir 下的全部文件（斜杠分隔，已排序）。
func Files(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files, err
}
